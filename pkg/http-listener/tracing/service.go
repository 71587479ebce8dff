package tracing

import (
	"io"
	"sync"
	"time"

	"emperror.dev/errors"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/config"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/log"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/metrics"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	jaegerprom "github.com/uber/jaeger-lib/metrics/prometheus"
)

// ServiceName is the name reported to the tracing backend.
const ServiceName = "http-listener"

type service struct {
	cfgManager config.Manager
	logger     log.Logger
	factory    *jaegerprom.Factory

	// Exchanges read the tracer while a reload swaps it
	mu     sync.RWMutex
	tracer opentracing.Tracer
	closer io.Closer
}

func (s *service) GetTracer() opentracing.Tracer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tracer
}

// Reload builds a tracer from the current configuration then closes the previous one.
// On error the previous tracer is kept.
func (s *service) Reload() error {
	tracer, closer, err := s.newTracer()
	if err != nil {
		return err
	}

	s.mu.Lock()
	old := s.closer
	s.tracer, s.closer = tracer, closer
	s.mu.Unlock()

	opentracing.SetGlobalTracer(tracer)

	if old == nil {
		return nil
	}

	return errors.WithStack(old.Close())
}

func (s *service) newTracer() (opentracing.Tracer, io.Closer, error) {
	jcfg, err := buildConfiguration(s.cfgManager.GetConfig().Tracing)
	if err != nil {
		return nil, nil, err
	}

	tracer, closer, err := jcfg.NewTracer(
		jaegercfg.Logger(s.logger.GetTracingLogger()),
		jaegercfg.Metrics(s.factory),
	)
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}

	return tracer, closer, nil
}

// buildConfiguration maps the tracing section to a jaeger configuration.
// A missing or disabled section gives a disabled tracer.
func buildConfiguration(cfg *config.TracingConfig) (*jaegercfg.Configuration, error) {
	jcfg := &jaegercfg.Configuration{
		ServiceName: ServiceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1,
		},
	}

	if cfg == nil || !cfg.Enabled {
		jcfg.Disabled = true

		return jcfg, nil
	}

	jcfg.Reporter = &jaegercfg.ReporterConfig{
		LogSpans:           cfg.LogSpan,
		QueueSize:          cfg.QueueSize,
		LocalAgentHostPort: cfg.UDPHost,
	}

	if cfg.FlushInterval != "" {
		dur, err := time.ParseDuration(cfg.FlushInterval)
		if err != nil {
			return nil, errors.Wrap(err, "invalid tracing flush interval")
		}

		jcfg.Reporter.BufferFlushInterval = dur
	}

	// Fixed tags are sent with every span of the listener
	for k, v := range cfg.FixedTags {
		jcfg.Tags = append(jcfg.Tags, opentracing.Tag{Key: k, Value: v})
	}

	return jcfg, nil
}

func newService(cfgManager config.Manager, logger log.Logger, metricsCl metrics.Client) (*service, error) {
	svc := &service{
		cfgManager: cfgManager,
		logger:     logger,
		// Created once: a factory registers its collectors on first use
		factory: jaegerprom.New(jaegerprom.WithRegisterer(metricsCl.GetRegisterer())),
	}

	err := svc.Reload()
	if err != nil {
		return nil, err
	}

	return svc, nil
}
