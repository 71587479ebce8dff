package server

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"strconv"

	"emperror.dev/errors"
	"github.com/dimiro1/health"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httptracer"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/config"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/log"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/metrics"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/tracing"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/version"
)

type InternalServer struct {
	logger     log.Logger
	cfgManager config.Manager
	metricsCl  metrics.Client
	tracingSvc tracing.Service
	server     *http.Server
}

func NewInternalServer(
	logger log.Logger,
	cfgManager config.Manager,
	metricsCl metrics.Client,
	tracingSvc tracing.Service,
) *InternalServer {
	return &InternalServer{
		logger:     logger,
		cfgManager: cfgManager,
		metricsCl:  metricsCl,
		tracingSvc: tracingSvc,
	}
}

func (svr *InternalServer) Listen() error {
	ln, err := net.Listen("tcp", svr.server.Addr)
	if err != nil {
		return errors.WithStack(err)
	}

	return svr.Serve(ln)
}

// Serve serves the internal endpoints on ln. A shutdown is not an error.
func (svr *InternalServer) Serve(ln net.Listener) error {
	svr.logger.Infof("Internal server listening on %s", ln.Addr())

	if svr.server.TLSConfig != nil {
		ln = tls.NewListener(ln, svr.server.TLSConfig)
	}

	err := svr.server.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return errors.WithStack(err)
}

func (svr *InternalServer) Shutdown(ctx context.Context) error {
	return errors.WithStack(svr.server.Shutdown(ctx))
}

func (svr *InternalServer) GenerateServer() error {
	// Get configuration
	cfg := svr.cfgManager.GetConfig()
	// Generate internal router
	r := svr.generateInternalRouter()
	// Create server
	addr := cfg.InternalServer.ListenAddr + ":" + strconv.Itoa(cfg.InternalServer.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// Inject timeouts
	s := &exchangeSettings{}

	err := injectServerTimeout(s, cfg.InternalServer.Timeouts)
	if err != nil {
		return err
	}

	server.ReadTimeout = s.readTimeout
	server.ReadHeaderTimeout = s.readHeaderTimeout
	server.WriteTimeout = s.writeTimeout
	server.IdleTimeout = s.idleTimeout

	// TLS
	server.TLSConfig, err = generateTLSConfig(cfg.InternalServer.SSL, svr.logger)
	if err != nil {
		return err
	}

	// Store server
	svr.server = server

	return nil
}

func (svr *InternalServer) generateInternalRouter() http.Handler {
	r := chi.NewRouter()

	// Get configuration
	cfg := svr.cfgManager.GetConfig()

	r.Use(middleware.NoCache)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Manage tracing
	// Create http tracer configuration
	var tags map[string]interface{}
	if cfg.Tracing != nil {
		tags = cfg.Tracing.FixedTags
	}

	httptraCfg := httptracer.Config{
		ServiceName:    tracing.ServiceName,
		ServiceVersion: version.GetVersion().Version,
		SampleRate:     1,
		OperationName:  "http.internal.request",
		Tags:           tags,
	}
	// Put tracing middlewares
	r.Use(httptracer.Tracer(svr.tracingSvc.GetTracer(), httptraCfg))
	r.Use(log.NewStructuredLogger(
		svr.logger,
		tracing.GetTraceIDFromRequest,
	))
	r.Use(log.HTTPAddLoggerToContextMiddleware())
	r.Use(svr.metricsCl.Instrument("internal"))
	r.Use(middleware.Recoverer)

	healthHandler := health.NewHandler()
	// Listen path
	r.Handle("/metrics", svr.metricsCl.GetExposeHandler())
	r.Handle("/health", healthHandler)

	return r
}
