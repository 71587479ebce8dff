package server

import (
	"crypto/tls"
	"time"

	"emperror.dev/errors"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/config"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/log"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/request"
)

// exchangeSettings is the immutable snapshot of configuration used by connections.
// A configuration reload builds a new one; running exchanges keep theirs.
type exchangeSettings struct {
	tlsConfig         *tls.Config
	allowedHosts      *HostMatcher
	drainPolicy       request.DrainPolicy
	readTimeout       time.Duration
	readHeaderTimeout time.Duration
	writeTimeout      time.Duration
	idleTimeout       time.Duration
	maxHeaderLines    int
	maxLineLength     int
}

func generateSettings(srvCfg *config.ServerConfig, reqCfg *config.RequestConfig, logger log.Logger) (*exchangeSettings, error) {
	s := &exchangeSettings{
		drainPolicy: request.DrainPolicy{
			BufferSize:  reqCfg.DrainBufferSize,
			ReadTimeout: request.DefaultDrainReadTimeout,
		},
		maxHeaderLines: reqCfg.MaxHeaderLines,
		maxLineLength:  reqCfg.MaxLineLength,
	}

	err := injectServerTimeout(s, srvCfg.Timeouts)
	if err != nil {
		return nil, err
	}

	if reqCfg.DrainReadTimeout != "" {
		dur, err2 := time.ParseDuration(reqCfg.DrainReadTimeout)
		if err2 != nil {
			return nil, errors.WithStack(err2)
		}

		s.drainPolicy.ReadTimeout = dur
	}

	s.allowedHosts, err = NewHostMatcher(reqCfg.AllowedHosts)
	if err != nil {
		return nil, err
	}

	s.tlsConfig, err = generateTLSConfig(srvCfg.SSL, logger)
	if err != nil {
		return nil, err
	}

	return s, nil
}

func injectServerTimeout(s *exchangeSettings, cfg *config.ServerTimeoutsConfig) error {
	// Check if configuration is empty
	if cfg == nil {
		// Ignore
		return nil
	}

	timeouts := []struct {
		value  string
		target *time.Duration
	}{
		{value: cfg.ReadTimeout, target: &s.readTimeout},
		{value: cfg.ReadHeaderTimeout, target: &s.readHeaderTimeout},
		{value: cfg.WriteTimeout, target: &s.writeTimeout},
		{value: cfg.IdleTimeout, target: &s.idleTimeout},
	}

	for _, t := range timeouts {
		// Not set
		if t.value == "" {
			continue
		}

		// Parse timeout
		dur, err := time.ParseDuration(t.value)
		// Check error
		if err != nil {
			return errors.WithStack(err)
		}

		// Inject
		*t.target = dur
	}

	return nil
}

// headerDeadline is the instant the request head must be complete by.
func (s *exchangeSettings) headerDeadline(start time.Time) time.Time {
	if s.readHeaderTimeout > 0 {
		return start.Add(s.readHeaderTimeout)
	}

	return s.bodyDeadline(start)
}

// bodyDeadline bounds the whole request read, zero when unbounded.
func (s *exchangeSettings) bodyDeadline(start time.Time) time.Time {
	if s.readTimeout > 0 {
		return start.Add(s.readTimeout)
	}

	return time.Time{}
}

// idleDeadline bounds the wait for the next request on a kept alive connection.
func (s *exchangeSettings) idleDeadline(now time.Time) time.Time {
	if s.idleTimeout > 0 {
		return now.Add(s.idleTimeout)
	}

	return s.headerDeadline(now)
}

func (s *exchangeSettings) writeDeadline(now time.Time) time.Time {
	if s.writeTimeout > 0 {
		return now.Add(s.writeTimeout)
	}

	return time.Time{}
}
