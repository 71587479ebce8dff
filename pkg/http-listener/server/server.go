package server

import (
	"context"
	"crypto/tls"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"emperror.dev/errors"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/config"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/log"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/metrics"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/tracing"
)

// ErrServerClosed is returned by Serve and Listen after Shutdown.
var ErrServerClosed = errors.NewPlain("server closed")

// Wait applied after a temporary accept failure.
const acceptRetryDelay = 5 * time.Millisecond

type Server struct {
	logger     log.Logger
	cfgManager config.Manager
	metricsCl  metrics.Client
	tracingSvc tracing.Service
	handler    Handler
	settings   atomic.Pointer[exchangeSettings]
	addr       string

	mu       sync.Mutex
	listener net.Listener
	conns    map[net.Conn]struct{}
	closed   bool
	wg       sync.WaitGroup
}

func NewServer(logger log.Logger, cfgManager config.Manager, metricsCl metrics.Client, tracingSvc tracing.Service) *Server {
	return &Server{
		logger:     logger,
		cfgManager: cfgManager,
		metricsCl:  metricsCl,
		tracingSvc: tracingSvc,
		handler:    EchoHandler(DefaultEchoMaxBodySize),
		conns:      map[net.Conn]struct{}{},
	}
}

// SetHandler replaces the echo handler. Must be called before serving.
func (svr *Server) SetHandler(h Handler) {
	svr.handler = h
}

func (svr *Server) GenerateServer() error {
	// Get configuration
	cfg := svr.cfgManager.GetConfig()

	// Generate settings
	s, err := generateSettings(cfg.Server, cfg.Request, svr.logger)
	if err != nil {
		return err
	}

	svr.settings.Store(s)
	svr.addr = cfg.Server.ListenAddr + ":" + strconv.Itoa(cfg.Server.Port)

	// Prepare for configuration onChange
	svr.cfgManager.AddOnChangeHook(func() {
		// Get configuration
		cfg := svr.cfgManager.GetConfig()
		// Generate settings
		s, err2 := generateSettings(cfg.Server, cfg.Request, svr.logger)
		if err2 != nil {
			// Keep serving with the previous settings
			svr.logger.Error(errors.Wrap(err2, "server settings not reloaded"))

			return
		}

		// Listen address changes need a restart
		svr.settings.Store(s)
		svr.logger.Info("Server settings reloaded")
	})

	return nil
}

func (svr *Server) Listen() error {
	ln, err := net.Listen("tcp", svr.addr)
	if err != nil {
		return errors.WithStack(err)
	}

	svr.logger.Infof("Server listening on %s", ln.Addr())

	return svr.Serve(ln)
}

// Serve accepts connections on ln until Shutdown is called.
// TLS is applied per connection with the current settings so certificate reloads are picked up.
func (svr *Server) Serve(ln net.Listener) error {
	svr.mu.Lock()
	if svr.closed {
		svr.mu.Unlock()

		_ = ln.Close()

		return ErrServerClosed
	}

	svr.listener = ln
	svr.mu.Unlock()

	for {
		raw, err := ln.Accept()
		if err != nil {
			if svr.isClosed() {
				return ErrServerClosed
			}

			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				svr.logger.Warnf("accept error: %v; retrying", err)
				time.Sleep(acceptRetryDelay)

				continue
			}

			return errors.WithStack(err)
		}

		if tlsCfg := svr.getSettings().tlsConfig; tlsCfg != nil {
			raw = tls.Server(raw, tlsCfg)
		}

		if !svr.trackConn(raw) {
			_ = raw.Close()

			return ErrServerClosed
		}

		go func(c net.Conn) {
			defer svr.untrackConn(c)

			svr.serveConn(c)
		}(raw)
	}
}

// Addr returns the address the server is listening on, nil before Serve.
func (svr *Server) Addr() net.Addr {
	svr.mu.Lock()
	defer svr.mu.Unlock()

	if svr.listener == nil {
		return nil
	}

	return svr.listener.Addr()
}

// Shutdown stops accepting, closes open connections and waits for their
// goroutines to end or ctx to be done.
func (svr *Server) Shutdown(ctx context.Context) error {
	svr.mu.Lock()
	svr.closed = true

	var err error
	if svr.listener != nil {
		err = svr.listener.Close()
	}

	for c := range svr.conns {
		_ = c.Close()
	}
	svr.mu.Unlock()

	done := make(chan struct{})

	go func() {
		svr.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	}

	if err != nil && !errors.Is(err, net.ErrClosed) {
		return errors.WithStack(err)
	}

	return nil
}

func (svr *Server) getSettings() *exchangeSettings {
	return svr.settings.Load()
}

func (svr *Server) isClosed() bool {
	svr.mu.Lock()
	defer svr.mu.Unlock()

	return svr.closed
}

func (svr *Server) trackConn(c net.Conn) bool {
	svr.mu.Lock()
	defer svr.mu.Unlock()

	if svr.closed {
		return false
	}

	svr.conns[c] = struct{}{}
	svr.wg.Add(1)

	return true
}

func (svr *Server) untrackConn(c net.Conn) {
	svr.mu.Lock()
	delete(svr.conns, c)
	svr.mu.Unlock()

	svr.wg.Done()
}
