package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"emperror.dev/errors"
	"github.com/dustin/go-humanize"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/conn"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/log"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/request"
	responsehandler "github.com/oxyno-zeta/http-listener/pkg/http-listener/response-handler"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/tracing"
)

// serveConn runs exchanges on one connection until it cannot be reused.
func (svr *Server) serveConn(raw net.Conn) {
	settings := svr.getSettings()
	c := conn.New(raw, conn.WithMaxLineLength(settings.maxLineLength))

	defer c.Close()

	logger := svr.logger.WithFields(map[string]interface{}{
		log.FieldRemoteAddr: addrString(c.RemoteAddr()),
		log.FieldLocalAddr:  addrString(c.LocalAddr()),
	})

	for first := true; ; first = false {
		if !svr.serveExchange(c, svr.getSettings(), logger, first) {
			return
		}
	}
}

// serveExchange reads one request and answers it.
// It returns true when the connection can serve another request.
func (svr *Server) serveExchange(c *conn.Conn, settings *exchangeSettings, logger log.Logger, first bool) bool {
	now := time.Now()

	// The first request must come in time, later ones may wait for the idle timeout
	if first {
		_ = c.SetReadDeadline(settings.headerDeadline(now))
	} else {
		_ = c.SetReadDeadline(settings.idleDeadline(now))
	}

	line, err := c.ReadRequestLine()
	// Request line too long is answered, anything else ends the connection silently
	if err != nil && !errors.Is(err, conn.ErrLineTooLong) {
		if !errors.Is(err, io.EOF) {
			logger.WithError(err).Debug("connection closed while waiting for a request")
		}

		return false
	}

	start := time.Now()

	// Create request object
	req := request.New(c, request.WithDrainPolicy(settings.drainPolicy))

	// Start trace and prepare request logger
	trace, ctx := tracing.StartTrace(context.Background(), svr.tracingSvc.GetTracer(), "http.request")
	defer trace.Finish()

	reqLogger := logger.WithField(log.FieldRequestID, req.RequestTraceIdentifier().String())
	if traceID := trace.GetTraceID(); traceID != "" {
		reqLogger = reqLogger.WithField(log.FieldTraceID, traceID)
	}

	ctx = log.SetLoggerInContext(ctx, reqLogger)

	if err != nil {
		svr.reject(ctx, c, req, &request.ValidationError{Status: http.StatusRequestURITooLong}, trace, settings, start)

		return false
	}

	// The idle wait is over, the head must now arrive in time
	_ = c.SetReadDeadline(settings.headerDeadline(start))

	err = readRequestHead(c, req, line, settings.maxHeaderLines)
	if err != nil {
		vErr, ok := request.IsValidationError(err)
		if !ok {
			// I/O failure or interim response not written
			reqLogger.WithError(err).Debug("cannot read request")

			return false
		}

		svr.reject(ctx, c, req, vErr, trace, settings, start)

		return false
	}

	protocol := "HTTP/" + req.ProtocolVersion().String()

	svr.metricsCl.IncParsedRequests(req.Method(), protocol)

	if req.InterimResponseSent() {
		svr.metricsCl.IncInterimResponses()
	}

	trace.SetTag("http.method", req.Method())
	trace.SetTag("http.url", req.URL().String())
	trace.SetTag("http.proto", protocol)
	trace.SetTag("request_id", req.RequestTraceIdentifier().String())

	reqLogger = reqLogger.WithFields(map[string]interface{}{
		log.FieldMethod: req.Method(),
		log.FieldProto:  protocol,
		log.FieldURI:    req.Target(),
	})
	ctx = log.SetLoggerInContext(ctx, reqLogger)

	// Host allow-list
	if !settings.allowedHosts.Match(req.URL().Host) {
		svr.reject(ctx, c, req, &request.ValidationError{Message: "Invalid Host header"}, trace, settings, start)

		return false
	}

	// Head is complete, bound the body and the answer
	_ = c.SetReadDeadline(settings.bodyDeadline(start))
	_ = c.SetWriteDeadline(settings.writeDeadline(time.Now()))

	w := newResponseWriter(
		c.ResponseStream(),
		req.Method() == http.MethodHead,
		req.KeepAlive(),
		req.ProtocolVersion().LessThan(request.HTTP11),
	)
	rh := responsehandler.NewHandler(ctx, req, w, svr.cfgManager)
	ctx = responsehandler.SetResponseHandlerInContext(ctx, rh)

	svr.runHandler(ctx, req, rh, w)

	// Unread body must be discarded before the next request can be parsed
	if w.keepAlive {
		drained := req.Drain(ctx)

		if req.HasEntityBody() {
			svr.metricsCl.IncDrains(drained)
		}

		if !drained {
			reqLogger.Debug("request body cannot be drained, connection will be closed")

			w.keepAlive = false
		}
	}

	n, err := w.finish()
	svr.observe(reqLogger, req, w.Status(), n, start, trace)

	if err != nil {
		reqLogger.WithError(err).Debug("cannot write response")

		return false
	}

	return w.keepAlive
}

// readRequestHead feeds the request line and header lines to req then validates it.
func readRequestHead(c *conn.Conn, req *request.Request, line string, maxHeaderLines int) error {
	err := req.SetRequestLine(line)
	if err != nil {
		return err
	}

	for n := 0; ; n++ {
		hl, err := c.ReadLine()
		if err != nil {
			if errors.Is(err, conn.ErrLineTooLong) {
				return &request.ValidationError{Status: http.StatusRequestHeaderFieldsTooLarge}
			}

			return err
		}

		// End of the header block
		if hl == "" {
			break
		}

		if n >= maxHeaderLines {
			return &request.ValidationError{Status: http.StatusRequestHeaderFieldsTooLarge}
		}

		err = req.AddHeader(hl)
		if err != nil {
			return err
		}
	}

	return req.Finalize()
}

// reject answers a request that failed validation. The connection is always closed after.
func (svr *Server) reject(
	ctx context.Context,
	c *conn.Conn,
	req *request.Request,
	vErr *request.ValidationError,
	trace tracing.Trace,
	settings *exchangeSettings,
	start time.Time,
) {
	svr.metricsCl.IncValidationErrors(vErr.StatusCode())

	trace.SetTag("error", true)
	trace.LogFields("event", "error", "message", vErr.Error())

	_ = c.SetWriteDeadline(settings.writeDeadline(time.Now()))

	w := newResponseWriter(c.ResponseStream(), req.Method() == http.MethodHead, false, false)
	rh := responsehandler.NewHandler(ctx, req, w, svr.cfgManager)

	rh.ValidationError(vErr)

	logger := log.GetLoggerFromContext(ctx)

	n, err := w.finish()
	svr.observe(logger, req, w.Status(), n, start, trace)

	if err != nil {
		logger.WithError(err).Debug("cannot write response")
	}
}

// runHandler calls the handler and turns a panic into an internal server error.
func (svr *Server) runHandler(ctx context.Context, req *request.Request, rh responsehandler.ResponseHandler, w *responseWriter) {
	defer func() {
		if rec := recover(); rec != nil {
			// Partial answers are dropped
			w.reset()
			// A panicking handler leaves the body in an unknown state
			w.keepAlive = false

			rh.InternalServerError(errors.Errorf("panic: %v", rec))
		}
	}()

	svr.handler.ServeRequest(ctx, req, rh)
}

func (svr *Server) observe(logger log.Logger, req *request.Request, status int, respSize int64, start time.Time, trace tracing.Trace) {
	elapsed := time.Since(start)
	reqSize := computeRequestSize(req)

	svr.metricsCl.ObserveExchange(status, req.Method(), elapsed, reqSize, respSize)

	trace.SetTag("http.status_code", status)

	fields := map[string]interface{}{
		log.FieldStatus:    status,
		log.FieldBytes:     respSize,
		"resp_size":        humanize.Bytes(uint64(respSize)),
		"req_size":         humanize.Bytes(uint64(reqSize)),
		log.FieldElapsedMs: float64(elapsed.Nanoseconds()) / 1000000.0, //nolint: gomnd // No constant for that
	}

	if status >= http.StatusBadRequest {
		logger.WithFields(fields).Warn("request complete")

		return
	}

	logger.WithFields(fields).Info("request complete")
}

// computeRequestSize approximates the wire size of the request.
func computeRequestSize(req *request.Request) int64 {
	s := int64(len(req.String()))

	if l := req.ContentLength(); l > 0 {
		s += l
	}

	return s
}

func addrString(addr net.Addr) string {
	if addr == nil {
		return ""
	}

	return addr.String()
}
