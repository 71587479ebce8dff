package log

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// HTTPAddLoggerToContextMiddleware HTTP Middleware that will add request logger to request context.
func HTTPAddLoggerToContextMiddleware() func(next http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			// Get logger from request
			logger := getLogEntry(r)
			// Add logger to request context in order to keep it
			r = r.WithContext(SetLoggerInContext(r.Context(), logger))

			// Next
			h.ServeHTTP(rw, r)
		})
	}
}

// NewStructuredLogger Generate a new structured logger for chi routers.
func NewStructuredLogger(
	logger Logger,
	getTraceID func(r *http.Request) string,
) func(next http.Handler) http.Handler {
	return middleware.RequestLogger(&StructuredLogger{
		Logger:     logger,
		GetTraceID: getTraceID,
	})
}

// StructuredLogger structured logger.
type StructuredLogger struct {
	Logger     Logger
	GetTraceID func(r *http.Request) string
}

// NewLogEntry new log entry.
func (l *StructuredLogger) NewLogEntry(r *http.Request) middleware.LogEntry {
	logFields := map[string]interface{}{}

	// Get trace id
	traceIDStr := l.GetTraceID(r)
	if traceIDStr != "" {
		logFields[FieldTraceID] = traceIDStr
	}

	if reqID := middleware.GetReqID(r.Context()); reqID != "" {
		logFields["req_id"] = reqID
	}

	logFields[FieldProto] = r.Proto
	logFields[FieldMethod] = r.Method
	logFields[FieldRemoteAddr] = r.RemoteAddr
	logFields["user_agent"] = r.UserAgent()
	logFields[FieldURI] = r.RequestURI

	entry := &StructuredLoggerEntry{Logger: l.Logger.WithFields(logFields)}

	entry.Logger.Debug("request started")

	return entry
}

// StructuredLoggerEntry Structured logger entry.
type StructuredLoggerEntry struct {
	Logger Logger
}

// Write Write.
func (l *StructuredLoggerEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	l.Logger = l.Logger.WithFields(logrus.Fields{
		FieldStatus:    status,
		FieldBytes:     bytes,
		FieldElapsedMs: float64(elapsed.Nanoseconds()) / 1000000.0, // nolint: gomnd // No constant for that
	})

	// Internal endpoints are polled, keep them quiet unless something goes wrong
	if status >= http.StatusBadRequest {
		l.Logger.Error("request complete")

		return
	}

	l.Logger.Debug("request complete")
}

// Panic panic log.
func (l *StructuredLoggerEntry) Panic(v interface{}, stack []byte) {
	l.Logger = l.Logger.WithFields(logrus.Fields{
		"stack": string(stack),
		"panic": fmt.Sprintf("%+v", v),
	})
}

func getLogEntry(r *http.Request) Logger {
	entry, ok := middleware.GetLogEntry(r).(*StructuredLoggerEntry)
	if !ok {
		return nil
	}

	return entry.Logger
}
