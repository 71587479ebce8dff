package log

import (
	"github.com/sirupsen/logrus"
)

// Field names shared by the listener and the internal router.
const (
	FieldTraceID    = "trace_id"
	FieldRequestID  = "request_id"
	FieldRemoteAddr = "remote_addr"
	FieldLocalAddr  = "local_addr"
	FieldMethod     = "http_method"
	FieldProto      = "http_proto"
	FieldURI        = "uri"
	FieldStatus     = "resp_status"
	FieldBytes      = "resp_bytes_length"
	FieldElapsedMs  = "resp_elapsed_ms"
)

// Logger is implemented on top of logrus.
// Only the root logger returned by NewLogger can be configured.
type Logger interface {
	Configure(level string, format string, filePath string) error

	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
	WithError(err error) Logger

	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})

	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})

	GetTracingLogger() TracingLogger
}

// TracingLogger is the logger expected by the jaeger client.
type TracingLogger interface {
	Error(msg string)
	Infof(msg string, args ...interface{})
	Debugf(msg string, args ...interface{})
}

func NewLogger() Logger {
	return &loggerIns{
		FieldLogger: logrus.New(),
	}
}
