package log

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	logrus "github.com/sirupsen/logrus"
)

const jsonFormat = "json"

type loggerIns struct {
	logrus.FieldLogger
}

// This is dirty pkg/errors.
type stackTracer interface {
	StackTrace() errors.StackTrace
}

func (ll *loggerIns) GetTracingLogger() TracingLogger {
	return &jaegerLogger{logger: ll}
}

func (ll *loggerIns) Configure(level string, format string, filePath string) error {
	// Parse log level
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}

	// Get logrus logger
	lll, ok := ll.FieldLogger.(*logrus.Logger)
	// Only root loggers can be configured
	if !ok {
		return fmt.Errorf("logger with fields cannot be configured")
	}

	// Set log level
	lll.SetLevel(lvl)

	// Set format
	if format == jsonFormat {
		lll.SetFormatter(&logrus.JSONFormatter{})
	} else {
		lll.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	// Stop here if logs must go to standard output
	if filePath == "" {
		return nil
	}

	// Create directory if necessary
	err = os.MkdirAll(filepath.Dir(filePath), os.ModePerm)
	if err != nil {
		return err
	}

	// Open file
	f, err := os.OpenFile(filePath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0666)
	if err != nil {
		return err
	}

	// Set output file
	lll.SetOutput(f)

	return nil
}

func (ll *loggerIns) WithField(key string, value interface{}) Logger {
	return &loggerIns{
		FieldLogger: ll.FieldLogger.WithField(key, value),
	}
}

func (ll *loggerIns) WithFields(fields map[string]interface{}) Logger {
	// Transform fields
	var ff logrus.Fields = fields

	return &loggerIns{
		FieldLogger: ll.FieldLogger.WithFields(ff),
	}
}

func (ll *loggerIns) WithError(err error) Logger {
	// Create new field logger
	fieldL := ll.FieldLogger.WithError(err)

	// Check if error is matching stack trace interface
	// nolint: errorlint // Only the first level is interesting here
	if err2, ok := err.(stackTracer); ok {
		fieldL = fieldL.WithField("stack", stringifyStack(err2))
	} else if err2, ok := errors.Cause(err).(stackTracer); ok { // nolint: errorlint // Same
		fieldL = fieldL.WithField("stack", stringifyStack(err2))
	}

	return &loggerIns{
		FieldLogger: fieldL,
	}
}

func (ll *loggerIns) Error(args ...interface{}) {
	// Check if first element is an error
	if len(args) > 0 {
		if err, ok := args[0].(error); ok {
			// Log with error fields
			ll.WithError(err).(*loggerIns).FieldLogger.Error(args...)

			return
		}
	}

	ll.FieldLogger.Error(args...)
}

func (ll *loggerIns) Fatal(args ...interface{}) {
	// Check if first element is an error
	if len(args) > 0 {
		if err, ok := args[0].(error); ok {
			// Log with error fields
			ll.WithError(err).(*loggerIns).FieldLogger.Fatal(args...)

			return
		}
	}

	ll.FieldLogger.Fatal(args...)
}

func stringifyStack(pError stackTracer) string {
	// Stringify stack trace
	valued := fmt.Sprintf("%+v", pError.StackTrace())
	// Remove all tabs
	valued = strings.ReplaceAll(valued, "\t", "")
	// Split on new line
	stack := strings.Split(valued, "\n")
	// Remove first empty string
	if len(stack) > 0 && stack[0] == "" {
		stack = stack[1:]
	}

	return strings.Join(stack, ",")
}
