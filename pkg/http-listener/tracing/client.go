package tracing

import (
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/config"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/log"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/metrics"
)

// Service interface
//
//go:generate mockgen -destination=./mocks/mock_Service.go -package=mocks github.com/oxyno-zeta/http-listener/pkg/http-listener/tracing Service
type Service interface {
	// Reload service (useful for configuration change)
	Reload() error
	// Get global tracer object
	GetTracer() opentracing.Tracer
}

// Trace object interface
type Trace interface {
	// Set tag on trace
	SetTag(key string, value interface{})
	// Log key/value pairs on trace
	LogFields(keyValues ...interface{})
	// Get child trace with an operation name
	GetChildTrace(operationName string) Trace
	// Will finish the trace
	Finish()
	// Get trace id as a string (useful for logs)
	GetTraceID() string
}

func New(cfgManager config.Manager, logger log.Logger, metricsCl metrics.Client) (Service, error) {
	return newService(cfgManager, logger, metricsCl)
}
