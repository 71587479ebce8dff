package tracing

import (
	"context"
	"net/http"

	"github.com/opentracing/opentracing-go"
	otlog "github.com/opentracing/opentracing-go/log"
	"github.com/uber/jaeger-client-go"
)

type trace struct {
	span opentracing.Span
}

func (t *trace) SetTag(key string, value interface{}) {
	t.span.SetTag(key, value)
}

func (t *trace) LogFields(keyValues ...interface{}) {
	fields, err := otlog.InterleavedKVToFields(keyValues...)
	if err != nil {
		t.span.LogFields(otlog.Error(err))

		return
	}

	t.span.LogFields(fields...)
}

func (t *trace) GetChildTrace(operationName string) Trace {
	childSpan := t.span.Tracer().StartSpan(
		operationName,
		opentracing.ChildOf(t.span.Context()),
	)

	return &trace{span: childSpan}
}

func (t *trace) Finish() {
	t.span.Finish()
}

func (t *trace) GetTraceID() string {
	if sc, ok := t.span.Context().(jaeger.SpanContext); ok {
		return sc.TraceID().String()
	}

	return ""
}

// StartTrace starts a span with the given tracer, child of the span found in
// ctx if any, and returns a context carrying it.
func StartTrace(ctx context.Context, tracer opentracing.Tracer, operationName string) (Trace, context.Context) {
	sp, ctx := opentracing.StartSpanFromContextWithTracer(ctx, tracer, operationName)

	return &trace{span: sp}, ctx
}

func GetTraceFromContext(ctx context.Context) Trace {
	sp := opentracing.SpanFromContext(ctx)
	if sp == nil {
		return nil
	}

	return &trace{
		span: sp,
	}
}

func GetTraceIDFromContext(ctx context.Context) string {
	trace := GetTraceFromContext(ctx)
	if trace != nil {
		return trace.GetTraceID()
	}

	return ""
}

func GetTraceIDFromRequest(r *http.Request) string {
	return GetTraceIDFromContext(r.Context())
}
