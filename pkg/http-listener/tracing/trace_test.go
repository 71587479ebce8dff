//go:build unit

package tracing

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/jaeger-client-go"
)

func TestStartTrace(t *testing.T) {
	tracer := mocktracer.New()

	tr, ctx := StartTrace(context.TODO(), tracer, "exchange")
	tr.SetTag("http.method", "GET")
	tr.LogFields("event", "finalized", "status", 400)

	child := tr.GetChildTrace("drain")
	child.Finish()
	tr.Finish()

	assert.NotNil(t, GetTraceFromContext(ctx))

	spans := tracer.FinishedSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "drain", spans[0].OperationName)
	assert.Equal(t, "exchange", spans[1].OperationName)
	assert.Equal(t, spans[1].SpanContext.SpanID, spans[0].ParentID)
	assert.Equal(t, "GET", spans[1].Tag("http.method"))
	require.Len(t, spans[1].Logs(), 1)
}

func TestTrace_LogFields_OddArguments(t *testing.T) {
	tracer := mocktracer.New()

	tr, _ := StartTrace(context.TODO(), tracer, "exchange")
	tr.LogFields("alone")
	tr.Finish()

	spans := tracer.FinishedSpans()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Logs(), 1)
	assert.Equal(t, "error.object", spans[0].Logs()[0].Fields[0].Key)
}

func TestGetTraceID(t *testing.T) {
	tracer, closer := jaeger.NewTracer("test", jaeger.NewConstSampler(true), jaeger.NewNullReporter())
	defer closer.Close()

	tr, ctx := StartTrace(context.TODO(), tracer, "exchange")
	defer tr.Finish()

	id := tr.GetTraceID()
	assert.NotEmpty(t, id)
	assert.Equal(t, id, GetTraceIDFromContext(ctx))

	req := httptest.NewRequest("GET", "/", nil).WithContext(ctx)
	assert.Equal(t, id, GetTraceIDFromRequest(req))
}

func TestGetTraceID_NoTrace(t *testing.T) {
	assert.Nil(t, GetTraceFromContext(context.TODO()))
	assert.Equal(t, "", GetTraceIDFromContext(context.TODO()))

	tr, _ := StartTrace(context.TODO(), opentracing.NoopTracer{}, "exchange")
	assert.Equal(t, "", tr.GetTraceID())
}
