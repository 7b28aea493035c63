package otel

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"bazaar/shared/failure"
)

func newRecorded(t *testing.T) (Otel, *tracetest.SpanRecorder) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	return &otelImpl{TracerProvider: provider}, recorder
}

func attributes(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		out[kv.Key] = kv.Value
	}

	return out
}

func TestScope_TraceError(t *testing.T) {
	t.Run("client errors stay unset", func(t *testing.T) {
		ot, recorder := newRecorded(t)

		_, scope := ot.NewScope(context.Background(), "service", "service.AcceptOffer")
		scope.TraceError(failure.ConflictDetected("listing is not available for the selected dates"))
		scope.End()

		spans := recorder.Ended()
		require.Len(t, spans, 1)

		attrs := attributes(spans[0])
		assert.Equal(t, codes.Unset, spans[0].Status().Code)
		assert.Equal(t, int64(400), attrs[attrErrorCode].AsInt64())
		assert.Equal(t, failure.ReasonConflictDetected, attrs[attrErrorReason].AsString())
		require.Len(t, spans[0].Events(), 1)
		assert.Equal(t, "listing is not available for the selected dates", spans[0].Events()[0].Name)
	})

	t.Run("server errors fail the span", func(t *testing.T) {
		ot, recorder := newRecorded(t)

		_, scope := ot.NewScope(context.Background(), "repository", "repository.bookings.Insert")
		scope.TraceIfError(nil)
		scope.TraceIfError(assert.AnError)
		scope.End()

		spans := recorder.Ended()
		require.Len(t, spans, 1)

		assert.Equal(t, codes.Error, spans[0].Status().Code)
		assert.Equal(t, int64(500), attributes(spans[0])[attrErrorCode].AsInt64())
		require.Len(t, spans[0].Events(), 1)
		assert.Equal(t, "exception", spans[0].Events()[0].Name)
	})

	t.Run("child spans share the trace", func(t *testing.T) {
		ot, recorder := newRecorded(t)

		ctx, parent := ot.NewScope(context.Background(), "handler", "handler.CreateBooking")
		_, child := ot.NewScope(ctx, "service", "service.CreateBooking")
		child.End()
		parent.End()

		spans := recorder.Ended()
		require.Len(t, spans, 2)
		assert.Equal(t, spans[1].SpanContext().TraceID(), spans[0].SpanContext().TraceID())
		assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
	})
}

func TestAttribute(t *testing.T) {
	at := time.Date(2025, 7, 10, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value any
		want  attribute.Value
	}{
		{"bool", true, attribute.BoolValue(true)},
		{"string", "pending", attribute.StringValue("pending")},
		{"int", 3, attribute.IntValue(3)},
		{"int64", int64(7), attribute.Int64Value(7)},
		{"float", 12.5, attribute.Float64Value(12.5)},
		{"duration in ms", 1500 * time.Millisecond, attribute.Int64Value(1500)},
		{"time", at, attribute.StringValue("2025-07-10T08:30:00Z")},
		{"strings", []string{"a", "b"}, attribute.StringSliceValue([]string{"a", "b"})},
		{"stringer", codes.Error, attribute.StringValue("Error")},
		{"fallback", struct{ N int }{1}, attribute.StringValue("{1}")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := Attribute("key", tt.value)

			assert.Equal(t, attribute.Key("key"), kv.Key)
			assert.Equal(t, tt.want, kv.Value)
		})
	}
}
