package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/stockroom/pkg/logger"
)

func setupTracer() *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp
}

func nopLogger() logger.Logger {
	return logger.Discard()
}

// TestRetryWithBackoff_SuccessOnFirstAttempt verifies no retry occurs on success.
func TestRetryWithBackoff_SuccessOnFirstAttempt(t *testing.T) {
	calls := 0
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		return nil
	}
	msg := message.NewMessage("id", nil)
	err := retryWithBackoff(context.Background(), msg, handler, maxRetries, time.Millisecond, nopLogger())
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

// TestRetryWithBackoff_SuccessAfterRetries verifies retry continues until success.
func TestRetryWithBackoff_SuccessAfterRetries(t *testing.T) {
	calls := 0
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		if calls < 3 {
			return errors.New("transient error")
		}
		return nil
	}
	msg := message.NewMessage("id", nil)
	err := retryWithBackoff(context.Background(), msg, handler, maxRetries, time.Millisecond, nopLogger())
	if err != nil {
		t.Fatalf("expected nil after eventual success, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

// TestRetryWithBackoff_ExhaustsRetries verifies an error is returned after all retries fail.
func TestRetryWithBackoff_ExhaustsRetries(t *testing.T) {
	calls := 0
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		return errors.New("permanent error")
	}
	msg := message.NewMessage("id", nil)
	err := retryWithBackoff(context.Background(), msg, handler, maxRetries, time.Millisecond, nopLogger())
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	if calls != maxRetries {
		t.Errorf("expected %d calls, got %d", maxRetries, calls)
	}
}

// TestRetryWithBackoff_ContextCancelled verifies retry stops when context is canceled.
func TestRetryWithBackoff_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	calls := 0
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		return errors.New("error")
	}
	msg := message.NewMessage("id", nil)
	err := retryWithBackoff(ctx, msg, handler, maxRetries, time.Second, nopLogger())
	if err == nil {
		t.Fatal("expected error from canceled context")
	}
	// Should have called handler once then exited on ctx.Done
	if calls != 1 {
		t.Errorf("expected 1 call before context cancel, got %d", calls)
	}
}

// TestStartForwarder_NonForwarderMode verifies StartForwarder returns an error
// when called on an EventBus not configured with forwarder mode.
func TestStartForwarder_NonForwarderMode(t *testing.T) {
	bus := &EventBus{useForwarder: false}
	err := bus.StartForwarder(context.Background())
	if err == nil {
		t.Fatal("expected error for non-forwarder EventBus")
	}
}

func TestNewJSONMessage(t *testing.T) {
	msg, err := NewJSONMessage("evt-1", 2, map[string]string{"order_id": "o-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := string(msg.Payload); got != `{"order_id":"o-1"}` {
		t.Errorf("payload: got %s", got)
	}
	if msg.Metadata.Get("event_id") != "evt-1" || msg.Metadata.Get("event_version") != "2" {
		t.Errorf("metadata: got %v", msg.Metadata)
	}
	if msg.UUID == "" {
		t.Error("expected message UUID")
	}
}

func TestNewJSONMessage_Unmarshalable(t *testing.T) {
	if _, err := NewJSONMessage("evt-1", 1, make(chan int)); err == nil {
		t.Fatal("expected marshal error")
	}
}

// TestInjectTrace_RoundTrip verifies the trace context written by Publish can
// be restored the way Subscribe does it.
func TestInjectTrace_RoundTrip(t *testing.T) {
	tp := setupTracer()
	defer tp.Shutdown(context.Background()) //nolint:errcheck

	ctx, span := otel.Tracer("test").Start(context.Background(), "publish-span")
	defer span.End()
	wantTraceID := span.SpanContext().TraceID()

	msg := message.NewMessage("id", nil)
	injectTrace(ctx, msg)

	extractCarrier := propagation.MapCarrier{}
	for k, v := range msg.Metadata {
		extractCarrier[k] = v
	}
	msgCtx := otel.GetTextMapPropagator().Extract(context.Background(), extractCarrier)

	gotSpan := trace.SpanFromContext(msgCtx)
	if !gotSpan.SpanContext().IsValid() {
		t.Fatal("extracted span context is not valid")
	}
	if gotSpan.SpanContext().TraceID() != wantTraceID {
		t.Errorf("trace ID mismatch: want %s, got %s", wantTraceID, gotSpan.SpanContext().TraceID())
	}
}
