package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestTraceDataRoundTrip(t *testing.T) {
	ctx := context.Background()
	if got := GetTraceData(ctx); got != nil {
		t.Fatalf("expected nil trace data on bare context, got %v", got)
	}

	td := &TraceData{TraceID: "abc123", RequestID: "req-1"}
	ctx = WithTraceData(ctx, td)
	got := GetTraceData(ctx)
	if got == nil || got.TraceID != "abc123" || got.RequestID != "req-1" {
		t.Fatalf("trace data did not round-trip: %v", got)
	}
}

func TestRequestDataRoundTrip(t *testing.T) {
	ctx := context.Background()
	if got := GetRequestData(ctx); got != nil {
		t.Fatalf("expected nil request data on bare context, got %v", got)
	}

	id := uuid.New()
	ctx = WithRequestData(ctx, &RequestData{SessionID: id})
	got := GetRequestData(ctx)
	if got == nil || got.SessionID != id {
		t.Fatalf("request data did not round-trip: %v", got)
	}
}
