package reco

import (
	"context"
	"testing"
)

func TestTraceID_RoundTrip(t *testing.T) {
	ctx := WithTraceID(context.Background(), "req-123")
	if got := TraceID(ctx); got != "req-123" {
		t.Fatalf("TraceID = %q, want req-123", got)
	}
}

func TestTraceID_UntaggedContext(t *testing.T) {
	if got := TraceID(context.Background()); got != "" {
		t.Fatalf("TraceID on untagged context = %q, want empty", got)
	}
}

func TestTraceID_CollisionSafeKey(t *testing.T) {
	// a value stored under a same-spelled foreign key must not leak into
	// the typed lookup
	type foreignKey string
	ctx := context.WithValue(context.Background(), foreignKey("trace_id"), "spoofed")
	if got := TraceID(ctx); got != "" {
		t.Fatalf("TraceID picked up a foreign key: %q", got)
	}
}
