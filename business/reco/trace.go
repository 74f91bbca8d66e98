package reco

import "context"

// traceKey is the context key under which the HTTP trace middleware stores
// the per-request trace id.
type traceKey struct{}

// WithTraceID tags ctx with the trace id that pipeline debug logs report.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceKey{}, traceID)
}

// TraceID returns the trace id carried by ctx, or "" for untagged requests.
func TraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(traceKey{}).(string)
	return traceID
}
