package common

import "context"

type ContextKey string

const (
	ContextRequestIDKey     ContextKey = "request_id"
	ContextCorrelationIDKey ContextKey = "correlation_id"
)

// WithRequestID returns a copy of ctx carrying the request id used in datastore logs.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ContextRequestIDKey, id)
}

// GetContextRequestID returns the request id stored in ctx, or "-" when there is none.
func GetContextRequestID(ctx context.Context) string {
	if ctx == nil {
		return "-"
	}
	if rid, ok := ctx.Value(ContextRequestIDKey).(string); ok && rid != "" {
		return rid
	}
	return "-"
}

// WithCorrelationID returns a copy of ctx carrying an id shared by every
// request that belongs to one logical operation.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ContextCorrelationIDKey, id)
}

// GetContextCorrelationID returns the correlation id stored in ctx, or "" when
// there is none.
func GetContextCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	cid, _ := ctx.Value(ContextCorrelationIDKey).(string)
	return cid
}
