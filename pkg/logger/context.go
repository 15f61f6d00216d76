package logger

import (
	"context"

	"go.uber.org/zap"
)

// CorrelationHeader carries the correlation id between services
const CorrelationHeader = "x-correlation-id"

type contextKey int

const correlationIDKey contextKey = iota

// ContextWithCorrelationID stores a correlation id in ctx
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, correlationIDKey, id)
}

// CorrelationID returns the correlation id stored in ctx, if any
func CorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(correlationIDKey).(string); ok {
		return id
	}
	return ""
}

// CorrelationField returns a zap field for the correlation id in ctx
func CorrelationField(ctx context.Context) zap.Field {
	return zap.String("correlation_id", CorrelationID(ctx))
}
