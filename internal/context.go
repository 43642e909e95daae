package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextAdminKey ctxKey = "adminUser"

// AdminFromContext returns the verified admin subject stored by the auth
// middleware, or "" when the request is unauthenticated.
func AdminFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if admin, ok := ctx.Value(ContextAdminKey).(string); ok {
		return admin
	}
	return ""
}

func ContextWithAdmin(ctx context.Context, admin string) context.Context {
	return context.WithValue(ctx, ContextAdminKey, admin)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
