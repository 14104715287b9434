package middleware

import (
	"context"

	"github.com/avelara/dispatchly-backend/pkg/enums"
)

type contextKey string

const (
	ctxUserID    contextKey = "user_id"
	ctxRole      contextKey = "actor_role"
	ctxSessionID contextKey = "session_id"
)

// UserIDFromContext returns the authenticated user id; 0 when absent.
func UserIDFromContext(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if v, ok := ctx.Value(ctxUserID).(int64); ok {
		return v
	}
	return 0
}

// RoleFromContext returns the authenticated actor role; empty when absent.
func RoleFromContext(ctx context.Context) enums.Role {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(enums.Role); ok {
		return v
	}
	return ""
}

// SessionIDFromContext returns the jti of the presented access token.
func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionID).(string); ok {
		return v
	}
	return ""
}

// WithActor injects the authenticated identity; exported for handler tests.
func WithActor(ctx context.Context, userID int64, role enums.Role, sessionID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxUserID, userID)
	ctx = context.WithValue(ctx, ctxRole, role)
	if sessionID != "" {
		ctx = context.WithValue(ctx, ctxSessionID, sessionID)
	}
	return ctx
}
