// Shared context keys for the API layer.
// Kept in a leaf package to avoid import cycles between api, api/middleware and api/handlers.
package ctxkeys

import "context"

// Key is the named type for all API context keys.
// context.Value compares both type and value, so string keys from other
// packages cannot collide with these.
type Key string

const (
	// Logger is the context key for the request-scoped *slog.Logger.
	// Injected by middleware.RequestLogger, read through logging.FromContext.
	Logger Key = "logger"
)

// WithValue adds a ctxkeys.Key value to the context.
func WithValue(ctx context.Context, key Key, value any) context.Context {
	return context.WithValue(ctx, key, value)
}
