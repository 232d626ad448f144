// Package requestid carries a per-request correlation ID through contexts.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

const Header = "X-Request-ID"

type contextKey struct{}

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	return id, ok && id != ""
}

// Resolve keeps an inbound ID when it is a valid UUID and mints a new v4 otherwise.
func Resolve(inbound string) string {
	if id, err := uuid.Parse(inbound); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
