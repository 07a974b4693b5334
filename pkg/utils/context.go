package utils

import (
	"context"

	"movie-reviews/pkg/token"
)

type contextKey string

const IdentityKey contextKey = "identity"

// SetIdentityContext binds the verified caller identity to the request context.
func SetIdentityContext(ctx context.Context, ident *token.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, ident)
}

// GetIdentityFromContext returns the identity set by the auth middleware.
func GetIdentityFromContext(ctx context.Context) (*token.Identity, bool) {
	ident, ok := ctx.Value(IdentityKey).(*token.Identity)
	if !ok || ident == nil {
		return nil, false
	}
	return ident, true
}
