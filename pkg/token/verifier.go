package token

import (
	"context"
)

// Identity is the subject resolved from a verified bearer credential.
type Identity struct {
	UserID string
	Email  string
}

// Verifier validates an opaque bearer token against the external identity
// provider. The service never issues or stores credentials itself.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}
