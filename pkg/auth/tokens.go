package auth

import (
	"context"

	"github.com/google/uuid"
)

// TokenGenerator abstracts token creation (e.g., JWT).
// It allows use cases to stay framework-agnostic.
type TokenGenerator interface {
	Generate(ctx context.Context, user User) (string, error)
}

// TokenVerifier resolves a raw token back to the subject user id.
// Failures are typed: ErrTokenExpired for a good signature past its
// expiry, ErrTokenInvalid for anything tampered or malformed.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (uuid.UUID, error)
}
