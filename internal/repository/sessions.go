package repository

import (
	"context"

	"github.com/google/uuid"
)

// Sessions resolves bearer credentials to a stable user identity.
// Token issuance belongs to the external auth service; this side only
// verifies.
type Sessions interface {
	// GetUserIDByTokenHash returns the user id for an unexpired session
	// token hash, or domain.ErrUnauthenticated
	GetUserIDByTokenHash(ctx context.Context, tokenHash string) (uuid.UUID, error)
}
