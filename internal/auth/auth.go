package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"

	"github.com/dotbio/dotbio-api/internal/domain"
	"github.com/dotbio/dotbio-api/internal/repository"
)

type contextKey string

const userIDKey contextKey = "user_id"

const bearerPrefix = "Bearer "

// WithUserID returns a context carrying the authenticated user's id
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext extracts the authenticated user's id from context
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// HashToken returns the hex-encoded SHA-256 digest of a session token.
// Sessions store the digest so a database leak does not leak tokens.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Verifier resolves bearer tokens to user ids
type Verifier struct {
	sessions repository.Sessions
}

func NewVerifier(sessions repository.Sessions) *Verifier {
	return &Verifier{sessions: sessions}
}

// VerifyHeader validates an Authorization header value and returns the
// session's user id. Missing or malformed headers fail the same way as
// unknown tokens.
func (v *Verifier) VerifyHeader(ctx context.Context, header string) (uuid.UUID, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return uuid.Nil, domain.ErrUnauthenticated
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return uuid.Nil, domain.ErrUnauthenticated
	}
	return v.sessions.GetUserIDByTokenHash(ctx, HashToken(token))
}
