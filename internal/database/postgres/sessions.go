package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dotbio/dotbio-api/internal/domain"
)

// SessionsRepository implements session lookup for PostgreSQL
type SessionsRepository struct {
	db *pgxpool.Pool
}

// NewSessionsRepository creates a new SessionsRepository
func NewSessionsRepository(db *pgxpool.Pool) *SessionsRepository {
	return &SessionsRepository{db: db}
}

// GetUserIDByTokenHash resolves a session token hash to its user.
// Expired sessions resolve the same as missing ones.
func (r *SessionsRepository) GetUserIDByTokenHash(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	var userID uuid.UUID
	err := r.db.QueryRow(ctx, `
		SELECT user_id
		FROM sessions
		WHERE token_hash = $1
		  AND expires_at > NOW()
	`, tokenHash).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, domain.ErrUnauthenticated
		}
		return uuid.Nil, fmt.Errorf("failed to look up session: %w", err)
	}
	return userID, nil
}
