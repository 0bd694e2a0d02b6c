package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotbio/dotbio-api/internal/domain"
)

type stubSessions struct {
	byHash map[string]uuid.UUID
}

func (s *stubSessions) GetUserIDByTokenHash(_ context.Context, tokenHash string) (uuid.UUID, error) {
	id, ok := s.byHash[tokenHash]
	if !ok {
		return uuid.Nil, domain.ErrUnauthenticated
	}
	return id, nil
}

func TestVerifyHeader_ValidToken(t *testing.T) {
	userID := uuid.New()
	sessions := &stubSessions{byHash: map[string]uuid.UUID{
		HashToken("secret-token"): userID,
	}}
	v := NewVerifier(sessions)

	got, err := v.VerifyHeader(context.Background(), "Bearer secret-token")
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestVerifyHeader_Rejections(t *testing.T) {
	sessions := &stubSessions{byHash: map[string]uuid.UUID{}}
	v := NewVerifier(sessions)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"empty token", "Bearer "},
		{"unknown token", "Bearer nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.VerifyHeader(context.Background(), tt.header)
			assert.ErrorIs(t, err, domain.ErrUnauthenticated)
		})
	}
}

func TestHashToken_Deterministic(t *testing.T) {
	a := HashToken("token")
	b := HashToken("token")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, HashToken("other"))
}

func TestUserIDContext_RoundTrip(t *testing.T) {
	id := uuid.New()
	ctx := WithUserID(context.Background(), id)

	got, ok := UserIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = UserIDFromContext(context.Background())
	assert.False(t, ok)
}
