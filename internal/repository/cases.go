package repository

import (
	"context"
	"math/big"

	"github.com/google/uuid"

	"github.com/dotbio/dotbio-api/internal/domain"
)

// Cases defines the persistence interface for the case-opening flow
type Cases interface {
	// GetCase returns a case by id, or domain.ErrCaseNotFound
	GetCase(ctx context.Context, caseID uuid.UUID) (*domain.Case, error)
	ListActiveCases(ctx context.Context) ([]domain.Case, error)
	// GetCaseItems returns the full pool in its stable contract order:
	// drop_rate descending, ties broken by item id ascending
	GetCaseItems(ctx context.Context, caseID uuid.UUID) ([]domain.CaseItem, error)
	// GetProfile returns the caller's profile, or domain.ErrProfileNotFound
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	ListOpenings(ctx context.Context, userID uuid.UUID, limit int) ([]domain.CaseOpening, error)
	BeginTx(ctx context.Context) (CasesTx, error)
}

// CasesTx defines the transactional writes of one case open
type CasesTx interface {
	Tx
	// DebitBalance subtracts amount from the user's balance in a single
	// conditional statement guarded by balance >= amount, and returns the
	// new balance. Returns domain.ErrInsufficientFunds when the guard
	// rejects the update and domain.ErrProfileNotFound when no row exists.
	DebitBalance(ctx context.Context, userID uuid.UUID, amount *big.Int) (string, error)
	// CreditBalance adds amount to the user's balance and returns the new balance
	CreditBalance(ctx context.Context, userID uuid.UUID, amount *big.Int) (string, error)
	InsertInventoryItem(ctx context.Context, item domain.InventoryItem) error
	InsertCaseTransaction(ctx context.Context, txn domain.CaseTransaction) error
	InsertOpening(ctx context.Context, opening domain.CaseOpening) error
	InsertFeedEntry(ctx context.Context, entry domain.FeedEntry) error
}
