package repository

import (
	"context"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/dotbio/dotbio-api/internal/domain"
)

// Inventory defines the persistence interface for the liquidation flow
type Inventory interface {
	// ListItems returns the user's inventory, unsold items first, newest wins first
	ListItems(ctx context.Context, userID uuid.UUID) ([]domain.InventoryItem, error)
	BeginTx(ctx context.Context) (InventoryTx, error)
}

// InventoryTx defines the transactional writes of one liquidation
type InventoryTx interface {
	Tx
	// MarkItemsSold flips sold=true on the caller's unsold items and
	// returns the estimated values of the rows actually updated. Ids the
	// caller does not own, or that are already sold, match no row and are
	// skipped without error. When sellAll is true itemIDs is ignored and
	// every unsold item the caller owns is matched.
	MarkItemsSold(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID, sellAll bool, soldAt time.Time) ([]int64, error)
	// CreditBalance adds amount to the user's balance and returns the new balance
	CreditBalance(ctx context.Context, userID uuid.UUID, amount *big.Int) (string, error)
	// InsertCaseTransaction appends the liquidation to the audit ledger
	InsertCaseTransaction(ctx context.Context, txn domain.CaseTransaction) error
}
