package postgres

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dotbio/dotbio-api/internal/domain"
	"github.com/dotbio/dotbio-api/internal/repository"
)

// InventoryRepository implements the inventory repository for PostgreSQL
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// InventoryTx implements repository.InventoryTx
type InventoryTx struct {
	tx pgx.Tx
}

// BeginTx starts a new transaction
func (r *InventoryRepository) BeginTx(ctx context.Context) (repository.InventoryTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &InventoryTx{tx: tx}, nil
}

// Commit commits the transaction
func (t *InventoryTx) Commit(ctx context.Context) error {
	return wrapRetryable(t.tx.Commit(ctx))
}

// Rollback rolls back the transaction
func (t *InventoryTx) Rollback(ctx context.Context) error {
	return rollback(ctx, t.tx)
}

// ListItems retrieves the user's inventory, unsold first, newest wins first
func (r *InventoryRepository) ListItems(ctx context.Context, userID uuid.UUID) ([]domain.InventoryItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT item_id, user_id, name, item_type, badge_id, coin_amount, rarity,
		       estimated_value, won_from_case_id, won_at, sold, sold_at
		FROM inventory_items
		WHERE user_id = $1
		ORDER BY sold ASC, won_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		var (
			item       domain.InventoryItem
			itemType   string
			badgeID    *string
			coinAmount *int64
		)
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &itemType, &badgeID, &coinAmount,
			&item.Rarity, &item.EstimatedValue, &item.WonFromCaseID, &item.WonAt, &item.Sold, &item.SoldAt); err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		item.Reward = rewardFromColumns(itemType, badgeID, coinAmount)
		items = append(items, item)
	}
	return items, rows.Err()
}

// MarkItemsSold flips sold on the caller's matching unsold items and
// returns the estimated values of the rows actually updated. Ids that
// are not the caller's, or already sold, match nothing - the ownership
// filter is the WHERE clause, not an error path.
func (t *InventoryTx) MarkItemsSold(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID, sellAll bool, soldAt time.Time) ([]int64, error) {
	if itemIDs == nil {
		itemIDs = []uuid.UUID{}
	}
	rows, err := t.tx.Query(ctx, `
		UPDATE inventory_items
		SET sold = TRUE, sold_at = $4
		WHERE user_id = $1
		  AND NOT sold
		  AND ($3 OR item_id = ANY($2))
		RETURNING estimated_value
	`, userID, itemIDs, sellAll, soldAt)
	if err != nil {
		return nil, wrapRetryable(fmt.Errorf("mark items sold: %w", err))
	}
	defer rows.Close()

	var values []int64
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan estimated value: %w", err)
		}
		values = append(values, v)
	}
	return values, wrapRetryable(rows.Err())
}

// CreditBalance for Tx
func (t *InventoryTx) CreditBalance(ctx context.Context, userID uuid.UUID, amount *big.Int) (string, error) {
	return creditBalance(ctx, t.tx, userID, amount)
}

// InsertCaseTransaction appends the liquidation audit record
func (t *InventoryTx) InsertCaseTransaction(ctx context.Context, txn domain.CaseTransaction) error {
	return insertCaseTransaction(ctx, t.tx, txn)
}
