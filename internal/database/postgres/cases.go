package postgres

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dotbio/dotbio-api/internal/domain"
	"github.com/dotbio/dotbio-api/internal/repository"
)

// CasesRepository implements the cases repository for PostgreSQL
type CasesRepository struct {
	db *pgxpool.Pool
}

// NewCasesRepository creates a new CasesRepository
func NewCasesRepository(db *pgxpool.Pool) *CasesRepository {
	return &CasesRepository{db: db}
}

// CasesTx implements repository.CasesTx
type CasesTx struct {
	tx pgx.Tx
}

// BeginTx starts a new transaction
func (r *CasesRepository) BeginTx(ctx context.Context) (repository.CasesTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &CasesTx{tx: tx}, nil
}

// Commit commits the transaction
func (t *CasesTx) Commit(ctx context.Context) error {
	return wrapRetryable(t.tx.Commit(ctx))
}

// Rollback rolls back the transaction
func (t *CasesTx) Rollback(ctx context.Context) error {
	return rollback(ctx, t.tx)
}

// GetCase retrieves a case by id
func (r *CasesRepository) GetCase(ctx context.Context, caseID uuid.UUID) (*domain.Case, error) {
	var c domain.Case
	err := r.db.QueryRow(ctx, `
		SELECT case_id, name, price, active, created_at
		FROM cases
		WHERE case_id = $1
	`, caseID).Scan(&c.ID, &c.Name, &c.Price, &c.Active, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCaseNotFound
		}
		return nil, fmt.Errorf("failed to get case: %w", err)
	}
	return &c, nil
}

// ListActiveCases retrieves all cases currently open for purchase
func (r *CasesRepository) ListActiveCases(ctx context.Context) ([]domain.Case, error) {
	rows, err := r.db.Query(ctx, `
		SELECT case_id, name, price, active, created_at
		FROM cases
		WHERE active
		ORDER BY price ASC, name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	defer rows.Close()

	var cases []domain.Case
	for rows.Next() {
		var c domain.Case
		if err := rows.Scan(&c.ID, &c.Name, &c.Price, &c.Active, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan case: %w", err)
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

// GetCaseItems retrieves the full pool for a case in its stable contract
// order: drop_rate descending, ties broken by item id. The draw engine
// depends on this order.
func (r *CasesRepository) GetCaseItems(ctx context.Context, caseID uuid.UUID) ([]domain.CaseItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT case_item_id, case_id, name, item_type, badge_id, coin_amount, rarity, drop_rate, display_value
		FROM case_items
		WHERE case_id = $1
		ORDER BY drop_rate DESC, case_item_id ASC
	`, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get case items: %w", err)
	}
	defer rows.Close()

	var items []domain.CaseItem
	for rows.Next() {
		var (
			item       domain.CaseItem
			itemType   string
			badgeID    *string
			coinAmount *int64
		)
		if err := rows.Scan(&item.ID, &item.CaseID, &item.Name, &itemType, &badgeID, &coinAmount,
			&item.Rarity, &item.DropRate, &item.DisplayValue); err != nil {
			return nil, fmt.Errorf("failed to scan case item: %w", err)
		}
		item.Reward = rewardFromColumns(itemType, badgeID, coinAmount)
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetProfile retrieves the minigame view of a profile
func (r *CasesRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	var p domain.Profile
	err := r.db.QueryRow(ctx, `
		SELECT user_id, username, display_name, uc_balance::text
		FROM profiles
		WHERE user_id = $1
	`, userID).Scan(&p.UserID, &p.Username, &p.DisplayName, &p.Balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// ListOpenings retrieves a user's most recent case openings
func (r *CasesRepository) ListOpenings(ctx context.Context, userID uuid.UUID, limit int) ([]domain.CaseOpening, error) {
	rows, err := r.db.Query(ctx, `
		SELECT opening_id, user_id, case_id, price_paid, won_item_id, created_at
		FROM case_openings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list openings: %w", err)
	}
	defer rows.Close()

	var openings []domain.CaseOpening
	for rows.Next() {
		var o domain.CaseOpening
		if err := rows.Scan(&o.ID, &o.UserID, &o.CaseID, &o.PricePaid, &o.WonItemID, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan opening: %w", err)
		}
		openings = append(openings, o)
	}
	return openings, rows.Err()
}

// DebitBalance for Tx
func (t *CasesTx) DebitBalance(ctx context.Context, userID uuid.UUID, amount *big.Int) (string, error) {
	return debitBalance(ctx, t.tx, userID, amount)
}

// CreditBalance for Tx
func (t *CasesTx) CreditBalance(ctx context.Context, userID uuid.UUID, amount *big.Int) (string, error) {
	return creditBalance(ctx, t.tx, userID, amount)
}

// InsertInventoryItem appends a won item to the user's inventory
func (t *CasesTx) InsertInventoryItem(ctx context.Context, item domain.InventoryItem) error {
	badgeID, coinAmount := rewardColumns(item.Reward)
	_, err := t.tx.Exec(ctx, `
		INSERT INTO inventory_items
			(item_id, user_id, name, item_type, badge_id, coin_amount, rarity, estimated_value, won_from_case_id, won_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, item.ID, item.UserID, item.Name, string(item.Reward.Kind), badgeID, coinAmount,
		item.Rarity, item.EstimatedValue, item.WonFromCaseID, item.WonAt)
	if err != nil {
		return wrapRetryable(fmt.Errorf("insert inventory item: %w", err))
	}
	return nil
}

// InsertCaseTransaction appends an audit record
func (t *CasesTx) InsertCaseTransaction(ctx context.Context, txn domain.CaseTransaction) error {
	return insertCaseTransaction(ctx, t.tx, txn)
}

// InsertOpening appends an opening-history record
func (t *CasesTx) InsertOpening(ctx context.Context, opening domain.CaseOpening) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO case_openings
			(opening_id, user_id, case_id, price_paid, won_item_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, opening.ID, opening.UserID, opening.CaseID, opening.PricePaid, opening.WonItemID, opening.CreatedAt)
	if err != nil {
		return wrapRetryable(fmt.Errorf("insert opening: %w", err))
	}
	return nil
}

// InsertFeedEntry appends a public live-feed record
func (t *CasesTx) InsertFeedEntry(ctx context.Context, entry domain.FeedEntry) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO live_feed
			(entry_id, display_name, case_name, item_name, rarity, item_value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, entry.ID, entry.DisplayName, entry.CaseName, entry.ItemName, entry.Rarity, entry.ItemValue, entry.CreatedAt)
	if err != nil {
		return wrapRetryable(fmt.Errorf("insert feed entry: %w", err))
	}
	return nil
}
