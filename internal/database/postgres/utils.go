package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dotbio/dotbio-api/internal/domain"
)

// SQLSTATEs that indicate a transient write conflict worth retrying
const (
	sqlstateSerializationFailure = "40001"
	sqlstateDeadlockDetected     = "40P01"
)

// wrapRetryable maps transient Postgres write conflicts onto
// domain.ErrConflict so services can retry without knowing SQLSTATEs.
func wrapRetryable(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == sqlstateSerializationFailure || pgErr.Code == sqlstateDeadlockDetected {
			return fmt.Errorf("%w: %v", domain.ErrConflict, err)
		}
	}
	return err
}

// queryRower is the subset of pgx.Tx the balance helpers need
type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// debitBalance subtracts amount in a single statement guarded by
// balance >= amount. The guard is what makes concurrent opens safe: two
// racing debits serialize on the row lock and the loser re-evaluates the
// predicate against the committed balance.
func debitBalance(ctx context.Context, q queryRower, userID uuid.UUID, amount *big.Int) (string, error) {
	var newBalance string
	err := q.QueryRow(ctx, `
		UPDATE profiles
		SET uc_balance = uc_balance - $2::numeric, updated_at = NOW()
		WHERE user_id = $1
		  AND uc_balance >= $2::numeric
		RETURNING uc_balance::text
	`, userID, amount.String()).Scan(&newBalance)
	if err == nil {
		return newBalance, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", wrapRetryable(fmt.Errorf("debit balance: %w", err))
	}

	// Zero rows: either the guard rejected the debit or there is no
	// profile at all. Tell them apart for the error taxonomy.
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM profiles WHERE user_id = $1)`, userID).Scan(&exists); err != nil {
		return "", fmt.Errorf("check profile exists: %w", err)
	}
	if !exists {
		return "", domain.ErrProfileNotFound
	}
	return "", domain.ErrInsufficientFunds
}

// creditBalance adds amount to the user's balance.
func creditBalance(ctx context.Context, q queryRower, userID uuid.UUID, amount *big.Int) (string, error) {
	var newBalance string
	err := q.QueryRow(ctx, `
		UPDATE profiles
		SET uc_balance = uc_balance + $2::numeric, updated_at = NOW()
		WHERE user_id = $1
		RETURNING uc_balance::text
	`, userID, amount.String()).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrProfileNotFound
		}
		return "", wrapRetryable(fmt.Errorf("credit balance: %w", err))
	}
	return newBalance, nil
}

// insertCaseTransaction appends an audit ledger record. case_id is NULL
// for liquidations, which are not tied to a case.
func insertCaseTransaction(ctx context.Context, tx pgx.Tx, txn domain.CaseTransaction) error {
	itemsWon, err := json.Marshal(txn.ItemsWon)
	if err != nil {
		return fmt.Errorf("marshal items won: %w", err)
	}
	var caseID *uuid.UUID
	if txn.CaseID != uuid.Nil {
		caseID = &txn.CaseID
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO case_transactions
			(transaction_id, user_id, case_id, transaction_type, items_won, total_value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, txn.ID, txn.UserID, caseID, txn.TransactionType, itemsWon, txn.TotalValue, txn.CreatedAt)
	if err != nil {
		return wrapRetryable(fmt.Errorf("insert case transaction: %w", err))
	}
	return nil
}

// rollback swallows rollback-after-commit so transaction handles can be
// rolled back unconditionally in a defer.
func rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

// rewardColumns splits a domain.Reward into its nullable column values
func rewardColumns(r domain.Reward) (badgeID *string, coinAmount *int64) {
	switch r.Kind {
	case domain.RewardBadge:
		badgeID = &r.BadgeID
	case domain.RewardCoins:
		coinAmount = &r.CoinAmount
	}
	return badgeID, coinAmount
}

// rewardFromColumns rebuilds the tagged variant from its column values
func rewardFromColumns(itemType string, badgeID *string, coinAmount *int64) domain.Reward {
	switch domain.RewardKind(itemType) {
	case domain.RewardCoins:
		var amount int64
		if coinAmount != nil {
			amount = *coinAmount
		}
		return domain.CoinsReward(amount)
	default:
		var badge string
		if badgeID != nil {
			badge = *badgeID
		}
		return domain.BadgeReward(badge)
	}
}
