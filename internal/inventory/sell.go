package inventory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/google/uuid"

	"github.com/dotbio/dotbio-api/internal/domain"
	"github.com/dotbio/dotbio-api/internal/event"
	"github.com/dotbio/dotbio-api/internal/logger"
	"github.com/dotbio/dotbio-api/internal/metrics"
	"github.com/dotbio/dotbio-api/internal/repository"
)

// Sell marks the matched items sold and credits their summed estimated
// value in one database transaction, so a crash cannot create currency
// without consuming items or vice versa. Ids not owned by the caller or
// already sold simply match nothing; matching zero items overall is an
// error.
func (s *service) Sell(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID, sellAll bool) (*SellResult, error) {
	log := logger.FromContext(ctx)
	log.Info("SellItems called", "user_id", userID, "item_count", len(itemIDs), "sell_all", sellAll)

	if sellAll == (len(itemIDs) > 0) {
		return nil, domain.ErrInvalidSellRequest
	}

	var result *SellResult
	var err error
	for attempt := 1; ; attempt++ {
		result, err = s.sellTx(ctx, userID, itemIDs, sellAll)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrConflict) || attempt >= maxSellAttempts {
			return nil, err
		}
		log.Warn("Sell transaction conflicted, retrying", "user_id", userID, "attempt", attempt)
		s.sleep(retryBaseDelay << (attempt - 1))
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, event.NewItemsLiquidatedEvent(domain.ItemsLiquidatedPayload{
			UserID:      userID.String(),
			ItemsSold:   result.ItemsSold,
			CoinsEarned: result.CoinsEarned,
			Timestamp:   s.now().Unix(),
		})); err != nil {
			metrics.EventHandlerErrors.WithLabelValues(string(event.ItemsLiquidated)).Inc()
			log.Error("Failed to publish liquidation event", "error", err)
		}
	}

	log.Info("Items liquidated",
		"user_id", userID,
		"items_sold", result.ItemsSold,
		"coins_earned", result.CoinsEarned)
	return result, nil
}

func (s *service) sellTx(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID, sellAll bool) (*SellResult, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	values, err := tx.MarkItemsSold(ctx, userID, itemIDs, sellAll, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to mark items sold: %w", err)
	}
	if len(values) == 0 {
		return nil, domain.ErrNoItemsToSell
	}

	// Sum in big.Int: per-item values are int64, but nothing bounds how
	// many items a user liquidates at once.
	total := new(big.Int)
	for _, v := range values {
		total.Add(total, big.NewInt(v))
	}

	newBalance, err := tx.CreditBalance(ctx, userID, total)
	if err != nil {
		return nil, fmt.Errorf("failed to credit balance: %w", err)
	}

	// Audit column is BIGINT, clamp the pathological overflow case
	auditValue := total.Int64()
	if !total.IsInt64() {
		auditValue = math.MaxInt64
	}
	txn := domain.CaseTransaction{
		ID:              uuid.New(),
		UserID:          userID,
		TransactionType: domain.TransactionTypeLiquidation,
		TotalValue:      auditValue,
		CreatedAt:       s.now(),
	}
	if err := tx.InsertCaseTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to record liquidation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &SellResult{
		ItemsSold:   len(values),
		CoinsEarned: domain.FormatBalance(total),
		NewBalance:  newBalance,
	}, nil
}
