package cases

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"github.com/dotbio/dotbio-api/internal/domain"
	"github.com/dotbio/dotbio-api/internal/droptable"
	"github.com/dotbio/dotbio-api/internal/event"
	"github.com/dotbio/dotbio-api/internal/logger"
	"github.com/dotbio/dotbio-api/internal/metrics"
	"github.com/dotbio/dotbio-api/internal/repository"
)

// Open performs one case open for the user: conditional debit of the
// case price, weighted draw, coin credit for currency rewards, and the
// audit rows (inventory, transaction log, opening history, live feed).
// All writes happen inside a single database transaction; the debit is
// the guarded statement, so a concurrent open can never take the balance
// negative. Conflicting commits are retried with backoff.
func (s *service) Open(ctx context.Context, userID, caseID uuid.UUID) (*OpenResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgOpenCalled, "user_id", userID, "case_id", caseID)

	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	def, err := s.definition(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if !def.c.Active {
		return nil, domain.ErrCaseNotFound
	}

	if err := droptable.Validate(def.pool); err != nil {
		return nil, fmt.Errorf("case %s: %w", def.c.ID, err)
	}

	won, err := droptable.Draw(def.pool, s.rnd)
	if err != nil {
		return nil, err
	}

	var result *OpenResult
	for attempt := 1; ; attempt++ {
		result, err = s.openTx(ctx, profile, def.c, won)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrConflict) || attempt >= MaxOpenAttempts {
			if errors.Is(err, domain.ErrConflict) {
				log.Warn(LogMsgOpenConflict, "user_id", userID, "attempts", attempt)
			}
			return nil, err
		}
		metrics.OpenRetries.Inc()
		log.Warn(LogMsgOpenRetry, "user_id", userID, "attempt", attempt)
		s.sleep(RetryBaseDelay << (attempt - 1))
	}

	if s.publisher != nil {
		payload := domain.CaseOpenedPayload{
			FeedEntryID: result.feedEntryID.String(),
			UserID:      userID.String(),
			DisplayName: profile.DisplayName,
			CaseID:      def.c.ID.String(),
			CaseName:    def.c.Name,
			ItemName:    result.Item.Name,
			Rarity:      result.Item.Rarity,
			ItemValue:   result.Item.EstimatedValue,
			PricePaid:   def.c.Price,
			Timestamp:   s.now().Unix(),
		}
		if won.Reward.IsCoins() {
			payload.CoinAmount = won.Reward.CoinAmount
		}
		if err := s.publisher.Publish(ctx, event.NewCaseOpenedEvent(payload)); err != nil {
			metrics.EventHandlerErrors.WithLabelValues(string(event.CaseOpened)).Inc()
			log.Error("Failed to publish case opened event", "error", err)
		}
	}

	log.Info(LogMsgCaseOpened,
		"user_id", userID,
		"case", def.c.Name,
		"item", result.Item.Name,
		"rarity", result.Item.Rarity,
		"new_balance", result.NewBalance)
	return result, nil
}

// openTx runs one attempt of the open transaction.
func (s *service) openTx(ctx context.Context, profile *domain.Profile, c domain.Case, won domain.CaseItem) (*OpenResult, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(LogMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	// Debit first: paying the price is a precondition of the reward, not
	// a side effect of it.
	newBalance, err := tx.DebitBalance(ctx, profile.UserID, big.NewInt(c.Price))
	if err != nil {
		return nil, err
	}

	if won.Reward.IsCoins() {
		newBalance, err = tx.CreditBalance(ctx, profile.UserID, big.NewInt(won.Reward.CoinAmount))
		if err != nil {
			return nil, fmt.Errorf("failed to credit coin reward: %w", err)
		}
	}

	now := s.now()
	item := domain.InventoryItem{
		ID:             uuid.New(),
		UserID:         profile.UserID,
		Name:           won.Name,
		Reward:         won.Reward,
		Rarity:         won.Rarity,
		EstimatedValue: won.DisplayValue,
		WonFromCaseID:  c.ID,
		WonAt:          now,
	}
	if err := tx.InsertInventoryItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to record inventory item: %w", err)
	}

	txn := domain.CaseTransaction{
		ID:              uuid.New(),
		UserID:          profile.UserID,
		CaseID:          c.ID,
		TransactionType: domain.TransactionTypeCaseOpening,
		ItemsWon:        []domain.WonItem{{Name: won.Name, Rarity: won.Rarity, Value: won.DisplayValue}},
		TotalValue:      won.DisplayValue,
		CreatedAt:       now,
	}
	if err := tx.InsertCaseTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to record case transaction: %w", err)
	}

	opening := domain.CaseOpening{
		ID:        uuid.New(),
		UserID:    profile.UserID,
		CaseID:    c.ID,
		PricePaid: c.Price,
		WonItemID: item.ID,
		CreatedAt: now,
	}
	if err := tx.InsertOpening(ctx, opening); err != nil {
		return nil, fmt.Errorf("failed to record opening: %w", err)
	}

	entry := domain.FeedEntry{
		ID:          uuid.New(),
		DisplayName: profile.DisplayName,
		CaseName:    c.Name,
		ItemName:    won.Name,
		Rarity:      won.Rarity,
		ItemValue:   won.DisplayValue,
		CreatedAt:   now,
	}
	if err := tx.InsertFeedEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record feed entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(LogMsgCommitTxFailed, err)
	}

	return &OpenResult{Item: item, NewBalance: newBalance, feedEntryID: entry.ID}, nil
}
