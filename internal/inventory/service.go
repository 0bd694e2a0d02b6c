package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dotbio/dotbio-api/internal/domain"
	"github.com/dotbio/dotbio-api/internal/event"
	"github.com/dotbio/dotbio-api/internal/repository"
)

// SellResult contains the result of a liquidation
type SellResult struct {
	ItemsSold   int    `json:"items_sold"`
	CoinsEarned string `json:"coins_earned"`
	NewBalance  string `json:"new_balance"`
}

// Service defines the interface for inventory operations
type Service interface {
	ListItems(ctx context.Context, userID uuid.UUID) ([]domain.InventoryItem, error)
	// Sell converts owned unsold items back into currency at their stored
	// estimated value. Exactly one of itemIDs / sellAll must be given.
	Sell(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID, sellAll bool) (*SellResult, error)
}

// Retry configuration mirrors the open flow
const (
	maxSellAttempts = 3
	retryBaseDelay  = 50 * time.Millisecond
)

type service struct {
	repo      repository.Inventory
	publisher event.Bus
	now       func() time.Time
	sleep     func(time.Duration)
}

// NewService creates a new inventory service
func NewService(repo repository.Inventory, publisher event.Bus) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
		sleep:     time.Sleep,
	}
}

func (s *service) ListItems(ctx context.Context, userID uuid.UUID) ([]domain.InventoryItem, error) {
	return s.repo.ListItems(ctx, userID)
}
