package cases

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/dotbio/dotbio-api/internal/domain"
	"github.com/dotbio/dotbio-api/internal/droptable"
	"github.com/dotbio/dotbio-api/internal/event"
	"github.com/dotbio/dotbio-api/internal/logger"
	"github.com/dotbio/dotbio-api/internal/repository"
)

// OpenResult is the outcome of a successful case open
type OpenResult struct {
	Item       domain.InventoryItem `json:"item"`
	NewBalance string               `json:"new_balance"`

	// id of the live_feed row, carried to the event payload so the cache
	// entry matches the database row
	feedEntryID uuid.UUID
}

// CaseItemView is a pool entry with its resolved odds
type CaseItemView struct {
	domain.CaseItem
	Odds float64 `json:"odds"` // percentage of total weight
}

// CaseDetail is a case together with its full pool
type CaseDetail struct {
	Case  domain.Case    `json:"case"`
	Items []CaseItemView `json:"items"`
}

// Service defines the interface for case operations
type Service interface {
	Open(ctx context.Context, userID, caseID uuid.UUID) (*OpenResult, error)
	ListCases(ctx context.Context) ([]domain.Case, error)
	GetCase(ctx context.Context, caseID uuid.UUID) (*CaseDetail, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]domain.CaseOpening, error)
}

type definition struct {
	c    domain.Case
	pool []domain.CaseItem
}

type service struct {
	repo      repository.Cases
	publisher event.Bus
	defs      *expirable.LRU[uuid.UUID, definition]
	rnd       droptable.RandFunc
	now       func() time.Time
	sleep     func(time.Duration)
}

// NewService creates a new cases service
func NewService(repo repository.Cases, publisher event.Bus) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
		defs:      expirable.NewLRU[uuid.UUID, definition](DefinitionCacheSize, nil, DefinitionCacheTTL),
		rnd:       rand.Float64,
		now:       time.Now,
		sleep:     time.Sleep,
	}
}

func (s *service) ListCases(ctx context.Context) ([]domain.Case, error) {
	return s.repo.ListActiveCases(ctx)
}

func (s *service) GetCase(ctx context.Context, caseID uuid.UUID) (*CaseDetail, error) {
	def, err := s.definition(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if !def.c.Active {
		return nil, domain.ErrCaseNotFound
	}

	total := droptable.TotalWeight(def.pool)
	items := make([]CaseItemView, len(def.pool))
	for i, item := range def.pool {
		view := CaseItemView{CaseItem: item}
		if total > 0 {
			view.Odds = item.DropRate / total * 100
		}
		items[i] = view
	}
	return &CaseDetail{Case: def.c, Items: items}, nil
}

func (s *service) History(ctx context.Context, userID uuid.UUID, limit int) ([]domain.CaseOpening, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.repo.ListOpenings(ctx, userID, limit)
}

// definition returns the case and its pool, served from the TTL cache
// when possible. Inactive cases are cached too so repeated opens of a
// disabled case do not hammer the store.
func (s *service) definition(ctx context.Context, caseID uuid.UUID) (definition, error) {
	if def, ok := s.defs.Get(caseID); ok {
		return def, nil
	}

	c, err := s.repo.GetCase(ctx, caseID)
	if err != nil {
		return definition{}, err
	}

	pool, err := s.repo.GetCaseItems(ctx, caseID)
	if err != nil {
		return definition{}, fmt.Errorf("failed to get case items: %w", err)
	}

	def := definition{c: *c, pool: pool}
	s.defs.Add(caseID, def)
	logger.FromContext(ctx).Debug(LogMsgDefinitionCached, "case_id", caseID)
	return def, nil
}
