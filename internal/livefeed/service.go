package livefeed

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dotbio/dotbio-api/internal/domain"
	"github.com/dotbio/dotbio-api/internal/event"
	"github.com/dotbio/dotbio-api/internal/logger"
	"github.com/dotbio/dotbio-api/internal/metrics"
	"github.com/dotbio/dotbio-api/internal/repository"
)

// Service defines the interface for reading the live win feed
type Service interface {
	Recent(ctx context.Context, limit int) ([]domain.FeedEntry, error)
}

type service struct {
	repo  repository.Feed
	cache Cache
	size  int
}

// NewService creates a new live feed service. cache may be nil, reads
// then always come from the database.
func NewService(repo repository.Feed, cache Cache, size int) Service {
	return &service{repo: repo, cache: cache, size: size}
}

// Recent returns the newest wins, served from cache when it has them.
// Cache failures degrade to a database read rather than an error.
func (s *service) Recent(ctx context.Context, limit int) ([]domain.FeedEntry, error) {
	if limit <= 0 || limit > s.size {
		limit = s.size
	}

	if s.cache != nil {
		entries, err := s.cache.Recent(ctx, limit)
		if err != nil {
			logger.FromContext(ctx).Warn(LogMsgCacheReadFailed, "error", err)
		} else if len(entries) > 0 {
			metrics.FeedCacheHits.Inc()
			return entries, nil
		}
		metrics.FeedCacheMisses.Inc()
	}

	entries, err := s.repo.RecentEntries(ctx, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && len(entries) > 0 {
		if err := s.cache.Replace(ctx, entries); err != nil {
			logger.FromContext(ctx).Warn(LogMsgCacheWarmFailed, "error", err)
		}
	}
	return entries, nil
}

// Subscriber pushes freshly opened wins into the cache as they happen
type Subscriber struct {
	cache Cache
}

func NewSubscriber(cache Cache) *Subscriber {
	return &Subscriber{cache: cache}
}

// Register subscribes to case opened events
func (s *Subscriber) Register(bus event.Bus) error {
	bus.Subscribe(event.CaseOpened, s.HandleEvent)
	return nil
}

// HandleEvent appends the win to the cached feed. The database row was
// already written inside the opening transaction, so a cache failure
// here loses nothing durable.
func (s *Subscriber) HandleEvent(ctx context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(domain.CaseOpenedPayload)
	if !ok {
		return nil
	}

	// The opening transaction wrote the live_feed row with this id, keep
	// the cached copy identical
	entryID, err := uuid.Parse(payload.FeedEntryID)
	if err != nil {
		entryID = uuid.New()
	}

	entry := domain.FeedEntry{
		ID:          entryID,
		DisplayName: payload.DisplayName,
		CaseName:    payload.CaseName,
		ItemName:    payload.ItemName,
		Rarity:      payload.Rarity,
		ItemValue:   payload.ItemValue,
		CreatedAt:   time.Unix(payload.Timestamp, 0).UTC(),
	}
	if err := s.cache.Push(ctx, entry); err != nil {
		logger.FromContext(ctx).Warn(LogMsgCachePushFailed, "error", err)
	}
	return nil
}
