package repository

import (
	"context"

	"github.com/dotbio/dotbio-api/internal/domain"
)

// Feed defines the read interface for the public live feed
type Feed interface {
	RecentEntries(ctx context.Context, limit int) ([]domain.FeedEntry, error)
}
