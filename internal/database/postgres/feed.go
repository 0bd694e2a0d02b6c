package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dotbio/dotbio-api/internal/domain"
)

// FeedRepository implements the live feed repository for PostgreSQL
type FeedRepository struct {
	db *pgxpool.Pool
}

// NewFeedRepository creates a new FeedRepository
func NewFeedRepository(db *pgxpool.Pool) *FeedRepository {
	return &FeedRepository{db: db}
}

// RecentEntries returns the newest feed entries up to limit
func (r *FeedRepository) RecentEntries(ctx context.Context, limit int) ([]domain.FeedEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT entry_id, display_name, case_name, item_name, rarity, item_value, created_at
		FROM live_feed
		ORDER BY created_at DESC, entry_id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query live feed: %w", err)
	}
	defer rows.Close()

	var entries []domain.FeedEntry
	for rows.Next() {
		var e domain.FeedEntry
		if err := rows.Scan(&e.ID, &e.DisplayName, &e.CaseName, &e.ItemName, &e.Rarity, &e.ItemValue, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feed entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
