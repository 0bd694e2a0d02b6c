package livefeed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/dotbio/dotbio-api/internal/domain"
)

const feedKey = "livefeed:recent"

// Cache holds the hot copy of the live feed
type Cache interface {
	Push(ctx context.Context, entry domain.FeedEntry) error
	Recent(ctx context.Context, limit int) ([]domain.FeedEntry, error)
	Replace(ctx context.Context, entries []domain.FeedEntry) error
}

// RedisCache keeps the feed as a capped Redis list, newest first
type RedisCache struct {
	client *redis.Client
	size   int
}

func NewRedisCache(client *redis.Client, size int) *RedisCache {
	return &RedisCache{client: client, size: size}
}

func (c *RedisCache) Push(ctx context.Context, entry domain.FeedEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal feed entry: %w", err)
	}

	pipe := c.client.TxPipeline()
	pipe.LPush(ctx, feedKey, data)
	pipe.LTrim(ctx, feedKey, 0, int64(c.size-1))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to push feed entry: %w", err)
	}
	return nil
}

func (c *RedisCache) Recent(ctx context.Context, limit int) ([]domain.FeedEntry, error) {
	if limit <= 0 || limit > c.size {
		limit = c.size
	}

	raw, err := c.client.LRange(ctx, feedKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read feed cache: %w", err)
	}

	entries := make([]domain.FeedEntry, 0, len(raw))
	for _, item := range raw {
		var entry domain.FeedEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			// A corrupt entry poisons only itself
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Replace rewrites the cached list, used to warm the cache from the database
func (c *RedisCache) Replace(ctx context.Context, entries []domain.FeedEntry) error {
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, feedKey)
	// Entries arrive newest first, RPush keeps that order
	for _, entry := range entries {
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal feed entry: %w", err)
		}
		pipe.RPush(ctx, feedKey, data)
	}
	pipe.LTrim(ctx, feedKey, 0, int64(c.size-1))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to replace feed cache: %w", err)
	}
	return nil
}
