package cache

import (
	"context"
	"fmt"
	"time"

	models "monetrix/database/models_pkg"
)

// latestTTL bounds staleness if an invalidation is ever missed.
const latestTTL = 10 * time.Minute

// AnalysisCache caches each user's latest analysis record so the dashboard
// reload path skips the database. Safe to use with a nil Redis client; every
// operation degrades to a miss.
type AnalysisCache struct {
	redis *RedisClient
}

// NewAnalysisCache creates a new analysis cache instance
func NewAnalysisCache(redis *RedisClient) *AnalysisCache {
	return &AnalysisCache{redis: redis}
}

func latestKey(userID string) string {
	return fmt.Sprintf("analysis:latest:%s", userID)
}

// GetLatest retrieves the cached latest record for a user.
// Returns the record and true if found, nil and false otherwise.
func (c *AnalysisCache) GetLatest(ctx context.Context, userID string) (*models.AnalysisRecord, bool) {
	if c == nil || c.redis == nil {
		return nil, false
	}

	var record models.AnalysisRecord
	if err := c.redis.Get(ctx, latestKey(userID), &record); err != nil {
		return nil, false
	}
	return &record, true
}

// SetLatest caches the latest record for a user
func (c *AnalysisCache) SetLatest(ctx context.Context, userID string, record *models.AnalysisRecord) error {
	if c == nil || c.redis == nil {
		return fmt.Errorf("redis client not available")
	}
	return c.redis.Set(ctx, latestKey(userID), record, latestTTL)
}

// Invalidate drops the cached latest record for a user
func (c *AnalysisCache) Invalidate(ctx context.Context, userID string) {
	if c == nil || c.redis == nil {
		return
	}
	_ = c.redis.Delete(ctx, latestKey(userID))
}
