// Package cache holds the Redis-backed analytics cache and rate-limit counters.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"surveypulse/internal/model"
)

// AnalyticsCache stores computed survey analytics. Entries are versioned by
// the survey's response count, so a stale entry is treated as a miss even
// if an invalidation was lost.
type AnalyticsCache interface {
	Get(ctx context.Context, surveyID string, version int64) (*model.SurveyAnalytics, error)
	Set(ctx context.Context, surveyID string, version int64, analytics *model.SurveyAnalytics) error
	Invalidate(ctx context.Context, surveyID string) error
}

type analyticsEntry struct {
	Version   int64                  `json:"version"`
	Analytics *model.SurveyAnalytics `json:"analytics"`
	CachedAt  time.Time              `json:"cached_at"`
}

type analyticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAnalyticsCache creates a new analytics cache
func NewAnalyticsCache(client *redis.Client) AnalyticsCache {
	return &analyticsCache{
		client: client,
		ttl:    1 * time.Hour,
	}
}

func (c *analyticsCache) key(surveyID string) string {
	return fmt.Sprintf("survey:%s:analytics", surveyID)
}

func (c *analyticsCache) Get(ctx context.Context, surveyID string, version int64) (*model.SurveyAnalytics, error) {
	data, err := c.client.Get(ctx, c.key(surveyID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entry analyticsEntry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		return nil, err
	}
	if entry.Version != version || entry.Analytics == nil {
		return nil, nil
	}
	return entry.Analytics, nil
}

func (c *analyticsCache) Set(ctx context.Context, surveyID string, version int64, analytics *model.SurveyAnalytics) error {
	data, err := json.Marshal(analyticsEntry{
		Version:   version,
		Analytics: analytics,
		CachedAt:  time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(surveyID), data, c.ttl).Err()
}

func (c *analyticsCache) Invalidate(ctx context.Context, surveyID string) error {
	return c.client.Del(ctx, c.key(surveyID)).Err()
}
