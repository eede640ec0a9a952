package cache

import (
	"context"
	"time"

	"surveypulse/internal/model"
)

// NewNopAnalyticsCache returns a cache that never hits, used when Redis is not
// configured
func NewNopAnalyticsCache() AnalyticsCache { return nopAnalyticsCache{} }

type nopAnalyticsCache struct{}

func (nopAnalyticsCache) Get(context.Context, string, int64) (*model.SurveyAnalytics, error) {
	return nil, nil
}

func (nopAnalyticsCache) Set(context.Context, string, int64, *model.SurveyAnalytics) error {
	return nil
}

func (nopAnalyticsCache) Invalidate(context.Context, string) error { return nil }

// NewNopQuotaCache returns a quota cache that allows everything
func NewNopQuotaCache() QuotaCache { return nopQuotaCache{} }

type nopQuotaCache struct{}

func (nopQuotaCache) Allow(context.Context, string, int, time.Duration) (bool, error) {
	return true, nil
}
