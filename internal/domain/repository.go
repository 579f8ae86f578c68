package domain

import (
	"context"
	"time"
)

// CacheRepository is the caching boundary used by the delivery layer for its
// last-recommendation cache. The engine itself never caches.
type CacheRepository interface {
	Get(ctx context.Context, key string) (*SizeRecommendation, error)
	Set(ctx context.Context, key string, rec *SizeRecommendation, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ChartRepository provides store-authored size charts for retailers whose
// product pages expose no measurement table of their own.
type ChartRepository interface {
	// GetChart returns the chart rows for a retailer/category pair, ordered
	// ascending by primary measurement, plus the size labels the retailer's
	// picker offers. ErrChartNotFound when no chart is known.
	GetChart(ctx context.Context, retailer string, category Category) ([]SizeTableRow, []string, error)
	SaveChart(ctx context.Context, retailer string, category Category, rows []SizeTableRow, offered []string) error
	Retailers(ctx context.Context) ([]string, error)
}
