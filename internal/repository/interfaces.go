package repository

import (
	"context"
	"errors"
	"time"

	"github.com/nutriweek/backend/internal/models"
)

// ErrCacheMiss is returned by InsightCacheStore.Get when no record exists
// for the requested week.
var ErrCacheMiss = errors.New("insight cache miss")

// Targets carries the user's daily nutrition targets into collected weeks.
type Targets struct {
	Calories float64
	Protein  float64
	Water    float64
}

// WeeklyDataSource assembles Sunday-first weeks of logging data.
type WeeklyDataSource interface {
	// Collect builds the full week for weekStart, with prior and
	// two-weeks-ago context attached when those weeks have any logged days.
	// Returns (nil, nil) when the week itself has no logged days.
	Collect(ctx context.Context, weekStart time.Time) (*models.WeeklyCollectedData, error)
	// CollectBasic builds the week without prior-week context.
	CollectBasic(ctx context.Context, weekStart time.Time) (*models.WeeklyCollectedData, error)
}

// DayLogStore is the write side of the day log.
type DayLogStore interface {
	UpsertDay(ctx context.Context, day models.DayData) error
	GetDay(ctx context.Context, date time.Time) (*models.DayData, error)
}

// InsightCacheStore persists one WeeklyInsightsCache record per week,
// keyed by the week-start date string.
type InsightCacheStore interface {
	Get(ctx context.Context, weekStart string) (*models.WeeklyInsightsCache, error)
	Put(ctx context.Context, cache *models.WeeklyInsightsCache) error
	Delete(ctx context.Context, weekStart string) error
}
