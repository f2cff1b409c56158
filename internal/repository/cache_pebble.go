package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"

	"github.com/nutriweek/backend/internal/models"
)

const cacheKeyPrefix = "insights/week/"

// NewPebbleCacheStore opens (or creates) a pebble database at path and
// returns an insight cache store backed by it. Callers own Close.
func NewPebbleCacheStore(path string) (*PebbleCacheStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache store: %w", err)
	}
	return &PebbleCacheStore{db: db}, nil
}

// PebbleCacheStore persists weekly insight records as JSON values in a
// pebble key-value store.
type PebbleCacheStore struct {
	db *pebble.DB
}

func cacheKey(weekStart string) []byte {
	return []byte(cacheKeyPrefix + weekStart)
}

func (s *PebbleCacheStore) Get(ctx context.Context, weekStart string) (*models.WeeklyInsightsCache, error) {
	value, closer, err := s.db.Get(cacheKey(weekStart))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read cache record: %w", err)
	}
	defer closer.Close()

	var record models.WeeklyInsightsCache
	if err := json.Unmarshal(value, &record); err != nil {
		return nil, fmt.Errorf("failed to decode cache record: %w", err)
	}
	return &record, nil
}

func (s *PebbleCacheStore) Put(ctx context.Context, cache *models.WeeklyInsightsCache) error {
	value, err := json.Marshal(cache)
	if err != nil {
		return fmt.Errorf("failed to encode cache record: %w", err)
	}
	if err := s.db.Set(cacheKey(cache.WeekStartDate), value, pebble.Sync); err != nil {
		return fmt.Errorf("failed to write cache record: %w", err)
	}
	return nil
}

func (s *PebbleCacheStore) Delete(ctx context.Context, weekStart string) error {
	if err := s.db.Delete(cacheKey(weekStart), pebble.Sync); err != nil {
		return fmt.Errorf("failed to delete cache record: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying database.
func (s *PebbleCacheStore) Close() error {
	return s.db.Close()
}
