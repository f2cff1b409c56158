package repository

import (
	"context"
	"sync"

	"github.com/nutriweek/backend/internal/models"
)

type memoryCacheStore struct {
	mu    sync.RWMutex
	weeks map[string]models.WeeklyInsightsCache
}

// NewMemoryCacheStore creates an in-memory insight cache store.
func NewMemoryCacheStore() InsightCacheStore {
	return &memoryCacheStore{weeks: make(map[string]models.WeeklyInsightsCache)}
}

func (s *memoryCacheStore) Get(ctx context.Context, weekStart string) (*models.WeeklyInsightsCache, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.weeks[weekStart]
	if !ok {
		return nil, ErrCacheMiss
	}
	c = cloneCacheRecord(c)
	return &c, nil
}

func (s *memoryCacheStore) Put(ctx context.Context, cache *models.WeeklyInsightsCache) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weeks[cache.WeekStartDate] = cloneCacheRecord(*cache)
	return nil
}

// cloneCacheRecord isolates the stored record from the caller's copy. The
// Responses map would otherwise be shared across every Get, and callers
// mutate it when adding or retrying narratives.
func cloneCacheRecord(c models.WeeklyInsightsCache) models.WeeklyInsightsCache {
	if c.Responses != nil {
		responses := make(map[models.QuestionID]models.InsightResponse, len(c.Responses))
		for id, resp := range c.Responses {
			responses[id] = resp
		}
		c.Responses = responses
	}
	return c
}

func (s *memoryCacheStore) Delete(ctx context.Context, weekStart string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.weeks, weekStart)
	return nil
}
