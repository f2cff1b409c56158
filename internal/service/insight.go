package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nutriweek/backend/internal/catalog"
	"github.com/nutriweek/backend/internal/logger"
	"github.com/nutriweek/backend/internal/models"
	"github.com/nutriweek/backend/internal/repository"
)

// ErrUnknownQuestion is returned for ids outside the active catalog.
var ErrUnknownQuestion = errors.New("unknown question")

// InsightConfig tunes the insight engine.
type InsightConfig struct {
	Selector          SelectorConfig
	CacheTTL          time.Duration
	ModelMaxTokens    int
	MinNarrativeChars int
}

// DefaultInsightConfig returns the standard engine tuning.
func DefaultInsightConfig() InsightConfig {
	return InsightConfig{
		Selector:          DefaultSelectorConfig(),
		CacheTTL:          7 * 24 * time.Hour,
		ModelMaxTokens:    256,
		MinNarrativeChars: 15,
	}
}

type insightService struct {
	source repository.WeeklyDataSource
	cache  repository.InsightCacheStore
	model  ModelClient
	cfg    InsightConfig
	clock  Clock
	slot   *generationSlot

	mu     sync.Mutex
	errors map[string]string // weekKey + "/" + question id
}

// NewInsightService creates a new insight service. A nil clock defaults to
// time.Now.
func NewInsightService(
	source repository.WeeklyDataSource,
	cache repository.InsightCacheStore,
	model ModelClient,
	cfg InsightConfig,
	clock Clock,
) InsightService {
	if clock == nil {
		clock = time.Now
	}
	if cfg.CacheTTL <= 0 {
		cfg = DefaultInsightConfig()
	}
	return &insightService{
		source: source,
		cache:  cache,
		model:  model,
		cfg:    cfg,
		clock:  clock,
		slot:   newGenerationSlot(),
		errors: make(map[string]string),
	}
}

func weekKeyOf(weekStart time.Time) string {
	return models.WeekStartOf(weekStart).Format(models.WeekDateLayout)
}

func (s *insightService) GetWeeklyInsights(ctx context.Context, weekStart time.Time, force bool) (*models.WeeklyInsights, error) {
	key := weekKeyOf(weekStart)

	if !force {
		if cached, err := s.cache.Get(ctx, key); err == nil && !s.shouldRecompute(cached, key) {
			return s.buildResponse(cached, true), nil
		}
	}

	record, err := s.compute(ctx, weekStart)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(record, false), nil
}

// shouldRecompute is true when no cache exists, the cached week differs from
// the requested one, or now is past validUntil. Exactly at validUntil the
// record still counts as valid.
func (s *insightService) shouldRecompute(cached *models.WeeklyInsightsCache, weekKey string) bool {
	if cached == nil {
		return true
	}
	if cached.WeekStartDate != weekKey {
		return true
	}
	return s.clock().After(cached.ValidUntil)
}

func (s *insightService) compute(ctx context.Context, weekStart time.Time) (*models.WeeklyInsightsCache, error) {
	ws := models.WeekStartOf(weekStart)
	key := ws.Format(models.WeekDateLayout)

	week, err := s.source.Collect(ctx, ws)
	if err != nil {
		return nil, fmt.Errorf("failed to collect week data: %w", err)
	}
	if week == nil {
		week = &models.WeeklyCollectedData{
			WeekStartDate: ws,
			Days:          make([]models.DayData, 7),
		}
		for i := range week.Days {
			week.Days[i] = models.DayData{Date: ws.AddDate(0, 0, i), Weekday: i}
		}
	}

	scored := ScoreWeek(week)
	now := s.clock()
	record := &models.WeeklyInsightsCache{
		WeekStartDate:   key,
		LoggedDayCount:  week.LoggedDayCount,
		ScoredQuestions: scored,
		Headline:        headlineFrom(scored),
		Responses:       make(map[models.QuestionID]models.InsightResponse),
		GeneratedAt:     now,
		ValidUntil:      now.Add(s.cfg.CacheTTL),
	}

	if err := s.cache.Put(ctx, record); err != nil {
		logger.Ctx(ctx).Warn("failed to persist insight cache",
			logger.String("week", key), logger.Err(err))
	}
	logger.Ctx(ctx).Info("computed weekly insights",
		logger.String("week", key),
		logger.Int("logged_days", week.LoggedDayCount),
		logger.Int("scored", len(scored)))
	return record, nil
}

// headlineFrom lifts the first highlight string into the week headline.
func headlineFrom(scored []models.ScoredQuestion) string {
	for _, q := range scored {
		if q.QuestionID != models.QuestionHighlights {
			continue
		}
		if h := q.AnalysisResult.Highlights; h != nil && len(h.Highlights) > 0 {
			return h.Highlights[0]
		}
	}
	return ""
}

func (s *insightService) buildResponse(record *models.WeeklyInsightsCache, fromCache bool) *models.WeeklyInsights {
	return &models.WeeklyInsights{
		WeekStartDate: record.WeekStartDate,
		Headline:      record.Headline,
		Selected:      SelectQuestions(record.ScoredQuestions, s.cfg.Selector),
		NeedsMoreData: NeedsMoreData(record.ScoredQuestions, record.LoggedDayCount),
		GeneratedAt:   record.GeneratedAt,
		FromCache:     fromCache,
	}
}

func (s *insightService) GetNarrative(ctx context.Context, weekStart time.Time, id models.QuestionID) (*models.InsightResponse, error) {
	def, ok := catalog.ByID(id)
	if !ok || def.PermanentlyGated() {
		return nil, ErrUnknownQuestion
	}
	key := weekKeyOf(weekStart)

	record, err := s.cache.Get(ctx, key)
	if err != nil || s.shouldRecompute(record, key) {
		if _, err := s.GetWeeklyInsights(ctx, weekStart, false); err != nil {
			return nil, err
		}
		record, err = s.cache.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to load insight cache: %w", err)
		}
	}

	var scored *models.ScoredQuestion
	for i := range record.ScoredQuestions {
		if record.ScoredQuestions[i].QuestionID == id {
			scored = &record.ScoredQuestions[i]
			break
		}
	}
	if scored == nil {
		return nil, ErrUnknownQuestion
	}

	if resp, ok := record.Responses[id]; ok {
		return &resp, nil
	}

	resp := s.generateResponse(ctx, *scored, key)
	s.storeResponse(ctx, record, resp)
	return resp, nil
}

// generateResponse runs one pass of the narrative state machine: a single
// model attempt guarded by the capacity-1 slot, then the template fallback.
// A caller that finds the slot occupied goes straight to the template.
func (s *insightService) generateResponse(ctx context.Context, sq models.ScoredQuestion, weekKey string) *models.InsightResponse {
	def := sq.Definition
	text := ""
	source := models.SourceTemplate

	if s.slot.tryAcquire() {
		func() {
			defer s.slot.release()
			status := s.model.Status(ctx)
			if status != ModelReady {
				s.setError(weekKey, def.ID, fmt.Sprintf("model not ready: %s", status))
				return
			}
			out, err := s.model.Generate(ctx, buildPrompt(def, sq.AnalysisResult), s.cfg.ModelMaxTokens)
			if err != nil {
				s.setError(weekKey, def.ID, err.Error())
				logger.Ctx(ctx).Warn("narrative generation failed",
					logger.String("question", string(def.ID)), logger.Err(err))
				return
			}
			out = strings.TrimSpace(out)
			if len(out) <= s.cfg.MinNarrativeChars {
				s.setError(weekKey, def.ID, "model output too short")
				return
			}
			text = out
			source = models.SourceLLM
			s.clearError(weekKey, def.ID)
		}()
	} else {
		// Another narrative holds the generation slot; note it so the
		// caller can surface a transient busy notice alongside the
		// template response.
		s.setError(weekKey, def.ID, "another narrative is being generated")
	}

	if source == models.SourceTemplate {
		text = templateNarrative(def, sq.AnalysisResult)
	}

	return &models.InsightResponse{
		ID:            uuid.New().String(),
		QuestionID:    def.ID,
		Text:          text,
		Icon:          def.Icon,
		GeneratedAt:   s.clock(),
		Source:        source,
		WeekStartDate: weekKey,
		Sentiment:     deriveSentiment(sq.AnalysisResult),
		KeyMetrics:    extractKeyMetrics(sq.AnalysisResult),
		FollowUpIDs:   followUps(def.ID),
	}
}

// storeResponse adds one response to the cache record. Responses are
// additive; a nil record is a silent no-op.
func (s *insightService) storeResponse(ctx context.Context, record *models.WeeklyInsightsCache, resp *models.InsightResponse) {
	if record == nil || resp == nil {
		return
	}
	if record.Responses == nil {
		record.Responses = make(map[models.QuestionID]models.InsightResponse)
	}
	record.Responses[resp.QuestionID] = *resp
	if err := s.cache.Put(ctx, record); err != nil {
		logger.Ctx(ctx).Warn("failed to persist narrative response",
			logger.String("question", string(resp.QuestionID)), logger.Err(err))
	}
}

func (s *insightService) RetryNarrative(ctx context.Context, weekStart time.Time, id models.QuestionID) (*models.InsightResponse, error) {
	def, ok := catalog.ByID(id)
	if !ok || def.PermanentlyGated() {
		return nil, ErrUnknownQuestion
	}
	key := weekKeyOf(weekStart)
	s.clearError(key, id)

	// Drop the cached response so the state machine re-enters from a cache
	// miss and makes a fresh model attempt.
	if record, err := s.cache.Get(ctx, key); err == nil && record.Responses != nil {
		if _, ok := record.Responses[id]; ok {
			delete(record.Responses, id)
			if err := s.cache.Put(ctx, record); err != nil {
				logger.Ctx(ctx).Warn("failed to persist retry state",
					logger.String("question", string(id)), logger.Err(err))
			}
		}
	}
	return s.GetNarrative(ctx, weekStart, id)
}

func (s *insightService) NarrativeError(weekStart time.Time, id models.QuestionID) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errors[weekKeyOf(weekStart)+"/"+string(id)]
}

func (s *insightService) Status(ctx context.Context) ModelStatus {
	if s.slot.occupied() {
		return ModelGenerating
	}
	return s.model.Status(ctx)
}

func (s *insightService) setError(weekKey string, id models.QuestionID, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors[weekKey+"/"+string(id)] = msg
}

func (s *insightService) clearError(weekKey string, id models.QuestionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.errors, weekKey+"/"+string(id))
}
