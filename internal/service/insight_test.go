package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nutriweek/backend/internal/catalog"
	"github.com/nutriweek/backend/internal/models"
	"github.com/nutriweek/backend/internal/repository"
)

type mockDataSource struct {
	week     *models.WeeklyCollectedData
	collects int32
}

func (m *mockDataSource) Collect(ctx context.Context, weekStart time.Time) (*models.WeeklyCollectedData, error) {
	atomic.AddInt32(&m.collects, 1)
	return m.week, nil
}

func (m *mockDataSource) CollectBasic(ctx context.Context, weekStart time.Time) (*models.WeeklyCollectedData, error) {
	return m.week, nil
}

type mockModel struct {
	mu          sync.Mutex
	status      ModelStatus
	text        string
	err         error
	block       chan struct{} // Generate blocks on this when set
	started     chan struct{} // closed once Generate begins
	calls       int
	inFlight    int32
	maxInFlight int32
}

func (m *mockModel) Status(ctx context.Context) ModelStatus {
	if m.status == "" {
		return ModelReady
	}
	return m.status
}

func (m *mockModel) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	n := atomic.AddInt32(&m.inFlight, 1)
	defer atomic.AddInt32(&m.inFlight, -1)
	for {
		max := atomic.LoadInt32(&m.maxInFlight)
		if n <= max || atomic.CompareAndSwapInt32(&m.maxInFlight, max, n) {
			break
		}
	}

	m.mu.Lock()
	m.calls++
	started := m.started
	block := m.block
	m.mu.Unlock()

	if started != nil {
		close(started)
		m.mu.Lock()
		m.started = nil
		m.mu.Unlock()
	}
	if block != nil {
		<-block
	}
	return m.text, m.err
}

const testWeekKey = "2026-08-02"

var testWeekStart = time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)

func newTestService(src *mockDataSource, model ModelClient, now *time.Time) (InsightService, repository.InsightCacheStore) {
	store := repository.NewMemoryCacheStore()
	clock := func() time.Time {
		if now != nil {
			return *now
		}
		return time.Date(2026, 8, 5, 12, 0, 0, 0, time.UTC)
	}
	svc := NewInsightService(src, store, model, DefaultInsightConfig(), clock)
	return svc, store
}

func TestGetWeeklyInsightsUsesCacheUntilExpiry(t *testing.T) {
	now := time.Date(2026, 8, 5, 12, 0, 0, 0, time.UTC)
	src := &mockDataSource{week: fullTestWeek()}
	svc, _ := newTestService(src, &mockModel{}, &now)
	ctx := context.Background()

	first, err := svc.GetWeeklyInsights(ctx, testWeekStart, false)
	if err != nil {
		t.Fatalf("GetWeeklyInsights: %v", err)
	}
	if first.FromCache {
		t.Error("first call should compute")
	}
	if first.WeekStartDate != testWeekKey {
		t.Errorf("week = %s, want %s", first.WeekStartDate, testWeekKey)
	}

	second, err := svc.GetWeeklyInsights(ctx, testWeekStart, false)
	if err != nil {
		t.Fatalf("GetWeeklyInsights: %v", err)
	}
	if !second.FromCache {
		t.Error("second call should hit the cache")
	}

	// Exactly at validUntil the record is still valid.
	now = first.GeneratedAt.Add(DefaultInsightConfig().CacheTTL)
	atExpiry, err := svc.GetWeeklyInsights(ctx, testWeekStart, false)
	if err != nil {
		t.Fatalf("GetWeeklyInsights: %v", err)
	}
	if !atExpiry.FromCache {
		t.Error("record exactly at validUntil must still count as valid")
	}

	// One second past validUntil forces a recompute.
	now = now.Add(time.Second)
	stale, err := svc.GetWeeklyInsights(ctx, testWeekStart, false)
	if err != nil {
		t.Fatalf("GetWeeklyInsights: %v", err)
	}
	if stale.FromCache {
		t.Error("record past validUntil must recompute")
	}
	if got := atomic.LoadInt32(&src.collects); got != 2 {
		t.Errorf("collect calls = %d, want 2", got)
	}
}

func TestComputeSetsValidUntilSevenDaysOut(t *testing.T) {
	src := &mockDataSource{week: fullTestWeek()}
	svc, store := newTestService(src, &mockModel{}, nil)
	ctx := context.Background()

	if _, err := svc.GetWeeklyInsights(ctx, testWeekStart, false); err != nil {
		t.Fatalf("GetWeeklyInsights: %v", err)
	}
	record, err := store.Get(ctx, testWeekKey)
	if err != nil {
		t.Fatalf("cache Get: %v", err)
	}
	want := record.GeneratedAt.Add(7 * 24 * time.Hour)
	if !record.ValidUntil.Equal(want) {
		t.Errorf("validUntil = %v, want %v (7 days after generatedAt)", record.ValidUntil, want)
	}
}

func TestGetWeeklyInsightsForceRecomputes(t *testing.T) {
	src := &mockDataSource{week: fullTestWeek()}
	svc, _ := newTestService(src, &mockModel{}, nil)
	ctx := context.Background()

	if _, err := svc.GetWeeklyInsights(ctx, testWeekStart, false); err != nil {
		t.Fatalf("GetWeeklyInsights: %v", err)
	}
	resp, err := svc.GetWeeklyInsights(ctx, testWeekStart, true)
	if err != nil {
		t.Fatalf("GetWeeklyInsights force: %v", err)
	}
	if resp.FromCache {
		t.Error("forced refresh must not serve the cache")
	}
	if got := atomic.LoadInt32(&src.collects); got != 2 {
		t.Errorf("collect calls = %d, want 2", got)
	}
}

func TestGetWeeklyInsightsEmptyWeek(t *testing.T) {
	src := &mockDataSource{week: nil}
	svc, _ := newTestService(src, &mockModel{}, nil)

	resp, err := svc.GetWeeklyInsights(context.Background(), testWeekStart, false)
	if err != nil {
		t.Fatalf("GetWeeklyInsights: %v", err)
	}
	if len(resp.Selected) != 0 {
		t.Errorf("selected = %v for an unlogged week, want none", ids(resp.Selected))
	}
	if len(resp.NeedsMoreData) == 0 {
		t.Error("unlogged week should surface needs-more-data entries")
	}
}

func TestGetNarrativeLLMPath(t *testing.T) {
	src := &mockDataSource{week: fullTestWeek()}
	model := &mockModel{text: "A genuinely encouraging narrative about your very steady week."}
	svc, _ := newTestService(src, model, nil)
	ctx := context.Background()

	resp, err := svc.GetNarrative(ctx, testWeekStart, models.QuestionMacroConsistency)
	if err != nil {
		t.Fatalf("GetNarrative: %v", err)
	}
	if resp.Source != models.SourceLLM {
		t.Errorf("source = %s, want llm", resp.Source)
	}
	if resp.Text != model.text {
		t.Errorf("text = %q", resp.Text)
	}
	if resp.WeekStartDate != testWeekKey {
		t.Errorf("week = %s, want %s", resp.WeekStartDate, testWeekKey)
	}
	if resp.ID == "" {
		t.Error("response needs an id")
	}

	// Second read returns the cached response without another model call.
	again, err := svc.GetNarrative(ctx, testWeekStart, models.QuestionMacroConsistency)
	if err != nil {
		t.Fatalf("GetNarrative: %v", err)
	}
	if again.ID != resp.ID {
		t.Error("cached narrative should be returned verbatim")
	}
	if model.calls != 1 {
		t.Errorf("model calls = %d, want 1", model.calls)
	}
}

func TestGetNarrativeFallsBackOnModelError(t *testing.T) {
	src := &mockDataSource{week: fullTestWeek()}
	model := &mockModel{err: errors.New("model crashed")}
	svc, _ := newTestService(src, model, nil)

	resp, err := svc.GetNarrative(context.Background(), testWeekStart, models.QuestionTargetHitRate)
	if err != nil {
		t.Fatalf("GetNarrative: %v", err)
	}
	if resp.Source != models.SourceTemplate {
		t.Errorf("source = %s, want template", resp.Source)
	}
	if resp.Text == "" {
		t.Error("fallback text must not be empty")
	}
	if msg := svc.NarrativeError(testWeekStart, models.QuestionTargetHitRate); msg == "" {
		t.Error("expected a per-question error after model failure")
	}
}

func TestGetNarrativeShortOutputFallsBack(t *testing.T) {
	src := &mockDataSource{week: fullTestWeek()}
	model := &mockModel{text: "too short"}
	svc, _ := newTestService(src, model, nil)

	resp, err := svc.GetNarrative(context.Background(), testWeekStart, models.QuestionDayByDay)
	if err != nil {
		t.Fatalf("GetNarrative: %v", err)
	}
	if resp.Source != models.SourceTemplate {
		t.Errorf("source = %s, want template for sub-quality output", resp.Source)
	}
}

func TestGetNarrativeSingleFlight(t *testing.T) {
	src := &mockDataSource{week: fullTestWeek()}
	model := &mockModel{
		text:    "A long enough narrative that clears the quality bar easily.",
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	svc, _ := newTestService(src, model, nil)
	ctx := context.Background()

	started := model.started
	var firstResp *models.InsightResponse
	var firstErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		firstResp, firstErr = svc.GetNarrative(ctx, testWeekStart, models.QuestionMacroConsistency)
	}()

	<-started

	// Second request while the first generation is in flight: immediate
	// template response, no second concurrent model call.
	second, err := svc.GetNarrative(ctx, testWeekStart, models.QuestionTargetHitRate)
	if err != nil {
		t.Fatalf("GetNarrative: %v", err)
	}
	if second.Source != models.SourceTemplate {
		t.Errorf("concurrent request source = %s, want template", second.Source)
	}
	if msg := svc.NarrativeError(testWeekStart, models.QuestionTargetHitRate); msg == "" {
		t.Error("short-circuited request should record a busy notice")
	}

	close(model.block)
	<-done
	if firstErr != nil {
		t.Fatalf("first GetNarrative: %v", firstErr)
	}
	if firstResp.Source != models.SourceLLM {
		t.Errorf("first request source = %s, want llm", firstResp.Source)
	}
	if got := atomic.LoadInt32(&model.maxInFlight); got > 1 {
		t.Errorf("max concurrent model calls = %d, want 1", got)
	}
}

func TestRetryNarrativeClearsErrorAndRegenerates(t *testing.T) {
	src := &mockDataSource{week: fullTestWeek()}
	model := &mockModel{err: errors.New("transient failure")}
	svc, _ := newTestService(src, model, nil)
	ctx := context.Background()

	if _, err := svc.GetNarrative(ctx, testWeekStart, models.QuestionMealTiming); err != nil {
		t.Fatalf("GetNarrative: %v", err)
	}
	if svc.NarrativeError(testWeekStart, models.QuestionMealTiming) == "" {
		t.Fatal("expected an error recorded for the failed generation")
	}

	// The model recovers; retry must produce a fresh llm response.
	model.mu.Lock()
	model.err = nil
	model.text = "Recovered narrative that is comfortably long enough."
	model.mu.Unlock()

	resp, err := svc.RetryNarrative(ctx, testWeekStart, models.QuestionMealTiming)
	if err != nil {
		t.Fatalf("RetryNarrative: %v", err)
	}
	if resp.Source != models.SourceLLM {
		t.Errorf("retry source = %s, want llm", resp.Source)
	}
	if svc.NarrativeError(testWeekStart, models.QuestionMealTiming) != "" {
		t.Error("retry should clear the per-question error")
	}
}

func TestRetryNarrativeConcurrent(t *testing.T) {
	src := &mockDataSource{week: fullTestWeek()}
	model := &mockModel{text: "A long enough narrative that clears the quality bar easily."}
	svc, _ := newTestService(src, model, nil)
	ctx := context.Background()

	if _, err := svc.GetWeeklyInsights(ctx, testWeekStart, false); err != nil {
		t.Fatalf("GetWeeklyInsights: %v", err)
	}

	active := catalog.ActiveIDs()
	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		for _, id := range active {
			wg.Add(1)
			go func(id models.QuestionID) {
				defer wg.Done()
				resp, err := svc.RetryNarrative(ctx, testWeekStart, id)
				if err != nil {
					t.Errorf("RetryNarrative(%s): %v", id, err)
					return
				}
				if resp == nil || resp.Text == "" {
					t.Errorf("RetryNarrative(%s) returned an empty response", id)
				}
			}(id)
		}
	}
	wg.Wait()

	if got := atomic.LoadInt32(&model.maxInFlight); got > 1 {
		t.Errorf("max concurrent model calls = %d, want 1", got)
	}

	// Every question must still be readable afterwards.
	for _, id := range active {
		if _, err := svc.GetNarrative(ctx, testWeekStart, id); err != nil {
			t.Errorf("GetNarrative(%s) after concurrent retries: %v", id, err)
		}
	}
}

func TestGetNarrativeUnknownQuestion(t *testing.T) {
	src := &mockDataSource{week: fullTestWeek()}
	svc, _ := newTestService(src, &mockModel{}, nil)

	if _, err := svc.GetNarrative(context.Background(), testWeekStart, "no_such_question"); !errors.Is(err, ErrUnknownQuestion) {
		t.Errorf("err = %v, want ErrUnknownQuestion", err)
	}
	if _, err := svc.GetNarrative(context.Background(), testWeekStart, models.QuestionFiberIntake); !errors.Is(err, ErrUnknownQuestion) {
		t.Errorf("gated question err = %v, want ErrUnknownQuestion", err)
	}
}

func TestStatusReportsGenerating(t *testing.T) {
	src := &mockDataSource{week: fullTestWeek()}
	model := &mockModel{
		text:    "A long enough narrative that clears the quality bar easily.",
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	svc, _ := newTestService(src, model, nil)
	ctx := context.Background()

	if got := svc.Status(ctx); got != ModelReady {
		t.Errorf("idle status = %s, want ready", got)
	}

	started := model.started
	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.GetNarrative(ctx, testWeekStart, models.QuestionHighlights)
	}()
	<-started
	if got := svc.Status(ctx); got != ModelGenerating {
		t.Errorf("in-flight status = %s, want generating", got)
	}
	close(model.block)
	<-done
}
