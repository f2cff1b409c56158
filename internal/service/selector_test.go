package service

import (
	"testing"

	"github.com/nutriweek/backend/internal/models"
)

func sq(id models.QuestionID, cat models.QuestionCategory, score float64, pinned, available bool) models.ScoredQuestion {
	return models.ScoredQuestion{
		QuestionID:  id,
		Definition:  models.QuestionDefinition{ID: id, Category: cat, Pinned: pinned},
		Score:       score,
		IsPinned:    pinned,
		IsAvailable: available,
	}
}

func TestSelectPinnedAlwaysIncluded(t *testing.T) {
	scored := []models.ScoredQuestion{
		sq(models.QuestionHighlights, models.CategoryReflection, 0.0, true, true),
		sq(models.QuestionMacroConsistency, models.CategoryConsistency, 0.9, false, true),
		sq(models.QuestionFocusSuggestion, models.CategoryReflection, 0.0, true, true),
	}
	selected := SelectQuestions(scored, DefaultSelectorConfig())
	if len(selected) != 3 {
		t.Fatalf("selected = %d, want 3", len(selected))
	}
	if selected[0].QuestionID != models.QuestionHighlights {
		t.Errorf("first = %s, want highlights", selected[0].QuestionID)
	}
	if selected[len(selected)-1].QuestionID != models.QuestionFocusSuggestion {
		t.Errorf("last = %s, want focus_suggestion", selected[len(selected)-1].QuestionID)
	}
}

func TestSelectUnavailablePinnedExcluded(t *testing.T) {
	scored := []models.ScoredQuestion{
		sq(models.QuestionHighlights, models.CategoryReflection, 1.0, true, false),
		sq(models.QuestionMacroConsistency, models.CategoryConsistency, 0.9, false, true),
	}
	selected := SelectQuestions(scored, DefaultSelectorConfig())
	for _, q := range selected {
		if q.QuestionID == models.QuestionHighlights {
			t.Error("gated pinned question made the selection")
		}
	}
}

func TestSelectScoreThreshold(t *testing.T) {
	scored := []models.ScoredQuestion{
		sq(models.QuestionMacroConsistency, models.CategoryConsistency, 0.29, false, true),
		sq(models.QuestionTargetHitRate, models.CategoryEnergy, 0.3, false, true),
	}
	selected := SelectQuestions(scored, DefaultSelectorConfig())
	if len(selected) != 1 || selected[0].QuestionID != models.QuestionTargetHitRate {
		t.Fatalf("selected = %+v, want only target_hit_rate", ids(selected))
	}
}

func TestSelectCategoryCap(t *testing.T) {
	scored := []models.ScoredQuestion{
		sq(models.QuestionCalorieOutliers, models.CategoryEnergy, 0.9, false, true),
		sq(models.QuestionTargetHitRate, models.CategoryEnergy, 0.8, false, true),
		sq(models.QuestionSurplusDeficit, models.CategoryEnergy, 0.7, false, true),
		sq(models.QuestionHydration, models.CategoryHydration, 0.4, false, true),
	}
	selected := SelectQuestions(scored, DefaultSelectorConfig())

	energy := 0
	for _, q := range selected {
		if q.Definition.Category == models.CategoryEnergy {
			energy++
		}
	}
	if energy != 2 {
		t.Errorf("energy questions = %d, want 2", energy)
	}
	if len(selected) != 3 {
		t.Errorf("selected = %v, want 3 entries", ids(selected))
	}
	// The cap drops the lowest-scored energy question.
	for _, q := range selected {
		if q.QuestionID == models.QuestionSurplusDeficit {
			t.Error("category cap failed to drop surplus_deficit")
		}
	}
}

func TestSelectTargetCount(t *testing.T) {
	scored := []models.ScoredQuestion{
		sq(models.QuestionHighlights, models.CategoryReflection, 1.0, true, true),
		sq(models.QuestionFocusSuggestion, models.CategoryReflection, 0.9, true, true),
		sq(models.QuestionMacroConsistency, models.CategoryConsistency, 0.9, false, true),
		sq(models.QuestionDayByDay, models.CategoryConsistency, 0.85, false, true),
		sq(models.QuestionCalorieOutliers, models.CategoryEnergy, 0.8, false, true),
		sq(models.QuestionTargetHitRate, models.CategoryEnergy, 0.75, false, true),
		sq(models.QuestionProteinSufficiency, models.CategoryProtein, 0.7, false, true),
		sq(models.QuestionMacroBalance, models.CategoryMacros, 0.65, false, true),
		sq(models.QuestionHydration, models.CategoryHydration, 0.6, false, true),
	}
	selected := SelectQuestions(scored, DefaultSelectorConfig())
	if len(selected) != 6 {
		t.Fatalf("selected = %d (%v), want 6", len(selected), ids(selected))
	}
}

func TestSelectDisplayOrder(t *testing.T) {
	scored := []models.ScoredQuestion{
		sq(models.QuestionHighlights, models.CategoryReflection, 1.0, true, true),
		sq(models.QuestionMacroConsistency, models.CategoryConsistency, 0.5, false, true),
		sq(models.QuestionCalorieOutliers, models.CategoryEnergy, 0.8, false, true),
		sq(models.QuestionFocusSuggestion, models.CategoryReflection, 0.9, true, true),
	}
	selected := SelectQuestions(scored, DefaultSelectorConfig())
	want := []models.QuestionID{
		models.QuestionHighlights,
		models.QuestionCalorieOutliers,
		models.QuestionMacroConsistency,
		models.QuestionFocusSuggestion,
	}
	got := ids(selected)
	if len(got) != len(want) {
		t.Fatalf("selected = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("selected order = %v, want %v", got, want)
		}
	}
}

func TestSelectTieBreakIsCatalogOrder(t *testing.T) {
	// Equal scores: the earlier catalog entry must win the last slot.
	scored := []models.ScoredQuestion{
		sq(models.QuestionMacroConsistency, models.CategoryConsistency, 0.5, false, true),
		sq(models.QuestionTargetHitRate, models.CategoryEnergy, 0.5, false, true),
	}
	cfg := DefaultSelectorConfig()
	cfg.TargetCount = 1
	selected := SelectQuestions(scored, cfg)
	if len(selected) != 1 || selected[0].QuestionID != models.QuestionMacroConsistency {
		t.Errorf("selected = %v, want macro_consistency via catalog-order tie-break", ids(selected))
	}
}

func ids(qs []models.ScoredQuestion) []models.QuestionID {
	out := make([]models.QuestionID, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.QuestionID)
	}
	return out
}
