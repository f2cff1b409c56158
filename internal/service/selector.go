package service

import (
	"sort"

	"github.com/nutriweek/backend/internal/models"
)

// SelectorConfig tunes the diverse-selection pass.
type SelectorConfig struct {
	TargetCount int
	MinScore    float64
	CategoryCap int
}

// DefaultSelectorConfig returns the standard selection tuning.
func DefaultSelectorConfig() SelectorConfig {
	return SelectorConfig{
		TargetCount: 6,
		MinScore:    0.3,
		CategoryCap: 2,
	}
}

// SelectQuestions picks a bounded, diverse subset of the scored questions.
// Pinned available questions enter unconditionally and bypass the score
// threshold; everything else needs score >= MinScore. At most CategoryCap
// questions per category (pinned included), at most TargetCount total.
// Display order: the what-went-well question first, the focus suggestion
// last, the middle sorted by score descending with ties kept in catalog
// order.
func SelectQuestions(scored []models.ScoredQuestion, cfg SelectorConfig) []models.ScoredQuestion {
	if cfg.TargetCount <= 0 {
		cfg = DefaultSelectorConfig()
	}

	selected := make([]models.ScoredQuestion, 0, cfg.TargetCount)
	perCategory := make(map[models.QuestionCategory]int)

	for _, q := range scored {
		if q.IsPinned && q.IsAvailable {
			selected = append(selected, q)
			perCategory[q.Definition.Category]++
		}
	}

	// Candidates stay in catalog order; the stable sort makes catalog order
	// the deterministic tie-break for equal scores.
	candidates := make([]models.ScoredQuestion, 0, len(scored))
	for _, q := range scored {
		if q.IsPinned || !q.IsAvailable || q.Score < cfg.MinScore {
			continue
		}
		candidates = append(candidates, q)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	for _, q := range candidates {
		if len(selected) >= cfg.TargetCount {
			break
		}
		if perCategory[q.Definition.Category] >= cfg.CategoryCap {
			continue
		}
		selected = append(selected, q)
		perCategory[q.Definition.Category]++
	}

	return displayOrder(selected)
}

// displayOrder forces highlights first and focus suggestion last, with the
// middle sorted by score descending.
func displayOrder(selected []models.ScoredQuestion) []models.ScoredQuestion {
	var first, last []models.ScoredQuestion
	middle := make([]models.ScoredQuestion, 0, len(selected))
	for _, q := range selected {
		switch q.QuestionID {
		case models.QuestionHighlights:
			first = append(first, q)
		case models.QuestionFocusSuggestion:
			last = append(last, q)
		default:
			middle = append(middle, q)
		}
	}
	sort.SliceStable(middle, func(i, j int) bool {
		return middle[i].Score > middle[j].Score
	})

	out := make([]models.ScoredQuestion, 0, len(selected))
	out = append(out, first...)
	out = append(out, middle...)
	out = append(out, last...)
	return out
}
