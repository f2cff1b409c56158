package service

import (
	"fmt"

	"github.com/nutriweek/backend/internal/analyzer"
	"github.com/nutriweek/backend/internal/catalog"
	"github.com/nutriweek/backend/internal/models"
)

// priorWeekMinDays is the logged-day bar a prior week must clear before
// trend questions can use it.
const priorWeekMinDays = 3

// ScoreWeek evaluates every catalog entry against the collected week: the
// gate decides availability, the analyzer runs regardless so unavailable
// questions still carry a score and a result for the needs-more-data
// surface. Output preserves catalog order.
func ScoreWeek(week *models.WeeklyCollectedData) []models.ScoredQuestion {
	defs := catalog.Definitions()
	scored := make([]models.ScoredQuestion, 0, len(defs))
	for _, def := range defs {
		if def.PermanentlyGated() {
			continue
		}
		result := analyzer.Run(def.ID, week)
		scored = append(scored, models.ScoredQuestion{
			QuestionID:     def.ID,
			Definition:     def,
			Score:          result.Score,
			IsAvailable:    gateOpen(def, week),
			IsPinned:       def.Pinned,
			AnalysisResult: result,
		})
	}
	return scored
}

// gateOpen evaluates the availability gate for one catalog entry.
func gateOpen(def models.QuestionDefinition, week *models.WeeklyCollectedData) bool {
	if def.PermanentlyGated() {
		return false
	}
	if week.LoggedDayCount < def.MinLoggedDays {
		return false
	}
	if def.RequiresPriorWeek {
		if week.PriorWeek == nil || week.PriorWeek.LoggedDayCount < priorWeekMinDays {
			return false
		}
	}
	if def.RequiresWaterData && week.WaterDayCount() < 3 {
		return false
	}

	switch def.ID {
	case models.QuestionWeekendPattern:
		weekdays, weekendDays := week.WeekdayWeekendSplit()
		if weekdays < 3 || weekendDays < 1 {
			return false
		}
	case models.QuestionProteinTrend:
		if week.PriorWeek == nil || week.TwoWeeksAgo == nil ||
			week.TwoWeeksAgo.LoggedDayCount < 4 {
			return false
		}
	}
	return true
}

// NeedsMoreData lists the unavailable questions together with the logged-day
// gap that would unlock them. Questions blocked only by prior-week or water
// requirements report a zero day gap.
func NeedsMoreData(scored []models.ScoredQuestion, loggedDays int) []models.NeedsMoreDataEntry {
	entries := make([]models.NeedsMoreDataEntry, 0)
	for _, q := range scored {
		if q.IsAvailable {
			continue
		}
		missing := q.Definition.MinLoggedDays - loggedDays
		if missing < 0 {
			missing = 0
		}
		entries = append(entries, models.NeedsMoreDataEntry{
			QuestionID:  q.QuestionID,
			Text:        needsMoreDataText(q.Definition, missing),
			DaysLogged:  loggedDays,
			DaysNeeded:  q.Definition.MinLoggedDays,
			DaysMissing: missing,
		})
	}
	return entries
}

func needsMoreDataText(def models.QuestionDefinition, missing int) string {
	switch {
	case missing == 1:
		return fmt.Sprintf("Log 1 more day to unlock %q.", def.Text)
	case missing > 1:
		return fmt.Sprintf("Log %d more days to unlock %q.", missing, def.Text)
	case def.RequiresWaterData:
		return fmt.Sprintf("Log water on 3 days to unlock %q.", def.Text)
	default:
		return fmt.Sprintf("Keep logging into next week to unlock %q.", def.Text)
	}
}
