// Package analyzer computes the weekly question analyses. Every analyzer is
// a pure function over WeeklyCollectedData: it never panics, and on
// insufficient input it returns neutral fields with a zero interestingness
// score. Gating by the catalog happens upstream; analyzers only guard their
// own arithmetic preconditions.
package analyzer

import "github.com/nutriweek/backend/internal/models"

// Day-level percent-of-target thresholds. The same cutoffs drive outlier
// highlights, day-by-day classification, and the what-went-well checks;
// they are a single tunable, not three.
const (
	OnTargetLowPct  = 85.0
	OnTargetHighPct = 115.0
	WayUnderPct     = 70.0
	WayOverPct      = 130.0
)

// Run dispatches to the analyzer for the given question. Unknown or
// permanently gated ids produce a zero-score result so the scorer can treat
// every catalog entry uniformly.
func Run(id models.QuestionID, week *models.WeeklyCollectedData) models.AnalysisResult {
	switch id {
	case models.QuestionMacroConsistency:
		return MacroConsistency(week)
	case models.QuestionCalorieOutliers:
		return CalorieOutliers(week)
	case models.QuestionTargetHitRate:
		return TargetHitRate(week)
	case models.QuestionProteinSufficiency:
		return ProteinSufficiency(week)
	case models.QuestionMacroBalance:
		return MacroBalance(week)
	case models.QuestionSurplusDeficit:
		return SurplusDeficit(week)
	case models.QuestionCalorieTrend:
		return CalorieTrend(week)
	case models.QuestionDayByDay:
		return DayByDay(week)
	case models.QuestionHydration:
		return Hydration(week)
	case models.QuestionMealTiming:
		return MealTiming(week)
	case models.QuestionWeekendPattern:
		return WeekendPattern(week)
	case models.QuestionWeekComparison:
		return WeekComparison(week)
	case models.QuestionProteinTrend:
		return ProteinTrend(week)
	case models.QuestionHighlights:
		return Highlights(week)
	case models.QuestionFocusSuggestion:
		return FocusSuggestion(week)
	default:
		return models.AnalysisResult{QuestionID: id, Score: 0}
	}
}

// loggedSeries extracts a per-logged-day series in week order.
func loggedSeries(week *models.WeeklyCollectedData, pick func(models.DayData) float64) []float64 {
	days := week.LoggedDays()
	xs := make([]float64, 0, len(days))
	for _, d := range days {
		xs = append(xs, pick(d))
	}
	return xs
}

// pctOfTarget returns value/target*100, or 0 when the target is unset.
func pctOfTarget(value, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return value / target * 100
}

func isWeekend(weekday int) bool {
	return weekday == 0 || weekday == 6
}
