package service

import (
	"fmt"

	"github.com/nutriweek/backend/internal/models"
)

// deriveSentiment applies the per-question sentiment rule table. Missing
// detail always reads as neutral; this boundary never propagates errors.
func deriveSentiment(r models.AnalysisResult) models.Sentiment {
	switch r.QuestionID {
	case models.QuestionMacroConsistency:
		if d := r.MacroConsistency; d != nil {
			switch d.Tier {
			case models.TierVeryConsistent, models.TierConsistent:
				return models.SentimentPositive
			case models.TierHighlyVariable:
				return models.SentimentNegative
			}
		}
	case models.QuestionCalorieOutliers:
		if d := r.CalorieOutliers; d != nil {
			switch {
			case len(d.OutlierDays) == 0:
				return models.SentimentPositive
			case len(d.OutlierDays) >= 3:
				return models.SentimentNegative
			}
		}
	case models.QuestionTargetHitRate:
		if d := r.TargetHitRate; d != nil {
			switch {
			case d.CalorieHitRate >= 80 && d.ProteinHitRate >= 80:
				return models.SentimentPositive
			case d.CalorieHitRate < 40 && d.ProteinHitRate < 40:
				return models.SentimentNegative
			}
		}
	case models.QuestionProteinSufficiency:
		if d := r.ProteinSufficiency; d != nil {
			switch {
			case d.AvgProteinPct >= 100:
				return models.SentimentPositive
			case d.AvgProteinPct < 70:
				return models.SentimentNegative
			}
		}
	case models.QuestionMacroBalance:
		if d := r.MacroBalance; d != nil && d.Skew == models.SkewBalanced {
			return models.SentimentPositive
		}
	case models.QuestionSurplusDeficit:
		if d := r.SurplusDeficit; d != nil {
			switch {
			case d.IsNeutral:
				return models.SentimentPositive
			case absFloat(d.DeltaPct) > 15:
				return models.SentimentNegative
			}
		}
	case models.QuestionCalorieTrend:
		if d := r.CalorieTrend; d != nil && d.Direction == models.TrendSteady {
			return models.SentimentPositive
		}
	case models.QuestionDayByDay:
		if d := r.DayByDay; d != nil {
			switch d.Pattern {
			case models.PatternBuiltMomentum:
				return models.SentimentPositive
			case models.PatternTrailedOff:
				return models.SentimentNegative
			}
		}
	case models.QuestionHydration:
		if d := r.Hydration; d != nil {
			switch {
			case d.TargetPct >= 100:
				return models.SentimentPositive
			case d.TargetPct < 70 && d.TargetPct > 0:
				return models.SentimentNegative
			}
		}
	case models.QuestionWeekendPattern:
		if d := r.WeekendPattern; d != nil {
			switch {
			case absFloat(d.WeekendEffectPct) <= 10 && d.WeekendCount > 0:
				return models.SentimentPositive
			case absFloat(d.WeekendEffectPct) > 30:
				return models.SentimentNegative
			}
		}
	case models.QuestionWeekComparison:
		if d := r.WeekComparison; d != nil && d.BiggestImprovement != "" {
			return models.SentimentPositive
		}
	case models.QuestionProteinTrend:
		if d := r.ProteinTrend; d != nil {
			switch d.Direction {
			case models.TrendUp:
				return models.SentimentPositive
			case models.TrendDown:
				return models.SentimentNegative
			}
		}
	case models.QuestionHighlights:
		return models.SentimentPositive
	case models.QuestionFocusSuggestion:
		if d := r.FocusSuggestion; d != nil && d.Area == models.FocusMomentum {
			return models.SentimentPositive
		}
	}
	return models.SentimentNeutral
}

// extractKeyMetrics pulls up to three headline numbers per question. Each
// extractor tolerates missing fields and returns nothing rather than erring.
func extractKeyMetrics(r models.AnalysisResult) []models.KeyMetric {
	metrics := make([]models.KeyMetric, 0, 3)
	add := func(label, value string) {
		if len(metrics) < 3 {
			metrics = append(metrics, models.KeyMetric{Label: label, Value: value})
		}
	}

	switch r.QuestionID {
	case models.QuestionMacroConsistency:
		if d := r.MacroConsistency; d != nil {
			add("Variation", fmt.Sprintf("%.0f%%", d.MeanCV))
			add("Steadiest", d.MostConsistent)
			add("Swingiest", d.LeastConsistent)
		}
	case models.QuestionCalorieOutliers:
		if d := r.CalorieOutliers; d != nil {
			add("Outlier days", fmt.Sprintf("%d", len(d.OutlierDays)))
			add("Week average", fmt.Sprintf("%.0f cal", d.WeekMean))
			if len(d.OutlierDays) > 0 {
				add("Without outliers", fmt.Sprintf("%.0f cal", d.AdjustedMean))
			}
		}
	case models.QuestionTargetHitRate:
		if d := r.TargetHitRate; d != nil {
			add("Calorie hits", fmt.Sprintf("%d/%d days", d.CalorieHitDays, d.LoggedDays))
			add("Protein hits", fmt.Sprintf("%d/%d days", d.ProteinHitDays, d.LoggedDays))
		}
	case models.QuestionProteinSufficiency:
		if d := r.ProteinSufficiency; d != nil {
			add("Daily average", fmt.Sprintf("%.0fg", d.AvgProtein))
			add("Of target", fmt.Sprintf("%.0f%%", d.AvgProteinPct))
			if d.TrendVsPrior != "" {
				add("Vs last week", fmt.Sprintf("%+.0fg", d.DeltaGrams))
			}
		}
	case models.QuestionMacroBalance:
		if d := r.MacroBalance; d != nil {
			add("Protein", fmt.Sprintf("%.0f%%", d.ProteinPct))
			add("Carbs", fmt.Sprintf("%.0f%%", d.CarbPct))
			add("Fat", fmt.Sprintf("%.0f%%", d.FatPct))
		}
	case models.QuestionSurplusDeficit:
		if d := r.SurplusDeficit; d != nil {
			add("Daily average", fmt.Sprintf("%.0f cal", d.AvgCalories))
			add("Vs target", fmt.Sprintf("%+.0f cal", d.Delta))
		}
	case models.QuestionCalorieTrend:
		if d := r.CalorieTrend; d != nil && d.Direction != models.TrendInsufficient {
			add("Direction", string(d.Direction))
			add("Per week", fmt.Sprintf("%+.0f cal", d.Slope))
			add("Weeks", fmt.Sprintf("%d", d.WeeksUsed))
		}
	case models.QuestionDayByDay:
		if d := r.DayByDay; d != nil {
			add("On target", fmt.Sprintf("%d/%d days", d.OnTargetCount, d.LoggedDays))
		}
	case models.QuestionHydration:
		if d := r.Hydration; d != nil {
			add("Daily average", fmt.Sprintf("%.0fml", d.AvgWater))
			add("Of goal", fmt.Sprintf("%.0f%%", d.TargetPct))
			add("Best day", weekdayLabel(d.BestWeekday))
		}
	case models.QuestionMealTiming:
		if d := r.MealTiming; d != nil {
			add("Meals per day", fmt.Sprintf("%.1f", d.AvgMeals))
			add("Range", fmt.Sprintf("%d-%d", d.MinMeals, d.MaxMeals))
		}
	case models.QuestionWeekendPattern:
		if d := r.WeekendPattern; d != nil && d.WeekendCount > 0 {
			add("Weekend effect", fmt.Sprintf("%+.0f%%", d.WeekendEffectPct))
			add("Weekday avg", fmt.Sprintf("%.0f cal", d.WeekdayAvg))
			add("Weekend avg", fmt.Sprintf("%.0f cal", d.WeekendAvg))
		}
	case models.QuestionWeekComparison:
		if d := r.WeekComparison; d != nil {
			for _, m := range d.Metrics {
				if m.Name == "calories" || m.Name == "protein" || m.Name == "logged_days" {
					add(m.Name, fmt.Sprintf("%+.0f%%", m.ChangePct))
				}
			}
		}
	case models.QuestionProteinTrend:
		if d := r.ProteinTrend; d != nil && d.Direction != models.TrendInsufficient {
			add("Direction", string(d.Direction))
			add("Per week", fmt.Sprintf("%+.0fg", d.Slope))
		}
	case models.QuestionHighlights:
		if d := r.Highlights; d != nil {
			add("Highlights", fmt.Sprintf("%d", len(d.Highlights)))
		}
	case models.QuestionFocusSuggestion:
		if d := r.FocusSuggestion; d != nil {
			add("Focus area", string(d.Area))
		}
	}
	return metrics
}

// followUps maps each question to related questions worth opening next.
func followUps(id models.QuestionID) []models.QuestionID {
	switch id {
	case models.QuestionMacroConsistency:
		return []models.QuestionID{models.QuestionDayByDay, models.QuestionMacroBalance}
	case models.QuestionCalorieOutliers:
		return []models.QuestionID{models.QuestionWeekendPattern, models.QuestionDayByDay}
	case models.QuestionTargetHitRate:
		return []models.QuestionID{models.QuestionSurplusDeficit, models.QuestionProteinSufficiency}
	case models.QuestionProteinSufficiency:
		return []models.QuestionID{models.QuestionProteinTrend, models.QuestionMacroBalance}
	case models.QuestionMacroBalance:
		return []models.QuestionID{models.QuestionMacroConsistency, models.QuestionProteinSufficiency}
	case models.QuestionSurplusDeficit:
		return []models.QuestionID{models.QuestionCalorieTrend, models.QuestionTargetHitRate}
	case models.QuestionCalorieTrend:
		return []models.QuestionID{models.QuestionWeekComparison, models.QuestionSurplusDeficit}
	case models.QuestionDayByDay:
		return []models.QuestionID{models.QuestionWeekendPattern, models.QuestionMacroConsistency}
	case models.QuestionHydration:
		return []models.QuestionID{models.QuestionFocusSuggestion}
	case models.QuestionMealTiming:
		return []models.QuestionID{models.QuestionDayByDay}
	case models.QuestionWeekendPattern:
		return []models.QuestionID{models.QuestionCalorieOutliers, models.QuestionMealTiming}
	case models.QuestionWeekComparison:
		return []models.QuestionID{models.QuestionCalorieTrend, models.QuestionProteinTrend}
	case models.QuestionProteinTrend:
		return []models.QuestionID{models.QuestionProteinSufficiency, models.QuestionWeekComparison}
	case models.QuestionHighlights:
		return []models.QuestionID{models.QuestionFocusSuggestion}
	case models.QuestionFocusSuggestion:
		return []models.QuestionID{models.QuestionHighlights}
	default:
		return nil
	}
}
