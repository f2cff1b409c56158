package service

import (
	"fmt"
	"strings"

	"github.com/nutriweek/backend/internal/models"
)

// buildPrompt produces the model prompt for one question. The switch is
// exhaustive over active question ids; a question with a nil detail pointer
// gets the bare fallback prompt.
func buildPrompt(def models.QuestionDefinition, r models.AnalysisResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a friendly nutrition coach. Answer the question %q in 2-3 encouraging sentences using only these facts. Do not invent numbers.\n", def.Text)

	switch r.QuestionID {
	case models.QuestionMacroConsistency:
		if d := r.MacroConsistency; d != nil {
			fmt.Fprintf(&b, "Consistency tier: %s. Mean variation: %.0f%%. Steadiest macro: %s. Swingiest macro: %s. Logged days: %d.",
				d.Tier, d.MeanCV, d.MostConsistent, d.LeastConsistent, d.LoggedDays)
		}
	case models.QuestionCalorieOutliers:
		if d := r.CalorieOutliers; d != nil {
			fmt.Fprintf(&b, "Week mean: %.0f calories. Outlier days: %d. Adjusted mean without outliers: %.0f.",
				d.WeekMean, len(d.OutlierDays), d.AdjustedMean)
		}
	case models.QuestionTargetHitRate:
		if d := r.TargetHitRate; d != nil {
			fmt.Fprintf(&b, "Calorie target hit on %d of %d days (%.0f%%). Protein target hit on %d days (%.0f%%).",
				d.CalorieHitDays, d.LoggedDays, d.CalorieHitRate, d.ProteinHitDays, d.ProteinHitRate)
		}
	case models.QuestionProteinSufficiency:
		if d := r.ProteinSufficiency; d != nil {
			fmt.Fprintf(&b, "Average protein: %.0fg of a %.0fg target (%.0f%%).", d.AvgProtein, d.Target, d.AvgProteinPct)
			if d.TrendVsPrior != "" {
				fmt.Fprintf(&b, " Versus last week: %s by %.0fg.", d.TrendVsPrior, absFloat(d.DeltaGrams))
			}
		}
	case models.QuestionMacroBalance:
		if d := r.MacroBalance; d != nil {
			fmt.Fprintf(&b, "Calorie split: %.0f%% protein, %.0f%% carbs, %.0f%% fat. Skew: %s. Most variable macro: %s.",
				d.ProteinPct, d.CarbPct, d.FatPct, d.Skew, d.MostVariable)
		}
	case models.QuestionSurplusDeficit:
		if d := r.SurplusDeficit; d != nil {
			fmt.Fprintf(&b, "Average: %.0f calories against a %.0f target (%+.1f%%). Neutral band: %t.",
				d.AvgCalories, d.Target, d.DeltaPct, d.IsNeutral)
		}
	case models.QuestionCalorieTrend:
		if d := r.CalorieTrend; d != nil {
			fmt.Fprintf(&b, "Trend over %d weeks: %s, slope %.0f calories/week.", d.WeeksUsed, d.Direction, d.Slope)
		}
	case models.QuestionDayByDay:
		if d := r.DayByDay; d != nil {
			fmt.Fprintf(&b, "On-target days: %d of %d logged. Week shape: %s.", d.OnTargetCount, d.LoggedDays, d.Pattern)
		}
	case models.QuestionHydration:
		if d := r.Hydration; d != nil {
			fmt.Fprintf(&b, "Average water: %.0fml of a %.0fml goal (%.0f%%). Best day: %s. Worst day: %s.",
				d.AvgWater, d.Target, d.TargetPct, weekdayLabel(d.BestWeekday), weekdayLabel(d.WorstWeekday))
		}
	case models.QuestionMealTiming:
		if d := r.MealTiming; d != nil {
			fmt.Fprintf(&b, "Meals per day: %.1f average, %d to %d range. Calorie link on higher-meal days: %s.",
				d.AvgMeals, d.MinMeals, d.MaxMeals, d.Link)
		}
	case models.QuestionWeekendPattern:
		if d := r.WeekendPattern; d != nil {
			fmt.Fprintf(&b, "Weekday average: %.0f calories. Weekend average: %.0f. Weekend effect: %+.0f%%.",
				d.WeekdayAvg, d.WeekendAvg, d.WeekendEffectPct)
		}
	case models.QuestionWeekComparison:
		if d := r.WeekComparison; d != nil {
			for _, m := range d.Metrics {
				fmt.Fprintf(&b, "%s: %.0f vs %.0f last week (%s). ", m.Name, m.Current, m.Previous, m.Direction)
			}
			if d.BiggestImprovement != "" {
				fmt.Fprintf(&b, "Biggest improvement: %s.", d.BiggestImprovement)
			}
		}
	case models.QuestionProteinTrend:
		if d := r.ProteinTrend; d != nil {
			fmt.Fprintf(&b, "Protein trend over %d weeks: %s, slope %.0fg/week. Diverges from calories: %t.",
				d.WeeksUsed, d.Direction, d.Slope, d.DivergesFromCalories)
		}
	case models.QuestionHighlights:
		if d := r.Highlights; d != nil {
			fmt.Fprintf(&b, "Highlights: %s", strings.Join(d.Highlights, " "))
		}
	case models.QuestionFocusSuggestion:
		if d := r.FocusSuggestion; d != nil {
			fmt.Fprintf(&b, "Suggested focus area: %s. %s", d.Area, d.Message)
		}
	}
	return b.String()
}

// templateNarrative is the deterministic fallback. It is the availability
// backstop: it never fails and never returns an empty string for any active
// question, even when the detail pointer is missing.
func templateNarrative(def models.QuestionDefinition, r models.AnalysisResult) string {
	switch r.QuestionID {
	case models.QuestionMacroConsistency:
		if d := r.MacroConsistency; d != nil {
			switch d.Tier {
			case models.TierVeryConsistent:
				return fmt.Sprintf("Your macros were very consistent this week - day-to-day variation averaged just %.0f%%, with %s holding steadiest.", d.MeanCV, d.MostConsistent)
			case models.TierConsistent:
				return fmt.Sprintf("Solidly consistent week: average macro variation was %.0f%%, with %s the steadiest and %s swinging most.", d.MeanCV, d.MostConsistent, d.LeastConsistent)
			case models.TierVariable:
				return fmt.Sprintf("Your macros moved around a fair bit - %s varied the most day to day. A steadier %s intake would smooth the week out.", d.LeastConsistent, d.LeastConsistent)
			default:
				return fmt.Sprintf("Big day-to-day swings this week, especially in %s. Consistency tends to make targets much easier to hit.", d.LeastConsistent)
			}
		}
	case models.QuestionCalorieOutliers:
		if d := r.CalorieOutliers; d != nil {
			switch n := len(d.OutlierDays); {
			case n == 0:
				return fmt.Sprintf("No calorie outliers this week - every day stayed close to your %.0f-calorie average.", d.WeekMean)
			case n <= 2:
				return fmt.Sprintf("%d day(s) stood out from your %.0f-calorie average. Without them your week averaged %.0f calories.", n, d.WeekMean, d.AdjustedMean)
			default:
				return fmt.Sprintf("%d days strayed well off your weekly average, which makes the week hard to read as a single pattern.", n)
			}
		}
	case models.QuestionTargetHitRate:
		if d := r.TargetHitRate; d != nil {
			return fmt.Sprintf("You hit your calorie target on %d of %d logged days and your protein target on %d.", d.CalorieHitDays, d.LoggedDays, d.ProteinHitDays)
		}
	case models.QuestionProteinSufficiency:
		if d := r.ProteinSufficiency; d != nil {
			if d.AvgProteinPct >= 100 {
				return fmt.Sprintf("Protein was well covered: %.0fg a day against a %.0fg target.", d.AvgProtein, d.Target)
			}
			return fmt.Sprintf("Protein averaged %.0fg a day, about %.0f%% of your %.0fg target.", d.AvgProtein, d.AvgProteinPct, d.Target)
		}
	case models.QuestionMacroBalance:
		if d := r.MacroBalance; d != nil {
			if d.Skew == models.SkewBalanced {
				return fmt.Sprintf("A balanced split: %.0f%% protein, %.0f%% carbs, %.0f%% fat.", d.ProteinPct, d.CarbPct, d.FatPct)
			}
			return fmt.Sprintf("Your week leaned %s: %.0f%% protein, %.0f%% carbs, %.0f%% fat.", strings.ReplaceAll(string(d.Skew), "_", " "), d.ProteinPct, d.CarbPct, d.FatPct)
		}
	case models.QuestionSurplusDeficit:
		if d := r.SurplusDeficit; d != nil {
			if d.IsNeutral {
				return fmt.Sprintf("You averaged %.0f calories - right on your %.0f target.", d.AvgCalories, d.Target)
			}
			word := "surplus"
			if d.Delta < 0 {
				word = "deficit"
			}
			return fmt.Sprintf("You ran a %.0f-calorie daily %s against your %.0f target (%.0f%% off).", absFloat(d.Delta), word, d.Target, absFloat(d.DeltaPct))
		}
	case models.QuestionCalorieTrend:
		if d := r.CalorieTrend; d != nil && d.Direction != models.TrendInsufficient {
			switch d.Direction {
			case models.TrendSteady:
				return fmt.Sprintf("Calories are holding steady across the last %d weeks.", d.WeeksUsed)
			case models.TrendUp:
				return fmt.Sprintf("Calories are trending up by about %.0f per week over the last %d weeks.", d.Slope, d.WeeksUsed)
			default:
				return fmt.Sprintf("Calories are trending down by about %.0f per week over the last %d weeks.", absFloat(d.Slope), d.WeeksUsed)
			}
		}
	case models.QuestionDayByDay:
		if d := r.DayByDay; d != nil {
			switch d.Pattern {
			case models.PatternBuiltMomentum:
				return fmt.Sprintf("You built momentum: %d on-target days, mostly in the back half of the week.", d.OnTargetCount)
			case models.PatternTrailedOff:
				return fmt.Sprintf("The week started strong and trailed off - %d on-target days, mostly early on.", d.OnTargetCount)
			default:
				return fmt.Sprintf("A steady week: %d of %d logged days landed on target.", d.OnTargetCount, d.LoggedDays)
			}
		}
	case models.QuestionHydration:
		if d := r.Hydration; d != nil {
			return fmt.Sprintf("Water averaged %.0fml a day, %.0f%% of your goal. %s was your best day.", d.AvgWater, d.TargetPct, weekdayLabel(d.BestWeekday))
		}
	case models.QuestionMealTiming:
		if d := r.MealTiming; d != nil {
			switch d.Link {
			case models.MealLinkHigher:
				return fmt.Sprintf("Days with more than your usual %.1f meals also ran noticeably higher in calories.", d.AvgMeals)
			case models.MealLinkLower:
				return "Interestingly, days with more meals ran lower in calories than your lighter-meal days."
			default:
				return fmt.Sprintf("Meal count (%.1f a day on average) didn't move your calories much either way.", d.AvgMeals)
			}
		}
	case models.QuestionWeekendPattern:
		if d := r.WeekendPattern; d != nil && d.WeekendCount > 0 {
			if d.WeekendEffectPct > 0 {
				return fmt.Sprintf("Weekends ran about %.0f%% higher than weekdays (%.0f vs %.0f calories).", d.WeekendEffectPct, d.WeekendAvg, d.WeekdayAvg)
			}
			return fmt.Sprintf("Weekends ran about %.0f%% lower than weekdays (%.0f vs %.0f calories).", absFloat(d.WeekendEffectPct), d.WeekendAvg, d.WeekdayAvg)
		}
	case models.QuestionWeekComparison:
		if d := r.WeekComparison; d != nil && len(d.Metrics) > 0 {
			if d.BiggestImprovement != "" {
				return fmt.Sprintf("Compared with last week, your biggest improvement was %s.", strings.ReplaceAll(d.BiggestImprovement, "_", " "))
			}
			return "This week tracked closely with last week across calories, protein and logging."
		}
	case models.QuestionProteinTrend:
		if d := r.ProteinTrend; d != nil && d.Direction != models.TrendInsufficient {
			switch d.Direction {
			case models.TrendUp:
				return fmt.Sprintf("Protein is heading up by about %.0fg per week over %d weeks.", d.Slope, d.WeeksUsed)
			case models.TrendDown:
				return fmt.Sprintf("Protein is drifting down by about %.0fg per week over %d weeks.", absFloat(d.Slope), d.WeeksUsed)
			default:
				return fmt.Sprintf("Protein intake is holding steady across the last %d weeks.", d.WeeksUsed)
			}
		}
	case models.QuestionHighlights:
		if d := r.Highlights; d != nil && len(d.Highlights) > 0 {
			return strings.Join(d.Highlights, " ")
		}
	case models.QuestionFocusSuggestion:
		if d := r.FocusSuggestion; d != nil && d.Message != "" {
			return d.Message
		}
	}
	// Last-resort sentence when the detail is missing entirely.
	return fmt.Sprintf("Not enough detail to expand on %q this week - keep logging and check back next week.", def.Text)
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func weekdayLabel(i int) string {
	names := []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	if i < 0 || i >= len(names) {
		return "one day"
	}
	return names[i]
}
