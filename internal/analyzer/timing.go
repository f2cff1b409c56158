package analyzer

import (
	"math"

	"github.com/nutriweek/backend/internal/models"
	"github.com/nutriweek/backend/internal/stats"
)

const (
	// mealLinkNotePct: the meal-count/calorie link is only reported when the
	// above/below-mean groups differ by more than 10% relative.
	mealLinkNotePct = 10.0
)

// MealTiming relates meal count to calorie intake by splitting logged days
// into above- and below-mean meal-count groups.
func MealTiming(week *models.WeeklyCollectedData) models.AnalysisResult {
	out := models.AnalysisResult{QuestionID: models.QuestionMealTiming}
	logged := week.LoggedDayCount
	if logged < 3 {
		out.MealTiming = &models.MealTimingResult{
			Link:       models.MealLinkNone,
			LoggedDays: logged,
		}
		return out
	}

	days := week.LoggedDays()
	counts := make([]float64, 0, len(days))
	minMeals, maxMeals := days[0].MealCount, days[0].MealCount
	for _, d := range days {
		counts = append(counts, float64(d.MealCount))
		if d.MealCount < minMeals {
			minMeals = d.MealCount
		}
		if d.MealCount > maxMeals {
			maxMeals = d.MealCount
		}
	}
	avgMeals := stats.Mean(counts)

	var aboveSum, belowSum float64
	aboveN, belowN := 0, 0
	for _, d := range days {
		if float64(d.MealCount) > avgMeals {
			aboveSum += d.Calories
			aboveN++
		} else {
			belowSum += d.Calories
			belowN++
		}
	}

	link := models.MealLinkNone
	var aboveAvg, belowAvg float64
	if aboveN > 0 && belowN > 0 {
		aboveAvg = aboveSum / float64(aboveN)
		belowAvg = belowSum / float64(belowN)
		if belowAvg > 0 {
			relDiff := (aboveAvg - belowAvg) / belowAvg * 100
			if relDiff > mealLinkNotePct {
				link = models.MealLinkHigher
			} else if relDiff < -mealLinkNotePct {
				link = models.MealLinkLower
			}
		}
	}

	if link != models.MealLinkNone {
		out.Score = 0.6
	} else {
		out.Score = 0.3
	}

	out.MealTiming = &models.MealTimingResult{
		AvgMeals:         avgMeals,
		MinMeals:         minMeals,
		MaxMeals:         maxMeals,
		Link:             link,
		AboveAvgCalories: aboveAvg,
		BelowAvgCalories: belowAvg,
		LoggedDays:       logged,
	}
	return out
}

// WeekendPattern measures the percent difference between weekend and
// weekday calorie averages. Needs at least 3 logged weekdays and 1 logged
// weekend day.
func WeekendPattern(week *models.WeeklyCollectedData) models.AnalysisResult {
	out := models.AnalysisResult{QuestionID: models.QuestionWeekendPattern}

	weekdays, weekendDays := week.WeekdayWeekendSplit()
	if weekdays < 3 || weekendDays < 1 {
		out.WeekendPattern = &models.WeekendPatternResult{
			WeekdayCount: weekdays,
			WeekendCount: weekendDays,
		}
		return out
	}

	var weekdaySum, weekendSum float64
	for _, d := range week.LoggedDays() {
		if isWeekend(d.Weekday) {
			weekendSum += d.Calories
		} else {
			weekdaySum += d.Calories
		}
	}
	weekdayAvg := weekdaySum / float64(weekdays)
	weekendAvg := weekendSum / float64(weekendDays)

	var effect float64
	if weekdayAvg > 0 {
		effect = (weekendAvg - weekdayAvg) / weekdayAvg * 100
	}

	out.Score = stats.Clamp(math.Abs(effect)/30, 0, 1) * 0.8
	out.WeekendPattern = &models.WeekendPatternResult{
		WeekdayAvg:       weekdayAvg,
		WeekendAvg:       weekendAvg,
		WeekendEffectPct: effect,
		WeekdayCount:     weekdays,
		WeekendCount:     weekendDays,
	}
	return out
}
