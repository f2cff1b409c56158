package analyzer

import (
	"math"

	"github.com/nutriweek/backend/internal/models"
	"github.com/nutriweek/backend/internal/stats"
)

const (
	// calorieSteadySlope: weekly calorie slopes below 50 cal/week read as
	// holding steady.
	calorieSteadySlope = 50.0
	// comparisonDeadbandPct: week-over-week changes within +-3% count as
	// "same".
	comparisonDeadbandPct = 3.0
)

// CalorieTrend fits average calories over up to three weekly points. A
// prior week with at least 3 logged days is required; the week before that
// joins the fit only when it clears the same bar.
func CalorieTrend(week *models.WeeklyCollectedData) models.AnalysisResult {
	out := models.AnalysisResult{QuestionID: models.QuestionCalorieTrend}

	prior := week.PriorWeek
	if prior == nil || prior.LoggedDayCount < 3 {
		out.CalorieTrend = &models.CalorieTrendResult{
			Direction:      models.TrendInsufficient,
			WeeklyAverages: []float64{},
		}
		return out
	}

	avgs := make([]float64, 0, 3)
	if w := week.TwoWeeksAgo; w != nil && w.LoggedDayCount >= 3 {
		avgs = append(avgs, w.AvgCalories)
	}
	avgs = append(avgs, prior.AvgCalories, week.AvgCalories)

	fit := stats.LinearRegression(avgs)

	direction := models.TrendSteady
	if fit.Slope > calorieSteadySlope {
		direction = models.TrendUp
	} else if fit.Slope < -calorieSteadySlope {
		direction = models.TrendDown
	}

	if direction == models.TrendSteady {
		out.Score = 0.3
	} else {
		out.Score = 0.6
		if fit.RSquared > 0.6 {
			out.Score = 0.8
		}
	}

	out.CalorieTrend = &models.CalorieTrendResult{
		Direction:      direction,
		Slope:          fit.Slope,
		RSquared:       fit.RSquared,
		WeeksUsed:      len(avgs),
		WeeklyAverages: avgs,
	}
	return out
}

// WeekComparison builds a fixed metric list against the prior week. Both
// weeks need at least 4 logged days. Water joins the list only when both
// weeks have water data.
func WeekComparison(week *models.WeeklyCollectedData) models.AnalysisResult {
	out := models.AnalysisResult{QuestionID: models.QuestionWeekComparison}

	prior := week.PriorWeek
	if week.LoggedDayCount < 4 || prior == nil || prior.LoggedDayCount < 4 {
		out.WeekComparison = &models.WeekComparisonResult{Metrics: []models.ComparisonMetric{}}
		return out
	}

	metrics := []models.ComparisonMetric{
		compareMetric("calories", week.AvgCalories, prior.AvgCalories),
		compareMetric("protein", week.AvgProtein, prior.AvgProtein),
		compareMetric("logged_days", float64(week.LoggedDayCount), float64(prior.LoggedDayCount)),
		compareMetric("total_meals", float64(totalMeals(week)), float64(totalMeals(prior))),
	}
	if week.AvgWater > 0 && prior.AvgWater > 0 {
		metrics = append(metrics, compareMetric("water", week.AvgWater, prior.AvgWater))
	}

	// Biggest improvement: largest upward move, calories excluded because
	// "up" is not unambiguously better for them.
	biggest := ""
	var biggestPct float64
	var maxAbs float64
	for _, m := range metrics {
		if math.Abs(m.ChangePct) > maxAbs {
			maxAbs = math.Abs(m.ChangePct)
		}
		if m.Name == "calories" || m.Direction != models.ChangeUp {
			continue
		}
		if m.ChangePct > biggestPct {
			biggestPct = m.ChangePct
			biggest = m.Name
		}
	}

	out.Score = stats.Clamp(maxAbs/25, 0, 1)*0.7 + 0.2
	out.WeekComparison = &models.WeekComparisonResult{
		Metrics:            metrics,
		BiggestImprovement: biggest,
	}
	return out
}

func compareMetric(name string, current, previous float64) models.ComparisonMetric {
	var pct float64
	if previous != 0 {
		pct = (current - previous) / previous * 100
	} else if current != 0 {
		pct = 100
	}

	direction := models.ChangeSame
	if pct > comparisonDeadbandPct {
		direction = models.ChangeUp
	} else if pct < -comparisonDeadbandPct {
		direction = models.ChangeDown
	}

	return models.ComparisonMetric{
		Name:      name,
		Current:   current,
		Previous:  previous,
		ChangePct: pct,
		Direction: direction,
	}
}

func totalMeals(week *models.WeeklyCollectedData) int {
	total := 0
	for _, d := range week.Days {
		if d.IsLogged {
			total += d.MealCount
		}
	}
	return total
}
