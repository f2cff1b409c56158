package analyzer

import (
	"math"

	"github.com/nutriweek/backend/internal/models"
	"github.com/nutriweek/backend/internal/stats"
)

const (
	// proteinTrendNoteGrams: week-over-week protein changes smaller than
	// this are not worth mentioning.
	proteinTrendNoteGrams = 5.0
	// proteinSteadySlopeGrams: multi-week slopes below this read as steady.
	proteinSteadySlopeGrams = 3.0
)

// ProteinSufficiency reports average protein against target. Shortfall is
// the interesting signal, so the score rises as adequacy falls.
func ProteinSufficiency(week *models.WeeklyCollectedData) models.AnalysisResult {
	out := models.AnalysisResult{QuestionID: models.QuestionProteinSufficiency}
	logged := week.LoggedDayCount
	if logged < 3 || week.ProteinTarget <= 0 {
		out.ProteinSufficiency = &models.ProteinSufficiencyResult{
			Target:     week.ProteinTarget,
			LoggedDays: logged,
		}
		return out
	}

	pct := week.AvgProtein / week.ProteinTarget * 100

	trend := ""
	var deltaGrams float64
	if prior := week.PriorWeek; prior != nil && prior.LoggedDayCount > 0 {
		deltaGrams = week.AvgProtein - prior.AvgProtein
		if deltaGrams > proteinTrendNoteGrams {
			trend = "up"
		} else if deltaGrams < -proteinTrendNoteGrams {
			trend = "down"
		}
	}

	switch {
	case pct < 70:
		out.Score = 0.9
	case pct < 85:
		out.Score = 0.7
	case pct < 100:
		out.Score = 0.5
	default:
		out.Score = 0.3
	}

	out.ProteinSufficiency = &models.ProteinSufficiencyResult{
		AvgProtein:    week.AvgProtein,
		Target:        week.ProteinTarget,
		AvgProteinPct: pct,
		TrendVsPrior:  trend,
		DeltaGrams:    deltaGrams,
		LoggedDays:    logged,
	}
	return out
}

// ProteinTrend fits protein averages across up to three weeks. A direction
// needs at least two weeks that each have 4+ logged days; a protein trend
// that diverges in sign from the calorie trend is nutritionally notable and
// earns a score bonus.
func ProteinTrend(week *models.WeeklyCollectedData) models.AnalysisResult {
	out := models.AnalysisResult{QuestionID: models.QuestionProteinTrend}

	weeks := trendWeeks(week, 4)
	if len(weeks) < 2 {
		out.ProteinTrend = &models.ProteinTrendResult{
			Direction:      models.TrendInsufficient,
			WeeklyAverages: []float64{},
		}
		return out
	}

	proteinAvgs := make([]float64, 0, len(weeks))
	calorieAvgs := make([]float64, 0, len(weeks))
	for _, w := range weeks {
		proteinAvgs = append(proteinAvgs, w.AvgProtein)
		calorieAvgs = append(calorieAvgs, w.AvgCalories)
	}

	protFit := stats.LinearRegression(proteinAvgs)
	calFit := stats.LinearRegression(calorieAvgs)

	direction := models.TrendSteady
	if protFit.Slope > proteinSteadySlopeGrams {
		direction = models.TrendUp
	} else if protFit.Slope < -proteinSteadySlopeGrams {
		direction = models.TrendDown
	}

	diverges := direction != models.TrendSteady &&
		math.Abs(calFit.Slope) >= calorieSteadySlope &&
		(protFit.Slope > 0) != (calFit.Slope > 0)

	if direction == models.TrendSteady {
		out.Score = 0.3
	} else {
		out.Score = 0.5
	}
	if diverges {
		out.Score = stats.Clamp(out.Score+0.3, 0, 1)
	}

	out.ProteinTrend = &models.ProteinTrendResult{
		Direction:            direction,
		Slope:                protFit.Slope,
		WeeksUsed:            len(weeks),
		WeeklyAverages:       proteinAvgs,
		DivergesFromCalories: diverges,
	}
	return out
}

// trendWeeks collects up to three weeks oldest-first, keeping only weeks
// with at least minDays logged days. The current week is always last.
func trendWeeks(week *models.WeeklyCollectedData, minDays int) []*models.WeeklyCollectedData {
	weeks := make([]*models.WeeklyCollectedData, 0, 3)
	if w := week.TwoWeeksAgo; w != nil && w.LoggedDayCount >= minDays {
		weeks = append(weeks, w)
	}
	if w := week.PriorWeek; w != nil && w.LoggedDayCount >= minDays {
		weeks = append(weeks, w)
	}
	if week.LoggedDayCount >= minDays {
		weeks = append(weeks, week)
	}
	return weeks
}
