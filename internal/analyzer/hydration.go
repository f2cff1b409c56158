package analyzer

import (
	"math"

	"github.com/nutriweek/backend/internal/models"
)

// hydrationSplitNotePct: a weekday/weekend hydration gap beyond 20% raises
// the score floor.
const hydrationSplitNotePct = 20.0

// Hydration reports water intake against target with best/worst days and a
// weekday/weekend split. Needs at least 3 days with any water logged.
func Hydration(week *models.WeeklyCollectedData) models.AnalysisResult {
	out := models.AnalysisResult{QuestionID: models.QuestionHydration}

	waterDays := week.WaterDayCount()
	if waterDays < 3 {
		out.Hydration = &models.HydrationResult{
			Target:    week.WaterTarget,
			WaterDays: waterDays,
		}
		return out
	}

	var sum float64
	best, worst := -1, -1
	var weekdaySum, weekendSum float64
	weekdayN, weekendN := 0, 0
	days := make([]models.DayData, 0, 7)
	for _, d := range week.Days {
		if d.Water <= 0 {
			continue
		}
		days = append(days, d)
		sum += d.Water
		if best < 0 || d.Water > days[best].Water {
			best = len(days) - 1
		}
		if worst < 0 || d.Water < days[worst].Water {
			worst = len(days) - 1
		}
		if isWeekend(d.Weekday) {
			weekendSum += d.Water
			weekendN++
		} else {
			weekdaySum += d.Water
			weekdayN++
		}
	}

	avg := sum / float64(waterDays)
	var weekdayAvg, weekendAvg float64
	if weekdayN > 0 {
		weekdayAvg = weekdaySum / float64(weekdayN)
	}
	if weekendN > 0 {
		weekendAvg = weekendSum / float64(weekendN)
	}

	var splitPct float64
	if weekdayAvg > 0 && weekendN > 0 {
		splitPct = (weekendAvg - weekdayAvg) / weekdayAvg * 100
	}

	targetPct := pctOfTarget(avg, week.WaterTarget)

	score := 0.4
	if week.WaterTarget > 0 && targetPct < 70 {
		score = 0.7
	}
	if math.Abs(splitPct) > hydrationSplitNotePct && score < 0.6 {
		score = 0.6
	}
	out.Score = score

	out.Hydration = &models.HydrationResult{
		AvgWater:     avg,
		Target:       week.WaterTarget,
		TargetPct:    targetPct,
		BestWeekday:  days[best].Weekday,
		BestVolume:   days[best].Water,
		WorstWeekday: days[worst].Weekday,
		WorstVolume:  days[worst].Water,
		WeekdayAvg:   weekdayAvg,
		WeekendAvg:   weekendAvg,
		SplitPct:     splitPct,
		WaterDays:    waterDays,
	}
	return out
}
