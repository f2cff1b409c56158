package analyzer

import (
	"math"

	"github.com/nutriweek/backend/internal/models"
	"github.com/nutriweek/backend/internal/stats"
)

const (
	// calorieHitBandPct: a day hits its calorie target when within +-15%.
	calorieHitBandPct = 15.0
	// proteinHitSlackGrams: protein counts as hit from 10 g under target up.
	proteinHitSlackGrams = 10.0
	// neutralBandPct: weekly surplus/deficit within +-3% reads as neutral.
	neutralBandPct = 3.0
)

// calorieHit reports whether a day's calories land within the target band.
func calorieHit(calories, target float64) bool {
	if target <= 0 {
		return false
	}
	return math.Abs(calories-target)/target*100 <= calorieHitBandPct
}

// proteinHit reports whether a day's protein reaches target minus slack.
func proteinHit(protein, target float64) bool {
	if target <= 0 {
		return false
	}
	return protein >= target-proteinHitSlackGrams
}

// TargetHitRate counts logged days that hit the calorie and protein targets.
// The catalog gates minimum days upstream; the analyzer only dampens the
// score when fewer than 4 days are logged.
func TargetHitRate(week *models.WeeklyCollectedData) models.AnalysisResult {
	out := models.AnalysisResult{QuestionID: models.QuestionTargetHitRate}
	logged := week.LoggedDayCount

	calHits, protHits := 0, 0
	for _, d := range week.LoggedDays() {
		if calorieHit(d.Calories, week.CalorieTarget) {
			calHits++
		}
		if proteinHit(d.Protein, week.ProteinTarget) {
			protHits++
		}
	}

	var calRate, protRate float64
	if logged > 0 {
		calRate = float64(calHits) / float64(logged) * 100
		protRate = float64(protHits) / float64(logged) * 100
	}

	switch {
	case logged < 4:
		out.Score = 0.2
	case calRate >= 80 && protRate >= 80:
		out.Score = 0.8
	case calRate >= 80 || calRate <= 20:
		out.Score = 0.7
	default:
		out.Score = 0.4
	}

	out.TargetHitRate = &models.TargetHitRateResult{
		LoggedDays:     logged,
		CalorieHitDays: calHits,
		ProteinHitDays: protHits,
		CalorieHitRate: calRate,
		ProteinHitRate: protRate,
	}
	return out
}

// SurplusDeficit compares average calories on logged days to the target.
// AlignsWithGoal currently mirrors IsNeutral: no goal direction is threaded
// into the analysis yet, so an intentional bulk or cut never aligns.
func SurplusDeficit(week *models.WeeklyCollectedData) models.AnalysisResult {
	out := models.AnalysisResult{QuestionID: models.QuestionSurplusDeficit}
	logged := week.LoggedDayCount
	if logged < 3 || week.CalorieTarget <= 0 {
		out.SurplusDeficit = &models.SurplusDeficitResult{
			Target:     week.CalorieTarget,
			LoggedDays: logged,
		}
		return out
	}

	delta := week.AvgCalories - week.CalorieTarget
	deltaPct := delta / week.CalorieTarget * 100
	neutral := math.Abs(deltaPct) <= neutralBandPct

	if neutral {
		out.Score = 0.2
	} else {
		out.Score = stats.Clamp(math.Abs(deltaPct)/20, 0, 1)*0.7 + 0.1
	}

	out.SurplusDeficit = &models.SurplusDeficitResult{
		AvgCalories:    week.AvgCalories,
		Target:         week.CalorieTarget,
		Delta:          delta,
		DeltaPct:       deltaPct,
		IsNeutral:      neutral,
		AlignsWithGoal: neutral,
		LoggedDays:     logged,
	}
	return out
}
