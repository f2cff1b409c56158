package analyzer

import (
	"fmt"
	"math"

	"github.com/nutriweek/backend/internal/models"
)

var weekdayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func weekdayName(i int) string {
	if i < 0 || i >= len(weekdayNames) {
		return "that day"
	}
	return weekdayNames[i]
}

// Highlights builds up to three "what went well" strings from an ordered
// check list. At least one string always comes back; when nothing applies a
// generic encouragement fills the slot. Always pinned, score fixed at 1.0.
func Highlights(week *models.WeeklyCollectedData) models.AnalysisResult {
	out := models.AnalysisResult{QuestionID: models.QuestionHighlights, Score: 1.0}

	const maxHighlights = 3
	highlights := make([]string, 0, maxHighlights)
	add := func(s string) {
		if len(highlights) < maxHighlights {
			highlights = append(highlights, s)
		}
	}

	logged := week.LoggedDayCount

	if logged >= 5 {
		add(fmt.Sprintf("You logged %d out of 7 days - great tracking consistency.", logged))
	}

	calHits := 0
	protHits := 0
	for _, d := range week.LoggedDays() {
		if calorieHit(d.Calories, week.CalorieTarget) {
			calHits++
		}
		if proteinHit(d.Protein, week.ProteinTarget) {
			protHits++
		}
	}
	if calHits >= 3 {
		add(fmt.Sprintf("Calories landed in your target range on %d days.", calHits))
	}
	if protHits >= 3 {
		add(fmt.Sprintf("You hit your protein target on %d days.", protHits))
	}

	if week.LoggingStreak >= 7 {
		add(fmt.Sprintf("Your logging streak reached %d days.", week.LoggingStreak))
	}

	if prior := week.PriorWeek; prior != nil && logged > prior.LoggedDayCount {
		add(fmt.Sprintf("You logged %d more days than last week.", logged-prior.LoggedDayCount))
	}

	if week.WaterTarget > 0 && week.AvgWater >= week.WaterTarget && week.WaterDayCount() >= 3 {
		add("You averaged at or above your water goal.")
	}

	if day, ok := standoutDay(week); ok {
		add(fmt.Sprintf("%s was a standout day - calories and protein both on target.", weekdayName(day)))
	}

	if len(highlights) == 0 {
		highlights = append(highlights, "Every logged day is a data point - keep going and the insights will follow.")
	}

	out.Highlights = &models.HighlightsResult{Highlights: highlights}
	return out
}

// standoutDay finds the logged day closest to the calorie target that also
// hit both the calorie band and the protein target.
func standoutDay(week *models.WeeklyCollectedData) (weekday int, ok bool) {
	bestDist := math.MaxFloat64
	for _, d := range week.LoggedDays() {
		if !calorieHit(d.Calories, week.CalorieTarget) || !proteinHit(d.Protein, week.ProteinTarget) {
			continue
		}
		dist := math.Abs(d.Calories - week.CalorieTarget)
		if dist < bestDist {
			bestDist = dist
			weekday = d.Weekday
			ok = true
		}
	}
	return weekday, ok
}

// FocusSuggestion walks a priority-ordered decision list and stops at the
// first matching rule. Always pinned, score fixed at 0.9.
func FocusSuggestion(week *models.WeeklyCollectedData) models.AnalysisResult {
	out := models.AnalysisResult{QuestionID: models.QuestionFocusSuggestion, Score: 0.9}

	logged := week.LoggedDayCount
	waterDays := week.WaterDayCount()

	var area models.FocusArea
	var msg string
	switch {
	case week.ProteinTarget > 0 && logged >= 3 && week.AvgProtein < 0.8*week.ProteinTarget:
		area = models.FocusProtein
		msg = fmt.Sprintf("Protein averaged %.0fg against a %.0fg target - try adding a protein-forward meal or snack.", week.AvgProtein, week.ProteinTarget)
	case week.WaterTarget > 0 && waterDays >= 2 && week.AvgWater < 0.7*week.WaterTarget:
		area = models.FocusHydration
		msg = "Water intake ran well below your goal - keeping a bottle nearby usually helps."
	case logged < 5:
		area = models.FocusConsistency
		msg = fmt.Sprintf("You logged %d of 7 days - a few more logged days will sharpen next week's insights.", logged)
	case weekendGapExceeds(week, 20):
		area = models.FocusWeekend
		msg = "Weekends diverge noticeably from weekdays - planning one weekend meal ahead can close the gap."
	default:
		area = models.FocusMomentum
		msg = "You're maintaining momentum - keep doing what's working."
	}

	out.FocusSuggestion = &models.FocusSuggestionResult{Area: area, Message: msg}
	return out
}

// weekendGapExceeds reports whether weekend calories deviate from weekday
// calories by more than thresholdPct, given at least one logged day on each
// side.
func weekendGapExceeds(week *models.WeeklyCollectedData, thresholdPct float64) bool {
	var weekdaySum, weekendSum float64
	weekdayN, weekendN := 0, 0
	for _, d := range week.LoggedDays() {
		if isWeekend(d.Weekday) {
			weekendSum += d.Calories
			weekendN++
		} else {
			weekdaySum += d.Calories
			weekdayN++
		}
	}
	if weekdayN == 0 || weekendN == 0 {
		return false
	}
	weekdayAvg := weekdaySum / float64(weekdayN)
	if weekdayAvg == 0 {
		return false
	}
	weekendAvg := weekendSum / float64(weekendN)
	return math.Abs((weekendAvg-weekdayAvg)/weekdayAvg*100) > thresholdPct
}
