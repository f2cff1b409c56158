package service

import (
	"testing"
	"time"

	"github.com/nutriweek/backend/internal/models"
)

func testDay(weekday int, cal, prot, water float64) models.DayData {
	return models.DayData{
		Date:      time.Date(2026, 8, 2+weekday, 0, 0, 0, 0, time.UTC),
		Weekday:   weekday,
		IsLogged:  true,
		Calories:  cal,
		Protein:   prot,
		Carbs:     cal * 0.45 / 4,
		Fat:       cal * 0.30 / 9,
		Water:     water,
		MealCount: 3,
	}
}

func testWeek(loggedDays ...models.DayData) *models.WeeklyCollectedData {
	w := &models.WeeklyCollectedData{
		WeekStartDate: time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC),
		Days:          make([]models.DayData, 7),
		CalorieTarget: 2000,
		ProteinTarget: 150,
		WaterTarget:   2000,
	}
	for i := range w.Days {
		w.Days[i] = models.DayData{Weekday: i}
	}
	var cal, prot, carbs, fat, water float64
	for _, d := range loggedDays {
		w.Days[d.Weekday] = d
		w.LoggedDayCount++
		cal += d.Calories
		prot += d.Protein
		carbs += d.Carbs
		fat += d.Fat
		water += d.Water
	}
	if w.LoggedDayCount > 0 {
		n := float64(w.LoggedDayCount)
		w.AvgCalories = cal / n
		w.AvgProtein = prot / n
		w.AvgCarbs = carbs / n
		w.AvgFat = fat / n
		w.AvgWater = water / n
	}
	w.DataConfidence = float64(w.LoggedDayCount) / 7
	return w
}

func fullTestWeek() *models.WeeklyCollectedData {
	days := make([]models.DayData, 0, 7)
	for i := 0; i < 7; i++ {
		days = append(days, testDay(i, 2000, 150, 2000))
	}
	return testWeek(days...)
}

func TestScoreWeekExcludesPermanentlyGated(t *testing.T) {
	scored := ScoreWeek(fullTestWeek())
	if len(scored) != 15 {
		t.Fatalf("scored = %d entries, want 15", len(scored))
	}
	for _, q := range scored {
		if q.QuestionID == models.QuestionFiberIntake || q.QuestionID == models.QuestionMicronutrientGap {
			t.Errorf("permanently gated %s reached the scored set", q.QuestionID)
		}
	}
}

func TestGateRequiresPriorWeek(t *testing.T) {
	week := fullTestWeek()
	scored := ScoreWeek(week)
	byID := make(map[models.QuestionID]models.ScoredQuestion)
	for _, q := range scored {
		byID[q.QuestionID] = q
	}

	for _, id := range []models.QuestionID{
		models.QuestionCalorieTrend,
		models.QuestionWeekComparison,
		models.QuestionProteinTrend,
	} {
		if byID[id].IsAvailable {
			t.Errorf("%s available without prior week", id)
		}
	}

	week.PriorWeek = fullTestWeek()
	byID = make(map[models.QuestionID]models.ScoredQuestion)
	for _, q := range ScoreWeek(week) {
		byID[q.QuestionID] = q
	}
	if !byID[models.QuestionCalorieTrend].IsAvailable {
		t.Error("calorie trend unavailable with a full prior week")
	}
	if !byID[models.QuestionWeekComparison].IsAvailable {
		t.Error("week comparison unavailable with a full prior week")
	}
	// Protein trend additionally needs the two-weeks-ago week.
	if byID[models.QuestionProteinTrend].IsAvailable {
		t.Error("protein trend available without a two-weeks-ago week")
	}

	week.TwoWeeksAgo = fullTestWeek()
	for _, q := range ScoreWeek(week) {
		if q.QuestionID == models.QuestionProteinTrend && !q.IsAvailable {
			t.Error("protein trend unavailable with both context weeks")
		}
	}
}

func TestGateWeekendPattern(t *testing.T) {
	// Four logged weekdays, no weekend day.
	week := testWeek(
		testDay(1, 2000, 150, 0),
		testDay(2, 2000, 150, 0),
		testDay(3, 2000, 150, 0),
		testDay(4, 2000, 150, 0),
	)
	for _, q := range ScoreWeek(week) {
		if q.QuestionID == models.QuestionWeekendPattern && q.IsAvailable {
			t.Error("weekend pattern available with no weekend day")
		}
	}
}

func TestGateWaterData(t *testing.T) {
	week := testWeek(
		testDay(1, 2000, 150, 1800),
		testDay(2, 2000, 150, 0),
		testDay(3, 2000, 150, 0),
		testDay(4, 2000, 150, 1500),
	)
	for _, q := range ScoreWeek(week) {
		if q.QuestionID == models.QuestionHydration && q.IsAvailable {
			t.Error("hydration available with only 2 water days")
		}
	}
}

func TestAnalyzerRunsRegardlessOfGate(t *testing.T) {
	// Two logged days: highlights is available (min 2) and carries a
	// nonzero score; most others are gated yet still analyzed.
	week := testWeek(testDay(1, 2000, 150, 0), testDay(3, 2000, 150, 0))
	for _, q := range ScoreWeek(week) {
		if q.QuestionID == models.QuestionHighlights {
			if !q.IsAvailable || q.Score != 1.0 {
				t.Errorf("highlights: available=%t score=%v", q.IsAvailable, q.Score)
			}
		}
		if q.AnalysisResult.QuestionID != q.QuestionID {
			t.Errorf("%s missing analysis result", q.QuestionID)
		}
	}
}

func TestNeedsMoreDataGap(t *testing.T) {
	week := testWeek(testDay(1, 2000, 150, 0), testDay(3, 2000, 150, 0))
	scored := ScoreWeek(week)
	entries := NeedsMoreData(scored, week.LoggedDayCount)

	found := false
	for _, e := range entries {
		if e.QuestionID == models.QuestionCalorieOutliers {
			found = true
			if e.DaysLogged != 2 || e.DaysNeeded != 4 || e.DaysMissing != 2 {
				t.Errorf("outliers gap = %+v", e)
			}
		}
		if e.QuestionID == models.QuestionHighlights || e.QuestionID == models.QuestionFocusSuggestion {
			t.Errorf("available question %s in needs-more-data list", e.QuestionID)
		}
	}
	if !found {
		t.Error("calorie outliers missing from needs-more-data list")
	}
}
