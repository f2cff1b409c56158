package models

import "time"

// WeekDateLayout is the wire format for week-start dates (always a Sunday).
const WeekDateLayout = "2006-01-02"

// DayData holds one day's nutrition totals. Aggregate fields are always
// present but zero on unlogged days.
type DayData struct {
	Date       time.Time `json:"date"`
	Weekday    int       `json:"weekday"` // 0=Sunday .. 6=Saturday
	IsLogged   bool      `json:"is_logged"`
	IsComplete bool      `json:"is_complete"`
	Calories   float64   `json:"calories"`
	Protein    float64   `json:"protein"`
	Carbs      float64   `json:"carbs"`
	Fat        float64   `json:"fat"`
	Fiber      float64   `json:"fiber"`
	Water      float64   `json:"water"`
	MealCount  int       `json:"meal_count"`
	FoodIDs    []string  `json:"food_ids,omitempty"`
}

// WeeklyCollectedData is one calendar week of logging data, Sunday-first.
// Averages cover logged days only. PriorWeek and TwoWeeksAgo are lightweight
// context weeks (no nested priors of their own) and may be nil.
type WeeklyCollectedData struct {
	WeekStartDate  time.Time `json:"week_start_date"`
	Days           []DayData `json:"days"` // always 7 entries
	LoggedDayCount int       `json:"logged_day_count"`

	AvgCalories float64 `json:"avg_calories"`
	AvgProtein  float64 `json:"avg_protein"`
	AvgCarbs    float64 `json:"avg_carbs"`
	AvgFat      float64 `json:"avg_fat"`
	AvgWater    float64 `json:"avg_water"`

	CalorieTarget float64 `json:"calorie_target"`
	ProteinTarget float64 `json:"protein_target"`
	WaterTarget   float64 `json:"water_target"`

	PriorWeek   *WeeklyCollectedData `json:"prior_week,omitempty"`
	TwoWeeksAgo *WeeklyCollectedData `json:"two_weeks_ago,omitempty"`

	DataConfidence float64 `json:"data_confidence"` // loggedDays / 7
	LoggingStreak  int     `json:"logging_streak"`
}

// WeekStartOf truncates t to midnight UTC on the Sunday starting its week.
func WeekStartOf(t time.Time) time.Time {
	t = t.UTC()
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// LoggedDays returns the logged entries in week order.
func (w *WeeklyCollectedData) LoggedDays() []DayData {
	logged := make([]DayData, 0, len(w.Days))
	for _, d := range w.Days {
		if d.IsLogged {
			logged = append(logged, d)
		}
	}
	return logged
}

// WaterDayCount counts days with any water logged.
func (w *WeeklyCollectedData) WaterDayCount() int {
	n := 0
	for _, d := range w.Days {
		if d.Water > 0 {
			n++
		}
	}
	return n
}

// WeekdayWeekendSplit counts logged weekdays (Mon-Fri) and weekend days.
func (w *WeeklyCollectedData) WeekdayWeekendSplit() (weekdays, weekendDays int) {
	for _, d := range w.Days {
		if !d.IsLogged {
			continue
		}
		if d.Weekday == 0 || d.Weekday == 6 {
			weekendDays++
		} else {
			weekdays++
		}
	}
	return weekdays, weekendDays
}
