package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nutriweek/backend/internal/models"
)

// DayLogRepository is an in-memory day log that doubles as the weekly data
// source. Safe for concurrent use.
type DayLogRepository struct {
	mu      sync.RWMutex
	days    map[string]models.DayData // keyed by date, WeekDateLayout
	targets Targets
}

// NewDayLogRepository creates a new in-memory day log repository.
func NewDayLogRepository(targets Targets) *DayLogRepository {
	return &DayLogRepository{
		days:    make(map[string]models.DayData),
		targets: targets,
	}
}

func dateKey(t time.Time) string {
	return t.UTC().Format(models.WeekDateLayout)
}

func (r *DayLogRepository) UpsertDay(ctx context.Context, day models.DayData) error {
	if day.Date.IsZero() {
		return fmt.Errorf("day log requires a date")
	}
	day.Date = time.Date(day.Date.Year(), day.Date.Month(), day.Date.Day(), 0, 0, 0, 0, time.UTC)
	day.Weekday = int(day.Date.Weekday())
	// A day counts as logged only once at least one meal is recorded, and
	// completeness implies logged.
	day.IsLogged = day.MealCount >= 1
	day.IsComplete = day.IsComplete && day.IsLogged

	r.mu.Lock()
	defer r.mu.Unlock()
	r.days[dateKey(day.Date)] = day
	return nil
}

func (r *DayLogRepository) GetDay(ctx context.Context, date time.Time) (*models.DayData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.days[dateKey(date)]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *DayLogRepository) Collect(ctx context.Context, weekStart time.Time) (*models.WeeklyCollectedData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	week := r.buildWeek(weekStart)
	if week == nil {
		return nil, nil
	}

	if prior := r.buildWeek(weekStart.AddDate(0, 0, -7)); prior != nil {
		week.PriorWeek = prior
	}
	if twoAgo := r.buildWeek(weekStart.AddDate(0, 0, -14)); twoAgo != nil {
		week.TwoWeeksAgo = twoAgo
	}
	week.LoggingStreak = r.streakEndingIn(weekStart)
	return week, nil
}

func (r *DayLogRepository) CollectBasic(ctx context.Context, weekStart time.Time) (*models.WeeklyCollectedData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.buildWeek(weekStart), nil
}

// buildWeek shapes seven Sunday-first days and fills the aggregates over
// logged days. Returns nil when nothing in the week is logged. Caller holds
// the lock.
func (r *DayLogRepository) buildWeek(weekStart time.Time) *models.WeeklyCollectedData {
	weekStart = models.WeekStartOf(weekStart)

	week := &models.WeeklyCollectedData{
		WeekStartDate: weekStart,
		Days:          make([]models.DayData, 7),
		CalorieTarget: r.targets.Calories,
		ProteinTarget: r.targets.Protein,
		WaterTarget:   r.targets.Water,
	}

	var cal, prot, carbs, fat, water float64
	for i := 0; i < 7; i++ {
		date := weekStart.AddDate(0, 0, i)
		day, ok := r.days[dateKey(date)]
		if !ok || !day.IsLogged {
			week.Days[i] = models.DayData{Date: date, Weekday: i}
			continue
		}
		week.Days[i] = day
		week.LoggedDayCount++
		cal += day.Calories
		prot += day.Protein
		carbs += day.Carbs
		fat += day.Fat
		water += day.Water
	}

	if week.LoggedDayCount == 0 {
		return nil
	}

	n := float64(week.LoggedDayCount)
	week.AvgCalories = cal / n
	week.AvgProtein = prot / n
	week.AvgCarbs = carbs / n
	week.AvgFat = fat / n
	week.AvgWater = water / n
	week.DataConfidence = n / 7
	return week
}

// streakEndingIn counts consecutive logged days ending at the last logged
// day of the given week, walking back across week boundaries. Caller holds
// the lock.
func (r *DayLogRepository) streakEndingIn(weekStart time.Time) int {
	weekStart = models.WeekStartOf(weekStart)

	var last time.Time
	for i := 6; i >= 0; i-- {
		date := weekStart.AddDate(0, 0, i)
		if d, ok := r.days[dateKey(date)]; ok && d.IsLogged {
			last = date
			break
		}
	}
	if last.IsZero() {
		return 0
	}

	streak := 0
	for d := last; ; d = d.AddDate(0, 0, -1) {
		if day, ok := r.days[dateKey(d)]; !ok || !day.IsLogged {
			break
		}
		streak++
	}
	return streak
}
