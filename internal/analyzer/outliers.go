package analyzer

import (
	"math"

	"github.com/nutriweek/backend/internal/models"
	"github.com/nutriweek/backend/internal/stats"
)

// outlierDeviations is the sample-stddev multiple beyond which a day counts
// as a calorie outlier.
const outlierDeviations = 1.5

// CalorieOutliers flags days more than 1.5 sample standard deviations from
// the week's mean calories. Needs at least 4 logged days.
//
// The score is deliberately non-monotonic in the outlier count: one or two
// outliers make a tellable story, zero means nothing to report, and three
// or more reads as noise rather than insight.
func CalorieOutliers(week *models.WeeklyCollectedData) models.AnalysisResult {
	out := models.AnalysisResult{QuestionID: models.QuestionCalorieOutliers}
	logged := week.LoggedDayCount
	if logged < 4 {
		out.CalorieOutliers = &models.CalorieOutliersResult{
			OutlierDays: []models.OutlierDay{},
			LoggedDays:  logged,
		}
		return out
	}

	calories := loggedSeries(week, func(d models.DayData) float64 { return d.Calories })
	mean := stats.Mean(calories)
	sd := stats.StdDev(calories)

	outliers := make([]models.OutlierDay, 0, 2)
	var keptSum float64
	kept := 0
	for _, d := range week.LoggedDays() {
		dev := d.Calories - mean
		if sd > 0 && math.Abs(dev) > outlierDeviations*sd {
			outliers = append(outliers, models.OutlierDay{
				Date:      d.Date,
				Weekday:   d.Weekday,
				Calories:  d.Calories,
				Deviation: dev,
			})
			continue
		}
		keptSum += d.Calories
		kept++
	}

	adjusted := mean
	if kept > 0 {
		adjusted = keptSum / float64(kept)
	}

	switch n := len(outliers); {
	case n == 0:
		out.Score = 0.1
	case n <= 2:
		out.Score = 0.8
	default:
		out.Score = 0.5
	}

	out.CalorieOutliers = &models.CalorieOutliersResult{
		WeekMean:     mean,
		StdDev:       sd,
		OutlierDays:  outliers,
		AdjustedMean: adjusted,
		LoggedDays:   logged,
	}
	return out
}
