package analyzer

import (
	"github.com/nutriweek/backend/internal/models"
	"github.com/nutriweek/backend/internal/stats"
)

// MacroConsistency measures day-to-day variation of the four tracked macros
// via their coefficients of variation. Needs at least 3 logged days.
func MacroConsistency(week *models.WeeklyCollectedData) models.AnalysisResult {
	out := models.AnalysisResult{QuestionID: models.QuestionMacroConsistency}
	logged := week.LoggedDayCount
	if logged < 3 {
		out.MacroConsistency = &models.MacroConsistencyResult{LoggedDays: logged}
		return out
	}

	cvs := map[string]float64{
		"calories": stats.CoefficientOfVariation(loggedSeries(week, func(d models.DayData) float64 { return d.Calories })),
		"protein":  stats.CoefficientOfVariation(loggedSeries(week, func(d models.DayData) float64 { return d.Protein })),
		"carbs":    stats.CoefficientOfVariation(loggedSeries(week, func(d models.DayData) float64 { return d.Carbs })),
		"fat":      stats.CoefficientOfVariation(loggedSeries(week, func(d models.DayData) float64 { return d.Fat })),
	}

	// Deterministic argmin/argmax: iterate a fixed order, not the map.
	order := []string{"calories", "protein", "carbs", "fat"}
	most, least := order[0], order[0]
	var meanCV float64
	for _, name := range order {
		meanCV += cvs[name]
		if cvs[name] < cvs[most] {
			most = name
		}
		if cvs[name] > cvs[least] {
			least = name
		}
	}
	meanCV /= 4

	tier := models.TierHighlyVariable
	switch {
	case meanCV < 10:
		tier = models.TierVeryConsistent
	case meanCV < 20:
		tier = models.TierConsistent
	case meanCV < 35:
		tier = models.TierVariable
	}

	// A big spread between the steadiest and swingiest macro is the story
	// here; more logged days make it trustworthy.
	spread := cvs[least] - cvs[most]
	score := stats.Clamp(spread/50, 0, 1) * 0.6
	if logged >= 5 {
		score += 0.3
	} else {
		score += 0.1
	}

	out.Score = stats.Clamp(score, 0, 1)
	out.MacroConsistency = &models.MacroConsistencyResult{
		CalorieCV:       cvs["calories"],
		ProteinCV:       cvs["protein"],
		CarbCV:          cvs["carbs"],
		FatCV:           cvs["fat"],
		MeanCV:          meanCV,
		Tier:            tier,
		MostConsistent:  most,
		LeastConsistent: least,
		LoggedDays:      logged,
	}
	return out
}

// DayByDay classifies each day against the calorie target and looks for a
// first-half/second-half shape in the logged sequence.
func DayByDay(week *models.WeeklyCollectedData) models.AnalysisResult {
	out := models.AnalysisResult{QuestionID: models.QuestionDayByDay}
	logged := week.LoggedDayCount

	days := make([]models.DayClassification, 0, len(week.Days))
	loggedStatuses := make([]models.DayStatus, 0, len(week.Days))
	onTarget := 0
	for _, d := range week.Days {
		c := models.DayClassification{Weekday: d.Weekday, Status: models.DayNoData}
		if d.IsLogged {
			pct := pctOfTarget(d.Calories, week.CalorieTarget)
			c.TargetPct = pct
			c.Status = classifyDay(pct)
			loggedStatuses = append(loggedStatuses, c.Status)
			if c.Status == models.DayOnTarget {
				onTarget++
			}
		}
		days = append(days, c)
	}

	result := &models.DayByDayResult{
		Days:          days,
		OnTargetCount: onTarget,
		Pattern:       models.PatternSteady,
		LoggedDays:    logged,
	}
	out.DayByDay = result

	if logged < 3 {
		return out
	}

	// Compare on-target counts between the halves of the logged sequence.
	half := len(loggedStatuses) / 2
	firstHalf, secondHalf := 0, 0
	for i, s := range loggedStatuses {
		if s != models.DayOnTarget {
			continue
		}
		if i < half {
			firstHalf++
		} else {
			secondHalf++
		}
	}
	diff := firstHalf - secondHalf
	switch {
	case diff > 1:
		result.Pattern = models.PatternTrailedOff
	case diff < -1:
		result.Pattern = models.PatternBuiltMomentum
	}

	if result.Pattern != models.PatternSteady {
		out.Score = 0.7
	} else {
		out.Score = 0.4
	}
	return out
}

func classifyDay(pct float64) models.DayStatus {
	switch {
	case pct >= OnTargetLowPct && pct <= OnTargetHighPct:
		return models.DayOnTarget
	case pct > OnTargetHighPct && pct <= WayOverPct:
		return models.DaySlightlyOver
	case pct > WayOverPct:
		return models.DaySignificantlyOver
	case pct >= WayUnderPct:
		return models.DaySlightlyUnder
	default:
		return models.DaySignificantlyUnder
	}
}
