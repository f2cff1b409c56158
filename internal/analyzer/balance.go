package analyzer

import (
	"github.com/nutriweek/backend/internal/models"
	"github.com/nutriweek/backend/internal/stats"
)

// Calories per gram of each macro.
const (
	kcalPerGramProtein = 4.0
	kcalPerGramCarb    = 4.0
	kcalPerGramFat     = 9.0
)

// MacroBalance computes calorie-share percentages for the three macros and
// flags a skew. The skew checks are ordered and mutually exclusive:
// protein first, then carbs, then fat.
func MacroBalance(week *models.WeeklyCollectedData) models.AnalysisResult {
	out := models.AnalysisResult{QuestionID: models.QuestionMacroBalance}
	logged := week.LoggedDayCount
	if logged < 3 {
		out.MacroBalance = &models.MacroBalanceResult{
			Skew:       models.SkewBalanced,
			LoggedDays: logged,
		}
		return out
	}

	proteinCal := week.AvgProtein * kcalPerGramProtein
	carbCal := week.AvgCarbs * kcalPerGramCarb
	fatCal := week.AvgFat * kcalPerGramFat
	total := proteinCal + carbCal + fatCal
	if total <= 0 {
		out.MacroBalance = &models.MacroBalanceResult{
			Skew:       models.SkewBalanced,
			LoggedDays: logged,
		}
		return out
	}

	proteinPct := proteinCal / total * 100
	carbPct := carbCal / total * 100
	fatPct := fatCal / total * 100

	skew := models.SkewBalanced
	switch {
	case proteinPct > 50:
		skew = models.SkewProteinHeavy
	case carbPct > 60:
		skew = models.SkewCarbHeavy
	case fatPct > 45:
		skew = models.SkewFatHeavy
	}

	cvs := map[string]float64{
		"protein": stats.CoefficientOfVariation(loggedSeries(week, func(d models.DayData) float64 { return d.Protein })),
		"carbs":   stats.CoefficientOfVariation(loggedSeries(week, func(d models.DayData) float64 { return d.Carbs })),
		"fat":     stats.CoefficientOfVariation(loggedSeries(week, func(d models.DayData) float64 { return d.Fat })),
	}
	mostVariable := "protein"
	for _, name := range []string{"carbs", "fat"} {
		if cvs[name] > cvs[mostVariable] {
			mostVariable = name
		}
	}

	if skew != models.SkewBalanced {
		out.Score = 0.7
	} else {
		out.Score = 0.3
	}

	out.MacroBalance = &models.MacroBalanceResult{
		ProteinPct:   proteinPct,
		CarbPct:      carbPct,
		FatPct:       fatPct,
		Skew:         skew,
		MostVariable: mostVariable,
		LoggedDays:   logged,
	}
	return out
}
