// Package catalog holds the static weekly question catalog. The list is
// fixed at compile time and ordered; catalog order is the deterministic
// tie-break for equal selection scores.
package catalog

import "github.com/nutriweek/backend/internal/models"

// questions is the full ordered catalog: 15 active entries plus two that
// are permanently gated behind fiber/deficiency data the logging pipeline
// does not populate yet. The gate check, not analyzer presence, decides
// whether an entry can ever surface.
var questions = []models.QuestionDefinition{
	{
		ID:            models.QuestionHighlights,
		Category:      models.CategoryReflection,
		Text:          "What went well this week?",
		Icon:          "star",
		Pinned:        true,
		MinLoggedDays: 2,
	},
	{
		ID:            models.QuestionMacroConsistency,
		Category:      models.CategoryConsistency,
		Text:          "How consistent were your macros?",
		Icon:          "chart.bar",
		MinLoggedDays: 3,
	},
	{
		ID:            models.QuestionCalorieOutliers,
		Category:      models.CategoryEnergy,
		Text:          "Did any days stand out calorie-wise?",
		Icon:          "exclamationmark.circle",
		MinLoggedDays: 4,
	},
	{
		ID:            models.QuestionTargetHitRate,
		Category:      models.CategoryEnergy,
		Text:          "How often did you hit your targets?",
		Icon:          "target",
		MinLoggedDays: 3,
	},
	{
		ID:            models.QuestionProteinSufficiency,
		Category:      models.CategoryProtein,
		Text:          "Did you get enough protein?",
		Icon:          "fish",
		MinLoggedDays: 3,
	},
	{
		ID:            models.QuestionMacroBalance,
		Category:      models.CategoryMacros,
		Text:          "How balanced were your macros?",
		Icon:          "chart.pie",
		MinLoggedDays: 3,
	},
	{
		ID:            models.QuestionSurplusDeficit,
		Category:      models.CategoryEnergy,
		Text:          "Were you in a surplus or a deficit?",
		Icon:          "scalemass",
		MinLoggedDays: 3,
	},
	{
		ID:                models.QuestionCalorieTrend,
		Category:          models.CategoryTrends,
		Text:              "Which way are your calories trending?",
		Icon:              "chart.line.uptrend.xyaxis",
		MinLoggedDays:     3,
		RequiresPriorWeek: true,
	},
	{
		ID:            models.QuestionDayByDay,
		Category:      models.CategoryConsistency,
		Text:          "How did your week unfold day by day?",
		Icon:          "calendar",
		MinLoggedDays: 3,
	},
	{
		ID:                models.QuestionHydration,
		Category:          models.CategoryHydration,
		Text:              "How was your hydration?",
		Icon:              "drop",
		MinLoggedDays:     3,
		RequiresWaterData: true,
	},
	{
		ID:            models.QuestionMealTiming,
		Category:      models.CategoryTiming,
		Text:          "Did meal count change how much you ate?",
		Icon:          "fork.knife",
		MinLoggedDays: 3,
	},
	{
		ID:            models.QuestionWeekendPattern,
		Category:      models.CategoryTiming,
		Text:          "Do weekends change how you eat?",
		Icon:          "sun.max",
		MinLoggedDays: 4,
	},
	{
		ID:                models.QuestionWeekComparison,
		Category:          models.CategoryTrends,
		Text:              "How does this week compare to last week?",
		Icon:              "arrow.left.arrow.right",
		MinLoggedDays:     4,
		RequiresPriorWeek: true,
	},
	{
		ID:                models.QuestionProteinTrend,
		Category:          models.CategoryProtein,
		Text:              "Where is your protein intake heading?",
		Icon:              "chart.xyaxis.line",
		MinLoggedDays:     4,
		RequiresPriorWeek: true,
	},
	{
		ID:                models.QuestionFiberIntake,
		Category:          models.CategoryMacros,
		Text:              "Are you getting enough fiber?",
		Icon:              "leaf",
		MinLoggedDays:     3,
		RequiresFiberData: true,
	},
	{
		ID:                     models.QuestionMicronutrientGap,
		Category:               models.CategoryMacros,
		Text:                   "Any micronutrient gaps this week?",
		Icon:                   "pills",
		MinLoggedDays:          3,
		RequiresDeficiencyData: true,
	},
	{
		ID:            models.QuestionFocusSuggestion,
		Category:      models.CategoryReflection,
		Text:          "What should you focus on next week?",
		Icon:          "scope",
		Pinned:        true,
		MinLoggedDays: 2,
	},
}

// Definitions returns the ordered catalog. Callers must not mutate it.
func Definitions() []models.QuestionDefinition {
	return questions
}

// ByID looks up a catalog entry.
func ByID(id models.QuestionID) (models.QuestionDefinition, bool) {
	for _, q := range questions {
		if q.ID == id {
			return q, true
		}
	}
	return models.QuestionDefinition{}, false
}

// ActiveIDs returns the ids of every entry that is not permanently gated.
func ActiveIDs() []models.QuestionID {
	ids := make([]models.QuestionID, 0, len(questions))
	for _, q := range questions {
		if !q.PermanentlyGated() {
			ids = append(ids, q.ID)
		}
	}
	return ids
}
