package models

// QuestionID identifies one weekly insight question. The set is closed:
// analyzers, prompt builders, templates, sentiment rules and key-metric
// extractors all switch exhaustively over these values.
type QuestionID string

const (
	QuestionMacroConsistency   QuestionID = "macro_consistency"
	QuestionCalorieOutliers    QuestionID = "calorie_outliers"
	QuestionTargetHitRate      QuestionID = "target_hit_rate"
	QuestionProteinSufficiency QuestionID = "protein_sufficiency"
	QuestionMacroBalance       QuestionID = "macro_balance"
	QuestionSurplusDeficit     QuestionID = "surplus_deficit"
	QuestionCalorieTrend       QuestionID = "calorie_trend"
	QuestionDayByDay           QuestionID = "day_by_day"
	QuestionHydration          QuestionID = "hydration"
	QuestionMealTiming         QuestionID = "meal_timing"
	QuestionWeekendPattern     QuestionID = "weekend_pattern"
	QuestionWeekComparison     QuestionID = "week_comparison"
	QuestionProteinTrend       QuestionID = "protein_trend"
	QuestionHighlights         QuestionID = "highlights"
	QuestionFocusSuggestion    QuestionID = "focus_suggestion"

	// Permanently gated: the logging pipeline does not populate fiber or
	// micronutrient data yet, so these must never reach the user.
	QuestionFiberIntake      QuestionID = "fiber_intake"
	QuestionMicronutrientGap QuestionID = "micronutrient_gaps"
)

// QuestionCategory groups questions for the selector's diversity cap.
type QuestionCategory string

const (
	CategoryConsistency QuestionCategory = "consistency"
	CategoryEnergy      QuestionCategory = "energy"
	CategoryProtein     QuestionCategory = "protein"
	CategoryMacros      QuestionCategory = "macros"
	CategoryTrends      QuestionCategory = "trends"
	CategoryHydration   QuestionCategory = "hydration"
	CategoryTiming      QuestionCategory = "timing"
	CategoryReflection  QuestionCategory = "reflection"
)

// QuestionDefinition is one immutable catalog entry.
type QuestionDefinition struct {
	ID       QuestionID       `json:"id"`
	Category QuestionCategory `json:"category"`
	Text     string           `json:"text"`
	Icon     string           `json:"icon"`
	Pinned   bool             `json:"pinned"`

	MinLoggedDays int `json:"min_logged_days"`

	RequiresPriorWeek      bool `json:"requires_prior_week"`
	RequiresWaterData      bool `json:"requires_water_data"`
	RequiresFiberData      bool `json:"requires_fiber_data"`
	RequiresDeficiencyData bool `json:"requires_deficiency_data"`
}

// PermanentlyGated reports whether the entry depends on data the pipeline
// never delivers. Gated entries are excluded from every selector surface.
func (q QuestionDefinition) PermanentlyGated() bool {
	return q.RequiresFiberData || q.RequiresDeficiencyData
}
