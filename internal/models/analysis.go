package models

import "time"

// AnalysisResult is the outcome of running one analyzer. It is a closed
// union keyed by QuestionID: exactly one of the detail pointers is set for
// the matching question. Modeling the union as optional pointers keeps the
// record JSON-serializable for the weekly cache.
type AnalysisResult struct {
	QuestionID QuestionID `json:"question_id"`
	Score      float64    `json:"interestingness_score"` // 0..1

	MacroConsistency   *MacroConsistencyResult   `json:"macro_consistency,omitempty"`
	CalorieOutliers    *CalorieOutliersResult    `json:"calorie_outliers,omitempty"`
	TargetHitRate      *TargetHitRateResult      `json:"target_hit_rate,omitempty"`
	ProteinSufficiency *ProteinSufficiencyResult `json:"protein_sufficiency,omitempty"`
	MacroBalance       *MacroBalanceResult       `json:"macro_balance,omitempty"`
	SurplusDeficit     *SurplusDeficitResult     `json:"surplus_deficit,omitempty"`
	CalorieTrend       *CalorieTrendResult       `json:"calorie_trend,omitempty"`
	DayByDay           *DayByDayResult           `json:"day_by_day,omitempty"`
	Hydration          *HydrationResult          `json:"hydration,omitempty"`
	MealTiming         *MealTimingResult         `json:"meal_timing,omitempty"`
	WeekendPattern     *WeekendPatternResult     `json:"weekend_pattern,omitempty"`
	WeekComparison     *WeekComparisonResult     `json:"week_comparison,omitempty"`
	ProteinTrend       *ProteinTrendResult       `json:"protein_trend,omitempty"`
	Highlights         *HighlightsResult         `json:"highlights,omitempty"`
	FocusSuggestion    *FocusSuggestionResult    `json:"focus_suggestion,omitempty"`
}

// ConsistencyTier buckets the mean coefficient of variation of the four
// tracked macros.
type ConsistencyTier string

const (
	TierVeryConsistent ConsistencyTier = "very_consistent"
	TierConsistent     ConsistencyTier = "consistent"
	TierVariable       ConsistencyTier = "variable"
	TierHighlyVariable ConsistencyTier = "highly_variable"
)

type MacroConsistencyResult struct {
	CalorieCV float64 `json:"calorie_cv"`
	ProteinCV float64 `json:"protein_cv"`
	CarbCV    float64 `json:"carb_cv"`
	FatCV     float64 `json:"fat_cv"`

	MeanCV          float64         `json:"mean_cv"`
	Tier            ConsistencyTier `json:"tier"`
	MostConsistent  string          `json:"most_consistent"`
	LeastConsistent string          `json:"least_consistent"`
	LoggedDays      int             `json:"logged_days"`
}

// OutlierDay is one day whose calories sit more than 1.5 sample standard
// deviations from the week mean.
type OutlierDay struct {
	Date      time.Time `json:"date"`
	Weekday   int       `json:"weekday"`
	Calories  float64   `json:"calories"`
	Deviation float64   `json:"deviation"` // calories - week mean
}

type CalorieOutliersResult struct {
	WeekMean     float64      `json:"week_mean"`
	StdDev       float64      `json:"std_dev"`
	OutlierDays  []OutlierDay `json:"outlier_days"`
	AdjustedMean float64      `json:"adjusted_mean"` // mean over non-outlier days
	LoggedDays   int          `json:"logged_days"`
}

type TargetHitRateResult struct {
	LoggedDays     int     `json:"logged_days"`
	CalorieHitDays int     `json:"calorie_hit_days"`
	ProteinHitDays int     `json:"protein_hit_days"`
	CalorieHitRate float64 `json:"calorie_hit_rate"` // percent of logged days
	ProteinHitRate float64 `json:"protein_hit_rate"`
}

type ProteinSufficiencyResult struct {
	AvgProtein    float64 `json:"avg_protein"`
	Target        float64 `json:"target"`
	AvgProteinPct float64 `json:"avg_protein_pct"`
	// TrendVsPrior is "up" or "down" when the week-over-week change exceeds
	// 5 g, otherwise empty.
	TrendVsPrior string  `json:"trend_vs_prior,omitempty"`
	DeltaGrams   float64 `json:"delta_grams"`
	LoggedDays   int     `json:"logged_days"`
}

// MacroSkew labels a calorie-share imbalance. Checks are ordered and
// mutually exclusive: protein, then carbs, then fat.
type MacroSkew string

const (
	SkewProteinHeavy MacroSkew = "protein_heavy"
	SkewCarbHeavy    MacroSkew = "carb_heavy"
	SkewFatHeavy     MacroSkew = "fat_heavy"
	SkewBalanced     MacroSkew = "balanced"
)

type MacroBalanceResult struct {
	ProteinPct   float64   `json:"protein_pct"` // share of calories
	CarbPct      float64   `json:"carb_pct"`
	FatPct       float64   `json:"fat_pct"`
	Skew         MacroSkew `json:"skew"`
	MostVariable string    `json:"most_variable"`
	LoggedDays   int       `json:"logged_days"`
}

type SurplusDeficitResult struct {
	AvgCalories    float64 `json:"avg_calories"`
	Target         float64 `json:"target"`
	Delta          float64 `json:"delta"`
	DeltaPct       float64 `json:"delta_pct"`
	IsNeutral      bool    `json:"is_neutral"` // |delta_pct| <= 3
	AlignsWithGoal bool    `json:"aligns_with_goal"`
	LoggedDays     int     `json:"logged_days"`
}

// TrendDirection describes a multi-week regression outcome.
type TrendDirection string

const (
	TrendUp           TrendDirection = "up"
	TrendDown         TrendDirection = "down"
	TrendSteady       TrendDirection = "steady"
	TrendInsufficient TrendDirection = "insufficient_data"
)

type CalorieTrendResult struct {
	Direction      TrendDirection `json:"direction"`
	Slope          float64        `json:"slope"` // calories per week
	RSquared       float64        `json:"r_squared"`
	WeeksUsed      int            `json:"weeks_used"`
	WeeklyAverages []float64      `json:"weekly_averages"` // oldest first
}

// DayStatus classifies a day by percent of calorie target.
type DayStatus string

const (
	DayOnTarget           DayStatus = "on_target"
	DaySlightlyOver       DayStatus = "slightly_over"
	DaySignificantlyOver  DayStatus = "significantly_over"
	DaySlightlyUnder      DayStatus = "slightly_under"
	DaySignificantlyUnder DayStatus = "significantly_under"
	DayNoData             DayStatus = "no_data"
)

type DayClassification struct {
	Weekday   int       `json:"weekday"`
	Status    DayStatus `json:"status"`
	TargetPct float64   `json:"target_pct"`
}

// WeekShapePattern compares on-target counts between the first and second
// half of the logged-day sequence.
type WeekShapePattern string

const (
	PatternTrailedOff    WeekShapePattern = "trailed_off"
	PatternBuiltMomentum WeekShapePattern = "built_momentum"
	PatternSteady        WeekShapePattern = "steady"
)

type DayByDayResult struct {
	Days          []DayClassification `json:"days"`
	OnTargetCount int                 `json:"on_target_count"`
	Pattern       WeekShapePattern    `json:"pattern"`
	LoggedDays    int                 `json:"logged_days"`
}

type HydrationResult struct {
	AvgWater     float64 `json:"avg_water"`
	Target       float64 `json:"target"`
	TargetPct    float64 `json:"target_pct"`
	BestWeekday  int     `json:"best_weekday"`
	BestVolume   float64 `json:"best_volume"`
	WorstWeekday int     `json:"worst_weekday"`
	WorstVolume  float64 `json:"worst_volume"`
	WeekdayAvg   float64 `json:"weekday_avg"`
	WeekendAvg   float64 `json:"weekend_avg"`
	SplitPct     float64 `json:"split_pct"` // weekend vs weekday difference
	WaterDays    int     `json:"water_days"`
}

// MealCalorieLink labels the relation between meal count and calories on
// above-average-meal-count days.
type MealCalorieLink string

const (
	MealLinkHigher MealCalorieLink = "higher"
	MealLinkLower  MealCalorieLink = "lower"
	MealLinkNone   MealCalorieLink = "none"
)

type MealTimingResult struct {
	AvgMeals         float64         `json:"avg_meals"`
	MinMeals         int             `json:"min_meals"`
	MaxMeals         int             `json:"max_meals"`
	Link             MealCalorieLink `json:"link"`
	AboveAvgCalories float64         `json:"above_avg_calories"`
	BelowAvgCalories float64         `json:"below_avg_calories"`
	LoggedDays       int             `json:"logged_days"`
}

type WeekendPatternResult struct {
	WeekdayAvg       float64 `json:"weekday_avg"`
	WeekendAvg       float64 `json:"weekend_avg"`
	WeekendEffectPct float64 `json:"weekend_effect_pct"`
	WeekdayCount     int     `json:"weekday_count"`
	WeekendCount     int     `json:"weekend_count"`
}

// ChangeDirection is a week-over-week metric movement at a 3% deadband.
type ChangeDirection string

const (
	ChangeUp   ChangeDirection = "up"
	ChangeDown ChangeDirection = "down"
	ChangeSame ChangeDirection = "same"
)

type ComparisonMetric struct {
	Name      string          `json:"name"`
	Current   float64         `json:"current"`
	Previous  float64         `json:"previous"`
	ChangePct float64         `json:"change_pct"`
	Direction ChangeDirection `json:"direction"`
}

type WeekComparisonResult struct {
	Metrics []ComparisonMetric `json:"metrics"`
	// BiggestImprovement is the largest upward change excluding calories
	// (whose desirable direction is ambiguous); empty when nothing moved up.
	BiggestImprovement string `json:"biggest_improvement,omitempty"`
}

type ProteinTrendResult struct {
	Direction            TrendDirection `json:"direction"`
	Slope                float64        `json:"slope"` // grams per week
	WeeksUsed            int            `json:"weeks_used"`
	WeeklyAverages       []float64      `json:"weekly_averages"`
	DivergesFromCalories bool           `json:"diverges_from_calories"`
}

type HighlightsResult struct {
	Highlights []string `json:"highlights"` // 1..3 entries
}

// FocusArea names the first matching rule in the focus decision list.
type FocusArea string

const (
	FocusProtein     FocusArea = "protein"
	FocusHydration   FocusArea = "hydration"
	FocusConsistency FocusArea = "consistency"
	FocusWeekend     FocusArea = "weekend_pattern"
	FocusMomentum    FocusArea = "momentum"
)

type FocusSuggestionResult struct {
	Area    FocusArea `json:"area"`
	Message string    `json:"message"`
}
