package models

import "time"

// ScoredQuestion pairs a catalog entry with its gate outcome and analysis.
// Score always mirrors the analysis interestingness score; availability is
// the gate-check outcome and is independent of score.
type ScoredQuestion struct {
	QuestionID     QuestionID         `json:"question_id"`
	Definition     QuestionDefinition `json:"definition"`
	Score          float64            `json:"score"`
	IsAvailable    bool               `json:"is_available"`
	IsPinned       bool               `json:"is_pinned"`
	AnalysisResult AnalysisResult     `json:"analysis_result"`
}

// NarrativeSource records which path produced a narrative.
type NarrativeSource string

const (
	SourceLLM      NarrativeSource = "llm"
	SourceTemplate NarrativeSource = "template"
)

// Sentiment is the overall tone attached to a narrative.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// KeyMetric is one headline number extracted from an analysis result.
type KeyMetric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// InsightResponse is one generated narrative. Responses are immutable: a
// retry produces a fresh response that supersedes this one.
type InsightResponse struct {
	ID            string          `json:"id"`
	QuestionID    QuestionID      `json:"question_id"`
	Text          string          `json:"text"`
	Icon          string          `json:"icon"`
	GeneratedAt   time.Time       `json:"generated_at"`
	Source        NarrativeSource `json:"source"`
	WeekStartDate string          `json:"week_start_date"`
	Sentiment     Sentiment       `json:"sentiment"`
	KeyMetrics    []KeyMetric     `json:"key_metrics"`
	FollowUpIDs   []QuestionID    `json:"follow_up_ids,omitempty"`
}

// WeeklyInsightsCache is the one persisted record per week. Responses are
// added lazily as the user opens questions; invalidation is whole-record.
type WeeklyInsightsCache struct {
	WeekStartDate   string                         `json:"week_start_date"`
	LoggedDayCount  int                            `json:"logged_day_count"`
	ScoredQuestions []ScoredQuestion               `json:"scored_questions"`
	Headline        string                         `json:"headline"`
	Responses       map[QuestionID]InsightResponse `json:"responses"`
	GeneratedAt     time.Time                      `json:"generated_at"`
	ValidUntil      time.Time                      `json:"valid_until"`
}

// NeedsMoreDataEntry surfaces an unavailable question together with how many
// more logged days would unlock it.
type NeedsMoreDataEntry struct {
	QuestionID  QuestionID `json:"question_id"`
	Text        string     `json:"text"`
	DaysLogged  int        `json:"days_logged"`
	DaysNeeded  int        `json:"days_needed"`
	DaysMissing int        `json:"days_missing"`
}

// WeeklyInsights is the API response for one week.
type WeeklyInsights struct {
	WeekStartDate string               `json:"week_start_date"`
	Headline      string               `json:"headline"`
	Selected      []ScoredQuestion     `json:"selected"`
	NeedsMoreData []NeedsMoreDataEntry `json:"needs_more_data"`
	GeneratedAt   time.Time            `json:"generated_at"`
	FromCache     bool                 `json:"from_cache"`
}
