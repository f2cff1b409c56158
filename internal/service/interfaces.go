package service

import (
	"context"
	"time"

	"github.com/nutriweek/backend/internal/models"
)

// ModelStatus is the readiness of the on-device language model runtime.
type ModelStatus string

const (
	ModelNotDownloaded ModelStatus = "not_downloaded"
	ModelDownloading   ModelStatus = "downloading"
	ModelReady         ModelStatus = "ready"
	ModelLoading       ModelStatus = "loading"
	ModelGenerating    ModelStatus = "generating"
	ModelError         ModelStatus = "error"
	ModelUnsupported   ModelStatus = "unsupported"
)

// ModelClient is the language-model collaborator.
type ModelClient interface {
	Status(ctx context.Context) ModelStatus
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Clock supplies the current time; injected so cache-expiry boundaries are
// testable.
type Clock func() time.Time

// InsightService defines the interface for weekly insight business logic.
type InsightService interface {
	// GetWeeklyInsights returns the scored, selected questions for the week
	// containing weekStart, recomputing when the cache is missing, for a
	// different week, or expired. force bypasses the cache check.
	GetWeeklyInsights(ctx context.Context, weekStart time.Time, force bool) (*models.WeeklyInsights, error)
	// GetNarrative returns the narrative for one question, generating it on
	// first access. Generation failures fall back to a template response and
	// are never fatal.
	GetNarrative(ctx context.Context, weekStart time.Time, id models.QuestionID) (*models.InsightResponse, error)
	// RetryNarrative clears the question's error state and regenerates.
	RetryNarrative(ctx context.Context, weekStart time.Time, id models.QuestionID) (*models.InsightResponse, error)
	// NarrativeError returns the per-question generation error, if any.
	NarrativeError(weekStart time.Time, id models.QuestionID) string
	// Status reports the model runtime state, with "generating" while a
	// narrative generation is in flight.
	Status(ctx context.Context) ModelStatus
}
