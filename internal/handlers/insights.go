package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nutriweek/backend/internal/apierror"
	"github.com/nutriweek/backend/internal/logger"
	"github.com/nutriweek/backend/internal/models"
	"github.com/nutriweek/backend/internal/service"
)

// InsightsHandler handles weekly insight HTTP requests
type InsightsHandler struct {
	insightService service.InsightService
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(insightService service.InsightService) *InsightsHandler {
	return &InsightsHandler{insightService: insightService}
}

// parseWeekQuery resolves the optional ?week=YYYY-MM-DD parameter, falling
// back to the current week. The second return is false when the value was
// present but malformed (a problem response has already been written).
func parseWeekQuery(c *gin.Context) (time.Time, bool) {
	raw := c.Query("week")
	if raw == "" {
		return time.Now().UTC(), true
	}
	week, err := time.Parse(models.WeekDateLayout, raw)
	if err != nil {
		apierror.WriteProblem(c, apierror.NewValidationError(apierror.GetRequestID(c), []apierror.FieldError{
			{Field: "week", Message: "must be a date formatted YYYY-MM-DD"},
		}))
		return time.Time{}, false
	}
	return week, true
}

// GetWeeklyInsights returns the selected questions for one week
// GET /api/v1/insights/weekly?week=YYYY-MM-DD
func (h *InsightsHandler) GetWeeklyInsights(c *gin.Context) {
	week, ok := parseWeekQuery(c)
	if !ok {
		return
	}

	insights, err := h.insightService.GetWeeklyInsights(c.Request.Context(), week, false)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to get weekly insights", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, insights)
}

// RefreshWeeklyInsights forces a recompute for one week
// POST /api/v1/insights/weekly/refresh?week=YYYY-MM-DD
func (h *InsightsHandler) RefreshWeeklyInsights(c *gin.Context) {
	week, ok := parseWeekQuery(c)
	if !ok {
		return
	}

	insights, err := h.insightService.GetWeeklyInsights(c.Request.Context(), week, true)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to refresh weekly insights", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, insights)
}

// GetNarrative returns (generating on first access) one question's narrative
// GET /api/v1/insights/weekly/questions/:id/narrative?week=YYYY-MM-DD
func (h *InsightsHandler) GetNarrative(c *gin.Context) {
	week, ok := parseWeekQuery(c)
	if !ok {
		return
	}
	id := models.QuestionID(c.Param("id"))

	resp, err := h.insightService.GetNarrative(c.Request.Context(), week, id)
	if err != nil {
		h.writeNarrativeError(c, id, err)
		return
	}

	h.writeNarrative(c, week, id, resp)
}

// RetryNarrative clears the question's error state and regenerates
// POST /api/v1/insights/weekly/questions/:id/retry?week=YYYY-MM-DD
func (h *InsightsHandler) RetryNarrative(c *gin.Context) {
	week, ok := parseWeekQuery(c)
	if !ok {
		return
	}
	id := models.QuestionID(c.Param("id"))

	resp, err := h.insightService.RetryNarrative(c.Request.Context(), week, id)
	if err != nil {
		h.writeNarrativeError(c, id, err)
		return
	}

	h.writeNarrative(c, week, id, resp)
}

func (h *InsightsHandler) writeNarrative(c *gin.Context, week time.Time, id models.QuestionID, resp *models.InsightResponse) {
	body := gin.H{"response": resp}
	// Generation failures are non-fatal: the narrative fell back to a
	// template and the error rides along for an optional retry affordance.
	if msg := h.insightService.NarrativeError(week, id); msg != "" {
		body["generation_error"] = msg
	}
	c.JSON(http.StatusOK, body)
}

func (h *InsightsHandler) writeNarrativeError(c *gin.Context, id models.QuestionID, err error) {
	if errors.Is(err, service.ErrUnknownQuestion) {
		apierror.WriteProblem(c, apierror.NewNotFoundError(apierror.GetRequestID(c), "question", string(id)))
		return
	}
	logger.Ctx(c.Request.Context()).Error("failed to build narrative",
		logger.String("question", string(id)), logger.Err(err))
	apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
}

// GetModelStatus reports the model runtime state
// GET /api/v1/insights/model/status
func (h *InsightsHandler) GetModelStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": h.insightService.Status(c.Request.Context())})
}
