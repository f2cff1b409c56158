package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nutriweek/backend/internal/apierror"
	"github.com/nutriweek/backend/internal/logger"
	"github.com/nutriweek/backend/internal/models"
	"github.com/nutriweek/backend/internal/repository"
)

// LogsHandler handles day-log ingestion and week reads
type LogsHandler struct {
	store  repository.DayLogStore
	source repository.WeeklyDataSource
}

// NewLogsHandler creates a new logs handler
func NewLogsHandler(store repository.DayLogStore, source repository.WeeklyDataSource) *LogsHandler {
	return &LogsHandler{store: store, source: source}
}

type upsertDayRequest struct {
	Date      string   `json:"date" binding:"required"`
	Calories  float64  `json:"calories"`
	Protein   float64  `json:"protein"`
	Carbs     float64  `json:"carbs"`
	Fat       float64  `json:"fat"`
	Water     float64  `json:"water"`
	MealCount int      `json:"meal_count"`
	FoodIDs   []string `json:"food_ids"`
}

// UpsertDay records one day's nutrition totals
// POST /api/v1/logs/days
func (h *LogsHandler) UpsertDay(c *gin.Context) {
	var req upsertDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.WriteProblem(c, apierror.NewBadRequestError(apierror.GetRequestID(c),
			err.Error(), "Please check the day log payload"))
		return
	}

	date, err := time.Parse(models.WeekDateLayout, req.Date)
	if err != nil {
		apierror.WriteProblem(c, apierror.NewValidationError(apierror.GetRequestID(c), []apierror.FieldError{
			{Field: "date", Message: "must be a date formatted YYYY-MM-DD"},
		}))
		return
	}
	if req.Calories < 0 || req.Protein < 0 || req.Water < 0 {
		apierror.WriteProblem(c, apierror.NewValidationError(apierror.GetRequestID(c), []apierror.FieldError{
			{Field: "calories", Message: "totals must not be negative"},
		}))
		return
	}

	day := models.DayData{
		Date:      date,
		Calories:  req.Calories,
		Protein:   req.Protein,
		Carbs:     req.Carbs,
		Fat:       req.Fat,
		Water:     req.Water,
		MealCount: req.MealCount,
		FoodIDs:   req.FoodIDs,
	}
	if err := h.store.UpsertDay(c.Request.Context(), day); err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to upsert day log", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"date": req.Date})
}

// GetWeek returns the collected week starting at :start
// GET /api/v1/logs/weeks/:start
func (h *LogsHandler) GetWeek(c *gin.Context) {
	start, err := time.Parse(models.WeekDateLayout, c.Param("start"))
	if err != nil {
		apierror.WriteProblem(c, apierror.NewValidationError(apierror.GetRequestID(c), []apierror.FieldError{
			{Field: "start", Message: "must be a date formatted YYYY-MM-DD"},
		}))
		return
	}

	week, err := h.source.Collect(c.Request.Context(), start)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to collect week", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}
	if week == nil {
		apierror.WriteProblem(c, apierror.NewNotFoundError(apierror.GetRequestID(c), "week", c.Param("start")))
		return
	}

	c.JSON(http.StatusOK, week)
}
