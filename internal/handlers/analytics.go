package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/digitalwellness/guardian/backend/internal/apierror"
	"github.com/digitalwellness/guardian/backend/internal/logger"
	"github.com/digitalwellness/guardian/backend/internal/models"
	"github.com/digitalwellness/guardian/backend/internal/repository"
	"github.com/digitalwellness/guardian/backend/internal/service"
)

// AnalyticsHandler serves aggregate views over the ingested usage data.
type AnalyticsHandler struct {
	usageRepo  repository.UsageRecordRepository
	scoring    service.ScoringService
	windowDays int
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(usageRepo repository.UsageRecordRepository, scoring service.ScoringService, windowDays int) *AnalyticsHandler {
	return &AnalyticsHandler{
		usageRepo:  usageRepo,
		scoring:    scoring,
		windowDays: windowDays,
	}
}

// GetSummary handles GET /api/v1/analytics/summary.
// ?days= overrides the configured trailing window.
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	requestID := apierror.GetRequestID(c)
	days := queryInt(c, "days", h.windowDays, 1, 365)

	window, err := loadUsageWindow(c, h.usageRepo, days)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to load usage window", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	summary, err := h.scoring.Summarize(window)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			apierror.WriteProblem(c, apierror.NewInvalidInputError(requestID, err.Error()))
			return
		}
		logger.Ctx(c.Request.Context()).Error("failed to summarize usage", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, summary)
}

// loadUsageWindow fetches the trailing N calendar days of usage records,
// today included.
func loadUsageWindow(c *gin.Context, repo repository.UsageRecordRepository, days int) ([]models.UsageRecord, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -(days - 1))
	return repo.GetByDateRange(c.Request.Context(), start, end)
}
