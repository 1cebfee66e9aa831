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

// WellnessHandler serves the analytical core: risk assessments, usage/mood
// correlation and intervention recommendations over a trailing window.
type WellnessHandler struct {
	usageRepo     repository.UsageRecordRepository
	moodRepo      repository.MoodRecordRepository
	scoring       service.ScoringService
	correlation   service.CorrelationService
	interventions service.InterventionService
	challenge     service.ChallengeService
	windowDays    int
}

// NewWellnessHandler creates a new wellness handler
func NewWellnessHandler(
	usageRepo repository.UsageRecordRepository,
	moodRepo repository.MoodRecordRepository,
	scoring service.ScoringService,
	correlation service.CorrelationService,
	interventions service.InterventionService,
	challenge service.ChallengeService,
	windowDays int,
) *WellnessHandler {
	return &WellnessHandler{
		usageRepo:     usageRepo,
		moodRepo:      moodRepo,
		scoring:       scoring,
		correlation:   correlation,
		interventions: interventions,
		challenge:     challenge,
		windowDays:    windowDays,
	}
}

// GetAssessment handles GET /api/v1/wellness/assessment.
func (h *WellnessHandler) GetAssessment(c *gin.Context) {
	requestID := apierror.GetRequestID(c)
	days := queryInt(c, "days", h.windowDays, 1, 365)

	window, err := loadUsageWindow(c, h.usageRepo, days)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to load usage window", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	assessment, err := h.scoring.Assess(window)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			apierror.WriteProblem(c, apierror.NewInvalidInputError(requestID, err.Error()))
			return
		}
		logger.Ctx(c.Request.Context()).Error("failed to assess usage window", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, assessment)
}

// GetCorrelation handles GET /api/v1/wellness/correlation.
// Insufficient data is a valid 200 response with a nil coefficient and an
// insufficient_data trend, not an error.
func (h *WellnessHandler) GetCorrelation(c *gin.Context) {
	requestID := apierror.GetRequestID(c)
	days := queryInt(c, "days", h.windowDays, 1, 365)

	window, moods, err := h.loadJoinedWindow(c, days)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to load record windows", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	result := h.correlation.Correlate(window, moods)
	c.JSON(http.StatusOK, result)
}

// GetRecommendations handles GET /api/v1/wellness/recommendations.
// Bundles the assessment, the correlation and the matched intervention
// rules into a single report for the dashboard.
func (h *WellnessHandler) GetRecommendations(c *gin.Context) {
	requestID := apierror.GetRequestID(c)
	days := queryInt(c, "days", h.windowDays, 1, 365)
	limit := queryInt(c, "limit", service.DefaultRecommendLimit, 1, 50)

	window, moods, err := h.loadJoinedWindow(c, days)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to load record windows", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	assessment, err := h.scoring.Assess(window)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			apierror.WriteProblem(c, apierror.NewInvalidInputError(requestID, err.Error()))
			return
		}
		logger.Ctx(c.Request.Context()).Error("failed to assess usage window", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	correlation := h.correlation.Correlate(window, moods)
	recommendations := h.interventions.Recommend(assessment, correlation, limit)

	c.JSON(http.StatusOK, models.WellnessReport{
		Assessment:          assessment,
		Correlation:         correlation,
		Recommendations:     recommendations,
		SuggestedDifficulty: h.challenge.SuggestDifficulty(assessment),
	})
}

func (h *WellnessHandler) loadJoinedWindow(c *gin.Context, days int) ([]models.UsageRecord, []models.MoodRecord, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -(days - 1))

	window, err := h.usageRepo.GetByDateRange(c.Request.Context(), start, end)
	if err != nil {
		return nil, nil, err
	}
	moods, err := h.moodRepo.GetByDateRange(c.Request.Context(), start, end)
	if err != nil {
		return nil, nil, err
	}
	return window, moods, nil
}
