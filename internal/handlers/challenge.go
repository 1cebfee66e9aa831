package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/digitalwellness/guardian/backend/internal/apierror"
	"github.com/digitalwellness/guardian/backend/internal/logger"
	"github.com/digitalwellness/guardian/backend/internal/models"
	"github.com/digitalwellness/guardian/backend/internal/service"
)

// ChallengeHandler exposes the 7-day minimalism challenge state machine.
type ChallengeHandler struct {
	challenge service.ChallengeService
}

// NewChallengeHandler creates a new challenge handler
func NewChallengeHandler(challenge service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{
		challenge: challenge,
	}
}

// Start handles POST /api/v1/challenge/start.
func (h *ChallengeHandler) Start(c *gin.Context) {
	requestID := apierror.GetRequestID(c)

	state, err := h.challenge.Start(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrChallengeActive) {
			apierror.WriteProblem(c, apierror.NewChallengeActiveError(requestID))
			return
		}
		logger.Ctx(c.Request.Context()).Error("failed to start challenge", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusCreated, state)
}

// CheckIn handles POST /api/v1/challenge/check-in.
func (h *ChallengeHandler) CheckIn(c *gin.Context) {
	requestID := apierror.GetRequestID(c)

	var req models.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	state, err := h.challenge.CheckIn(c.Request.Context(), req.Performance)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChallengeFinished):
			apierror.WriteProblem(c, apierror.NewChallengeFinishedError(requestID))
		case errors.Is(err, service.ErrChallengeNotActive):
			apierror.WriteProblem(c, apierror.NewChallengeNotActiveError(requestID))
		default:
			logger.Ctx(c.Request.Context()).Error("failed to record check-in", logger.Err(err))
			apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		}
		return
	}

	c.JSON(http.StatusOK, state)
}

// Abandon handles POST /api/v1/challenge/abandon.
func (h *ChallengeHandler) Abandon(c *gin.Context) {
	requestID := apierror.GetRequestID(c)

	state, err := h.challenge.Abandon(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrChallengeNotActive) {
			apierror.WriteProblem(c, apierror.NewChallengeNotActiveError(requestID))
			return
		}
		logger.Ctx(c.Request.Context()).Error("failed to abandon challenge", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, state)
}

// GetState handles GET /api/v1/challenge.
func (h *ChallengeHandler) GetState(c *gin.Context) {
	requestID := apierror.GetRequestID(c)

	state, err := h.challenge.State(c.Request.Context())
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to load challenge state", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, state)
}
