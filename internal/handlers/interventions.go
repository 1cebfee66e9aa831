package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/digitalwellness/guardian/backend/internal/apierror"
	"github.com/digitalwellness/guardian/backend/internal/logger"
	"github.com/digitalwellness/guardian/backend/internal/models"
	"github.com/digitalwellness/guardian/backend/internal/service"
)

// InterventionsHandler manages the intervention rule store.
type InterventionsHandler struct {
	interventions service.InterventionService
}

// NewInterventionsHandler creates a new interventions handler
func NewInterventionsHandler(interventions service.InterventionService) *InterventionsHandler {
	return &InterventionsHandler{
		interventions: interventions,
	}
}

// ListRules handles GET /api/v1/interventions/rules.
func (h *InterventionsHandler) ListRules(c *gin.Context) {
	rules := h.interventions.Rules()
	c.JSON(http.StatusOK, gin.H{
		"rules": rules,
		"count": len(rules),
	})
}

// CreateRule handles POST /api/v1/interventions/rules.
// The ID is optional; a UUID is assigned when omitted. Built-in rule IDs and
// previously added custom IDs are rejected with a conflict.
func (h *InterventionsHandler) CreateRule(c *gin.Context) {
	requestID := apierror.GetRequestID(c)

	var req models.CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	rule := models.InterventionRule{
		ID:            req.ID,
		Title:         req.Title,
		ActionText:    req.ActionText,
		Trigger:       req.Trigger,
		Priority:      req.Priority,
		Effectiveness: req.Effectiveness,
		CreatedAt:     time.Now(),
	}
	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}

	created, err := h.interventions.AddCustomRule(c.Request.Context(), rule)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateRule):
			apierror.WriteProblem(c, apierror.NewDuplicateRuleError(requestID, rule.ID))
		case errors.Is(err, service.ErrInvalidRule):
			apierror.WriteProblem(c, apierror.NewInvalidRuleError(requestID, err.Error()))
		default:
			logger.Ctx(c.Request.Context()).Error("failed to add rule", logger.Err(err), logger.String("rule_id", rule.ID))
			apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// RecordFeedback handles POST /api/v1/interventions/rules/:id/feedback.
func (h *InterventionsHandler) RecordFeedback(c *gin.Context) {
	requestID := apierror.GetRequestID(c)
	id := c.Param("id")

	var req models.RuleFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	updated, err := h.interventions.RecordFeedback(c.Request.Context(), id, req.Rating)
	if err != nil {
		if errors.Is(err, service.ErrRuleNotFound) {
			apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "intervention rule", id))
			return
		}
		logger.Ctx(c.Request.Context()).Error("failed to record feedback", logger.Err(err), logger.String("rule_id", id))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, updated)
}
