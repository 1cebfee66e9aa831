package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/digitalwellness/guardian/backend/internal/service"
)

// ActivitiesHandler suggests offline alternatives to screen time.
type ActivitiesHandler struct {
	activities service.ActivityService
}

// NewActivitiesHandler creates a new activities handler
func NewActivitiesHandler(activities service.ActivityService) *ActivitiesHandler {
	return &ActivitiesHandler{
		activities: activities,
	}
}

// GetSuggestions handles GET /api/v1/activities?interests=reading,nature.
// Unknown interests are silently skipped; with no interests the response
// covers the whole catalog.
func (h *ActivitiesHandler) GetSuggestions(c *gin.Context) {
	var interests []string
	if raw := c.Query("interests"); raw != "" {
		interests = strings.Split(raw, ",")
	}

	suggestions := h.activities.Suggest(interests)
	c.JSON(http.StatusOK, gin.H{
		"suggestions":         suggestions,
		"available_interests": h.activities.Interests(),
	})
}
