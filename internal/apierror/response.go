package apierror

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the MIME type for RFC 9457 Problem Details.
const ContentTypeProblemJSON = "application/problem+json"

// WriteProblem writes a ProblemDetails response to the gin context with the
// correct Content-Type header.
func WriteProblem(c *gin.Context, problem *ProblemDetails) {
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// GetRequestID extracts the request ID from the gin context.
// Returns empty string if not found.
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return c.GetHeader("X-Request-ID")
}

// NewValidationError creates a 400 Bad Request response for validation failures.
// Multiple field errors can be included to report all validation issues at once.
func NewValidationError(requestID string, errors []FieldError) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeValidation,
		Title:       TitleValidation,
		Status:      http.StatusBadRequest,
		Detail:      "One or more fields failed validation",
		RequestID:   requestID,
		UserMessage: "Please check your input and try again",
		Errors:      errors,
	}
}

// NewInvalidInputError creates a 400 response for an empty or
// invariant-violating record window. Not retried - the caller must fix
// the window it supplies.
func NewInvalidInputError(requestID, detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeInvalidInput,
		Title:       TitleInvalidInput,
		Status:      http.StatusBadRequest,
		Detail:      detail,
		RequestID:   requestID,
		UserMessage: "Not enough valid usage data for this analysis",
	}
}

// NewNotFoundError creates a 404 Not Found response.
func NewNotFoundError(requestID, resource, id string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeNotFound,
		Title:       TitleNotFound,
		Status:      http.StatusNotFound,
		Detail:      fmt.Sprintf("%s with ID '%s' was not found", resource, id),
		RequestID:   requestID,
		UserMessage: fmt.Sprintf("The requested %s could not be found", resource),
	}
}

// NewDuplicateRuleError creates a 409 Conflict response for a rule ID that
// is already taken. Rules are never silently overwritten.
func NewDuplicateRuleError(requestID, id string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeDuplicateRule,
		Title:       TitleDuplicateRule,
		Status:      http.StatusConflict,
		Detail:      fmt.Sprintf("An intervention rule with ID '%s' already exists", id),
		RequestID:   requestID,
		UserMessage: "A rule with this ID already exists. Pick a different ID.",
		Action:      "correct_rule",
	}
}

// NewInvalidRuleError creates a 400 response for a rule with out-of-range
// priority/effectiveness or empty action text.
func NewInvalidRuleError(requestID, detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeInvalidRule,
		Title:       TitleInvalidRule,
		Status:      http.StatusBadRequest,
		Detail:      detail,
		RequestID:   requestID,
		UserMessage: "The rule has invalid fields. Correct them and retry.",
		Action:      "correct_rule",
	}
}

// NewChallengeActiveError creates a 409 response for starting a challenge
// while one is in progress.
func NewChallengeActiveError(requestID string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeChallengeActive,
		Title:       TitleChallengeActive,
		Status:      http.StatusConflict,
		Detail:      "A challenge is already in progress",
		RequestID:   requestID,
		UserMessage: "Finish or abandon your current challenge before starting a new one",
	}
}

// NewChallengeFinishedError creates a 409 response for a check-in after the
// challenge completed.
func NewChallengeFinishedError(requestID string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeChallengeFinished,
		Title:       TitleChallengeFinished,
		Status:      http.StatusConflict,
		Detail:      "The 7-day challenge has already been completed",
		RequestID:   requestID,
		UserMessage: "You already completed this challenge. Start a new one!",
		Action:      "start_challenge",
	}
}

// NewChallengeNotActiveError creates a 409 response for a transition that
// requires an in-progress challenge.
func NewChallengeNotActiveError(requestID string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeChallengeNotActive,
		Title:       TitleChallengeNotActive,
		Status:      http.StatusConflict,
		Detail:      "No challenge is currently in progress",
		RequestID:   requestID,
		UserMessage: "Start a challenge first",
		Action:      "start_challenge",
	}
}

// NewBadRequestError creates a 400 Bad Request response for malformed requests.
func NewBadRequestError(requestID, detail, userMessage string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeBadRequest,
		Title:       TitleBadRequest,
		Status:      http.StatusBadRequest,
		Detail:      detail,
		RequestID:   requestID,
		UserMessage: userMessage,
	}
}

// NewInternalError creates a 500 Internal Server Error response.
// IMPORTANT: This intentionally hides internal error details from the client.
// The actual error should be logged server-side for debugging.
func NewInternalError(requestID string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeInternal,
		Title:       TitleInternal,
		Status:      http.StatusInternalServerError,
		Detail:      "An unexpected error occurred",
		RequestID:   requestID,
		UserMessage: "Something went wrong. Please try again later.",
	}
}
