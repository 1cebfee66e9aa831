package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/digitalwellness/guardian/backend/internal/apierror"
)

// writeBindError maps a JSON binding failure to a Problem Details response.
// Field-level validation failures are aggregated so the client sees every
// bad field at once; anything else is reported as a malformed request.
func writeBindError(c *gin.Context, err error) {
	requestID := apierror.GetRequestID(c)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fieldErrors := make([]apierror.FieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fieldErrors = append(fieldErrors, apierror.FieldError{
				Field:   strings.ToLower(fe.Field()),
				Message: validationMessage(fe),
				Code:    fe.Tag(),
			})
		}
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, fieldErrors))
		return
	}

	apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "ltefield":
		return "must not exceed " + strings.ToLower(fe.Param())
	default:
		return "is invalid"
	}
}

// queryInt parses an integer query parameter, falling back to def when the
// parameter is absent or malformed, and clamping to [min, max].
func queryInt(c *gin.Context, name string, def, min, max int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		v = def
	}
	if v < min {
		v = min
	}
	if v > max {
		v = max
	}
	return v
}
