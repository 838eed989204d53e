package middleware

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	ierr "github.com/subcycle/subcycle/internal/errors"
)

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Display string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorHandler renders any error a handler attached to the gin context as a
// JSON response with the status derived from the error kind.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		response := ErrorResponse{
			Success: false,
			Error: ErrorDetail{
				Display: displayMessage(err),
				Details: safeDetails(err),
			},
		}

		c.JSON(ierr.HTTPStatusFromErr(err), response)
	}
}

// displayMessage picks the first non-empty hint, the hints carry the
// user-facing wording
func displayMessage(err error) string {
	for _, hint := range errors.GetAllHints(err) {
		if hint = strings.TrimSpace(hint); hint != "" {
			return hint
		}
	}
	return "An unexpected error occurred"
}

// safeDetails collects the structured details attached via
// WithReportableDetails, skipping anything not explicitly marked safe
func safeDetails(err error) map[string]any {
	details := make(map[string]any)

	for _, sdp := range errors.GetAllSafeDetails(err) {
		for _, payload := range sdp.SafeDetails {
			jsonStr, ok := strings.CutPrefix(payload, "__json__:")
			if !ok {
				continue
			}
			var decoded map[string]any
			if err := json.Unmarshal([]byte(jsonStr), &decoded); err == nil {
				for k, v := range decoded {
					details[k] = v
				}
			}
		}
	}

	if len(details) == 0 {
		return nil
	}
	return details
}
