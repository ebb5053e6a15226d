package respond

import (
	"github.com/gin-gonic/gin"

	"forms-backend/internal/shared/telemetry"
)

// GenericErrorMessage is shown to clients for every 500 response.
const GenericErrorMessage = "An unexpected error occurred. Please try again later."

// ErrorResponse is the body of every failed form request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Error logs the failure and aborts with {success:false, message}. code is
// a short machine tag that only appears in logs.
func Error(c *gin.Context, status int, code, message string) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if status >= 500 {
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Info("http.error", fields)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Success: false,
		Message: message,
	})
}
