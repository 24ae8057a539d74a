package response

import (
	"time"

	"github.com/gin-gonic/gin"

	"shophub-api/internal/pkg/apperror"
)

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type ErrorResponse struct {
	Success   bool         `json:"success"`
	Error     *ErrorDetail `json:"error"`
	RequestID string       `json:"requestId,omitempty"`
	Timestamp string       `json:"timestamp"`
}

// Error writes the failure envelope. Successful cart responses are plain
// payloads (the sync protocol fixes their shape); only errors are wrapped.
func Error(c *gin.Context, status int, errCode string, message string, details interface{}) {
	c.JSON(status, ErrorResponse{
		Success: false,
		Error: &ErrorDetail{
			Code:    errCode,
			Message: message,
			Details: details,
		},
		RequestID: c.GetString("X-Request-ID"),
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// FromError maps a service error to the envelope via apperror.
func FromError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}
