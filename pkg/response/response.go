package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIResponse is the uniform envelope for every endpoint.
// Error responses never include stack detail, only the optional Error payload
// (typically a field->message map from validation).
type APIResponse[T any] struct {
	StatusCode int         `json:"statusCode"`
	Timestamp  time.Time   `json:"timestamp"`
	RequestID  string      `json:"requestId,omitempty"`
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       T           `json:"data,omitempty"`
	Error      interface{} `json:"error,omitempty"`
}

func Success[T any](ctx *gin.Context, status int, data T, message string) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, APIResponse[T]{
		StatusCode: status,
		Timestamp:  time.Now(),
		RequestID:  ctx.GetString("request_id"),
		Success:    true,
		Message:    message,
		Data:       data,
	})
}

func Error(ctx *gin.Context, status int, message string, err interface{}) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.JSON(status, APIResponse[any]{
		StatusCode: status,
		Timestamp:  time.Now(),
		RequestID:  ctx.GetString("request_id"),
		Success:    false,
		Message:    message,
		Error:      err,
	})
}

// AbortError writes the envelope and stops the handler chain (middleware use).
func AbortError(ctx *gin.Context, status int, message string, err interface{}) {
	ctx.AbortWithStatusJSON(status, APIResponse[any]{
		StatusCode: status,
		Timestamp:  time.Now(),
		RequestID:  ctx.GetString("request_id"),
		Success:    false,
		Message:    message,
		Error:      err,
	})
}
