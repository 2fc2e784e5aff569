package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/blogapi/internal/http/middlewares"
)

// APIError is the body of every failure response. Error carries the
// underlying cause verbatim where the API surfaces it.
type APIError struct {
	Message   string      `json:"message"`
	Error     string      `json:"error,omitempty"`
	RequestID string      `json:"requestId,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

func requestIDFrom(ctx *gin.Context) string {
	v, ok := ctx.Get(middlewares.CtxRequestID)

	if ok {
		s, ok := v.(string)
		if ok && s != "" {
			return s
		}
	}

	// fallback header
	return ctx.GetHeader("X-Request-Id")
}

func RespondError(ctx *gin.Context, status int, message string, cause error, details interface{}) {
	body := APIError{
		Message:   message,
		RequestID: requestIDFrom(ctx),
		Details:   details,
	}
	if cause != nil {
		body.Error = cause.Error()
	}

	ctx.JSON(status, body)
}

func RespondBadRequest(ctx *gin.Context, message string, cause error) {
	RespondError(ctx, http.StatusBadRequest, message, cause, nil)
}

func RespondUnauthorized(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusUnauthorized, message, nil, nil)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, message, nil, nil)
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusInternalServerError, message, nil, nil)
}

func RespondMessage(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"message": message})
}
