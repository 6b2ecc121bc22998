package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "socialgraph/backend/pkg/errors"
)

const retryAfterSeconds = "1"

// statusFor maps the engine's error taxonomy onto HTTP status codes
func statusFor(err error) int {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeValidation, apperrors.ErrorTypeSelfReference:
		return http.StatusBadRequest
	case apperrors.ErrorTypeNotFound:
		return http.StatusNotFound
	case apperrors.ErrorTypeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": msg}. Typed errors carry a client-safe
// message; anything else is logged and hidden behind a generic one.
func (h *Handler) respondError(c *gin.Context, op string, err error) {
	status := statusFor(err)

	var msg string
	switch status {
	case http.StatusInternalServerError:
		h.log.Error("Request failed", zap.String("operation", op), zap.Error(err))
		msg = "Failed to " + op
	case http.StatusServiceUnavailable:
		h.log.Warn("Graph store unavailable", zap.String("operation", op), zap.Error(err))
		msg = "Service temporarily unavailable"
		if apperrors.IsRetryable(err) {
			c.Header("Retry-After", retryAfterSeconds)
		}
	default:
		msg = apperrors.MessageOf(err)
	}

	c.JSON(status, gin.H{"error": msg})
}
