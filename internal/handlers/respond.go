package handlers

import (
	"errors"
	"net/http"

	"github.com/ccpc-cuj/membership-backend/internal/models"
	"github.com/gin-gonic/gin"
)

// Envelope keys used by the two response families.
const (
	envelopeOK      = "ok"
	envelopeSuccess = "success"
)

// statusFor maps an error kind onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// clientMessage returns the message of a classified error. Anything else gets fallback so
// store and driver details never reach the client.
func clientMessage(err error, fallback string) string {
	for _, kind := range []error{
		models.ErrValidation,
		models.ErrUnauthorized,
		models.ErrNotFound,
		models.ErrConflict,
		models.ErrServiceUnavailable,
		models.ErrEmailDelivery,
	} {
		if errors.Is(err, kind) {
			return models.ErrorMessage(err, fallback)
		}
	}
	return fallback
}

// respondError writes {envelopeKey: false, message}. An empty envelopeKey writes {message}.
func respondError(c *gin.Context, envelopeKey string, err error, fallback string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	body := gin.H{"message": clientMessage(err, fallback)}
	if envelopeKey != "" {
		body[envelopeKey] = false
	}
	c.JSON(status, body)
}
