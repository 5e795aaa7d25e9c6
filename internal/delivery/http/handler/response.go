package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/takeyours/takeyours-backend/internal/domain"
)

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// respondError maps domain errors to status codes. Anything unmapped is a
// 500 with a generic message so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrAdminNotFound),
		errors.Is(err, domain.ErrInteractionNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, domain.ErrUserAlreadyExists):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, domain.ErrStepMismatch):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, domain.ErrOTPInvalid),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidAction),
		errors.Is(err, domain.ErrCannotSelectSelf),
		errors.Is(err, domain.ErrInvalidSubmission):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, domain.ErrOTPRateLimited):
		status = http.StatusTooManyRequests
		message = err.Error()
	}

	c.JSON(status, ErrorResponse{Error: message})
}

// currentEmail reads the email the auth middleware stored on the context.
func currentEmail(c *gin.Context) (string, bool) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return "", false
	}
	return email, true
}
