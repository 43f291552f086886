// Package response renders the uniform JSON envelope returned by every endpoint.
package response

import (
	"net/http"
	"time"

	deliverycontext "identity/internal/delivery/context"
	domainerrors "identity/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// Envelope is the body of every response. Data fields are set per endpoint.
type Envelope struct {
	Success   bool                          `json:"success"`
	Message   string                        `json:"message"`
	Token     string                        `json:"token,omitempty"`
	ExpiresAt *time.Time                    `json:"expiresAt,omitempty"`
	User      any                           `json:"user,omitempty"`
	Errors    []domainerrors.FieldViolation `json:"errors,omitempty"`
	RequestID string                        `json:"requestId,omitempty"`
}

// Success writes a successful envelope.
func Success(c echo.Context, statusCode int, body Envelope) error {
	body.Success = true
	body.RequestID = deliverycontext.GetRequestID(c)

	return c.JSON(statusCode, body)
}

// Error writes a failed envelope. Field violations are only kept for client errors.
func Error(c echo.Context, statusCode int, message string, violations []domainerrors.FieldViolation) error {
	if statusCode >= http.StatusInternalServerError || statusCode == http.StatusUnauthorized {
		violations = nil
	}

	return c.JSON(statusCode, Envelope{
		Success:   false,
		Message:   message,
		Errors:    violations,
		RequestID: deliverycontext.GetRequestID(c),
	})
}

// BadRequest returns a 400 error
func BadRequest(c echo.Context, message string) error {
	return Error(c, http.StatusBadRequest, message, nil)
}

// TooManyRequests returns a 429 error
func TooManyRequests(c echo.Context) error {
	return Error(c, http.StatusTooManyRequests, domainerrors.ErrTooManyRequests.Message(), nil)
}

// InternalServerError returns a 500 error with the generic message.
func InternalServerError(c echo.Context) error {
	return Error(c, http.StatusInternalServerError, domainerrors.ErrInternalError.Message(), nil)
}
