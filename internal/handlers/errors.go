package handlers

import (
	"errors"
	"net/http"

	apperrors "github.com/coachhub/coachhub-api/pkg/errors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends an error JSON response and attaches the error to the gin context
// so the observability middleware can include the reason in the request log.
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message})
}

// respondErrorWithDetails sends an error response with an additional details field.
func respondErrorWithDetails(c *gin.Context, status int, message string, details any, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message, "details": details})
}

// errorStatus maps service errors to HTTP statuses
var errorStatus = []struct {
	sentinel error
	status   int
}{
	{apperrors.ErrInvalidInput, http.StatusBadRequest},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized},
	{apperrors.ErrAccessDenied, http.StatusForbidden},
	{apperrors.ErrNotFound, http.StatusNotFound},
	{apperrors.ErrSlotUnavailable, http.StatusConflict},
	{apperrors.ErrConflict, http.StatusConflict},
	{apperrors.ErrTransport, http.StatusBadGateway},
}

// respondServiceError maps a service error to its status. The caller-facing
// message is the error's reason, or fallback when it has none.
func respondServiceError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	for _, m := range errorStatus {
		if errors.Is(err, m.sentinel) {
			status = m.status
			break
		}
	}

	message := apperrors.Reason(err)
	if message == "" || status == http.StatusInternalServerError {
		message = fallback
	}
	respondError(c, status, message, err)
}

// respondBindError reports a request that failed binding or validation
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := ParseValidationErrors(verrs)
		respondErrorWithDetails(c, http.StatusBadRequest, details[0].Message, details, err)
		return
	}
	respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", gin.H{"message": err.Error()}, err)
}
