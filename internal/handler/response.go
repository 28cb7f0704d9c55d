package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charllys777/appsaloes/internal/repository"
	authsvc "github.com/charllys777/appsaloes/internal/service/auth"
	"github.com/charllys777/appsaloes/internal/service/booking"
	"github.com/charllys777/appsaloes/internal/service/reconcile"
	"github.com/charllys777/appsaloes/internal/service/tenant"
	"github.com/charllys777/appsaloes/internal/storage"
	apperrors "github.com/charllys777/appsaloes/pkg/errors"
)

// OK writes the standard success envelope.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": data})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": message})
}

// Error maps a service error onto the right status code with the
// standard error envelope. The error is also attached to the context so
// the error middleware logs it with the request ID. Unknown errors are
// internal.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(statusFor(err), gin.H{"status": "error", "message": err.Error()})
}

func statusFor(err error) int {
	switch {
	case apperrors.IsConflict(err),
		errors.Is(err, repository.ErrSlotTaken),
		errors.Is(err, repository.ErrSlugTaken),
		errors.Is(err, repository.ErrDuplicateEmail):
		return http.StatusConflict
	case apperrors.IsNotFound(err),
		errors.Is(err, repository.ErrNotFound),
		errors.Is(err, tenant.ErrTenantNotFound),
		errors.Is(err, booking.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, authsvc.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, storage.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, reconcile.ErrInvalidRating):
		return http.StatusBadRequest
	case errors.Is(err, booking.ErrWrongStep),
		errors.Is(err, booking.ErrNoServicesSelected),
		errors.Is(err, booking.ErrMissingClientInfo),
		errors.Is(err, booking.ErrIncompleteSchedule),
		errors.Is(err, booking.ErrSlotUnavailable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
