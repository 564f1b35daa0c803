package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/srgjo27/sportsync/internal/adapter/payment"
	"github.com/srgjo27/sportsync/internal/core/domain"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidInterval),
		errors.Is(err, domain.ErrPastBooking),
		errors.Is(err, domain.ErrOutsideOperatingHours),
		errors.Is(err, domain.ErrPricingUnavailable),
		errors.Is(err, domain.ErrInvalidRateTable):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrResourceUnavailable):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSlotConflict),
		errors.Is(err, domain.ErrInvalidStateTransition),
		errors.Is(err, domain.ErrCourtInUse),
		errors.Is(err, domain.ErrAlreadyReviewed):
		return http.StatusConflict
	case errors.Is(err, payment.ErrBankDirectory):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the mapped status. Unexpected errors are logged and
// hidden behind a generic message.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	status := statusFor(err)

	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(status, errorResponse{Error: "internal server error"})
		return
	}

	c.AbortWithStatusJSON(status, errorResponse{Error: err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: msg})
}
