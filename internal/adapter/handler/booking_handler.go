package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/srgjo27/sportsync/internal/core/services"
	"go.uber.org/zap"
)

// BookingHandler serves the customer booking endpoints.
type BookingHandler struct {
	svc *services.BookingService
	log *zap.Logger
}

func NewBookingHandler(svc *services.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, log: log}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req services.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	res, err := h.svc.CreateBooking(c.Request.Context(), principal(c), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, newCreatedBookingResponse(res))
}

func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	var req services.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	res, err := h.svc.CheckAvailability(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *BookingHandler) MyBookings(c *gin.Context) {
	res, err := h.svc.ListMine(c.Request.Context(), principal(c), bookingQuery(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, newBookingPageResponse(res))
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	details, err := h.svc.GetForCustomer(c.Request.Context(), principal(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, newDetailsResponse(*details))
}

func (h *BookingHandler) PaymentInfo(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	details, info, err := h.svc.PaymentInfo(c.Request.Context(), principal(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, paymentInfoResponse{Booking: newDetailsResponse(*details), Payment: info})
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Cancel(c.Request.Context(), principal(c), id, ""); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled", "bookingId": id})
}
