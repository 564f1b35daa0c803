package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/srgjo27/sportsync/internal/core/services"
	"go.uber.org/zap"
)

// OwnerHandler serves venue management and booking moderation for owners.
type OwnerHandler struct {
	bookings     *services.BookingService
	courts       *services.CourtService
	availability *services.AvailabilityService
	stats        *services.StatsService
	log          *zap.Logger
}

func NewOwnerHandler(
	bookings *services.BookingService,
	courts *services.CourtService,
	availability *services.AvailabilityService,
	stats *services.StatsService,
	log *zap.Logger,
) *OwnerHandler {
	return &OwnerHandler{bookings: bookings, courts: courts, availability: availability, stats: stats, log: log}
}

func (h *OwnerHandler) CreateWalkIn(c *gin.Context) {
	var req services.WalkInBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	res, err := h.bookings.CreateWalkIn(c.Request.Context(), principal(c), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, newCreatedBookingResponse(res))
}

func (h *OwnerHandler) PendingBookings(c *gin.Context) {
	items, err := h.bookings.ListPending(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": newDetailsList(items)})
}

func (h *OwnerHandler) Approve(c *gin.Context) {
	h.moderate(c, "booking approved", func(id uuid.UUID, _ string) error {
		return h.bookings.Approve(c.Request.Context(), principal(c), id)
	})
}

func (h *OwnerHandler) Reject(c *gin.Context) {
	h.moderate(c, "booking rejected", func(id uuid.UUID, reason string) error {
		return h.bookings.Reject(c.Request.Context(), principal(c), id, reason)
	})
}

func (h *OwnerHandler) Cancel(c *gin.Context) {
	h.moderate(c, "booking cancelled", func(id uuid.UUID, reason string) error {
		return h.bookings.Cancel(c.Request.Context(), principal(c), id, reason)
	})
}

func (h *OwnerHandler) Complete(c *gin.Context) {
	h.moderate(c, "booking completed", func(id uuid.UUID, _ string) error {
		return h.bookings.Complete(c.Request.Context(), principal(c), id)
	})
}

func (h *OwnerHandler) moderate(c *gin.Context, msg string, apply func(id uuid.UUID, reason string) error) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	reason, ok := optionalReason(c)
	if !ok {
		return
	}

	if err := apply(id, reason); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msg, "bookingId": id})
}

func (h *OwnerHandler) Calendar(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	cal, err := h.availability.Calendar(c.Request.Context(), principal(c), id, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, cal)
}

func (h *OwnerHandler) CreateComplex(c *gin.Context) {
	var req services.CreateComplexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	cx, err := h.courts.CreateComplex(c.Request.Context(), principal(c), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, newComplexResponse(cx))
}

func (h *OwnerHandler) CreateCourt(c *gin.Context) {
	complexID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.CreateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	view, err := h.courts.CreateCourt(c.Request.Context(), principal(c), complexID, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, newCourtResponse(view))
}

func (h *OwnerHandler) UpdateCourt(c *gin.Context) {
	courtID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	view, err := h.courts.UpdateCourt(c.Request.Context(), principal(c), courtID, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, newCourtResponse(view))
}

func (h *OwnerHandler) DeleteCourt(c *gin.Context) {
	courtID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.courts.DeleteCourt(c.Request.Context(), principal(c), courtID); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "court deleted", "courtId": courtID})
}

func (h *OwnerHandler) ListComplexes(c *gin.Context) {
	items, err := h.courts.OwnerComplexes(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": newComplexSummaries(items, true)})
}

func (h *OwnerHandler) GetComplex(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.courts.OwnedComplexDetail(c.Request.Context(), principal(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, newComplexDetailResponse(detail, true))
}

func (h *OwnerHandler) UpdateComplex(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateComplexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	cx, err := h.courts.UpdateComplex(c.Request.Context(), principal(c), id, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, newComplexResponse(cx))
}

func (h *OwnerHandler) Bookings(c *gin.Context) {
	res, err := h.bookings.ListForOwner(c.Request.Context(), principal(c), services.OwnerBookingsRequest{
		Query:     bookingQuery(c),
		ComplexID: c.Query("courtComplexId"),
		Date:      c.Query("date"),
		Search:    c.Query("search"),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, newBookingPageResponse(res))
}

func (h *OwnerHandler) Statistics(c *gin.Context) {
	report, err := h.stats.Owner(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, ownerStatsResponse{
		TotalComplexes:  report.Stats.TotalComplexes,
		TotalCourts:     report.Stats.TotalCourts,
		MonthlyBookings: report.Stats.Bookings,
		MonthlyRevenue:  report.Stats.Revenue,
		OccupancyRate:   report.OccupancyRate,
		From:            report.From,
		To:              report.To,
	})
}
