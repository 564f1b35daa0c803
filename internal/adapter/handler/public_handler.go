package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/srgjo27/sportsync/internal/core/domain"
	"github.com/srgjo27/sportsync/internal/core/ports"
	"github.com/srgjo27/sportsync/internal/core/services"
	"go.uber.org/zap"
)

// PublicHandler serves unauthenticated read endpoints.
type PublicHandler struct {
	availability *services.AvailabilityService
	courts       *services.CourtService
	reviews      *services.ReviewService
	banks        ports.BankDirectory
	log          *zap.Logger
}

func NewPublicHandler(
	availability *services.AvailabilityService,
	courts *services.CourtService,
	reviews *services.ReviewService,
	banks ports.BankDirectory,
	log *zap.Logger,
) *PublicHandler {
	return &PublicHandler{availability: availability, courts: courts, reviews: reviews, banks: banks, log: log}
}

func (h *PublicHandler) ListComplexes(c *gin.Context) {
	page, limit := pageParams(c)

	res, err := h.courts.ListComplexes(c.Request.Context(), domain.ComplexQuery{
		Page:      page,
		Limit:     limit,
		City:      c.Query("city"),
		SportType: c.Query("sportType"),
		Search:    c.Query("search"),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, complexPageResponse{
		Items: newComplexSummaries(res.Items, false),
		Pagination: pagination{
			Page:       res.Page,
			PerPage:    res.PerPage,
			TotalItems: res.TotalItems,
			TotalPages: res.TotalPages(),
		},
	})
}

func (h *PublicHandler) GetComplex(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.courts.ComplexDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, newComplexDetailResponse(detail, false))
}

func (h *PublicHandler) ComplexReviews(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	page, limit := pageParams(c)

	res, err := h.reviews.ListForComplex(c.Request.Context(), id, domain.ReviewQuery{Page: page, Limit: limit})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, newReviewPageResponse(res))
}

func (h *PublicHandler) AvailabilityGrid(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	grid, err := h.availability.Grid(c.Request.Context(), id, c.Query("date"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, grid)
}

func (h *PublicHandler) CourtAvailability(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	days, err := h.availability.CourtAvailability(c.Request.Context(), id, c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"courtId": id, "days": days})
}

func (h *PublicHandler) GetCourt(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.courts.GetCourt(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, newCourtResponse(view))
}

func (h *PublicHandler) Banks(c *gin.Context) {
	banks, err := h.banks.ListBanks(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"banks": banks})
}
