package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/srgjo27/sportsync/internal/core/services"
	"go.uber.org/zap"
)

type AdminHandler struct {
	stats *services.StatsService
	log   *zap.Logger
}

func NewAdminHandler(stats *services.StatsService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{stats: stats, log: log}
}

func (h *AdminHandler) Statistics(c *gin.Context) {
	s, err := h.stats.Platform(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, statsResponse{
		TotalUsers:       s.TotalUsers,
		TotalComplexes:   s.TotalComplexes,
		TotalCourts:      s.TotalCourts,
		BookingsByStatus: s.BookingsByStatus,
		Revenue:          s.Revenue,
	})
}
