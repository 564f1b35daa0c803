package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/srgjo27/sportsync/internal/core/services"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	svc *services.ReviewService
	log *zap.Logger
}

func NewReviewHandler(svc *services.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{svc: svc, log: log}
}

func (h *ReviewHandler) Create(c *gin.Context) {
	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	review, err := h.svc.Create(c.Request.Context(), principal(c), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, newReviewResponse(review))
}

func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	review, err := h.svc.Update(c.Request.Context(), principal(c), id, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, newReviewResponse(review))
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), principal(c), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "review deleted", "reviewId": id})
}

func (h *ReviewHandler) Mine(c *gin.Context) {
	items, err := h.svc.ListMine(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": newReviewList(items)})
}
