package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/srgjo27/sportsync/internal/core/domain"
)

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

// optionalReason reads {"reason": "..."} and accepts an empty body.
func optionalReason(c *gin.Context) (string, bool) {
	var req reasonRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "invalid json body")
		return "", false
	}
	return req.Reason, true
}

// pageParams reads page and limit; junk values become zero and are
// normalised by the service.
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return page, limit
}

func bookingQuery(c *gin.Context) domain.BookingQuery {
	page, limit := pageParams(c)
	return domain.BookingQuery{
		Page:      page,
		Limit:     limit,
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Status:    domain.BookingStatus(c.Query("status")),
	}
}
