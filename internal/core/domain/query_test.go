package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/srgjo27/sportsync/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestOwnerBookingQuery_Normalize(t *testing.T) {
	q := domain.OwnerBookingQuery{
		BookingQuery: domain.BookingQuery{Limit: 500, SortBy: "customerName", SortOrder: "asc", Status: "Lost"},
		Search:       "  0909 ",
	}.Normalize()

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, domain.MaxPageLimit, q.Limit)
	assert.Equal(t, "customerName", q.SortBy)
	assert.Equal(t, "asc", q.SortOrder)
	assert.Empty(t, q.Status)
	assert.Equal(t, "0909", q.Search)

	q = domain.OwnerBookingQuery{BookingQuery: domain.BookingQuery{SortBy: "id; DROP TABLE"}}.Normalize()
	assert.Equal(t, "createdAt", q.SortBy)
	assert.Equal(t, "desc", q.SortOrder)
}

func TestComplexQuery_Normalize(t *testing.T) {
	q := domain.ComplexQuery{Page: 3, City: " Hanoi "}.Normalize()

	assert.Equal(t, domain.DefaultComplexPageLimit, q.Limit)
	assert.Equal(t, "Hanoi", q.City)
	assert.Equal(t, 24, q.Offset())

	page := domain.ComplexPage{TotalItems: 25, PerPage: 12}
	assert.Equal(t, 3, page.TotalPages())
}

func TestOwnerStats_OccupancyRate(t *testing.T) {
	tests := []struct {
		name  string
		stats domain.OwnerStats
		days  int
		want  float64
	}{
		{"no courts", domain.OwnerStats{BookedMinutes: 60}, 30, 0},
		{"one booked hour of ten", domain.OwnerStats{BookedMinutes: 60, DailyCapacityMinutes: 600}, 1, 10},
		{"rounded to one decimal", domain.OwnerStats{BookedMinutes: 100, DailyCapacityMinutes: 960}, 30, 0.3},
		{"capped", domain.OwnerStats{BookedMinutes: 2000, DailyCapacityMinutes: 600}, 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.stats.Revenue = decimal.Zero
			assert.Equal(t, tt.want, tt.stats.OccupancyRate(tt.days))
		})
	}
}

func TestValidRating(t *testing.T) {
	assert.False(t, domain.ValidRating(0))
	assert.True(t, domain.ValidRating(1))
	assert.True(t, domain.ValidRating(5))
	assert.False(t, domain.ValidRating(6))
}
