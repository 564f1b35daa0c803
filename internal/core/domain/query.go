package domain

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingQuery pages and filters a customer's booking history.
type BookingQuery struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
	Status    BookingStatus
}

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

var bookingSortColumns = map[string]bool{
	"createdAt":  true,
	"startTime":  true,
	"totalPrice": true,
	"status":     true,
}

// Normalize clamps paging values and replaces unknown sort keys with defaults.
func (q BookingQuery) Normalize() BookingQuery {
	q.Page, q.Limit = clampPage(q.Page, q.Limit, DefaultPageLimit)
	if !bookingSortColumns[q.SortBy] {
		q.SortBy = "createdAt"
	}
	if q.SortOrder != "asc" {
		q.SortOrder = "desc"
	}
	if !q.Status.Valid() {
		q.Status = ""
	}
	return q
}

func (q BookingQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

type BookingPage struct {
	Items      []BookingDetails
	TotalItems int
	Page       int
	PerPage    int
}

func (p BookingPage) TotalPages() int {
	return pageCount(p.TotalItems, p.PerPage)
}

func pageCount(total, perPage int) int {
	if perPage == 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

func clampPage(page, limit, fallback int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = fallback
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

var ownerSortColumns = map[string]bool{
	"customerName": true,
	"courtName":    true,
	"complexName":  true,
}

// OwnerBookingQuery filters the bookings across every complex an owner runs.
// Date selects bookings starting on that calendar day in Date's location.
type OwnerBookingQuery struct {
	BookingQuery
	ComplexID *uuid.UUID
	Date      *time.Time
	Search    string
}

func (q OwnerBookingQuery) Normalize() OwnerBookingQuery {
	sortBy := q.SortBy
	q.BookingQuery = q.BookingQuery.Normalize()
	if ownerSortColumns[sortBy] {
		q.SortBy = sortBy
	}
	q.Search = strings.TrimSpace(q.Search)
	return q
}

const DefaultComplexPageLimit = 12

// ComplexQuery searches the public venue directory. City matches whole,
// ignoring case. SportType and Search are case-insensitive substrings; Search looks at name
// and address.
type ComplexQuery struct {
	Page      int
	Limit     int
	City      string
	SportType string
	Search    string
}

func (q ComplexQuery) Normalize() ComplexQuery {
	q.Page, q.Limit = clampPage(q.Page, q.Limit, DefaultComplexPageLimit)
	q.City = strings.TrimSpace(q.City)
	q.SportType = strings.TrimSpace(q.SportType)
	q.Search = strings.TrimSpace(q.Search)
	return q
}

func (q ComplexQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// ComplexSummary is a directory entry. The price range spans every rate of
// the complex's active courts and is zero when none are priced.
type ComplexSummary struct {
	Complex    Complex
	CourtCount int
	MinPrice   decimal.Decimal
	MaxPrice   decimal.Decimal
}

type ComplexPage struct {
	Items      []ComplexSummary
	TotalItems int
	Page       int
	PerPage    int
}

func (p ComplexPage) TotalPages() int {
	return pageCount(p.TotalItems, p.PerPage)
}

// OwnerStats covers one owner's venues over a reporting window.
// BookedMinutes and DailyCapacityMinutes feed OccupancyRate.
type OwnerStats struct {
	TotalComplexes       int
	TotalCourts          int
	Bookings             int
	Revenue              decimal.Decimal
	BookedMinutes        int
	DailyCapacityMinutes int
}

// OccupancyRate is the booked share of bookable court time over days,
// as a percentage with one decimal, capped at 100.
func (s OwnerStats) OccupancyRate(days int) float64 {
	capacity := s.DailyCapacityMinutes * days
	if capacity <= 0 {
		return 0
	}
	rate := float64(s.BookedMinutes) / float64(capacity) * 100
	return math.Min(math.Round(rate*10)/10, 100)
}

type PlatformStats struct {
	TotalUsers       int
	TotalComplexes   int
	TotalCourts      int
	BookingsByStatus map[BookingStatus]int
	Revenue          decimal.Decimal
}
