package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID           uuid.UUID
	ComplexID    uuid.UUID
	ComplexName  string
	CustomerID   uuid.UUID
	CustomerName string
	Rating       int
	Comment      string
	CreatedAt    time.Time
}

func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// ReviewSummary is the aggregate kept on the complex plus a per-star count.
// Stars[0] counts one-star reviews.
type ReviewSummary struct {
	Average decimal.Decimal
	Total   int
	Stars   [MaxRating]int
}

type ReviewPage struct {
	Items      []Review
	Summary    ReviewSummary
	TotalItems int
	Page       int
	PerPage    int
}

func (p ReviewPage) TotalPages() int {
	return pageCount(p.TotalItems, p.PerPage)
}

type ReviewQuery struct {
	Page  int
	Limit int
}

func (q ReviewQuery) Normalize() ReviewQuery {
	q.Page, q.Limit = clampPage(q.Page, q.Limit, DefaultPageLimit)
	return q
}

func (q ReviewQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}
