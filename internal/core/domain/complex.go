package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

type Complex struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Name          string
	Address       string
	City          string
	PhoneNumber   string
	SportType     string
	OpenTime      TimeOfDay
	CloseTime     TimeOfDay
	BankCode      string
	AccountNumber string
	AccountName   string
	Rating        decimal.Decimal
	TotalReviews  int
	Status        Status
	CreatedAt     time.Time
}

func (c *Complex) IsActive() bool {
	return c.Status == StatusActive
}

func (c *Complex) HasBanking() bool {
	return c.BankCode != "" && c.AccountNumber != ""
}

// Covers reports whether [start, end) lies inside the complex's opening hours.
// Both instants are measured from the midnight of start's day, so a window
// running past midnight only fits a complex that closes at 24:00.
// Comparison is on instants, so a second past closing time is outside.
func (c *Complex) Covers(start, end time.Time) bool {
	return !start.Before(c.OpenTime.On(start)) && !end.After(c.CloseTime.On(start))
}

type Court struct {
	ID        uuid.UUID
	ComplexID uuid.UUID
	Name      string
	Status    Status
}

func (c *Court) IsActive() bool {
	return c.Status == StatusActive
}

// CourtWithComplex is a court loaded together with the venue it belongs to.
type CourtWithComplex struct {
	Court   Court
	Complex Complex
}
