package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingConfirmed BookingStatus = "Confirmed"
	BookingRejected  BookingStatus = "Rejected"
	BookingCancelled BookingStatus = "Cancelled"
	BookingCompleted BookingStatus = "Completed"
)

// HoldingStatuses block new overlapping bookings on the same court.
var HoldingStatuses = []BookingStatus{BookingPending, BookingConfirmed}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingRejected, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

func (s BookingStatus) Holds() bool {
	return s == BookingPending || s == BookingConfirmed
}

type BookingType string

const (
	BookingOnline BookingType = "Online"
	BookingWalkIn BookingType = "WalkIn"
)

type BookingAction string

const (
	ActionApprove  BookingAction = "approve"
	ActionReject   BookingAction = "reject"
	ActionCancel   BookingAction = "cancel"
	ActionComplete BookingAction = "complete"
)

type transition struct {
	from []BookingStatus
	to   BookingStatus
}

var transitions = map[BookingAction]transition{
	ActionApprove:  {from: []BookingStatus{BookingPending}, to: BookingConfirmed},
	ActionReject:   {from: []BookingStatus{BookingPending}, to: BookingRejected},
	ActionCancel:   {from: []BookingStatus{BookingPending, BookingConfirmed}, to: BookingCancelled},
	ActionComplete: {from: []BookingStatus{BookingConfirmed}, to: BookingCompleted},
}

// Transition returns the source statuses an action accepts and the status it
// produces. ok is false for unknown actions.
func Transition(action BookingAction) (from []BookingStatus, to BookingStatus, ok bool) {
	t, ok := transitions[action]
	return t.from, t.to, ok
}

type Booking struct {
	ID          uuid.UUID
	CourtID     uuid.UUID
	CustomerID  *uuid.UUID
	WalkInName  string
	WalkInPhone string
	StartTime   time.Time
	EndTime     time.Time
	TotalPrice  decimal.Decimal
	Status      BookingStatus
	Type        BookingType
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Overlaps applies the half-open overlap test against [start, end).
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}

func (b *Booking) IsWalkIn() bool {
	return b.Type == BookingWalkIn
}

// PaymentRef is the short reference customers quote in a bank transfer.
func (b *Booking) PaymentRef() string {
	return strings.ToUpper(strings.ReplaceAll(b.ID.String(), "-", "")[:8])
}

// BookingDetails is a booking joined with everything needed to authorise a
// transition and to notify the customer.
type BookingDetails struct {
	Booking       Booking
	CourtName     string
	ComplexID     uuid.UUID
	ComplexName   string
	OwnerID       uuid.UUID
	CustomerName  string
	CustomerEmail string
}

// DisplayName is the customer name for online bookings and the walk-in name
// otherwise.
func (d *BookingDetails) DisplayName() string {
	if d.CustomerName != "" {
		return d.CustomerName
	}
	return d.Booking.WalkInName
}
