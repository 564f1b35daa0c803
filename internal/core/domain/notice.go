package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type NoticeKind string

const (
	NoticeCreated   NoticeKind = "booking.created"
	NoticeApproved  NoticeKind = "booking.approved"
	NoticeRejected  NoticeKind = "booking.rejected"
	NoticeCancelled NoticeKind = "booking.cancelled"
	NoticeCompleted NoticeKind = "booking.completed"
)

// BookingNotice is the payload handed to notifiers after a booking write has
// been committed.
type BookingNotice struct {
	Kind          NoticeKind      `json:"kind"`
	BookingID     uuid.UUID       `json:"booking_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CourtName     string          `json:"court_name"`
	ComplexName   string          `json:"complex_name"`
	StartTime     string          `json:"start_time"`
	EndTime       string          `json:"end_time"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Status        BookingStatus   `json:"status"`
	Reason        string          `json:"reason,omitempty"`
}

// NoticeTimeLayout formats booking times in notifications (dd/mm/yyyy hh:mm).
const NoticeTimeLayout = "02/01/2006 15:04"
