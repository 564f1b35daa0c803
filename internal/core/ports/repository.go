package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/sportsync/internal/core/domain"
)

type ComplexRepository interface {
	Create(ctx context.Context, complex *domain.Complex) error
	GetByID(ctx context.Context, complexID uuid.UUID) (*domain.Complex, error)
	// Update saves the editable fields. Rating and review count are owned by
	// the review repository.
	Update(ctx context.Context, complex *domain.Complex) error
	// ListPublic pages active complexes matching q.
	ListPublic(ctx context.Context, q domain.ComplexQuery) ([]domain.ComplexSummary, int, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.ComplexSummary, error)
}

type CourtRepository interface {
	GetWithComplex(ctx context.Context, courtID uuid.UUID) (*domain.CourtWithComplex, error)
	ListActiveByComplex(ctx context.Context, complexID uuid.UUID) ([]domain.Court, error)
	ListByComplex(ctx context.Context, complexID uuid.UUID) ([]domain.Court, error)
	CreateWithRates(ctx context.Context, court *domain.Court, rates []domain.RateRule) error
	// Update saves name and status. A nil rates slice keeps the current
	// pricing; a non-nil one replaces it.
	Update(ctx context.Context, court *domain.Court, rates []domain.RateRule) error
	// Delete removes a court and its rates. It returns domain.ErrCourtInUse
	// when any booking references the court.
	Delete(ctx context.Context, courtID uuid.UUID) error
}

type RateRepository interface {
	// ListForDay returns the rules whose selector is day or "All", ordered
	// by start time.
	ListForDay(ctx context.Context, courtID uuid.UUID, day domain.DaySelector) ([]domain.RateRule, error)
	ListByCourt(ctx context.Context, courtID uuid.UUID) ([]domain.RateRule, error)
}

type BookingRepository interface {
	// CreateBooking serialises writers per court, re-checks the slot and
	// inserts. It returns domain.ErrSlotConflict when the slot was taken.
	CreateBooking(ctx context.Context, booking *domain.Booking) error
	HasOverlap(ctx context.Context, courtID uuid.UUID, start, end time.Time) (bool, error)
	ListHolding(ctx context.Context, courtIDs []uuid.UUID, from, to time.Time) ([]domain.BookingDetails, error)
	GetDetails(ctx context.Context, bookingID uuid.UUID) (*domain.BookingDetails, error)
	// UpdateStatus moves a booking to `to` only if it is currently in one of
	// `from`. It returns domain.ErrInvalidStateTransition otherwise.
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, from []domain.BookingStatus, to domain.BookingStatus) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID, q domain.BookingQuery) ([]domain.BookingDetails, int, error)
	ListPendingByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.BookingDetails, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, q domain.OwnerBookingQuery) ([]domain.BookingDetails, int, error)
}

type StatsRepository interface {
	PlatformStats(ctx context.Context) (*domain.PlatformStats, error)
	// OwnerStats counts confirmed and completed bookings created in
	// [from, to) across the owner's complexes. Booked minutes follow start
	// time instead, so they line up with the court capacity of the window.
	OwnerStats(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (*domain.OwnerStats, error)
}

// ReviewRepository keeps the complex's rating and review count in step with
// its reviews: every write recomputes both in the same transaction.
type ReviewRepository interface {
	// HasVisited reports whether the customer holds a confirmed or completed
	// booking at the complex.
	HasVisited(ctx context.Context, customerID, complexID uuid.UUID) (bool, error)
	// Create returns domain.ErrAlreadyReviewed when the customer has
	// reviewed the complex before.
	Create(ctx context.Context, review *domain.Review) error
	GetByID(ctx context.Context, reviewID uuid.UUID) (*domain.Review, error)
	Update(ctx context.Context, review *domain.Review) error
	Delete(ctx context.Context, review *domain.Review) error
	ListByComplex(ctx context.Context, complexID uuid.UUID, q domain.ReviewQuery) ([]domain.Review, int, error)
	Summary(ctx context.Context, complexID uuid.UUID) (*domain.ReviewSummary, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Review, error)
}
