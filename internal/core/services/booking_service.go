package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/srgjo27/sportsync/internal/core/domain"
	"github.com/srgjo27/sportsync/internal/core/ports"
	"go.uber.org/zap"
)

const (
	MinBookingDuration = 30 * time.Minute
	CustomerCancelLead = 2 * time.Hour

	defaultRejectReason      = "No reason provided."
	defaultOwnerCancelReason = "Cancelled by the venue owner."
	customerCancelReason     = "Cancelled by the customer."
)

type CreateBookingRequest struct {
	CourtID   string `json:"court_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type WalkInBookingRequest struct {
	CourtID       string `json:"court_id"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
}

// OwnerBookingsRequest carries the raw owner booking filters. Empty strings
// mean no filter.
type OwnerBookingsRequest struct {
	Query     domain.BookingQuery
	ComplexID string
	Date      string
	Search    string
}

type BookingResult struct {
	Booking     domain.Booking
	CourtName   string
	ComplexName string
	Payment     *domain.PaymentInfo
	Segments    []PricedSegment
}

type AvailabilityResult struct {
	Available      bool            `json:"available"`
	EstimatedPrice decimal.Decimal `json:"estimatedPrice"`
	ConflictReason *string         `json:"conflictReason"`
	Segments       []PricedSegment `json:"segments,omitempty"`
}

type BookingService struct {
	courtRepo   ports.CourtRepository
	bookingRepo ports.BookingRepository
	rates       *RateTable
	payments    *PaymentDesk
	notifier    ports.Notifier
	cache       *redis.Client
	clock       ports.Clock
	logger      *zap.Logger
}

func NewBookingService(
	courtRepo ports.CourtRepository,
	bookingRepo ports.BookingRepository,
	rates *RateTable,
	payments *PaymentDesk,
	notifier ports.Notifier,
	cache *redis.Client,
	clock ports.Clock,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		courtRepo:   courtRepo,
		bookingRepo: bookingRepo,
		rates:       rates,
		payments:    payments,
		notifier:    notifier,
		cache:       cache,
		clock:       clock,
		logger:      logger,
	}
}

type slotRequest struct {
	courtID uuid.UUID
	start   time.Time
	end     time.Time
	online  bool
	// owner, when set, must own the complex the court belongs to.
	owner *uuid.UUID
}

type evaluation struct {
	venue *domain.CourtWithComplex
	quote *Quote
}

func (s *BookingService) parseSlot(courtID, start, end string, online bool) (slotRequest, error) {
	loc := s.clock.Now().Location()

	id, err := parseID(courtID, "court")
	if err != nil {
		return slotRequest{}, err
	}

	st, err := ParseBookingTime(start, loc)
	if err != nil {
		return slotRequest{}, err
	}

	et, err := ParseBookingTime(end, loc)
	if err != nil {
		return slotRequest{}, err
	}

	return slotRequest{courtID: id, start: st, end: et, online: online}, nil
}

// evaluate runs the shared validation chain in a fixed order and stops at the
// first failure. Every booking entry point goes through it.
func (s *BookingService) evaluate(ctx context.Context, req slotRequest, now time.Time) (*evaluation, error) {
	if !req.start.Before(req.end) {
		return nil, fmt.Errorf("%w: start time must be before end time", domain.ErrInvalidInterval)
	}

	if req.end.Sub(req.start) < MinBookingDuration {
		return nil, fmt.Errorf("%w: minimum booking duration is 30 minutes", domain.ErrInvalidInterval)
	}

	if req.online && req.start.Before(now) {
		return nil, domain.ErrPastBooking
	}

	venue, err := s.courtRepo.GetWithComplex(ctx, req.courtID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: court not found", domain.ErrResourceUnavailable)
		}
		return nil, fmt.Errorf("get court: %w", err)
	}

	if req.owner != nil && venue.Complex.OwnerID != *req.owner {
		return nil, fmt.Errorf("%w: you can only create bookings for your own courts", domain.ErrPermissionDenied)
	}

	if !venue.Court.IsActive() {
		return nil, fmt.Errorf("%w: court is inactive", domain.ErrResourceUnavailable)
	}

	if !venue.Complex.IsActive() {
		return nil, fmt.Errorf("%w: court complex is inactive", domain.ErrResourceUnavailable)
	}

	if !venue.Complex.Covers(req.start, req.end) {
		return nil, fmt.Errorf("%w: complex is open %s - %s", domain.ErrOutsideOperatingHours,
			venue.Complex.OpenTime, venue.Complex.CloseTime)
	}

	taken, err := s.bookingRepo.HasOverlap(ctx, req.courtID, req.start, req.end)
	if err != nil {
		return nil, fmt.Errorf("check overlap: %w", err)
	}

	if taken {
		return nil, domain.ErrSlotConflict
	}

	quote, err := PriceInterval(req.start, req.end, s.rates.Lookup(ctx, req.courtID))
	if err != nil {
		return nil, err
	}

	return &evaluation{venue: venue, quote: quote}, nil
}

func (s *BookingService) CreateBooking(ctx context.Context, p domain.Principal, req CreateBookingRequest) (*BookingResult, error) {
	now := s.clock.Now()

	slot, err := s.parseSlot(req.CourtID, req.StartTime, req.EndTime, true)
	if err != nil {
		return nil, err
	}

	ev, err := s.evaluate(ctx, slot, now)
	if err != nil {
		return nil, err
	}

	customerID := p.UserID
	booking := &domain.Booking{
		ID:         uuid.New(),
		CourtID:    slot.courtID,
		CustomerID: &customerID,
		StartTime:  slot.start,
		EndTime:    slot.end,
		TotalPrice: ev.quote.Total,
		Status:     domain.BookingPending,
		Type:       domain.BookingOnline,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.bookingRepo.CreateBooking(ctx, booking); err != nil {
		if errors.Is(err, domain.ErrSlotConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.logger.Info("booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("court_id", booking.CourtID.String()),
		zap.String("customer_id", customerID.String()),
		zap.String("total", booking.TotalPrice.StringFixed(2)),
	)

	s.invalidateGrid(ctx, ev.venue.Complex.ID, booking)

	payment := s.payments.Describe(ctx, &ev.venue.Complex, booking, p.Name)

	details := &domain.BookingDetails{
		Booking:       *booking,
		CourtName:     ev.venue.Court.Name,
		ComplexID:     ev.venue.Complex.ID,
		ComplexName:   ev.venue.Complex.Name,
		OwnerID:       ev.venue.Complex.OwnerID,
		CustomerName:  p.Name,
		CustomerEmail: p.Email,
	}
	s.notify(ctx, domain.NoticeCreated, details, "")

	return &BookingResult{
		Booking:     *booking,
		CourtName:   ev.venue.Court.Name,
		ComplexName: ev.venue.Complex.Name,
		Payment:     &payment,
		Segments:    ev.quote.Segments,
	}, nil
}

// CreateWalkIn records a booking the owner takes at the counter. It skips the
// past-time check and is confirmed immediately.
func (s *BookingService) CreateWalkIn(ctx context.Context, p domain.Principal, req WalkInBookingRequest) (*BookingResult, error) {
	now := s.clock.Now()

	if !p.Is(domain.RoleOwner) {
		return nil, fmt.Errorf("%w: only owners can create walk-in bookings", domain.ErrPermissionDenied)
	}

	name := strings.TrimSpace(req.CustomerName)
	phone := strings.TrimSpace(req.CustomerPhone)
	if name == "" || phone == "" {
		return nil, fmt.Errorf("%w: customer name and phone are required", domain.ErrValidation)
	}

	slot, err := s.parseSlot(req.CourtID, req.StartTime, req.EndTime, false)
	if err != nil {
		return nil, err
	}
	slot.owner = &p.UserID

	ev, err := s.evaluate(ctx, slot, now)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ID:          uuid.New(),
		CourtID:     slot.courtID,
		WalkInName:  name,
		WalkInPhone: phone,
		StartTime:   slot.start,
		EndTime:     slot.end,
		TotalPrice:  ev.quote.Total,
		Status:      domain.BookingConfirmed,
		Type:        domain.BookingWalkIn,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.bookingRepo.CreateBooking(ctx, booking); err != nil {
		if errors.Is(err, domain.ErrSlotConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("create walk-in booking: %w", err)
	}

	s.logger.Info("walk-in booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("court_id", booking.CourtID.String()),
		zap.String("owner_id", p.UserID.String()),
	)

	s.invalidateGrid(ctx, ev.venue.Complex.ID, booking)

	return &BookingResult{
		Booking:     *booking,
		CourtName:   ev.venue.Court.Name,
		ComplexName: ev.venue.Complex.Name,
		Segments:    ev.quote.Segments,
	}, nil
}

// CheckAvailability is a dry run of CreateBooking. A taken slot, a window
// outside opening hours or a missing price is reported as unavailable
// rather than as an error.
func (s *BookingService) CheckAvailability(ctx context.Context, req CreateBookingRequest) (*AvailabilityResult, error) {
	now := s.clock.Now()

	slot, err := s.parseSlot(req.CourtID, req.StartTime, req.EndTime, true)
	if err != nil {
		return nil, err
	}

	ev, err := s.evaluate(ctx, slot, now)
	if err != nil {
		if errors.Is(err, domain.ErrSlotConflict) ||
			errors.Is(err, domain.ErrOutsideOperatingHours) ||
			errors.Is(err, domain.ErrPricingUnavailable) {
			reason := err.Error()
			return &AvailabilityResult{
				Available:      false,
				EstimatedPrice: decimal.Zero,
				ConflictReason: &reason,
			}, nil
		}
		return nil, err
	}

	return &AvailabilityResult{
		Available:      true,
		EstimatedPrice: ev.quote.Total,
		Segments:       ev.quote.Segments,
	}, nil
}

func (s *BookingService) Approve(ctx context.Context, p domain.Principal, bookingID uuid.UUID) error {
	return s.transition(ctx, p, bookingID, domain.ActionApprove, "")
}

func (s *BookingService) Reject(ctx context.Context, p domain.Principal, bookingID uuid.UUID, reason string) error {
	if strings.TrimSpace(reason) == "" {
		reason = defaultRejectReason
	}
	return s.transition(ctx, p, bookingID, domain.ActionReject, reason)
}

// Cancel is open to the complex owner at any time and to the booking's own
// customer until CustomerCancelLead before the start.
func (s *BookingService) Cancel(ctx context.Context, p domain.Principal, bookingID uuid.UUID, reason string) error {
	return s.transition(ctx, p, bookingID, domain.ActionCancel, reason)
}

func (s *BookingService) Complete(ctx context.Context, p domain.Principal, bookingID uuid.UUID) error {
	return s.transition(ctx, p, bookingID, domain.ActionComplete, "")
}

func (s *BookingService) transition(ctx context.Context, p domain.Principal, bookingID uuid.UUID, action domain.BookingAction, reason string) error {
	now := s.clock.Now()

	from, to, ok := domain.Transition(action)
	if !ok {
		return fmt.Errorf("%w: unknown action %q", domain.ErrInvalidStateTransition, action)
	}

	details, err := s.bookingRepo.GetDetails(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: booking %s", domain.ErrNotFound, bookingID)
		}
		return fmt.Errorf("get booking: %w", err)
	}

	isOwner := p.Is(domain.RoleOwner) && details.OwnerID == p.UserID
	isCustomer := details.Booking.CustomerID != nil && *details.Booking.CustomerID == p.UserID

	switch {
	case isOwner:
	case action == domain.ActionCancel && isCustomer:
	default:
		return fmt.Errorf("%w: booking %s is not yours to %s", domain.ErrPermissionDenied, bookingID, action)
	}

	if !statusIn(details.Booking.Status, from) {
		return fmt.Errorf("%w: cannot %s a %s booking", domain.ErrInvalidStateTransition, action, details.Booking.Status)
	}

	switch action {
	case domain.ActionCancel:
		if !isOwner {
			if details.Booking.StartTime.Before(now.Add(CustomerCancelLead)) {
				return fmt.Errorf("%w: bookings can only be cancelled at least 2 hours before start", domain.ErrPermissionDenied)
			}
			reason = customerCancelReason
		} else if strings.TrimSpace(reason) == "" {
			reason = defaultOwnerCancelReason
		}
	case domain.ActionComplete:
		if now.Before(details.Booking.EndTime) {
			return fmt.Errorf("%w: cannot complete a booking before its end time", domain.ErrInvalidStateTransition)
		}
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, from, to); err != nil {
		if errors.Is(err, domain.ErrInvalidStateTransition) {
			return fmt.Errorf("%w: booking %s changed concurrently", domain.ErrInvalidStateTransition, bookingID)
		}
		return fmt.Errorf("update booking status: %w", err)
	}

	s.logger.Info("booking status changed",
		zap.String("booking_id", bookingID.String()),
		zap.String("from", string(details.Booking.Status)),
		zap.String("to", string(to)),
		zap.String("by", p.UserID.String()),
	)

	details.Booking.Status = to
	details.Booking.UpdatedAt = now

	s.invalidateGrid(ctx, details.ComplexID, &details.Booking)
	s.notify(ctx, noticeFor(action), details, reason)

	return nil
}

func (s *BookingService) ListMine(ctx context.Context, p domain.Principal, q domain.BookingQuery) (*domain.BookingPage, error) {
	q = q.Normalize()

	items, total, err := s.bookingRepo.ListByCustomer(ctx, p.UserID, q)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return &domain.BookingPage{
		Items:      items,
		TotalItems: total,
		Page:       q.Page,
		PerPage:    q.Limit,
	}, nil
}

// GetForCustomer hides bookings of other customers behind ErrNotFound.
func (s *BookingService) GetForCustomer(ctx context.Context, p domain.Principal, bookingID uuid.UUID) (*domain.BookingDetails, error) {
	details, err := s.bookingRepo.GetDetails(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}

	if details.Booking.CustomerID == nil || *details.Booking.CustomerID != p.UserID {
		return nil, fmt.Errorf("%w: booking %s", domain.ErrNotFound, bookingID)
	}

	return details, nil
}

func (s *BookingService) PaymentInfo(ctx context.Context, p domain.Principal, bookingID uuid.UUID) (*domain.BookingDetails, *domain.PaymentInfo, error) {
	details, err := s.GetForCustomer(ctx, p, bookingID)
	if err != nil {
		return nil, nil, err
	}

	venue, err := s.courtRepo.GetWithComplex(ctx, details.Booking.CourtID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: court complex", domain.ErrNotFound)
		}
		return nil, nil, fmt.Errorf("get court: %w", err)
	}

	info := s.payments.Describe(ctx, &venue.Complex, &details.Booking, details.DisplayName())
	return details, &info, nil
}

func (s *BookingService) ListPending(ctx context.Context, p domain.Principal) ([]domain.BookingDetails, error) {
	if !p.Is(domain.RoleOwner) {
		return nil, fmt.Errorf("%w: owners only", domain.ErrPermissionDenied)
	}

	items, err := s.bookingRepo.ListPendingByOwner(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("list pending bookings: %w", err)
	}

	return items, nil
}

func (s *BookingService) ListForOwner(ctx context.Context, p domain.Principal, req OwnerBookingsRequest) (*domain.BookingPage, error) {
	if !p.Is(domain.RoleOwner) {
		return nil, fmt.Errorf("%w: owners only", domain.ErrPermissionDenied)
	}

	q := domain.OwnerBookingQuery{BookingQuery: req.Query, Search: req.Search}

	if req.ComplexID != "" {
		id, err := parseID(req.ComplexID, "court complex")
		if err != nil {
			return nil, err
		}
		q.ComplexID = &id
	}

	if req.Date != "" {
		day, err := ParseDate(req.Date, s.clock.Now().Location())
		if err != nil {
			return nil, err
		}
		q.Date = &day
	}

	q = q.Normalize()

	items, total, err := s.bookingRepo.ListByOwner(ctx, p.UserID, q)
	if err != nil {
		return nil, fmt.Errorf("list owner bookings: %w", err)
	}

	return &domain.BookingPage{
		Items:      items,
		TotalItems: total,
		Page:       q.Page,
		PerPage:    q.Limit,
	}, nil
}

// notify is best effort: the booking write has already committed.
func (s *BookingService) notify(ctx context.Context, kind domain.NoticeKind, d *domain.BookingDetails, reason string) {
	if s.notifier == nil || d.CustomerEmail == "" {
		return
	}

	loc := s.clock.Now().Location()
	notice := domain.BookingNotice{
		Kind:          kind,
		BookingID:     d.Booking.ID,
		CustomerName:  d.DisplayName(),
		CustomerEmail: d.CustomerEmail,
		CourtName:     d.CourtName,
		ComplexName:   d.ComplexName,
		StartTime:     d.Booking.StartTime.In(loc).Format(domain.NoticeTimeLayout),
		EndTime:       d.Booking.EndTime.In(loc).Format(domain.NoticeTimeLayout),
		TotalPrice:    d.Booking.TotalPrice,
		Status:        d.Booking.Status,
		Reason:        reason,
	}

	if err := s.notifier.NotifyBooking(ctx, notice); err != nil {
		s.logger.Error("failed to send booking notification",
			zap.String("booking_id", d.Booking.ID.String()),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
	}
}

func (s *BookingService) invalidateGrid(ctx context.Context, complexID uuid.UUID, b *domain.Booking) {
	if s.cache == nil {
		return
	}

	loc := s.clock.Now().Location()
	keys := gridKeysFor(complexID, b.StartTime.In(loc), b.EndTime.In(loc))
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn("failed to invalidate availability grid cache",
			zap.Strings("keys", keys),
			zap.Error(err),
		)
	}
}

func noticeFor(action domain.BookingAction) domain.NoticeKind {
	switch action {
	case domain.ActionApprove:
		return domain.NoticeApproved
	case domain.ActionReject:
		return domain.NoticeRejected
	case domain.ActionComplete:
		return domain.NoticeCompleted
	default:
		return domain.NoticeCancelled
	}
}

func statusIn(s domain.BookingStatus, set []domain.BookingStatus) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
