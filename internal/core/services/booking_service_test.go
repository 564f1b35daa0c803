package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/srgjo27/sportsync/internal/core/domain"
	"github.com/srgjo27/sportsync/internal/core/ports/mocks"
	"github.com/srgjo27/sportsync/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var ict = time.FixedZone("ICT", 7*60*60)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type bookingFixture struct {
	courtRepo   *mocks.CourtRepository
	bookingRepo *mocks.BookingRepository
	rateRepo    *mocks.RateRepository
	notifier    *mocks.Notifier
	qr          *mocks.PaymentQRGenerator
	redis       redismock.ClientMock
	service     *services.BookingService
	venue       *domain.CourtWithComplex
	customer    domain.Principal
	owner       domain.Principal
}

// 2025-06-02 is a Monday.
var fixtureNow = time.Date(2025, 6, 2, 7, 0, 0, 0, ict)

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	f := &bookingFixture{
		courtRepo:   mocks.NewCourtRepository(t),
		bookingRepo: mocks.NewBookingRepository(t),
		rateRepo:    mocks.NewRateRepository(t),
		notifier:    mocks.NewNotifier(t),
		qr:          mocks.NewPaymentQRGenerator(t),
	}

	db, mockRedis := redismock.NewClientMock()
	f.redis = mockRedis

	logger := zap.NewNop()
	f.service = services.NewBookingService(
		f.courtRepo,
		f.bookingRepo,
		services.NewRateTable(f.rateRepo),
		services.NewPaymentDesk(f.qr, "SportSync", logger),
		f.notifier,
		db,
		fixedClock{now: fixtureNow},
		logger,
	)

	ownerID := uuid.New()
	complexID := uuid.New()
	f.venue = &domain.CourtWithComplex{
		Court: domain.Court{ID: uuid.New(), ComplexID: complexID, Name: "Court 1", Status: domain.StatusActive},
		Complex: domain.Complex{
			ID:            complexID,
			OwnerID:       ownerID,
			Name:          "Riverside Arena",
			OpenTime:      domain.NewTimeOfDay(6, 0),
			CloseTime:     domain.NewTimeOfDay(22, 0),
			BankCode:      "VCB",
			AccountNumber: "0123456789",
			AccountName:   "NGUYEN VAN A",
			Status:        domain.StatusActive,
		},
	}

	f.customer = domain.Principal{UserID: uuid.New(), Role: domain.RoleCustomer, Name: "Tran Thi B", Email: "b@example.com"}
	f.owner = domain.Principal{UserID: ownerID, Role: domain.RoleOwner, Name: "Owner", Email: "owner@example.com"}

	return f
}

func (f *bookingFixture) gridKey(day string) string {
	return fmt.Sprintf("grid:%s:%s", f.venue.Complex.ID, day)
}

func flatRate(courtID uuid.UUID, price int64) []domain.RateRule {
	return []domain.RateRule{{
		ID:           uuid.New(),
		CourtID:      courtID,
		DayOfWeek:    domain.AllDays,
		StartTime:    0,
		EndTime:      domain.EndOfDay,
		PricePerHour: decimal.NewFromInt(price),
	}}
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 6, 2, hour, minute, 0, 0, ict)
}

func TestCreateBooking_Success(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	courtID := f.venue.Court.ID

	qrURL := "https://img.vietqr.io/image/VCB-0123456789-compact2.jpg"

	f.courtRepo.On("GetWithComplex", ctx, courtID).Return(f.venue, nil)
	f.bookingRepo.On("HasOverlap", ctx, courtID, at(8, 0), at(9, 30)).Return(false, nil)
	f.rateRepo.On("ListForDay", ctx, courtID, domain.DaySelector("Monday")).Return(flatRate(courtID, 100000), nil)
	f.bookingRepo.On("CreateBooking", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
	f.qr.On("GenerateQR", ctx, mock.MatchedBy(func(r domain.PaymentRequest) bool {
		return r.Amount == 150000 && r.BankCode == "VCB"
	})).Return(&qrURL, nil)
	f.notifier.On("NotifyBooking", ctx, mock.MatchedBy(func(n domain.BookingNotice) bool {
		return n.Kind == domain.NoticeCreated && n.CustomerEmail == "b@example.com" &&
			n.StartTime == "02/06/2025 08:00" && n.EndTime == "02/06/2025 09:30"
	})).Return(nil)

	f.redis.ExpectDel(f.gridKey("2025-06-02")).SetVal(1)

	resp, err := f.service.CreateBooking(ctx, f.customer, services.CreateBookingRequest{
		CourtID:   courtID.String(),
		StartTime: "2025-06-02T08:00:00",
		EndTime:   "2025-06-02T09:30:00",
	})

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(150000).Equal(resp.Booking.TotalPrice))
	assert.Equal(t, domain.BookingPending, resp.Booking.Status)
	assert.Equal(t, domain.BookingOnline, resp.Booking.Type)
	assert.Equal(t, f.customer.UserID, *resp.Booking.CustomerID)
	assert.Equal(t, "Court 1", resp.CourtName)
	if assert.NotNil(t, resp.Payment) {
		assert.Equal(t, int64(150000), resp.Payment.Amount)
		assert.Equal(t, &qrURL, resp.Payment.QRURL)
		assert.Contains(t, resp.Payment.Description, resp.Booking.PaymentRef())
	}

	if err := f.redis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestCreateBooking_RFC3339InputIsConvertedToLocalTime(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	courtID := f.venue.Court.ID

	f.courtRepo.On("GetWithComplex", ctx, courtID).Return(f.venue, nil)
	f.bookingRepo.On("HasOverlap", ctx, courtID, mock.MatchedBy(func(s time.Time) bool {
		return s.Equal(at(8, 0))
	}), mock.MatchedBy(func(e time.Time) bool {
		return e.Equal(at(9, 0))
	})).Return(false, nil)
	f.rateRepo.On("ListForDay", ctx, courtID, domain.DaySelector("Monday")).Return(flatRate(courtID, 100000), nil)
	f.bookingRepo.On("CreateBooking", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
	f.qr.On("GenerateQR", ctx, mock.Anything).Return(nil, errors.New("qr down"))
	f.notifier.On("NotifyBooking", ctx, mock.Anything).Return(nil)
	f.redis.ExpectDel(f.gridKey("2025-06-02")).SetVal(1)

	resp, err := f.service.CreateBooking(ctx, f.customer, services.CreateBookingRequest{
		CourtID:   courtID.String(),
		StartTime: "2025-06-02T01:00:00Z",
		EndTime:   "2025-06-02T02:00:00Z",
	})

	require.NoError(t, err)
	assert.Equal(t, 8, resp.Booking.StartTime.Hour())
	assert.Nil(t, resp.Payment.QRURL, "qr failure falls back to the plain descriptor")
}

func TestCreateBooking_Fail_SlotConflict(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	courtID := f.venue.Court.ID

	f.courtRepo.On("GetWithComplex", ctx, courtID).Return(f.venue, nil)
	f.bookingRepo.On("HasOverlap", ctx, courtID, at(10, 30), at(11, 30)).Return(true, nil)

	resp, err := f.service.CreateBooking(ctx, f.customer, services.CreateBookingRequest{
		CourtID:   courtID.String(),
		StartTime: "2025-06-02T10:30",
		EndTime:   "2025-06-02T11:30",
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrSlotConflict)
	f.bookingRepo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestCreateBooking_Fail_ConflictDetectedAtInsert(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	courtID := f.venue.Court.ID

	f.courtRepo.On("GetWithComplex", ctx, courtID).Return(f.venue, nil)
	f.bookingRepo.On("HasOverlap", ctx, courtID, at(10, 0), at(11, 0)).Return(false, nil)
	f.rateRepo.On("ListForDay", ctx, courtID, domain.DaySelector("Monday")).Return(flatRate(courtID, 100000), nil)
	f.bookingRepo.On("CreateBooking", ctx, mock.AnythingOfType("*domain.Booking")).Return(domain.ErrSlotConflict)

	_, err := f.service.CreateBooking(ctx, f.customer, services.CreateBookingRequest{
		CourtID:   courtID.String(),
		StartTime: "2025-06-02T10:00",
		EndTime:   "2025-06-02T11:00",
	})

	assert.ErrorIs(t, err, domain.ErrSlotConflict)
	f.notifier.AssertNotCalled(t, "NotifyBooking", mock.Anything, mock.Anything)
}

func TestCreateBooking_Fail_OutsideOperatingHours(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	courtID := f.venue.Court.ID

	f.courtRepo.On("GetWithComplex", ctx, courtID).Return(f.venue, nil)

	// Early slot on the following day so the past check passes.
	_, err := f.service.CreateBooking(ctx, f.customer, services.CreateBookingRequest{
		CourtID:   courtID.String(),
		StartTime: "2025-06-03T05:00",
		EndTime:   "2025-06-03T06:00",
	})

	assert.ErrorIs(t, err, domain.ErrOutsideOperatingHours)
	f.bookingRepo.AssertNotCalled(t, "HasOverlap", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_ValidationOrder(t *testing.T) {
	courtID := uuid.New().String()

	tests := []struct {
		name  string
		start string
		end   string
		want  error
	}{
		{"end before start", "2025-06-02T10:00", "2025-06-02T09:00", domain.ErrInvalidInterval},
		{"empty interval", "2025-06-02T10:00", "2025-06-02T10:00", domain.ErrInvalidInterval},
		{"shorter than 30 minutes", "2025-06-02T10:00", "2025-06-02T10:20", domain.ErrInvalidInterval},
		{"in the past", "2025-06-02T06:00", "2025-06-02T06:30", domain.ErrPastBooking},
		{"bad timestamp", "tomorrow", "2025-06-02T10:00", domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)

			_, err := f.service.CreateBooking(context.Background(), f.customer, services.CreateBookingRequest{
				CourtID:   courtID,
				StartTime: tt.start,
				EndTime:   tt.end,
			})

			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCreateBooking_Fail_InactiveCourt(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	courtID := f.venue.Court.ID
	f.venue.Court.Status = domain.StatusInactive

	f.courtRepo.On("GetWithComplex", ctx, courtID).Return(f.venue, nil)

	_, err := f.service.CreateBooking(ctx, f.customer, services.CreateBookingRequest{
		CourtID:   courtID.String(),
		StartTime: "2025-06-02T10:00",
		EndTime:   "2025-06-02T11:00",
	})

	assert.ErrorIs(t, err, domain.ErrResourceUnavailable)
}

func TestCreateBooking_Fail_UnknownCourt(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	courtID := uuid.New()

	f.courtRepo.On("GetWithComplex", ctx, courtID).Return(nil, domain.ErrNotFound)

	_, err := f.service.CreateBooking(ctx, f.customer, services.CreateBookingRequest{
		CourtID:   courtID.String(),
		StartTime: "2025-06-02T10:00",
		EndTime:   "2025-06-02T11:00",
	})

	assert.ErrorIs(t, err, domain.ErrResourceUnavailable)
}

func TestCreateBooking_NotifierFailureDoesNotFailBooking(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	courtID := f.venue.Court.ID
	f.venue.Complex.BankCode = ""

	f.courtRepo.On("GetWithComplex", ctx, courtID).Return(f.venue, nil)
	f.bookingRepo.On("HasOverlap", ctx, courtID, at(12, 0), at(13, 0)).Return(false, nil)
	f.rateRepo.On("ListForDay", ctx, courtID, domain.DaySelector("Monday")).Return(flatRate(courtID, 80000), nil)
	f.bookingRepo.On("CreateBooking", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
	f.notifier.On("NotifyBooking", ctx, mock.Anything).Return(errors.New("smtp unreachable"))
	f.redis.ExpectDel(f.gridKey("2025-06-02")).SetErr(errors.New("redis down"))

	resp, err := f.service.CreateBooking(ctx, f.customer, services.CreateBookingRequest{
		CourtID:   courtID.String(),
		StartTime: "2025-06-02T12:00",
		EndTime:   "2025-06-02T13:00",
	})

	require.NoError(t, err)
	assert.Equal(t, "N/A", resp.Payment.BankCode)
	f.qr.AssertNotCalled(t, "GenerateQR", mock.Anything, mock.Anything)
}

func TestCreateWalkIn_Success(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	courtID := f.venue.Court.ID

	// Walk-ins may be recorded after the fact.
	f.courtRepo.On("GetWithComplex", ctx, courtID).Return(f.venue, nil)
	f.bookingRepo.On("HasOverlap", ctx, courtID, at(6, 0), at(7, 0)).Return(false, nil)
	f.rateRepo.On("ListForDay", ctx, courtID, domain.DaySelector("Monday")).Return(flatRate(courtID, 100000), nil)
	f.bookingRepo.On("CreateBooking", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.CustomerID == nil && b.WalkInName == "Le Van C" && b.WalkInPhone == "0901234567"
	})).Return(nil)
	f.redis.ExpectDel(f.gridKey("2025-06-02")).SetVal(0)

	resp, err := f.service.CreateWalkIn(ctx, f.owner, services.WalkInBookingRequest{
		CourtID:       courtID.String(),
		StartTime:     "2025-06-02T06:00",
		EndTime:       "2025-06-02T07:00",
		CustomerName:  "Le Van C",
		CustomerPhone: "0901234567",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, resp.Booking.Status)
	assert.Equal(t, domain.BookingWalkIn, resp.Booking.Type)
	assert.Nil(t, resp.Payment)
	f.notifier.AssertNotCalled(t, "NotifyBooking", mock.Anything, mock.Anything)
}

func TestCreateWalkIn_Fail_NotOwnCourt(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	courtID := f.venue.Court.ID
	stranger := domain.Principal{UserID: uuid.New(), Role: domain.RoleOwner}

	f.courtRepo.On("GetWithComplex", ctx, courtID).Return(f.venue, nil)

	_, err := f.service.CreateWalkIn(ctx, stranger, services.WalkInBookingRequest{
		CourtID:       courtID.String(),
		StartTime:     "2025-06-02T09:00",
		EndTime:       "2025-06-02T10:00",
		CustomerName:  "Guest",
		CustomerPhone: "0900000000",
	})

	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	f.bookingRepo.AssertNotCalled(t, "HasOverlap", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.bookingRepo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestCreateWalkIn_Fail_NotOwnCourtOutranksOtherFailures(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	courtID := f.venue.Court.ID
	stranger := domain.Principal{UserID: uuid.New(), Role: domain.RoleOwner}
	f.venue.Court.Status = domain.StatusInactive

	f.courtRepo.On("GetWithComplex", ctx, courtID).Return(f.venue, nil)

	// Outside opening hours on an inactive court: the foreign owner still
	// learns nothing beyond the permission failure.
	_, err := f.service.CreateWalkIn(ctx, stranger, services.WalkInBookingRequest{
		CourtID:       courtID.String(),
		StartTime:     "2025-06-02T22:00",
		EndTime:       "2025-06-02T23:00",
		CustomerName:  "Guest",
		CustomerPhone: "0900000000",
	})

	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	assert.NotErrorIs(t, err, domain.ErrResourceUnavailable)
}

func TestCreateWalkIn_Fail_CustomerRole(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.CreateWalkIn(context.Background(), f.customer, services.WalkInBookingRequest{
		CourtID:       f.venue.Court.ID.String(),
		StartTime:     "2025-06-02T09:00",
		EndTime:       "2025-06-02T10:00",
		CustomerName:  "Guest",
		CustomerPhone: "0900000000",
	})

	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestCheckAvailability_IsIdempotentDryRun(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	courtID := f.venue.Court.ID

	rules := []domain.RateRule{
		{ID: uuid.New(), CourtID: courtID, DayOfWeek: domain.AllDays, StartTime: domain.NewTimeOfDay(6, 0), EndTime: domain.NewTimeOfDay(18, 0), PricePerHour: decimal.NewFromInt(100000)},
		{ID: uuid.New(), CourtID: courtID, DayOfWeek: domain.AllDays, StartTime: domain.NewTimeOfDay(18, 0), EndTime: domain.NewTimeOfDay(22, 0), PricePerHour: decimal.NewFromInt(150000)},
	}

	f.courtRepo.On("GetWithComplex", ctx, courtID).Return(f.venue, nil)
	f.bookingRepo.On("HasOverlap", ctx, courtID, at(17, 0), at(19, 0)).Return(false, nil)
	f.rateRepo.On("ListForDay", ctx, courtID, domain.DaySelector("Monday")).Return(rules, nil)

	req := services.CreateBookingRequest{
		CourtID:   courtID.String(),
		StartTime: "2025-06-02T17:00",
		EndTime:   "2025-06-02T19:00",
	}

	first, err := f.service.CheckAvailability(ctx, req)
	require.NoError(t, err)
	second, err := f.service.CheckAvailability(ctx, req)
	require.NoError(t, err)

	assert.True(t, first.Available)
	assert.True(t, decimal.NewFromInt(250000).Equal(first.EstimatedPrice))
	assert.Len(t, first.Segments, 2)
	assert.Equal(t, first, second)
	f.bookingRepo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestCheckAvailability_ReportsConflictAsUnavailable(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	courtID := f.venue.Court.ID

	f.courtRepo.On("GetWithComplex", ctx, courtID).Return(f.venue, nil)
	f.bookingRepo.On("HasOverlap", ctx, courtID, at(10, 30), at(11, 30)).Return(true, nil)

	res, err := f.service.CheckAvailability(ctx, services.CreateBookingRequest{
		CourtID:   courtID.String(),
		StartTime: "2025-06-02T10:30",
		EndTime:   "2025-06-02T11:30",
	})

	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.True(t, res.EstimatedPrice.IsZero())
	if assert.NotNil(t, res.ConflictReason) {
		assert.Contains(t, *res.ConflictReason, "already booked")
	}
}

func TestCheckAvailability_PastIsStillAnError(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.CheckAvailability(context.Background(), services.CreateBookingRequest{
		CourtID:   uuid.New().String(),
		StartTime: "2025-06-01T10:00",
		EndTime:   "2025-06-01T11:00",
	})

	assert.ErrorIs(t, err, domain.ErrPastBooking)
}

func (f *bookingFixture) confirmedDetails() *domain.BookingDetails {
	customerID := f.customer.UserID
	return &domain.BookingDetails{
		Booking: domain.Booking{
			ID:         uuid.New(),
			CourtID:    f.venue.Court.ID,
			CustomerID: &customerID,
			StartTime:  at(10, 0),
			EndTime:    at(11, 0),
			TotalPrice: decimal.NewFromInt(100000),
			Status:     domain.BookingConfirmed,
			Type:       domain.BookingOnline,
		},
		CourtName:     f.venue.Court.Name,
		ComplexID:     f.venue.Complex.ID,
		ComplexName:   f.venue.Complex.Name,
		OwnerID:       f.venue.Complex.OwnerID,
		CustomerName:  f.customer.Name,
		CustomerEmail: f.customer.Email,
	}
}

func TestCancel_ByOwner_ThenFurtherTransitionsFail(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	details := f.confirmedDetails()
	id := details.Booking.ID

	f.bookingRepo.On("GetDetails", ctx, id).Return(details, nil).Once()
	f.bookingRepo.On("UpdateStatus", ctx, id,
		[]domain.BookingStatus{domain.BookingPending, domain.BookingConfirmed}, domain.BookingCancelled).Return(nil).Once()
	f.redis.ExpectDel(f.gridKey("2025-06-02")).SetVal(1)
	f.notifier.On("NotifyBooking", ctx, mock.MatchedBy(func(n domain.BookingNotice) bool {
		return n.Kind == domain.NoticeCancelled &&
			n.BookingID == id &&
			n.StartTime == "02/06/2025 10:00" &&
			n.EndTime == "02/06/2025 11:00" &&
			n.Reason == "Court maintenance" &&
			n.Status == domain.BookingCancelled
	})).Return(nil).Once()

	err := f.service.Cancel(ctx, f.owner, id, "Court maintenance")
	require.NoError(t, err)

	cancelled := *details
	cancelled.Booking.Status = domain.BookingCancelled
	f.bookingRepo.On("GetDetails", ctx, id).Return(&cancelled, nil)

	assert.ErrorIs(t, f.service.Approve(ctx, f.owner, id), domain.ErrInvalidStateTransition)
	assert.ErrorIs(t, f.service.Reject(ctx, f.owner, id, ""), domain.ErrInvalidStateTransition)
	assert.ErrorIs(t, f.service.Complete(ctx, f.owner, id), domain.ErrInvalidStateTransition)

	if err := f.redis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestCancel_ByCustomer_RequiresLeadTime(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	details := f.confirmedDetails()
	details.Booking.StartTime = at(8, 30)
	details.Booking.EndTime = at(9, 30)

	f.bookingRepo.On("GetDetails", ctx, details.Booking.ID).Return(details, nil)

	err := f.service.Cancel(ctx, f.customer, details.Booking.ID, "")

	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	f.bookingRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancel_ByCustomer_Success(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	details := f.confirmedDetails()
	id := details.Booking.ID

	f.bookingRepo.On("GetDetails", ctx, id).Return(details, nil)
	f.bookingRepo.On("UpdateStatus", ctx, id, mock.Anything, domain.BookingCancelled).Return(nil)
	f.redis.ExpectDel(f.gridKey("2025-06-02")).SetVal(1)
	f.notifier.On("NotifyBooking", ctx, mock.MatchedBy(func(n domain.BookingNotice) bool {
		return n.Kind == domain.NoticeCancelled && n.Reason != ""
	})).Return(nil)

	assert.NoError(t, f.service.Cancel(ctx, f.customer, id, ""))
}

func TestApprove_Fail_OtherOwner(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	details := f.confirmedDetails()
	details.Booking.Status = domain.BookingPending
	stranger := domain.Principal{UserID: uuid.New(), Role: domain.RoleOwner}

	f.bookingRepo.On("GetDetails", ctx, details.Booking.ID).Return(details, nil)

	err := f.service.Approve(ctx, stranger, details.Booking.ID)

	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestApprove_LostRaceReportsInvalidTransition(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	details := f.confirmedDetails()
	details.Booking.Status = domain.BookingPending
	id := details.Booking.ID

	f.bookingRepo.On("GetDetails", ctx, id).Return(details, nil)
	f.bookingRepo.On("UpdateStatus", ctx, id, []domain.BookingStatus{domain.BookingPending}, domain.BookingConfirmed).
		Return(domain.ErrInvalidStateTransition)

	err := f.service.Approve(ctx, f.owner, id)

	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	f.notifier.AssertNotCalled(t, "NotifyBooking", mock.Anything, mock.Anything)
}

func TestApprove_InvalidatesGridInVenueTimeZone(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	details := f.confirmedDetails()
	details.Booking.Status = domain.BookingPending
	// 06:00 ICT on June 3rd is still June 2nd in UTC, which is how the
	// store hands timestamps back.
	details.Booking.StartTime = time.Date(2025, 6, 3, 6, 0, 0, 0, ict).UTC()
	details.Booking.EndTime = time.Date(2025, 6, 3, 7, 0, 0, 0, ict).UTC()
	id := details.Booking.ID

	f.bookingRepo.On("GetDetails", ctx, id).Return(details, nil)
	f.bookingRepo.On("UpdateStatus", ctx, id, []domain.BookingStatus{domain.BookingPending}, domain.BookingConfirmed).Return(nil)
	f.notifier.On("NotifyBooking", ctx, mock.MatchedBy(func(n domain.BookingNotice) bool {
		return n.Kind == domain.NoticeApproved && n.StartTime == "03/06/2025 06:00"
	})).Return(nil)
	f.redis.ExpectDel(f.gridKey("2025-06-03")).SetVal(1)

	require.NoError(t, f.service.Approve(ctx, f.owner, id))

	if err := f.redis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestReject_UsesDefaultReason(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	details := f.confirmedDetails()
	details.Booking.Status = domain.BookingPending
	id := details.Booking.ID

	f.bookingRepo.On("GetDetails", ctx, id).Return(details, nil)
	f.bookingRepo.On("UpdateStatus", ctx, id, []domain.BookingStatus{domain.BookingPending}, domain.BookingRejected).Return(nil)
	f.redis.ExpectDel(f.gridKey("2025-06-02")).SetVal(1)
	f.notifier.On("NotifyBooking", ctx, mock.MatchedBy(func(n domain.BookingNotice) bool {
		return n.Kind == domain.NoticeRejected && n.Reason == "No reason provided."
	})).Return(nil)

	assert.NoError(t, f.service.Reject(ctx, f.owner, id, "  "))
}

func TestComplete_Fail_BeforeEnd(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	details := f.confirmedDetails()

	f.bookingRepo.On("GetDetails", ctx, details.Booking.ID).Return(details, nil)

	err := f.service.Complete(ctx, f.owner, details.Booking.ID)

	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

func TestGetForCustomer_HidesOtherCustomersBookings(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	details := f.confirmedDetails()
	other := domain.Principal{UserID: uuid.New(), Role: domain.RoleCustomer}

	f.bookingRepo.On("GetDetails", ctx, details.Booking.ID).Return(details, nil)

	_, err := f.service.GetForCustomer(ctx, other, details.Booking.ID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListMine_NormalizesQuery(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.bookingRepo.On("ListByCustomer", ctx, f.customer.UserID, mock.MatchedBy(func(q domain.BookingQuery) bool {
		return q.Page == 1 && q.Limit == 100 && q.SortBy == "createdAt"
	})).Return([]domain.BookingDetails{*f.confirmedDetails()}, 1, nil)

	page, err := f.service.ListMine(ctx, f.customer, domain.BookingQuery{Limit: 500, SortBy: "nope"})

	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalItems)
	assert.Equal(t, 1, page.TotalPages())
}

func TestListForOwner_ParsesFilters(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	complexID := f.venue.Complex.ID

	f.bookingRepo.On("ListByOwner", ctx, f.owner.UserID, mock.MatchedBy(func(q domain.OwnerBookingQuery) bool {
		return q.ComplexID != nil && *q.ComplexID == complexID &&
			q.Date != nil && q.Date.Equal(time.Date(2025, 6, 5, 0, 0, 0, 0, ict)) &&
			q.Search == "nguyen" &&
			q.SortBy == "courtName" && q.SortOrder == "asc"
	})).Return([]domain.BookingDetails{*f.confirmedDetails()}, 1, nil)

	page, err := f.service.ListForOwner(ctx, f.owner, services.OwnerBookingsRequest{
		Query:     domain.BookingQuery{SortBy: "courtName", SortOrder: "asc"},
		ComplexID: complexID.String(),
		Date:      "2025-06-05",
		Search:    "  nguyen ",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalItems)
}

func TestListForOwner_Fail(t *testing.T) {
	tests := []struct {
		name string
		who  func(f *bookingFixture) domain.Principal
		req  services.OwnerBookingsRequest
		want error
	}{
		{"customer", func(f *bookingFixture) domain.Principal { return f.customer }, services.OwnerBookingsRequest{}, domain.ErrPermissionDenied},
		{"bad complex id", func(f *bookingFixture) domain.Principal { return f.owner }, services.OwnerBookingsRequest{ComplexID: "abc"}, domain.ErrValidation},
		{"bad date", func(f *bookingFixture) domain.Principal { return f.owner }, services.OwnerBookingsRequest{Date: "05/06/2025"}, domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)

			_, err := f.service.ListForOwner(context.Background(), tt.who(f), tt.req)

			assert.ErrorIs(t, err, tt.want)
			f.bookingRepo.AssertNotCalled(t, "ListByOwner", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
