package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/srgjo27/sportsync/internal/adapter/handler"
	"github.com/srgjo27/sportsync/internal/adapter/payment"
	"github.com/srgjo27/sportsync/internal/core/domain"
	"github.com/srgjo27/sportsync/internal/core/ports/mocks"
	"github.com/srgjo27/sportsync/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

var ict = time.FixedZone("ICT", 7*60*60)

// 2025-06-02 is a Monday.
var now = time.Date(2025, 6, 2, 7, 0, 0, 0, ict)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type apiFixture struct {
	complexRepo *mocks.ComplexRepository
	courtRepo   *mocks.CourtRepository
	bookingRepo *mocks.BookingRepository
	rateRepo    *mocks.RateRepository
	statsRepo   *mocks.StatsRepository
	reviewRepo  *mocks.ReviewRepository
	notifier    *mocks.Notifier
	qr          *mocks.PaymentQRGenerator
	banks       *mocks.BankDirectory
	redis       redismock.ClientMock
	router      http.Handler

	venue    *domain.CourtWithComplex
	customer domain.Principal
	owner    domain.Principal
	admin    domain.Principal
}

func newAPIFixture(t *testing.T, rateLimit int) *apiFixture {
	t.Helper()

	f := &apiFixture{
		complexRepo: mocks.NewComplexRepository(t),
		courtRepo:   mocks.NewCourtRepository(t),
		bookingRepo: mocks.NewBookingRepository(t),
		rateRepo:    mocks.NewRateRepository(t),
		statsRepo:   mocks.NewStatsRepository(t),
		reviewRepo:  mocks.NewReviewRepository(t),
		notifier:    mocks.NewNotifier(t),
		qr:          mocks.NewPaymentQRGenerator(t),
		banks:       mocks.NewBankDirectory(t),
	}

	db, mockRedis := redismock.NewClientMock()
	f.redis = mockRedis

	log := zap.NewNop()
	clock := fixedClock{now: now}
	rates := services.NewRateTable(f.rateRepo)

	bookings := services.NewBookingService(f.courtRepo, f.bookingRepo, rates,
		services.NewPaymentDesk(f.qr, "SportSync", log), f.notifier, db, clock, log)
	courts := services.NewCourtService(f.complexRepo, f.courtRepo, f.rateRepo, db, clock, log)
	availability := services.NewAvailabilityService(f.complexRepo, f.courtRepo, f.bookingRepo, rates, db, clock, log)
	stats := services.NewStatsService(f.statsRepo, clock)
	reviews := services.NewReviewService(f.reviewRepo, f.complexRepo, clock, log)

	f.router = handler.NewRouter(handler.RouterConfig{
		JWTSecret:       testSecret,
		RateLimitPerMin: rateLimit,
	}, handler.Handlers{
		Booking: handler.NewBookingHandler(bookings, log),
		Owner:   handler.NewOwnerHandler(bookings, courts, availability, stats, log),
		Public:  handler.NewPublicHandler(availability, courts, reviews, f.banks, log),
		Review:  handler.NewReviewHandler(reviews, log),
		Admin:   handler.NewAdminHandler(stats, log),
	}, log)

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
	f.admin = domain.Principal{UserID: uuid.New(), Role: domain.RoleAdmin, Name: "Admin"}

	return f
}

func (f *apiFixture) do(t *testing.T, method, path string, who *domain.Principal, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if who != nil {
		token, err := handler.IssueToken(testSecret, *who, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 6, 2, hour, minute, 0, 0, ict)
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

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestCreateBooking_Created(t *testing.T) {
	f := newAPIFixture(t, 100)
	courtID := f.venue.Court.ID
	qrURL := "https://img.vietqr.io/image/VCB-0123456789-compact2.jpg"

	f.courtRepo.On("GetWithComplex", mock.Anything, courtID).Return(f.venue, nil)
	f.bookingRepo.On("HasOverlap", mock.Anything, courtID, at(8, 0), at(9, 30)).Return(false, nil)
	f.rateRepo.On("ListForDay", mock.Anything, courtID, domain.DaySelector("Monday")).Return(flatRate(courtID, 100000), nil)
	f.bookingRepo.On("CreateBooking", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
	f.qr.On("GenerateQR", mock.Anything, mock.Anything).Return(&qrURL, nil)
	f.notifier.On("NotifyBooking", mock.Anything, mock.Anything).Return(nil)
	f.redis.ExpectDel(fmt.Sprintf("grid:%s:2025-06-02", f.venue.Complex.ID)).SetVal(1)

	w := f.do(t, http.MethodPost, "/api/booking", &f.customer, services.CreateBookingRequest{
		CourtID:   courtID.String(),
		StartTime: "2025-06-02T08:00:00",
		EndTime:   "2025-06-02T09:30:00",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Booking struct {
			TotalPrice decimal.Decimal      `json:"totalPrice"`
			Status     domain.BookingStatus `json:"status"`
			CourtName  string               `json:"courtName"`
		} `json:"booking"`
		Payment domain.PaymentInfo `json:"payment"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, decimal.NewFromInt(150000).Equal(resp.Booking.TotalPrice))
	assert.Equal(t, domain.BookingPending, resp.Booking.Status)
	assert.Equal(t, "Court 1", resp.Booking.CourtName)
	assert.Equal(t, int64(150000), resp.Payment.Amount)
	assert.Equal(t, &qrURL, resp.Payment.QRURL)
}

func TestCreateBooking_Conflict(t *testing.T) {
	f := newAPIFixture(t, 100)
	courtID := f.venue.Court.ID

	f.courtRepo.On("GetWithComplex", mock.Anything, courtID).Return(f.venue, nil)
	f.bookingRepo.On("HasOverlap", mock.Anything, courtID, at(9, 0), at(10, 0)).Return(true, nil)

	w := f.do(t, http.MethodPost, "/api/booking", &f.customer, services.CreateBookingRequest{
		CourtID:   courtID.String(),
		StartTime: "2025-06-02T09:00:00",
		EndTime:   "2025-06-02T10:00:00",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, decodeError(t, w), "already booked")
}

func TestCreateBooking_RequestErrors(t *testing.T) {
	f := newAPIFixture(t, 100)

	tests := []struct {
		name   string
		who    *domain.Principal
		body   any
		status int
	}{
		{"no token", nil, services.CreateBookingRequest{}, http.StatusUnauthorized},
		{"owner cannot book online", &f.owner, services.CreateBookingRequest{}, http.StatusForbidden},
		{"malformed json", &f.customer, "not-an-object", http.StatusBadRequest},
		{"invalid court id", &f.customer, services.CreateBookingRequest{
			CourtID: "nope", StartTime: "2025-06-02T08:00:00", EndTime: "2025-06-02T09:00:00",
		}, http.StatusBadRequest},
		{"end before start", &f.customer, services.CreateBookingRequest{
			CourtID: uuid.NewString(), StartTime: "2025-06-02T10:00:00", EndTime: "2025-06-02T09:00:00",
		}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, http.MethodPost, "/api/booking", tt.who, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestInvalidToken(t *testing.T) {
	f := newAPIFixture(t, 100)

	req := httptest.NewRequest(http.MethodGet, "/api/booking/my-bookings", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestApproveBooking(t *testing.T) {
	f := newAPIFixture(t, 100)
	bookingID := uuid.New()
	customerID := f.customer.UserID

	details := &domain.BookingDetails{
		Booking: domain.Booking{
			ID:         bookingID,
			CourtID:    f.venue.Court.ID,
			CustomerID: &customerID,
			StartTime:  at(18, 0),
			EndTime:    at(19, 0),
			TotalPrice: decimal.NewFromInt(100000),
			Status:     domain.BookingPending,
			Type:       domain.BookingOnline,
		},
		CourtName:     "Court 1",
		ComplexID:     f.venue.Complex.ID,
		ComplexName:   "Riverside Arena",
		OwnerID:       f.owner.UserID,
		CustomerName:  "Tran Thi B",
		CustomerEmail: "b@example.com",
	}

	f.bookingRepo.On("GetDetails", mock.Anything, bookingID).Return(details, nil)
	f.bookingRepo.On("UpdateStatus", mock.Anything, bookingID,
		[]domain.BookingStatus{domain.BookingPending}, domain.BookingConfirmed).Return(nil)
	f.notifier.On("NotifyBooking", mock.Anything, mock.MatchedBy(func(n domain.BookingNotice) bool {
		return n.Kind == domain.NoticeApproved && n.Status == domain.BookingConfirmed
	})).Return(nil)
	f.redis.ExpectDel(fmt.Sprintf("grid:%s:2025-06-02", f.venue.Complex.ID)).SetVal(1)

	w := f.do(t, http.MethodPut, "/api/owner/bookings/"+bookingID.String()+"/approve", &f.owner, nil)

	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRejectBooking_AlreadyDecided(t *testing.T) {
	f := newAPIFixture(t, 100)
	bookingID := uuid.New()

	f.bookingRepo.On("GetDetails", mock.Anything, bookingID).Return(&domain.BookingDetails{
		Booking: domain.Booking{ID: bookingID, Status: domain.BookingCancelled},
		OwnerID: f.owner.UserID,
	}, nil)

	w := f.do(t, http.MethodPut, "/api/owner/bookings/"+bookingID.String()+"/reject", &f.owner, map[string]string{"reason": "closed"})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestOwnerRoutes_RequireOwnerRole(t *testing.T) {
	f := newAPIFixture(t, 100)

	w := f.do(t, http.MethodGet, "/api/owner/bookings/pending", &f.customer, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetBooking_InvalidID(t *testing.T) {
	f := newAPIFixture(t, 100)

	w := f.do(t, http.MethodGet, "/api/booking/not-a-uuid", &f.customer, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBooking_NotFound(t *testing.T) {
	f := newAPIFixture(t, 100)
	bookingID := uuid.New()

	f.bookingRepo.On("GetDetails", mock.Anything, bookingID).Return(nil, domain.ErrNotFound)

	w := f.do(t, http.MethodGet, "/api/booking/"+bookingID.String(), &f.customer, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatistics(t *testing.T) {
	f := newAPIFixture(t, 100)

	f.statsRepo.On("PlatformStats", mock.Anything).Return(&domain.PlatformStats{
		TotalUsers:       12,
		TotalComplexes:   3,
		TotalCourts:      9,
		BookingsByStatus: map[domain.BookingStatus]int{domain.BookingConfirmed: 4},
		Revenue:          decimal.NewFromInt(400000),
	}, nil).Once()

	w := f.do(t, http.MethodGet, "/api/admin/statistics", &f.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalCourts":9`)
	assert.Contains(t, w.Body.String(), `"Confirmed":4`)

	w = f.do(t, http.MethodGet, "/api/admin/statistics", &f.owner, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestStatistics_InternalErrorIsHidden(t *testing.T) {
	f := newAPIFixture(t, 100)

	f.statsRepo.On("PlatformStats", mock.Anything).Return(nil, errors.New("pq: connection reset"))

	w := f.do(t, http.MethodGet, "/api/admin/statistics", &f.admin, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decodeError(t, w))
}

func TestBanks(t *testing.T) {
	f := newAPIFixture(t, 100)

	f.banks.On("ListBanks", mock.Anything).Return([]domain.Bank{{Code: "VCB", Bin: "970436"}}, nil).Once()
	f.banks.On("ListBanks", mock.Anything).Return(nil, fmt.Errorf("%w: timeout", payment.ErrBankDirectory)).Once()

	w := f.do(t, http.MethodGet, "/api/public/banks", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"bin":"970436"`)

	w = f.do(t, http.MethodGet, "/api/public/banks", nil, nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestAvailabilityGrid_Public(t *testing.T) {
	f := newAPIFixture(t, 100)
	cx := f.venue.Complex
	key := fmt.Sprintf("grid:%s:2025-06-02", cx.ID)

	f.complexRepo.On("GetByID", mock.Anything, cx.ID).Return(&cx, nil)
	f.courtRepo.On("ListActiveByComplex", mock.Anything, cx.ID).Return([]domain.Court{f.venue.Court}, nil)
	f.bookingRepo.On("ListHolding", mock.Anything, []uuid.UUID{f.venue.Court.ID}, mock.Anything, mock.Anything).Return(nil, nil)
	f.redis.ExpectGet(key).RedisNil()
	f.redis.Regexp().ExpectSet(key, `.*`, services.GridCacheTTL).SetVal("OK")

	w := f.do(t, http.MethodGet, "/api/public/court-complexes/"+cx.ID.String()+"/availability-grid?date=2025-06-02", nil, nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var grid services.AvailabilityGrid
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grid))
	require.Len(t, grid.Courts, 1)
	assert.Len(t, grid.Courts[0].Slots, 16)
}

func TestRateLimit(t *testing.T) {
	f := newAPIFixture(t, 1)

	first := f.do(t, http.MethodGet, "/health", nil, nil)
	second := f.do(t, http.MethodGet, "/health", nil, nil)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(handler.Recovery(zap.NewNop()))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

