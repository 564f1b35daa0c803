package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/srgjo27/sportsync/internal/core/domain"
	"github.com/srgjo27/sportsync/internal/core/ports"
	"go.uber.org/zap"
)

const (
	GridCacheTTL        = 5 * time.Minute
	CalendarSlot        = 30 * time.Minute
	GridSlot            = time.Hour
	DefaultCalendar     = 7
	MaxAvailabilitySpan = 31
)

func gridKey(complexID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("grid:%s:%s", complexID, date.Format(time.DateOnly))
}

// gridKeysFor lists the cache keys of every date the interval touches.
func gridKeysFor(complexID uuid.UUID, start, end time.Time) []string {
	first := domain.StartOfDay(start)
	last := domain.StartOfDay(end.Add(-time.Nanosecond))

	var keys []string
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		keys = append(keys, gridKey(complexID, d))
	}
	return keys
}

// purgeComplexGrid drops every cached grid date of a complex. Used when the
// venue itself changes, so no single date can be targeted.
func purgeComplexGrid(ctx context.Context, cache *redis.Client, complexID uuid.UUID, logger *zap.Logger) {
	if cache == nil {
		return
	}

	pattern := fmt.Sprintf("grid:%s:*", complexID)
	var cursor uint64
	for {
		keys, next, err := cache.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			logger.Warn("failed to scan availability grid cache",
				zap.String("complex_id", complexID.String()),
				zap.Error(err),
			)
			return
		}

		if len(keys) > 0 {
			if err := cache.Del(ctx, keys...).Err(); err != nil {
				logger.Warn("failed to invalidate availability grid cache",
					zap.Strings("keys", keys),
					zap.Error(err),
				)
			}
		}

		if next == 0 {
			return
		}
		cursor = next
	}
}

type SlotBooking struct {
	ID           uuid.UUID            `json:"id"`
	Status       domain.BookingStatus `json:"status"`
	CustomerName string               `json:"customerName"`
	StartTime    time.Time            `json:"startTime"`
	EndTime      time.Time            `json:"endTime"`
}

type TimeSlot struct {
	Start     time.Time    `json:"start"`
	End       time.Time    `json:"end"`
	Available bool         `json:"available"`
	IsPast    bool         `json:"isPast"`
	Booking   *SlotBooking `json:"booking,omitempty"`
}

type CourtSlots struct {
	CourtID   uuid.UUID  `json:"courtId"`
	CourtName string     `json:"courtName"`
	Slots     []TimeSlot `json:"slots"`
}

type CalendarDay struct {
	Date   string       `json:"date"`
	Courts []CourtSlots `json:"courts"`
}

type Calendar struct {
	ComplexID uuid.UUID     `json:"complexId"`
	StartDate string        `json:"startDate"`
	EndDate   string        `json:"endDate"`
	Days      []CalendarDay `json:"days"`
}

type AvailabilityGrid struct {
	ComplexID uuid.UUID        `json:"complexId"`
	Date      string           `json:"date"`
	OpenTime  domain.TimeOfDay `json:"openTime"`
	CloseTime domain.TimeOfDay `json:"closeTime"`
	Courts    []CourtSlots     `json:"courts"`
}

type RateBand struct {
	DayOfWeek    domain.DaySelector `json:"dayOfWeek"`
	StartTime    domain.TimeOfDay   `json:"startTime"`
	EndTime      domain.TimeOfDay   `json:"endTime"`
	PricePerHour string             `json:"pricePerHour"`
}

type CourtDay struct {
	Date     string        `json:"date"`
	Rates    []RateBand    `json:"rates"`
	Bookings []SlotBooking `json:"bookings"`
}

// occupancy is what the grid cache stores. Slot flags depend on the current
// time and are derived on every read.
type occupancy struct {
	Courts   []domain.Court `json:"courts"`
	Bookings []occupied     `json:"bookings"`
}

type occupied struct {
	CourtID uuid.UUID   `json:"courtId"`
	Booking SlotBooking `json:"booking"`
}

type AvailabilityService struct {
	complexRepo ports.ComplexRepository
	courtRepo   ports.CourtRepository
	bookingRepo ports.BookingRepository
	rates       *RateTable
	cache       *redis.Client
	clock       ports.Clock
	logger      *zap.Logger
}

func NewAvailabilityService(
	complexRepo ports.ComplexRepository,
	courtRepo ports.CourtRepository,
	bookingRepo ports.BookingRepository,
	rates *RateTable,
	cache *redis.Client,
	clock ports.Clock,
	logger *zap.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		complexRepo: complexRepo,
		courtRepo:   courtRepo,
		bookingRepo: bookingRepo,
		rates:       rates,
		cache:       cache,
		clock:       clock,
		logger:      logger,
	}
}

// dateRange resolves optional YYYY-MM-DD bounds. Missing start means today,
// missing end means defaultDays in total.
func (s *AvailabilityService) dateRange(startDate, endDate string, defaultDays int) (time.Time, time.Time, error) {
	now := s.clock.Now()
	loc := now.Location()

	start := domain.StartOfDay(now)
	if startDate != "" {
		d, err := ParseDate(startDate, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = d
	}

	end := start.AddDate(0, 0, defaultDays-1)
	if endDate != "" {
		d, err := ParseDate(endDate, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = d
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end date is before start date", domain.ErrValidation)
	}

	if end.After(start.AddDate(0, 0, MaxAvailabilitySpan-1)) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: date range is limited to %d days", domain.ErrValidation, MaxAvailabilitySpan)
	}

	return start, end, nil
}

func (s *AvailabilityService) loadComplex(ctx context.Context, complexID uuid.UUID) (*domain.Complex, error) {
	cx, err := s.complexRepo.GetByID(ctx, complexID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: court complex %s", domain.ErrNotFound, complexID)
		}
		return nil, fmt.Errorf("get complex: %w", err)
	}
	return cx, nil
}

// Calendar lays out 30-minute slots for every active court of an owner's
// complex between startDate and endDate inclusive.
func (s *AvailabilityService) Calendar(ctx context.Context, p domain.Principal, complexID uuid.UUID, startDate, endDate string) (*Calendar, error) {
	cx, err := s.loadComplex(ctx, complexID)
	if err != nil {
		return nil, err
	}

	if !p.Is(domain.RoleOwner) || cx.OwnerID != p.UserID {
		return nil, fmt.Errorf("%w: not the owner of this complex", domain.ErrPermissionDenied)
	}

	start, end, err := s.dateRange(startDate, endDate, DefaultCalendar)
	if err != nil {
		return nil, err
	}

	courts, err := s.courtRepo.ListActiveByComplex(ctx, complexID)
	if err != nil {
		return nil, fmt.Errorf("list courts: %w", err)
	}

	held, err := s.bookingRepo.ListHolding(ctx, courtIDs(courts), cx.OpenTime.On(start), cx.CloseTime.On(end))
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	byCourt := groupByCourt(summarize(held))
	now := s.clock.Now()

	cal := &Calendar{
		ComplexID: complexID,
		StartDate: start.Format(time.DateOnly),
		EndDate:   end.Format(time.DateOnly),
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day := CalendarDay{Date: d.Format(time.DateOnly)}
		for _, court := range courts {
			day.Courts = append(day.Courts, CourtSlots{
				CourtID:   court.ID,
				CourtName: court.Name,
				Slots:     layoutSlots(cx.OpenTime.On(d), cx.CloseTime.On(d), CalendarSlot, byCourt[court.ID], now),
			})
		}
		cal.Days = append(cal.Days, day)
	}

	return cal, nil
}

// Grid returns the public hourly availability of a complex for one date.
// Occupancy is served from cache when present.
func (s *AvailabilityService) Grid(ctx context.Context, complexID uuid.UUID, date string) (*AvailabilityGrid, error) {
	cx, err := s.loadComplex(ctx, complexID)
	if err != nil {
		return nil, err
	}

	if !cx.IsActive() {
		return nil, fmt.Errorf("%w: court complex is inactive", domain.ErrResourceUnavailable)
	}

	day, _, err := s.dateRange(date, "", 1)
	if err != nil {
		return nil, err
	}

	occ, err := s.occupancy(ctx, cx, day)
	if err != nil {
		return nil, err
	}

	byCourt := groupByCourt(occ.Bookings)
	now := s.clock.Now()
	grid := &AvailabilityGrid{
		ComplexID: complexID,
		Date:      day.Format(time.DateOnly),
		OpenTime:  cx.OpenTime,
		CloseTime: cx.CloseTime,
	}

	for _, court := range occ.Courts {
		grid.Courts = append(grid.Courts, CourtSlots{
			CourtID:   court.ID,
			CourtName: court.Name,
			Slots:     layoutSlots(cx.OpenTime.On(day), cx.CloseTime.On(day), GridSlot, byCourt[court.ID], now),
		})
	}

	return grid, nil
}

func (s *AvailabilityService) occupancy(ctx context.Context, cx *domain.Complex, day time.Time) (*occupancy, error) {
	key := gridKey(cx.ID, day)

	if s.cache != nil {
		raw, err := s.cache.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var occ occupancy
			if err := json.Unmarshal(raw, &occ); err == nil {
				return &occ, nil
			}
			s.logger.Warn("discarding unreadable grid cache entry", zap.String("key", key))
		case !errors.Is(err, redis.Nil):
			s.logger.Warn("grid cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	courts, err := s.courtRepo.ListActiveByComplex(ctx, cx.ID)
	if err != nil {
		return nil, fmt.Errorf("list courts: %w", err)
	}

	held, err := s.bookingRepo.ListHolding(ctx, courtIDs(courts), cx.OpenTime.On(day), cx.CloseTime.On(day))
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	occ := &occupancy{Courts: courts, Bookings: summarize(held)}

	if s.cache != nil {
		if raw, err := json.Marshal(occ); err == nil {
			if err := s.cache.Set(ctx, key, raw, GridCacheTTL).Err(); err != nil {
				s.logger.Warn("grid cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}

	return occ, nil
}

// CourtAvailability lists, per date, the price bands in force and the
// bookings currently holding the court.
func (s *AvailabilityService) CourtAvailability(ctx context.Context, courtID uuid.UUID, startDate, endDate string) ([]CourtDay, error) {
	venue, err := s.courtRepo.GetWithComplex(ctx, courtID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: court %s", domain.ErrNotFound, courtID)
		}
		return nil, fmt.Errorf("get court: %w", err)
	}

	if !venue.Court.IsActive() || !venue.Complex.IsActive() {
		return nil, fmt.Errorf("%w: court is not bookable", domain.ErrResourceUnavailable)
	}

	start, end, err := s.dateRange(startDate, endDate, DefaultCalendar)
	if err != nil {
		return nil, err
	}

	held, err := s.bookingRepo.ListHolding(ctx, []uuid.UUID{courtID}, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	var days []CourtDay
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		rules, err := s.rates.RulesFor(ctx, courtID, d)
		if err != nil && !errors.Is(err, domain.ErrPricingUnavailable) {
			return nil, err
		}

		day := CourtDay{
			Date:     d.Format(time.DateOnly),
			Rates:    EffectiveBands(rules, d),
			Bookings: []SlotBooking{},
		}

		next := d.AddDate(0, 0, 1)
		for _, h := range held {
			if h.Booking.Overlaps(d, next) {
				day.Bookings = append(day.Bookings, summary(h))
			}
		}

		days = append(days, day)
	}

	return days, nil
}

// EffectiveBands flattens the rules for date into non-overlapping bands.
// Weekday bands are kept whole and "All" bands are clipped around them.
func EffectiveBands(rules []domain.RateRule, date time.Time) []RateBand {
	day := domain.DayOf(date)
	var specific, fallback []domain.RateRule

	for _, r := range rules {
		switch r.DayOfWeek {
		case day:
			specific = append(specific, r)
		case domain.AllDays:
			fallback = append(fallback, r)
		}
	}

	bands := []RateBand{}
	for _, r := range specific {
		bands = append(bands, band(r, r.StartTime, r.EndTime))
	}

	for _, r := range fallback {
		from := r.StartTime
		for _, sp := range specific {
			if sp.EndTime <= from || sp.StartTime >= r.EndTime {
				continue
			}
			if sp.StartTime > from {
				bands = append(bands, band(r, from, sp.StartTime))
			}
			if sp.EndTime > from {
				from = sp.EndTime
			}
		}
		if from < r.EndTime {
			bands = append(bands, band(r, from, r.EndTime))
		}
	}

	sortBands(bands)
	return bands
}

func band(r domain.RateRule, from, to domain.TimeOfDay) RateBand {
	return RateBand{
		DayOfWeek:    r.DayOfWeek,
		StartTime:    from,
		EndTime:      to,
		PricePerHour: r.PricePerHour.StringFixed(2),
	}
}

func sortBands(bands []RateBand) {
	sort.Slice(bands, func(i, j int) bool {
		return bands[i].StartTime < bands[j].StartTime
	})
}

// layoutSlots cuts [open, close) into fixed steps. The last slot is shortened
// when close is not aligned to the step.
func layoutSlots(open, close time.Time, step time.Duration, held []SlotBooking, now time.Time) []TimeSlot {
	slots := []TimeSlot{}

	for cursor := open; cursor.Before(close); cursor = cursor.Add(step) {
		end := cursor.Add(step)
		if close.Before(end) {
			end = close
		}

		slot := TimeSlot{Start: cursor, End: end, IsPast: cursor.Before(now), Available: true}
		for i := range held {
			if held[i].StartTime.Before(end) && cursor.Before(held[i].EndTime) {
				b := held[i]
				slot.Available = false
				slot.Booking = &b
				break
			}
		}

		slots = append(slots, slot)
	}

	return slots
}

func summary(d domain.BookingDetails) SlotBooking {
	return SlotBooking{
		ID:           d.Booking.ID,
		Status:       d.Booking.Status,
		CustomerName: d.DisplayName(),
		StartTime:    d.Booking.StartTime,
		EndTime:      d.Booking.EndTime,
	}
}

func summarize(held []domain.BookingDetails) []occupied {
	out := make([]occupied, 0, len(held))
	for _, d := range held {
		out = append(out, occupied{CourtID: d.Booking.CourtID, Booking: summary(d)})
	}
	return out
}

func groupByCourt(items []occupied) map[uuid.UUID][]SlotBooking {
	byCourt := make(map[uuid.UUID][]SlotBooking)
	for _, o := range items {
		byCourt[o.CourtID] = append(byCourt[o.CourtID], o.Booking)
	}
	return byCourt
}

func courtIDs(courts []domain.Court) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(courts))
	for _, c := range courts {
		ids = append(ids, c.ID)
	}
	return ids
}
