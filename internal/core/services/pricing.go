package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/srgjo27/sportsync/internal/core/domain"
)

var secondsPerHour = decimal.NewFromInt(3600)

// RulesForDate yields the rate rules in force on the calendar date of t.
type RulesForDate func(t time.Time) ([]domain.RateRule, error)

type PricedSegment struct {
	Start        time.Time          `json:"start"`
	End          time.Time          `json:"end"`
	RuleID       uuid.UUID          `json:"rule_id"`
	Day          domain.DaySelector `json:"day"`
	PricePerHour decimal.Decimal    `json:"price_per_hour"`
	Amount       decimal.Decimal    `json:"amount"`
}

type Quote struct {
	Total    decimal.Decimal `json:"total"`
	Segments []PricedSegment `json:"segments"`
}

// PriceInterval walks [start, end) across rate bands and sums
// price-per-hour × duration for every segment. The sum is kept as
// rate × seconds and divided once, so many short segments do not drift.
// The total is rounded half away from zero to 2 decimal places.
func PriceInterval(start, end time.Time, rulesFor RulesForDate) (*Quote, error) {
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: start must be before end", domain.ErrInvalidInterval)
	}

	accrued := decimal.Zero
	var segments []PricedSegment

	for cursor := start; cursor.Before(end); {
		rules, err := rulesFor(cursor)
		if err != nil {
			return nil, err
		}

		rule, ok := pickRule(rules, cursor)
		if !ok {
			return nil, fmt.Errorf("%w: no rate covers %s on %s",
				domain.ErrPricingUnavailable, domain.TimeOfDayOf(cursor), domain.DayOf(cursor))
		}

		segmentEnd := rule.EndTime.On(cursor)
		if rule.DayOfWeek == domain.AllDays {
			if next, ok := nextDayBand(rules, cursor); ok && next.Before(segmentEnd) {
				segmentEnd = next
			}
		}
		if end.Before(segmentEnd) {
			segmentEnd = end
		}

		seconds := decimal.NewFromInt(int64(segmentEnd.Sub(cursor) / time.Second))
		weighted := rule.PricePerHour.Mul(seconds)
		accrued = accrued.Add(weighted)

		segments = append(segments, PricedSegment{
			Start:        cursor,
			End:          segmentEnd,
			RuleID:       rule.ID,
			Day:          rule.DayOfWeek,
			PricePerHour: rule.PricePerHour,
			Amount:       weighted.DivRound(secondsPerHour, 2),
		})

		cursor = segmentEnd
	}

	total := accrued.DivRound(secondsPerHour, 2)

	// Segment amounts are rounded one by one; the last one absorbs the
	// rounding residue so the amounts always add up to the total.
	last := len(segments) - 1
	previous := decimal.Zero
	for _, seg := range segments[:last] {
		previous = previous.Add(seg.Amount)
	}
	segments[last].Amount = total.Sub(previous)

	return &Quote{
		Total:    total,
		Segments: segments,
	}, nil
}

// pickRule prefers a band declared for the weekday of at over an "All" band.
// Within a selector the first band in start order wins.
func pickRule(rules []domain.RateRule, at time.Time) (domain.RateRule, bool) {
	day := domain.DayOf(at)
	tod := domain.TimeOfDayOf(at)

	for _, r := range rules {
		if r.DayOfWeek == day && r.Contains(tod) {
			return r, true
		}
	}

	for _, r := range rules {
		if r.DayOfWeek == domain.AllDays && r.Contains(tod) {
			return r, true
		}
	}

	return domain.RateRule{}, false
}

// nextDayBand finds where the next weekday-specific band starts after at on
// the same date, so an "All" segment yields to it.
func nextDayBand(rules []domain.RateRule, at time.Time) (time.Time, bool) {
	day := domain.DayOf(at)
	tod := domain.TimeOfDayOf(at)

	for _, r := range rules {
		if r.DayOfWeek == day && r.StartTime > tod {
			return r.StartTime.On(at), true
		}
	}

	return time.Time{}, false
}
