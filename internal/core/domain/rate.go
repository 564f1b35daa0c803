package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DaySelector is a weekday name ("Monday".."Sunday") or AllDays.
type DaySelector string

const AllDays DaySelector = "All"

func DayOf(t time.Time) DaySelector {
	return DaySelector(t.Weekday().String())
}

func (d DaySelector) Valid() bool {
	if d == AllDays {
		return true
	}

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if string(d) == wd.String() {
			return true
		}
	}

	return false
}

// Matches reports whether a rule with this selector applies on date.
func (d DaySelector) Matches(date time.Time) bool {
	return d == AllDays || d == DayOf(date)
}

type RateRule struct {
	ID           uuid.UUID
	CourtID      uuid.UUID
	DayOfWeek    DaySelector
	StartTime    TimeOfDay
	EndTime      TimeOfDay
	PricePerHour decimal.Decimal
}

// Contains reports whether tod falls inside the half-open band [start, end).
func (r RateRule) Contains(tod TimeOfDay) bool {
	return r.StartTime <= tod && tod < r.EndTime
}

func (r RateRule) overlaps(o RateRule) bool {
	return r.StartTime < o.EndTime && o.StartTime < r.EndTime
}

// ValidateRateTable checks a court's full set of rules. Bands must be
// well-formed and bands sharing the same day selector must not overlap.
// A weekday band may overlap an "All" band; the weekday band wins at lookup.
func ValidateRateTable(rules []RateRule) error {
	bySelector := make(map[DaySelector][]RateRule)

	for _, r := range rules {
		if !r.DayOfWeek.Valid() {
			return fmt.Errorf("%w: unknown day %q", ErrInvalidRateTable, r.DayOfWeek)
		}

		if !r.StartTime.Valid() || !r.EndTime.Valid() || r.StartTime >= r.EndTime {
			return fmt.Errorf("%w: band %s-%s is empty or out of range", ErrInvalidRateTable, r.StartTime, r.EndTime)
		}

		if !r.PricePerHour.IsPositive() {
			return fmt.Errorf("%w: price for %s %s-%s must be positive", ErrInvalidRateTable, r.DayOfWeek, r.StartTime, r.EndTime)
		}

		bySelector[r.DayOfWeek] = append(bySelector[r.DayOfWeek], r)
	}

	for day, group := range bySelector {
		SortRules(group)
		for i := 1; i < len(group); i++ {
			if group[i-1].overlaps(group[i]) {
				return fmt.Errorf("%w: %s bands %s-%s and %s-%s overlap", ErrInvalidRateTable,
					day, group[i-1].StartTime, group[i-1].EndTime, group[i].StartTime, group[i].EndTime)
			}
		}
	}

	return nil
}

func SortRules(rules []RateRule) {
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].StartTime < rules[j].StartTime
	})
}
