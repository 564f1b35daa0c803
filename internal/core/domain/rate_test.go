package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/srgjo27/sportsync/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func band(day domain.DaySelector, from, to domain.TimeOfDay, price int64) domain.RateRule {
	return domain.RateRule{DayOfWeek: day, StartTime: from, EndTime: to, PricePerHour: decimal.NewFromInt(price)}
}

func TestValidateRateTable(t *testing.T) {
	h := func(hour int) domain.TimeOfDay { return domain.NewTimeOfDay(hour, 0) }

	tests := []struct {
		name  string
		rules []domain.RateRule
		ok    bool
	}{
		{"adjacent bands", []domain.RateRule{band(domain.AllDays, h(6), h(18), 1), band(domain.AllDays, h(18), domain.EndOfDay, 2)}, true},
		{"weekday may overlap all-days", []domain.RateRule{band(domain.AllDays, h(6), h(22), 1), band("Sunday", h(8), h(12), 2)}, true},
		{"same selector overlap", []domain.RateRule{band("Friday", h(6), h(12), 1), band("Friday", h(11), h(13), 2)}, false},
		{"unknown day", []domain.RateRule{band("Funday", h(6), h(12), 1)}, false},
		{"empty band", []domain.RateRule{band(domain.AllDays, h(12), h(12), 1)}, false},
		{"zero price", []domain.RateRule{band(domain.AllDays, h(6), h(12), 0)}, false},
		{"past midnight", []domain.RateRule{band(domain.AllDays, h(6), domain.EndOfDay+60, 1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateRateTable(tt.rules)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidRateTable)
			}
		})
	}
}

func TestRateRule_ContainsIsHalfOpen(t *testing.T) {
	r := band(domain.AllDays, domain.NewTimeOfDay(6, 0), domain.NewTimeOfDay(18, 0), 1)

	assert.True(t, r.Contains(domain.NewTimeOfDay(6, 0)))
	assert.True(t, r.Contains(domain.NewTimeOfDay(17, 59)))
	assert.False(t, r.Contains(domain.NewTimeOfDay(18, 0)))
}

func TestDaySelector(t *testing.T) {
	sunday := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, domain.DaySelector("Sunday"), domain.DayOf(sunday))
	assert.True(t, domain.AllDays.Matches(sunday))
	assert.True(t, domain.DaySelector("Sunday").Matches(sunday))
	assert.False(t, domain.DaySelector("Monday").Matches(sunday))
	assert.False(t, domain.DaySelector("monday").Valid())
}
