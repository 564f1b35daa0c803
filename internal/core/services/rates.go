package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/sportsync/internal/core/domain"
	"github.com/srgjo27/sportsync/internal/core/ports"
)

type RateTable struct {
	repo ports.RateRepository
}

func NewRateTable(repo ports.RateRepository) *RateTable {
	return &RateTable{repo: repo}
}

// RulesFor returns the rules applying to the weekday of date plus the "All"
// rules, ordered by start time. A court with no rules for the day cannot be
// priced.
func (t *RateTable) RulesFor(ctx context.Context, courtID uuid.UUID, date time.Time) ([]domain.RateRule, error) {
	day := domain.DayOf(date)

	rules, err := t.repo.ListForDay(ctx, courtID, day)
	if err != nil {
		return nil, fmt.Errorf("list rates: %w", err)
	}

	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: court has no rates for %s", domain.ErrPricingUnavailable, day)
	}

	domain.SortRules(rules)
	return rules, nil
}

// Lookup adapts RulesFor to the segmenter, loading each calendar date once.
func (t *RateTable) Lookup(ctx context.Context, courtID uuid.UUID) RulesForDate {
	loaded := make(map[string][]domain.RateRule)

	return func(at time.Time) ([]domain.RateRule, error) {
		key := at.Format(time.DateOnly)
		if rules, ok := loaded[key]; ok {
			return rules, nil
		}

		rules, err := t.RulesFor(ctx, courtID, at)
		if err != nil {
			return nil, err
		}

		loaded[key] = rules
		return rules, nil
	}
}
