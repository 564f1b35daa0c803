package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/srgjo27/sportsync/internal/core/domain"
)

type RateRepository struct {
	db *sql.DB
}

func NewRateRepository(db *sql.DB) *RateRepository {
	return &RateRepository{db: db}
}

func (r *RateRepository) ListForDay(ctx context.Context, courtID uuid.UUID, day domain.DaySelector) ([]domain.RateRule, error) {
	query := `
	SELECT id, court_id, day_of_week, start_minute, end_minute, price_per_hour
	FROM hourly_price_rates
	WHERE court_id = $1 AND day_of_week IN ($2, $3)
	ORDER BY start_minute, id
	`

	return r.list(ctx, query, courtID, day, domain.AllDays)
}

func (r *RateRepository) ListByCourt(ctx context.Context, courtID uuid.UUID) ([]domain.RateRule, error) {
	query := `
	SELECT id, court_id, day_of_week, start_minute, end_minute, price_per_hour
	FROM hourly_price_rates
	WHERE court_id = $1
	ORDER BY day_of_week, start_minute
	`

	return r.list(ctx, query, courtID)
}

func (r *RateRepository) list(ctx context.Context, query string, args ...any) ([]domain.RateRule, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var rules []domain.RateRule
	for rows.Next() {
		var rule domain.RateRule
		if err := rows.Scan(
			&rule.ID,
			&rule.CourtID,
			&rule.DayOfWeek,
			(*minutes)(&rule.StartTime),
			(*minutes)(&rule.EndTime),
			&rule.PricePerHour,
		); err != nil {
			return nil, err
		}

		rules = append(rules, rule)
	}

	return rules, rows.Err()
}
