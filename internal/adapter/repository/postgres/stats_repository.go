package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/srgjo27/sportsync/internal/core/domain"
)

type StatsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) PlatformStats(ctx context.Context) (*domain.PlatformStats, error) {
	stats := domain.PlatformStats{BookingsByStatus: make(map[domain.BookingStatus]int)}

	err := r.db.QueryRowContext(ctx, `
	SELECT
		(SELECT COUNT(*) FROM users),
		(SELECT COUNT(*) FROM court_complexes),
		(SELECT COUNT(*) FROM courts),
		(SELECT COALESCE(SUM(total_price), 0) FROM bookings WHERE status = ANY($1))
	`, pq.Array([]string{string(domain.BookingConfirmed), string(domain.BookingCompleted)})).Scan(
		&stats.TotalUsers,
		&stats.TotalComplexes,
		&stats.TotalCourts,
		&stats.Revenue,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load totals: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM bookings GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	defer rows.Close()

	for rows.Next() {
		var status domain.BookingStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}

		stats.BookingsByStatus[status] = n
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *StatsRepository) OwnerStats(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (*domain.OwnerStats, error) {
	query := `
	WITH owned AS (
		SELECT c.id, c.status AS court_status, cx.status AS complex_status, cx.open_minute, cx.close_minute
		FROM courts c
		JOIN court_complexes cx ON cx.id = c.complex_id
		WHERE cx.owner_id = $1
	), counted AS (
		SELECT b.*
		FROM bookings b
		JOIN owned o ON o.id = b.court_id
		WHERE b.status = ANY($2)
	)
	SELECT
		(SELECT COUNT(*) FROM court_complexes WHERE owner_id = $1),
		(SELECT COUNT(*) FROM owned),
		(SELECT COUNT(*) FROM counted WHERE created_at >= $3 AND created_at < $4),
		(SELECT COALESCE(SUM(total_price), 0) FROM counted WHERE created_at >= $3 AND created_at < $4),
		(SELECT COALESCE(SUM(EXTRACT(EPOCH FROM (end_time - start_time)) / 60), 0)::bigint
			FROM counted WHERE start_time >= $3 AND start_time < $4),
		(SELECT COALESCE(SUM(close_minute - open_minute), 0)
			FROM owned WHERE court_status = 'Active' AND complex_status = 'Active')
	`

	var stats domain.OwnerStats
	err := r.db.QueryRowContext(ctx, query,
		ownerID,
		pq.Array([]string{string(domain.BookingConfirmed), string(domain.BookingCompleted)}),
		from,
		to,
	).Scan(
		&stats.TotalComplexes,
		&stats.TotalCourts,
		&stats.Bookings,
		&stats.Revenue,
		&stats.BookedMinutes,
		&stats.DailyCapacityMinutes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load owner stats: %w", err)
	}

	return &stats, nil
}
