package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/srgjo27/sportsync/internal/core/domain"
)

type CourtRepository struct {
	db *sql.DB
}

func NewCourtRepository(db *sql.DB) *CourtRepository {
	return &CourtRepository{db: db}
}

func (r *CourtRepository) GetWithComplex(ctx context.Context, courtID uuid.UUID) (*domain.CourtWithComplex, error) {
	query := `
	SELECT c.id, c.complex_id, c.name, c.status, ` + complexColumns + `
	FROM courts c
	JOIN court_complexes cx ON cx.id = c.complex_id
	WHERE c.id = $1
	`

	var v domain.CourtWithComplex
	dest := append([]any{&v.Court.ID, &v.Court.ComplexID, &v.Court.Name, &v.Court.Status}, complexFields(&v.Complex)...)

	if err := r.db.QueryRowContext(ctx, query, courtID).Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &v, nil
}

func (r *CourtRepository) ListActiveByComplex(ctx context.Context, complexID uuid.UUID) ([]domain.Court, error) {
	query := `
	SELECT id, complex_id, name, status
	FROM courts
	WHERE complex_id = $1 AND status = $2
	ORDER BY name
	`

	return r.list(ctx, query, complexID, domain.StatusActive)
}

func (r *CourtRepository) ListByComplex(ctx context.Context, complexID uuid.UUID) ([]domain.Court, error) {
	query := `
	SELECT id, complex_id, name, status
	FROM courts
	WHERE complex_id = $1
	ORDER BY name
	`

	return r.list(ctx, query, complexID)
}

func (r *CourtRepository) list(ctx context.Context, query string, args ...any) ([]domain.Court, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var courts []domain.Court
	for rows.Next() {
		var c domain.Court
		if err := rows.Scan(&c.ID, &c.ComplexID, &c.Name, &c.Status); err != nil {
			return nil, err
		}

		courts = append(courts, c)
	}

	return courts, rows.Err()
}

func (r *CourtRepository) CreateWithRates(ctx context.Context, court *domain.Court, rates []domain.RateRule) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO courts (id, complex_id, name, status) VALUES ($1, $2, $3, $4)`,
		court.ID, court.ComplexID, court.Name, court.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert court: %w", err)
	}

	if err := insertRates(ctx, tx, court.ID, rates); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *CourtRepository) Update(ctx context.Context, court *domain.Court, rates []domain.RateRule) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE courts SET name = $1, status = $2 WHERE id = $3`,
		court.Name, court.Status, court.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update court: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}

	if rates != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM hourly_price_rates WHERE court_id = $1`, court.ID); err != nil {
			return fmt.Errorf("failed to clear rates: %w", err)
		}

		if err := insertRates(ctx, tx, court.ID, rates); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Delete locks the court row so a booking cannot slip in between the
// history check and the delete.
func (r *CourtRepository) Delete(ctx context.Context, courtID uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	var id uuid.UUID
	if err := tx.QueryRowContext(ctx, `SELECT id FROM courts WHERE id = $1 FOR UPDATE`, courtID).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to lock court: %w", err)
	}

	var used bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE court_id = $1)`, courtID).Scan(&used); err != nil {
		return fmt.Errorf("failed to check court bookings: %w", err)
	}

	if used {
		return domain.ErrCourtInUse
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM courts WHERE id = $1`, courtID); err != nil {
		return fmt.Errorf("failed to delete court: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func insertRates(ctx context.Context, tx *sql.Tx, courtID uuid.UUID, rates []domain.RateRule) error {
	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO hourly_price_rates (id, court_id, day_of_week, start_minute, end_minute, price_per_hour)
	VALUES ($1, $2, $3, $4, $5, $6)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare rate statement: %w", err)
	}

	defer stmt.Close()

	for _, rate := range rates {
		_, err := stmt.ExecContext(ctx, rate.ID, courtID, rate.DayOfWeek, int(rate.StartTime), int(rate.EndTime), rate.PricePerHour)
		if err != nil {
			return fmt.Errorf("failed to insert rate %s %s-%s: %w", rate.DayOfWeek, rate.StartTime, rate.EndTime, err)
		}
	}

	return nil
}
