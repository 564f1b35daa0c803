package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/srgjo27/sportsync/internal/core/domain"
)

const uniqueViolation = "23505"

type ReviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) HasVisited(ctx context.Context, customerID, complexID uuid.UUID) (bool, error) {
	query := `
	SELECT EXISTS (
		SELECT 1
		FROM bookings b
		JOIN courts c ON c.id = b.court_id
		WHERE c.complex_id = $1 AND b.customer_id = $2 AND b.status = ANY($3)
	)
	`

	var visited bool
	err := r.db.QueryRowContext(ctx, query,
		complexID,
		customerID,
		pq.Array([]string{string(domain.BookingConfirmed), string(domain.BookingCompleted)}),
	).Scan(&visited)
	if err != nil {
		return false, err
	}

	return visited, nil
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	return r.withRefresh(ctx, review.ComplexID, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO reviews (id, complex_id, customer_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		`, review.ID, review.ComplexID, review.CustomerID, review.Rating, review.Comment, review.CreatedAt)
		if err != nil {
			var pgErr *pq.Error
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return domain.ErrAlreadyReviewed
			}
			return fmt.Errorf("failed to insert review: %w", err)
		}
		return nil
	})
}

func (r *ReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	return r.withRefresh(ctx, review.ComplexID, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE reviews SET rating = $1, comment = $2 WHERE id = $3`,
			review.Rating, review.Comment, review.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update review: %w", err)
		}
		return expectOneRow(result)
	})
}

func (r *ReviewRepository) Delete(ctx context.Context, review *domain.Review) error {
	return r.withRefresh(ctx, review.ComplexID, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, review.ID)
		if err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}
		return expectOneRow(result)
	})
}

// withRefresh runs write and then recomputes the complex's rating and review
// count inside the same transaction. The complex row is locked first so
// concurrent reviews of one complex apply their aggregates in turn.
func (r *ReviewRepository) withRefresh(ctx context.Context, complexID uuid.UUID, write func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT 1 FROM court_complexes WHERE id = $1 FOR UPDATE`, complexID); err != nil {
		return fmt.Errorf("failed to lock complex: %w", err)
	}

	if err := write(tx); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
	UPDATE court_complexes
	SET rating = COALESCE((SELECT ROUND(AVG(rating), 2) FROM reviews WHERE complex_id = $1), 0),
		total_reviews = (SELECT COUNT(*) FROM reviews WHERE complex_id = $1)
	WHERE id = $1
	`, complexID)
	if err != nil {
		return fmt.Errorf("failed to refresh rating: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

const reviewSelect = `
	SELECT rv.id, rv.complex_id, cx.name, rv.customer_id, COALESCE(u.full_name, ''), rv.rating, rv.comment, rv.created_at
	FROM reviews rv
	JOIN court_complexes cx ON cx.id = rv.complex_id
	LEFT JOIN users u ON u.id = rv.customer_id
`

func (r *ReviewRepository) GetByID(ctx context.Context, reviewID uuid.UUID) (*domain.Review, error) {
	var rv domain.Review
	err := r.db.QueryRowContext(ctx, reviewSelect+` WHERE rv.id = $1`, reviewID).Scan(reviewFields(&rv)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &rv, nil
}

func (r *ReviewRepository) ListByComplex(ctx context.Context, complexID uuid.UUID, q domain.ReviewQuery) ([]domain.Review, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews WHERE complex_id = $1`, complexID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	items, err := r.list(ctx, reviewSelect+`
	WHERE rv.complex_id = $1
	ORDER BY rv.created_at DESC, rv.id
	LIMIT $2 OFFSET $3
	`, complexID, q.Limit, q.Offset())
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *ReviewRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Review, error) {
	return r.list(ctx, reviewSelect+`
	WHERE rv.customer_id = $1
	ORDER BY rv.created_at DESC, rv.id
	`, customerID)
}

// Summary reads the stored aggregate and counts reviews per star.
func (r *ReviewRepository) Summary(ctx context.Context, complexID uuid.UUID) (*domain.ReviewSummary, error) {
	var s domain.ReviewSummary

	err := r.db.QueryRowContext(ctx, `SELECT rating, total_reviews FROM court_complexes WHERE id = $1`, complexID).
		Scan(&s.Average, &s.Total)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT rating, COUNT(*) FROM reviews WHERE complex_id = $1 GROUP BY rating`, complexID)
	if err != nil {
		return nil, fmt.Errorf("failed to count ratings: %w", err)
	}

	defer rows.Close()

	for rows.Next() {
		var rating, n int
		if err := rows.Scan(&rating, &n); err != nil {
			return nil, err
		}

		if domain.ValidRating(rating) {
			s.Stars[rating-1] = n
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *ReviewRepository) list(ctx context.Context, query string, args ...any) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var items []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(reviewFields(&rv)...); err != nil {
			return nil, err
		}

		items = append(items, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func reviewFields(rv *domain.Review) []any {
	return []any{
		&rv.ID,
		&rv.ComplexID,
		&rv.ComplexName,
		&rv.CustomerID,
		&rv.CustomerName,
		&rv.Rating,
		&rv.Comment,
		&rv.CreatedAt,
	}
}

func expectOneRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
