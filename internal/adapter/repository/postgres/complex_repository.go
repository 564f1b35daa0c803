package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/srgjo27/sportsync/internal/core/domain"
)

type ComplexRepository struct {
	db *sql.DB
}

func NewComplexRepository(db *sql.DB) *ComplexRepository {
	return &ComplexRepository{db: db}
}

func (r *ComplexRepository) Create(ctx context.Context, cx *domain.Complex) error {
	query := `
	INSERT INTO court_complexes (id, owner_id, name, address, city, phone_number, sport_type,
		open_minute, close_minute, bank_code, account_number, account_name, rating, total_reviews, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.ExecContext(ctx, query,
		cx.ID,
		cx.OwnerID,
		cx.Name,
		cx.Address,
		cx.City,
		cx.PhoneNumber,
		cx.SportType,
		int(cx.OpenTime),
		int(cx.CloseTime),
		cx.BankCode,
		cx.AccountNumber,
		cx.AccountName,
		cx.Rating,
		cx.TotalReviews,
		cx.Status,
		cx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert complex: %w", err)
	}

	return nil
}

const complexColumns = `
	cx.id, cx.owner_id, cx.name, cx.address, cx.city, cx.phone_number, cx.sport_type,
	cx.open_minute, cx.close_minute, cx.bank_code, cx.account_number, cx.account_name,
	cx.rating, cx.total_reviews, cx.status, cx.created_at
`

func (r *ComplexRepository) GetByID(ctx context.Context, complexID uuid.UUID) (*domain.Complex, error) {
	query := `SELECT ` + complexColumns + ` FROM court_complexes cx WHERE cx.id = $1`

	var cx domain.Complex
	err := r.db.QueryRowContext(ctx, query, complexID).Scan(complexFields(&cx)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &cx, nil
}

func (r *ComplexRepository) Update(ctx context.Context, cx *domain.Complex) error {
	query := `
	UPDATE court_complexes
	SET name = $1, address = $2, city = $3, phone_number = $4, sport_type = $5,
		open_minute = $6, close_minute = $7, bank_code = $8, account_number = $9, account_name = $10,
		status = $11
	WHERE id = $12
	`

	result, err := r.db.ExecContext(ctx, query,
		cx.Name,
		cx.Address,
		cx.City,
		cx.PhoneNumber,
		cx.SportType,
		int(cx.OpenTime),
		int(cx.CloseTime),
		cx.BankCode,
		cx.AccountNumber,
		cx.AccountName,
		cx.Status,
		cx.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update complex: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// summaryColumns adds the active court count and the price range of their
// rates to complexColumns.
const summaryColumns = complexColumns + `,
	(SELECT COUNT(*) FROM courts c WHERE c.complex_id = cx.id AND c.status = 'Active'),
	COALESCE(pr.min_price, 0), COALESCE(pr.max_price, 0)
`

const summaryFrom = `
	FROM court_complexes cx
	LEFT JOIN LATERAL (
		SELECT MIN(r.price_per_hour) AS min_price, MAX(r.price_per_hour) AS max_price
		FROM hourly_price_rates r
		JOIN courts c ON c.id = r.court_id
		WHERE c.complex_id = cx.id AND c.status = 'Active'
	) pr ON TRUE
`

// ListPublic returns active complexes, best rated first.
func (r *ComplexRepository) ListPublic(ctx context.Context, q domain.ComplexQuery) ([]domain.ComplexSummary, int, error) {
	conds := []string{"cx.status = $1"}
	args := []any{domain.StatusActive}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.City != "" {
		conds = append(conds, "cx.city ILIKE "+arg(q.City))
	}

	if q.SportType != "" {
		conds = append(conds, "cx.sport_type ILIKE "+arg(likePattern(q.SportType)))
	}

	if q.Search != "" {
		p := arg(likePattern(q.Search))
		conds = append(conds, fmt.Sprintf("(cx.name ILIKE %[1]s OR cx.address ILIKE %[1]s)", p))
	}

	where := " WHERE " + strings.Join(conds, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM court_complexes cx`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count complexes: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY cx.rating DESC, cx.name, cx.id LIMIT %s OFFSET %s`,
		summaryColumns, summaryFrom, where, arg(q.Limit), arg(q.Offset()))

	items, err := r.listSummaries(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *ComplexRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.ComplexSummary, error) {
	query := `SELECT ` + summaryColumns + summaryFrom + ` WHERE cx.owner_id = $1 ORDER BY cx.created_at, cx.id`
	return r.listSummaries(ctx, query, ownerID)
}

func (r *ComplexRepository) listSummaries(ctx context.Context, query string, args ...any) ([]domain.ComplexSummary, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var items []domain.ComplexSummary
	for rows.Next() {
		var s domain.ComplexSummary
		dest := append(complexFields(&s.Complex), &s.CourtCount, &s.MinPrice, &s.MaxPrice)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		items = append(items, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// complexFields returns scan targets in complexColumns order.
func complexFields(cx *domain.Complex) []any {
	return []any{
		&cx.ID,
		&cx.OwnerID,
		&cx.Name,
		&cx.Address,
		&cx.City,
		&cx.PhoneNumber,
		&cx.SportType,
		(*minutes)(&cx.OpenTime),
		(*minutes)(&cx.CloseTime),
		&cx.BankCode,
		&cx.AccountNumber,
		&cx.AccountName,
		&cx.Rating,
		&cx.TotalReviews,
		&cx.Status,
		&cx.CreatedAt,
	}
}

// minutes scans a SMALLINT minute column into a domain.TimeOfDay.
type minutes domain.TimeOfDay

func (m *minutes) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		*m = minutes(v)
		return nil
	case nil:
		return errors.New("minute column is null")
	default:
		return fmt.Errorf("unsupported minute column type %T", src)
	}
}
