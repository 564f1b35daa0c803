package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/srgjo27/sportsync/internal/core/domain"
)

const exclusionViolation = "23P01"

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const overlapPredicate = `
	court_id = $1
	AND status = ANY($2)
	AND start_time < $4
	AND end_time > $3
`

// CreateBooking takes a per-court advisory lock for the length of the
// transaction, re-runs the overlap check and inserts. The exclusion
// constraint on bookings backs this up if a writer skips the lock.
func (r *BookingRepository) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, booking.CourtID.String()); err != nil {
		return fmt.Errorf("failed to lock court %s: %w", booking.CourtID, err)
	}

	var taken bool
	err = tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE `+overlapPredicate+`)`,
		booking.CourtID, pq.Array(holdingStatuses()), booking.StartTime, booking.EndTime,
	).Scan(&taken)
	if err != nil {
		return fmt.Errorf("failed to re-check overlap: %w", err)
	}

	if taken {
		return domain.ErrSlotConflict
	}

	query := `
	INSERT INTO bookings (id, court_id, customer_id, walk_in_name, walk_in_phone, start_time, end_time,
		total_price, status, booking_type, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = tx.ExecContext(ctx, query,
		booking.ID,
		booking.CourtID,
		nullUUID(booking.CustomerID),
		booking.WalkInName,
		booking.WalkInPhone,
		booking.StartTime,
		booking.EndTime,
		booking.TotalPrice,
		booking.Status,
		booking.Type,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == exclusionViolation {
			return domain.ErrSlotConflict
		}
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *BookingRepository) HasOverlap(ctx context.Context, courtID uuid.UUID, start, end time.Time) (bool, error) {
	var taken bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE `+overlapPredicate+`)`,
		courtID, pq.Array(holdingStatuses()), start, end,
	).Scan(&taken)
	if err != nil {
		return false, err
	}

	return taken, nil
}

const detailsFrom = `
	FROM bookings b
	JOIN courts c ON c.id = b.court_id
	JOIN court_complexes cx ON cx.id = c.complex_id
	LEFT JOIN users u ON u.id = b.customer_id
`

const detailsSelect = `
	SELECT b.id, b.court_id, b.customer_id, b.walk_in_name, b.walk_in_phone, b.start_time, b.end_time,
		b.total_price, b.status, b.booking_type, b.created_at, b.updated_at,
		c.name, cx.id, cx.name, cx.owner_id,
		COALESCE(u.full_name, ''), COALESCE(u.email, '')
` + detailsFrom

func (r *BookingRepository) ListHolding(ctx context.Context, courtIDs []uuid.UUID, from, to time.Time) ([]domain.BookingDetails, error) {
	if len(courtIDs) == 0 {
		return nil, nil
	}

	query := detailsSelect + `
	WHERE b.court_id = ANY($1::uuid[]) AND b.status = ANY($2) AND b.start_time < $4 AND b.end_time > $3
	ORDER BY b.court_id, b.start_time
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(uuidStrings(courtIDs)), pq.Array(holdingStatuses()), from, to)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	return scanDetailsRows(rows)
}

func (r *BookingRepository) GetDetails(ctx context.Context, bookingID uuid.UUID) (*domain.BookingDetails, error) {
	row := r.db.QueryRowContext(ctx, detailsSelect+` WHERE b.id = $1`, bookingID)

	d, err := scanDetails(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return d, nil
}

// UpdateStatus is a compare-and-set on the status column. Zero rows
// affected means another request moved the booking first.
func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, from []domain.BookingStatus, to domain.BookingStatus) error {
	query := `
	UPDATE bookings
	SET status = $1, updated_at = NOW()
	WHERE id = $2 AND status = ANY($3)
	`

	result, err := r.db.ExecContext(ctx, query, to, bookingID, pq.Array(statusStrings(from)))
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrInvalidStateTransition
	}

	return nil
}

var sortColumns = map[string]string{
	"createdAt":  "b.created_at",
	"startTime":  "b.start_time",
	"totalPrice": "b.total_price",
	"status":     "b.status",
}

func (r *BookingRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, q domain.BookingQuery) ([]domain.BookingDetails, int, error) {
	where := `WHERE b.customer_id = $1`
	args := []any{customerID}

	if q.Status != "" {
		where += ` AND b.status = $2`
		args = append(args, q.Status)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings b `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	query := fmt.Sprintf(`%s %s %s LIMIT $%d OFFSET $%d`,
		detailsSelect, where, orderBy(q, sortColumns), len(args)+1, len(args)+2)
	args = append(args, q.Limit, q.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	items, err := scanDetailsRows(rows)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *BookingRepository) ListPendingByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.BookingDetails, error) {
	query := detailsSelect + `
	WHERE cx.owner_id = $1 AND b.status = $2
	ORDER BY b.start_time
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID, domain.BookingPending)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	return scanDetailsRows(rows)
}

var ownerSortColumns = map[string]string{
	"createdAt":    "b.created_at",
	"startTime":    "b.start_time",
	"totalPrice":   "b.total_price",
	"status":       "b.status",
	"customerName": "COALESCE(u.full_name, NULLIF(b.walk_in_name, ''))",
	"courtName":    "c.name",
	"complexName":  "cx.name",
}

// ListByOwner pages bookings across the owner's complexes. Search matches the
// customer's name or email and the walk-in name or phone.
func (r *BookingRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, q domain.OwnerBookingQuery) ([]domain.BookingDetails, int, error) {
	conds := []string{"cx.owner_id = $1"}
	args := []any{ownerID}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Status != "" {
		conds = append(conds, "b.status = "+arg(q.Status))
	}

	if q.ComplexID != nil {
		conds = append(conds, "cx.id = "+arg(*q.ComplexID))
	}

	if q.Date != nil {
		conds = append(conds, fmt.Sprintf("b.start_time >= %s AND b.start_time < %s",
			arg(*q.Date), arg(q.Date.AddDate(0, 0, 1))))
	}

	if q.Search != "" {
		p := arg(likePattern(q.Search))
		conds = append(conds, fmt.Sprintf(
			"(b.walk_in_name ILIKE %[1]s OR b.walk_in_phone ILIKE %[1]s OR u.full_name ILIKE %[1]s OR u.email ILIKE %[1]s)", p))
	}

	where := "WHERE " + strings.Join(conds, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) `+detailsFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	query := fmt.Sprintf(`%s %s %s LIMIT %s OFFSET %s`,
		detailsSelect, where, orderBy(q.BookingQuery, ownerSortColumns), arg(q.Limit), arg(q.Offset()))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	items, err := scanDetailsRows(rows)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// orderBy only ever emits column expressions from columns, falling back to
// creation time for unknown keys.
func orderBy(q domain.BookingQuery, columns map[string]string) string {
	column, ok := columns[q.SortBy]
	if !ok {
		column = columns["createdAt"]
	}

	direction := "DESC"
	if strings.EqualFold(q.SortOrder, "asc") {
		direction = "ASC"
	}

	return fmt.Sprintf("ORDER BY %s %s, b.id", column, direction)
}

// likePattern wraps s for a substring ILIKE, escaping its wildcards.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDetails(row rowScanner) (*domain.BookingDetails, error) {
	var d domain.BookingDetails
	var customerID uuid.NullUUID

	err := row.Scan(
		&d.Booking.ID,
		&d.Booking.CourtID,
		&customerID,
		&d.Booking.WalkInName,
		&d.Booking.WalkInPhone,
		&d.Booking.StartTime,
		&d.Booking.EndTime,
		&d.Booking.TotalPrice,
		&d.Booking.Status,
		&d.Booking.Type,
		&d.Booking.CreatedAt,
		&d.Booking.UpdatedAt,
		&d.CourtName,
		&d.ComplexID,
		&d.ComplexName,
		&d.OwnerID,
		&d.CustomerName,
		&d.CustomerEmail,
	)
	if err != nil {
		return nil, err
	}

	if customerID.Valid {
		id := customerID.UUID
		d.Booking.CustomerID = &id
	}

	return &d, nil
}

func scanDetailsRows(rows *sql.Rows) ([]domain.BookingDetails, error) {
	var items []domain.BookingDetails
	for rows.Next() {
		d, err := scanDetails(rows)
		if err != nil {
			return nil, err
		}

		items = append(items, *d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func holdingStatuses() []string {
	return statusStrings(domain.HoldingStatuses)
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
