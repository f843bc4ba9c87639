package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/badhusha-dev/AurumReserve/internal/domain"
)

// BookingRepository backs the reservation state machine. It also carries the
// item, user and ledger reads the booking flow needs inside one transaction.
type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *BookingRepository) GetItemForUpdate(ctx context.Context, itemID string) (domain.Item, error) {
	const query = `
SELECT id, sku, name, category, weight_grams, purity, making_charge, making_charge_kind, stock_count, is_visible, image_ref
FROM items
WHERE id = $1
FOR UPDATE`

	item, err := scanItem(db(ctx, r.pool).QueryRow(ctx, query, itemID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Item{}, domain.ErrItemNotFound
		}
		return domain.Item{}, fmt.Errorf("get item for update: %w", err)
	}
	return item, nil
}

func (r *BookingRepository) AdjustItemStock(ctx context.Context, itemID string, delta int) error {
	const stmt = `UPDATE items SET stock_count = stock_count + $2 WHERE id = $1`

	tag, err := db(ctx, r.pool).Exec(ctx, stmt, itemID, delta)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("adjust item stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *BookingRepository) CreateBooking(ctx context.Context, b domain.Booking) error {
	const stmt = `
INSERT INTO bookings (id, user_id, item_id, collateral_kind, collateral_value, locked_rate, status, created_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := db(ctx, r.pool).Exec(ctx, stmt,
		b.ID,
		b.UserID,
		b.ItemID,
		string(b.CollateralKind),
		b.CollateralValue,
		b.LockedRate,
		string(b.Status),
		b.CreatedAt,
		b.ExpiresAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrItemNotFound
		}
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetBookingForUpdate(ctx context.Context, id string) (domain.Booking, error) {
	const query = `
SELECT id, user_id, item_id, collateral_kind, collateral_value, locked_rate, status, created_at, expires_at
FROM bookings
WHERE id = $1
FOR UPDATE`

	b, err := scanBooking(db(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Booking{}, domain.ErrBookingNotFound
		}
		return domain.Booking{}, fmt.Errorf("get booking for update: %w", err)
	}
	return b, nil
}

func (r *BookingRepository) SetBookingStatus(ctx context.Context, id string, from, to domain.BookingStatus) (bool, error) {
	const stmt = `UPDATE bookings SET status = $3 WHERE id = $1 AND status = $2`

	tag, err := db(ctx, r.pool).Exec(ctx, stmt, id, string(from), string(to))
	if err != nil {
		return false, fmt.Errorf("set booking status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *BookingRepository) SetBookingExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	const stmt = `UPDATE bookings SET expires_at = $2 WHERE id = $1`

	tag, err := db(ctx, r.pool).Exec(ctx, stmt, id, expiresAt)
	if err != nil {
		return fmt.Errorf("set booking expiry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) ListExpiredActive(ctx context.Context, now time.Time) ([]domain.Booking, error) {
	const query = `
SELECT id, user_id, item_id, collateral_kind, collateral_value, locked_rate, status, created_at, expires_at
FROM bookings
WHERE status = 'active' AND expires_at < $1
ORDER BY expires_at
FOR UPDATE`

	rows, err := db(ctx, r.pool).Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("list expired active: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *BookingRepository) ListBookingsByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	const query = `
SELECT id, user_id, item_id, collateral_kind, collateral_value, locked_rate, status, created_at, expires_at
FROM bookings
WHERE user_id = $1
ORDER BY created_at DESC`

	rows, err := db(ctx, r.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings by user: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *BookingRepository) GetUser(ctx context.Context, id string) (domain.User, error) {
	return getUser(ctx, db(ctx, r.pool), id)
}

func (r *BookingRepository) ListTransactionsByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	return listTransactionsByUser(ctx, db(ctx, r.pool), userID)
}

func (r *BookingRepository) AppendTransaction(ctx context.Context, tx domain.Transaction) error {
	return appendTransaction(ctx, db(ctx, r.pool), tx)
}

func scanBooking(row pgx.Row) (domain.Booking, error) {
	var (
		b              domain.Booking
		collateralKind string
		status         string
	)
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.ItemID,
		&collateralKind,
		&b.CollateralValue,
		&b.LockedRate,
		&status,
		&b.CreatedAt,
		&b.ExpiresAt,
	)
	if err != nil {
		return domain.Booking{}, err
	}
	b.CollateralKind = domain.CollateralKind(collateralKind)
	b.Status = domain.BookingStatus(status)
	return b, nil
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	var out []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return out, nil
}
