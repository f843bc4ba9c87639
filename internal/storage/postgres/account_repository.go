package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/badhusha-dev/AurumReserve/internal/domain"
)

// AccountRepository backs investing, gifting, redemption, jewelry checkout
// and portfolio reads.
type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *AccountRepository) GetUser(ctx context.Context, id string) (domain.User, error) {
	return getUser(ctx, db(ctx, r.pool), id)
}

func (r *AccountRepository) ListTransactionsByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	return listTransactionsByUser(ctx, db(ctx, r.pool), userID)
}

func (r *AccountRepository) AppendTransaction(ctx context.Context, tx domain.Transaction) error {
	return appendTransaction(ctx, db(ctx, r.pool), tx)
}

func (r *AccountRepository) GetItemForUpdate(ctx context.Context, itemID string) (domain.Item, error) {
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

func (r *AccountRepository) AdjustItemStock(ctx context.Context, itemID string, delta int) error {
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

// RateRepository persists the single shop-rate row.
type RateRepository struct {
	pool *pgxpool.Pool
}

func NewRateRepository(pool *pgxpool.Pool) *RateRepository {
	return &RateRepository{pool: pool}
}

func (r *RateRepository) SaveRate(ctx context.Context, rate domain.Rate) error {
	const stmt = `
INSERT INTO shop_rate (singleton, price_24k, price_22k, updated_at)
VALUES (TRUE, $1, $2, $3)
ON CONFLICT (singleton) DO UPDATE
SET price_24k = EXCLUDED.price_24k, price_22k = EXCLUDED.price_22k, updated_at = EXCLUDED.updated_at`

	_, err := r.pool.Exec(ctx, stmt, rate.Price24K, rate.Price22K, rate.Timestamp)
	if err != nil {
		return fmt.Errorf("save rate: %w", err)
	}
	return nil
}

// LoadRate returns the persisted shop rate, or found=false on a fresh
// database.
func (r *RateRepository) LoadRate(ctx context.Context) (domain.Rate, bool, error) {
	const query = `SELECT price_24k, price_22k, updated_at FROM shop_rate WHERE singleton`

	var (
		rate      domain.Rate
		updatedAt time.Time
	)
	err := r.pool.QueryRow(ctx, query).Scan(&rate.Price24K, &rate.Price22K, &updatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Rate{}, false, nil
		}
		return domain.Rate{}, false, fmt.Errorf("load rate: %w", err)
	}
	rate.Timestamp = updatedAt
	return rate, true, nil
}
