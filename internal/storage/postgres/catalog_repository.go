package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/badhusha-dev/AurumReserve/internal/domain"
)

type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

func (r *CatalogRepository) CreateItem(ctx context.Context, item domain.Item) error {
	const stmt = `
INSERT INTO items (id, sku, name, category, weight_grams, purity, making_charge, making_charge_kind, stock_count, is_visible, image_ref)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := db(ctx, r.pool).Exec(ctx, stmt,
		item.ID,
		item.SKU,
		item.Name,
		string(item.Category),
		item.WeightGrams,
		item.Purity,
		item.MakingCharge,
		string(item.MakingChargeKind),
		item.StockCount,
		item.IsVisible,
		item.ImageRef,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSKUConflict
		}
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

func (r *CatalogRepository) ListItems(ctx context.Context) ([]domain.Item, error) {
	const query = `
SELECT id, sku, name, category, weight_grams, purity, making_charge, making_charge_kind, stock_count, is_visible, image_ref
FROM items
ORDER BY name`

	rows, err := db(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var out []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return out, nil
}

func (r *CatalogRepository) GetItem(ctx context.Context, id string) (domain.Item, error) {
	const query = `
SELECT id, sku, name, category, weight_grams, purity, making_charge, making_charge_kind, stock_count, is_visible, image_ref
FROM items
WHERE id = $1`

	item, err := scanItem(db(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Item{}, domain.ErrItemNotFound
		}
		return domain.Item{}, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func (r *CatalogRepository) SetItemVisibility(ctx context.Context, id string, visible bool) error {
	const stmt = `UPDATE items SET is_visible = $2 WHERE id = $1`

	tag, err := db(ctx, r.pool).Exec(ctx, stmt, id, visible)
	if err != nil {
		return fmt.Errorf("set item visibility: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *CatalogRepository) SetItemStock(ctx context.Context, id string, stock int) error {
	const stmt = `UPDATE items SET stock_count = $2 WHERE id = $1`

	tag, err := db(ctx, r.pool).Exec(ctx, stmt, id, stock)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrValidation
		}
		return fmt.Errorf("set item stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *CatalogRepository) DeleteItem(ctx context.Context, id string) error {
	const stmt = `DELETE FROM items WHERE id = $1`

	tag, err := db(ctx, r.pool).Exec(ctx, stmt, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}
