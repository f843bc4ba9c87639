package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/badhusha-dev/AurumReserve/internal/domain"
)

// Helpers shared by the booking and account repositories, which both read
// users and the ledger inside their transactions.

func getUser(ctx context.Context, q querier, id string) (domain.User, error) {
	const query = `SELECT id, name, role, opening_grams FROM users WHERE id = $1`

	var (
		u    domain.User
		role string
	)
	err := q.QueryRow(ctx, query, id).Scan(&u.ID, &u.Name, &role, &u.OpeningGrams)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	u.Role = domain.Role(role)
	return u, nil
}

func listTransactionsByUser(ctx context.Context, q querier, userID string) ([]domain.Transaction, error) {
	const query = `
SELECT id, user_id, executed_at, amount, grams, kind, status, rate_at_execution, currency, exchange_rate, details
FROM transactions
WHERE user_id = $1
ORDER BY executed_at DESC, id DESC`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		var (
			tx       domain.Transaction
			kind     string
			status   string
			currency string
		)
		err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.ExecutedAt,
			&tx.Amount,
			&tx.Grams,
			&kind,
			&status,
			&tx.RateAtExecution,
			&currency,
			&tx.ExchangeRate,
			&tx.Details,
		)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Kind = domain.TransactionKind(kind)
		tx.Status = domain.TransactionStatus(status)
		tx.Currency = domain.Currency(currency)
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

func appendTransaction(ctx context.Context, q querier, tx domain.Transaction) error {
	const stmt = `
INSERT INTO transactions (id, user_id, executed_at, amount, grams, kind, status, rate_at_execution, currency, exchange_rate, details)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := q.Exec(ctx, stmt,
		tx.ID,
		tx.UserID,
		tx.ExecutedAt,
		tx.Amount,
		tx.Grams,
		string(tx.Kind),
		string(tx.Status),
		tx.RateAtExecution,
		string(tx.Currency),
		tx.ExchangeRate,
		tx.Details,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("append transaction: %w", err)
	}
	return nil
}

func scanItem(row pgx.Row) (domain.Item, error) {
	var (
		item             domain.Item
		category         string
		makingChargeKind string
	)
	err := row.Scan(
		&item.ID,
		&item.SKU,
		&item.Name,
		&category,
		&item.WeightGrams,
		&item.Purity,
		&item.MakingCharge,
		&makingChargeKind,
		&item.StockCount,
		&item.IsVisible,
		&item.ImageRef,
	)
	if err != nil {
		return domain.Item{}, err
	}
	item.Category = domain.Category(category)
	item.MakingChargeKind = domain.MakingChargeKind(makingChargeKind)
	return item, nil
}
