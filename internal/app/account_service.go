package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/badhusha-dev/AurumReserve/internal/clock"
	"github.com/badhusha-dev/AurumReserve/internal/domain"
	"github.com/badhusha-dev/AurumReserve/internal/ledger"
	"github.com/badhusha-dev/AurumReserve/internal/pricing"
)

type AccountRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetUser(ctx context.Context, id string) (domain.User, error)
	ListTransactionsByUser(ctx context.Context, userID string) ([]domain.Transaction, error)
	AppendTransaction(ctx context.Context, tx domain.Transaction) error
	GetItemForUpdate(ctx context.Context, itemID string) (domain.Item, error)
	AdjustItemStock(ctx context.Context, itemID string, delta int) error
}

// processingFeeRate is the platform fee on digital-gold purchases, charged on
// top of GST.
var processingFeeRate = decimal.RequireFromString("0.01")

type AccountService struct {
	repo  AccountRepository
	rates RateSource
	clock clock.Clock
}

func NewAccountService(repo AccountRepository, rates RateSource, clk clock.Clock) *AccountService {
	return &AccountService{repo: repo, rates: rates, clock: clk}
}

type InvestInput struct {
	UserID   string
	Amount   decimal.Decimal
	Currency domain.Currency
}

// Invest converts a cash amount into digital gold at the current rate. GST
// and the processing fee come out of the gross amount; the remainder buys
// grams.
func (s *AccountService) Invest(ctx context.Context, in InvestInput) (domain.Transaction, error) {
	if in.UserID == "" || !in.Amount.IsPositive() {
		return domain.Transaction{}, domain.ErrValidation
	}
	currency := in.Currency
	if currency == "" {
		currency = domain.CurrencyINR
	}
	exchangeRate, err := domain.ExchangeRate(currency)
	if err != nil {
		return domain.Transaction{}, err
	}

	now := s.clock.Now()
	rate := s.rates.Current()

	feeFactor := decimal.NewFromInt(1).Add(pricing.GSTRate).Add(processingFeeRate)
	net := in.Amount.Div(feeFactor)
	grams := net.Div(rate.Price24K).Round(4)

	entry := domain.Transaction{
		ID:              newID("tx"),
		UserID:          in.UserID,
		ExecutedAt:      now,
		Amount:          in.Amount,
		Grams:           grams,
		Kind:            domain.KindBuy,
		Status:          domain.TxStatusCompleted,
		RateAtExecution: rate.Price24K,
		Currency:        currency,
		ExchangeRate:    exchangeRate,
	}

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetUser(txCtx, in.UserID); err != nil {
			return err
		}
		return s.repo.AppendTransaction(txCtx, entry)
	})
	if err != nil {
		return domain.Transaction{}, err
	}
	return entry, nil
}

type GiftInput struct {
	SenderID    string
	RecipientID string
	Grams       decimal.Decimal
	Currency    domain.Currency
	Theme       string
	Message     string
}

// Gift moves grams from one account to another as a GIFT_SENT/GIFT_RECEIVED
// pair committed together.
func (s *AccountService) Gift(ctx context.Context, in GiftInput) error {
	if in.SenderID == "" || in.RecipientID == "" || !in.Grams.IsPositive() {
		return domain.ErrValidation
	}
	if in.SenderID == in.RecipientID {
		return domain.ErrValidation
	}
	currency := in.Currency
	if currency == "" {
		currency = domain.CurrencyINR
	}
	exchangeRate, err := domain.ExchangeRate(currency)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	rate := s.rates.Current()
	value := in.Grams.Mul(rate.Price24K).Round(2)

	details := "Gift"
	if in.Theme != "" {
		details = "Gift (" + in.Theme + ")"
	}
	if in.Message != "" {
		details += ": " + in.Message
	}

	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		sender, err := s.repo.GetUser(txCtx, in.SenderID)
		if err != nil {
			return err
		}
		if _, err := s.repo.GetUser(txCtx, in.RecipientID); err != nil {
			return err
		}

		txs, err := s.repo.ListTransactionsByUser(txCtx, in.SenderID)
		if err != nil {
			return err
		}
		if ledger.Balance(txs, sender.OpeningGrams).LessThan(in.Grams) {
			return domain.ErrInsufficientBalance
		}

		sent := domain.Transaction{
			ID:              newID("tx"),
			UserID:          in.SenderID,
			ExecutedAt:      now,
			Amount:          value,
			Grams:           in.Grams,
			Kind:            domain.KindGiftSent,
			Status:          domain.TxStatusCompleted,
			RateAtExecution: rate.Price24K,
			Currency:        currency,
			ExchangeRate:    exchangeRate,
			Details:         details,
		}
		if err := s.repo.AppendTransaction(txCtx, sent); err != nil {
			return err
		}

		received := sent
		received.ID = newID("tx")
		received.UserID = in.RecipientID
		received.Kind = domain.KindGiftReceived
		return s.repo.AppendTransaction(txCtx, received)
	})
}

// Redeem converts grams back out of the account.
func (s *AccountService) Redeem(ctx context.Context, userID string, grams decimal.Decimal) (domain.Transaction, error) {
	if userID == "" || !grams.IsPositive() {
		return domain.Transaction{}, domain.ErrValidation
	}

	now := s.clock.Now()
	rate := s.rates.Current()

	var entry domain.Transaction
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		user, err := s.repo.GetUser(txCtx, userID)
		if err != nil {
			return err
		}
		txs, err := s.repo.ListTransactionsByUser(txCtx, userID)
		if err != nil {
			return err
		}
		if ledger.Balance(txs, user.OpeningGrams).LessThan(grams) {
			return domain.ErrInsufficientBalance
		}

		entry = domain.Transaction{
			ID:              newID("tx"),
			UserID:          userID,
			ExecutedAt:      now,
			Amount:          grams.Mul(rate.Price24K).Round(2),
			Grams:           grams,
			Kind:            domain.KindRedeem,
			Status:          domain.TxStatusCompleted,
			RateAtExecution: rate.Price24K,
			Currency:        domain.CurrencyINR,
			ExchangeRate:    decimal.NewFromInt(1),
		}
		return s.repo.AppendTransaction(txCtx, entry)
	})
	if err != nil {
		return domain.Transaction{}, err
	}
	return entry, nil
}

// PurchaseResult describes a completed jewelry checkout.
type PurchaseResult struct {
	Transaction domain.Transaction
	GoldUsed    decimal.Decimal
	CashDue     decimal.Decimal
	Total       decimal.Decimal
}

// PurchaseJewelry buys one unit of an item outright. The saved gold balance
// is applied first; whatever it does not cover is due in cash. Stock
// decrement and the ledger entry commit together.
func (s *AccountService) PurchaseJewelry(ctx context.Context, userID, itemID string, currency domain.Currency) (PurchaseResult, error) {
	if userID == "" || itemID == "" {
		return PurchaseResult{}, domain.ErrValidation
	}
	if currency == "" {
		currency = domain.CurrencyINR
	}
	exchangeRate, err := domain.ExchangeRate(currency)
	if err != nil {
		return PurchaseResult{}, err
	}

	now := s.clock.Now()
	rate := s.rates.Current()

	var result PurchaseResult
	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		user, err := s.repo.GetUser(txCtx, userID)
		if err != nil {
			return err
		}

		item, err := s.repo.GetItemForUpdate(txCtx, itemID)
		if err != nil {
			return err
		}
		if item.StockCount <= 0 {
			return domain.ErrInsufficientStock
		}

		quote, err := pricing.QuoteItem(item, rate.Price24K)
		if err != nil {
			return err
		}

		txs, err := s.repo.ListTransactionsByUser(txCtx, userID)
		if err != nil {
			return err
		}
		balance := ledger.Balance(txs, user.OpeningGrams)

		goldUsed := quote.Total.Div(rate.Price24K)
		if goldUsed.GreaterThan(balance) {
			goldUsed = balance
		}
		goldUsed = goldUsed.Round(4)

		cashDue := quote.Total.Sub(balance.Mul(rate.Price24K))
		if cashDue.IsNegative() {
			cashDue = decimal.Zero
		}
		cashDue = cashDue.Round(2)

		if err := s.repo.AdjustItemStock(txCtx, itemID, -1); err != nil {
			return err
		}

		entry := domain.Transaction{
			ID:              newID("ord"),
			UserID:          userID,
			ExecutedAt:      now,
			Amount:          cashDue,
			Grams:           goldUsed,
			Kind:            domain.KindJewelryPurchase,
			Status:          domain.TxStatusCompleted,
			RateAtExecution: rate.Price24K,
			Currency:        currency,
			ExchangeRate:    exchangeRate,
			Details:         "Purchased " + item.Name,
		}
		if err := s.repo.AppendTransaction(txCtx, entry); err != nil {
			return err
		}

		result = PurchaseResult{
			Transaction: entry,
			GoldUsed:    goldUsed,
			CashDue:     cashDue,
			Total:       quote.Total.Round(2),
		}
		return nil
	})
	if err != nil {
		return PurchaseResult{}, err
	}
	return result, nil
}

// Portfolio folds a user's ledger into derived stats at the current rate.
func (s *AccountService) Portfolio(ctx context.Context, userID string) (domain.UserStats, error) {
	if userID == "" {
		return domain.UserStats{}, domain.ErrValidation
	}

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return domain.UserStats{}, err
	}
	txs, err := s.repo.ListTransactionsByUser(ctx, userID)
	if err != nil {
		return domain.UserStats{}, err
	}

	rate := s.rates.Current()
	return ledger.Aggregate(txs, user.OpeningGrams, rate.Price24K), nil
}

// History returns a user's ledger entries, newest first.
func (s *AccountService) History(ctx context.Context, userID string) ([]domain.Transaction, error) {
	if userID == "" {
		return nil, domain.ErrValidation
	}
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListTransactionsByUser(ctx, userID)
}
