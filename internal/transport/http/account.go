package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/badhusha-dev/AurumReserve/internal/app"
	"github.com/badhusha-dev/AurumReserve/internal/domain"
)

// Investor is the minimal interface needed to buy digital gold.
type Investor interface {
	Invest(ctx context.Context, in app.InvestInput) (domain.Transaction, error)
}

// Gifter is the minimal interface needed to gift gold between accounts.
type Gifter interface {
	Gift(ctx context.Context, in app.GiftInput) error
}

// Redeemer is the minimal interface needed to redeem grams for cash.
type Redeemer interface {
	Redeem(ctx context.Context, userID string, grams decimal.Decimal) (domain.Transaction, error)
}

// Purchaser is the minimal interface needed for jewelry checkout.
type Purchaser interface {
	PurchaseJewelry(ctx context.Context, userID, itemID string, currency domain.Currency) (app.PurchaseResult, error)
}

// PortfolioReader is the minimal interface needed for derived account stats.
type PortfolioReader interface {
	Portfolio(ctx context.Context, userID string) (domain.UserStats, error)
}

// TransactionLister is the minimal interface needed for the ledger history.
type TransactionLister interface {
	History(ctx context.Context, userID string) ([]domain.Transaction, error)
}

// Advisor produces a short narrative summary of a portfolio. Implementations
// must not fail; a canned fallback is expected instead.
type Advisor interface {
	Advise(ctx context.Context, stats domain.UserStats, rate domain.Rate, currency domain.Currency) string
}

type transactionResponse struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	ExecutedAt      time.Time       `json:"executed_at"`
	Amount          decimal.Decimal `json:"amount"`
	Grams           decimal.Decimal `json:"grams"`
	Kind            string          `json:"kind"`
	Status          string          `json:"status"`
	RateAtExecution decimal.Decimal `json:"rate_at_execution"`
	Currency        string          `json:"currency"`
	ExchangeRate    decimal.Decimal `json:"exchange_rate"`
	Details         string          `json:"details,omitempty"`
}

func toTransactionResponse(tx domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:              tx.ID,
		UserID:          tx.UserID,
		ExecutedAt:      tx.ExecutedAt,
		Amount:          tx.Amount,
		Grams:           tx.Grams,
		Kind:            string(tx.Kind),
		Status:          string(tx.Status),
		RateAtExecution: tx.RateAtExecution,
		Currency:        string(tx.Currency),
		ExchangeRate:    tx.ExchangeRate,
		Details:         tx.Details,
	}
}

type investRequest struct {
	UserID   string          `json:"user_id"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// HandleInvest returns an HTTP handler for buying digital gold.
func HandleInvest(svc Investor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req investRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.UserID == "" {
			writeError(w, http.StatusBadRequest, codeValidation, "user_id is required")
			return
		}

		tx, err := svc.Invest(r.Context(), app.InvestInput{
			UserID:   req.UserID,
			Amount:   req.Amount,
			Currency: domain.Currency(req.Currency),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(toTransactionResponse(tx))
	}
}

type giftRequest struct {
	SenderID    string          `json:"sender_id"`
	RecipientID string          `json:"recipient_id"`
	Grams       decimal.Decimal `json:"grams"`
	Currency    string          `json:"currency"`
	Theme       string          `json:"theme"`
	Message     string          `json:"message"`
}

// HandleGifts returns an HTTP handler for gifting gold between accounts.
func HandleGifts(svc Gifter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req giftRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.SenderID == "" || req.RecipientID == "" {
			writeError(w, http.StatusBadRequest, codeValidation, "sender_id and recipient_id are required")
			return
		}

		err := svc.Gift(r.Context(), app.GiftInput{
			SenderID:    req.SenderID,
			RecipientID: req.RecipientID,
			Grams:       req.Grams,
			Currency:    domain.Currency(req.Currency),
			Theme:       req.Theme,
			Message:     req.Message,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

type redeemRequest struct {
	UserID string          `json:"user_id"`
	Grams  decimal.Decimal `json:"grams"`
}

// HandleRedeem returns an HTTP handler for redeeming grams to cash.
func HandleRedeem(svc Redeemer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req redeemRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.UserID == "" {
			writeError(w, http.StatusBadRequest, codeValidation, "user_id is required")
			return
		}

		tx, err := svc.Redeem(r.Context(), req.UserID, req.Grams)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(toTransactionResponse(tx))
	}
}

type purchaseRequest struct {
	UserID   string `json:"user_id"`
	ItemID   string `json:"item_id"`
	Currency string `json:"currency"`
}

type purchaseResponse struct {
	Transaction transactionResponse `json:"transaction"`
	GoldUsed    decimal.Decimal     `json:"gold_used"`
	CashDue     decimal.Decimal     `json:"cash_due"`
	Total       decimal.Decimal     `json:"total"`
}

// HandlePurchases returns an HTTP handler for jewelry checkout.
func HandlePurchases(svc Purchaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req purchaseRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.UserID == "" || req.ItemID == "" {
			writeError(w, http.StatusBadRequest, codeValidation, "user_id and item_id are required")
			return
		}

		res, err := svc.PurchaseJewelry(r.Context(), req.UserID, req.ItemID, domain.Currency(req.Currency))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		resp := purchaseResponse{
			Transaction: toTransactionResponse(res.Transaction),
			GoldUsed:    res.GoldUsed,
			CashDue:     res.CashDue,
			Total:       res.Total,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type portfolioResponse struct {
	TotalGrams     decimal.Decimal `json:"total_grams"`
	TotalInvested  decimal.Decimal `json:"total_invested"`
	CurrentValue   decimal.Decimal `json:"current_value"`
	UnrealizedGain decimal.Decimal `json:"unrealized_gain"`
	GainPercentage decimal.Decimal `json:"gain_percentage"`
	BuyCount       int             `json:"buy_count"`
	LoyaltyTier    string          `json:"loyalty_tier"`
}

// HandlePortfolio returns an HTTP handler for derived account stats.
func HandlePortfolio(svc PortfolioReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			writeError(w, http.StatusBadRequest, codeValidation, "user_id is required")
			return
		}

		stats, err := svc.Portfolio(r.Context(), userID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		resp := portfolioResponse{
			TotalGrams:     stats.TotalGrams,
			TotalInvested:  stats.TotalInvested,
			CurrentValue:   stats.CurrentValue,
			UnrealizedGain: stats.UnrealizedGain,
			GainPercentage: stats.GainPercentage,
			BuyCount:       stats.BuyCount,
			LoyaltyTier:    string(stats.LoyaltyTier),
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// HandleTransactions returns an HTTP handler for a user's ledger history,
// newest first.
func HandleTransactions(svc TransactionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			writeError(w, http.StatusBadRequest, codeValidation, "user_id is required")
			return
		}

		txs, err := svc.History(r.Context(), userID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		resp := make([]transactionResponse, 0, len(txs))
		for _, tx := range txs {
			resp = append(resp, toTransactionResponse(tx))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type insightsResponse struct {
	Text string `json:"text"`
}

// HandlePortfolioInsights returns an HTTP handler for advisor text. The
// advisor never errors the request; its own fallback copy is served instead.
func HandlePortfolioInsights(portfolio PortfolioReader, rates RateReader, advisor Advisor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			writeError(w, http.StatusBadRequest, codeValidation, "user_id is required")
			return
		}

		currency := domain.CurrencyINR
		if raw := r.URL.Query().Get("currency"); raw != "" {
			currency = domain.Currency(raw)
			if _, err := domain.ExchangeRate(currency); err != nil {
				writeServiceError(w, err)
				return
			}
		}

		stats, err := portfolio.Portfolio(r.Context(), userID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		text := advisor.Advise(r.Context(), stats, rates.Current(), currency)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(insightsResponse{Text: text})
	}
}
