package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/badhusha-dev/AurumReserve/internal/domain"
	"github.com/badhusha-dev/AurumReserve/internal/ratehistory"
)

// RateReader is the minimal interface needed to report the shop rate.
type RateReader interface {
	Current() domain.Rate
	Overridden() bool
}

// RateAdmin is the minimal interface needed for the admin rate endpoints.
type RateAdmin interface {
	SetRate(ctx context.Context, price24K decimal.Decimal) (domain.Rate, error)
	RevertToAuto()
	Current() domain.Rate
}

// HistoryReader is the minimal interface needed to serve the rate series.
type HistoryReader interface {
	Series(ctx context.Context, limit int) ([]ratehistory.Point, error)
}

type rateResponse struct {
	Price24K   decimal.Decimal `json:"price_24k"`
	Price22K   decimal.Decimal `json:"price_22k"`
	Timestamp  time.Time       `json:"timestamp"`
	Overridden bool            `json:"overridden"`
}

// HandleRates returns an HTTP handler for the current rate snapshot.
func HandleRates(svc RateReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		rate := svc.Current()
		resp := rateResponse{
			Price24K:   rate.Price24K,
			Price22K:   rate.Price22K,
			Timestamp:  rate.Timestamp,
			Overridden: svc.Overridden(),
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// HandleRateHistory returns an HTTP handler for the recorded rate series.
// A nil reader serves an empty series so the route works without Redis.
func HandleRateHistory(history HistoryReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		points := []ratehistory.Point{}
		if history != nil {
			limit := 0
			if raw := r.URL.Query().Get("limit"); raw != "" {
				parsed, err := strconv.Atoi(raw)
				if err != nil || parsed < 0 {
					writeError(w, http.StatusBadRequest, codeValidation, "invalid limit")
					return
				}
				limit = parsed
			}

			var err error
			points, err = history.Series(r.Context(), limit)
			if err != nil {
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(points)
	}
}

type setRateRequest struct {
	Price24K decimal.Decimal `json:"price_24k"`
}

// HandleAdminRate returns an HTTP handler for pinning the shop rate.
func HandleAdminRate(svc RateAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req setRateRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		rate, err := svc.SetRate(r.Context(), req.Price24K)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		resp := rateResponse{
			Price24K:   rate.Price24K,
			Price22K:   rate.Price22K,
			Timestamp:  rate.Timestamp,
			Overridden: true,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// HandleAdminRateRevert returns an HTTP handler for releasing a pinned rate.
func HandleAdminRateRevert(svc RateAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		svc.RevertToAuto()

		rate := svc.Current()
		resp := rateResponse{
			Price24K:   rate.Price24K,
			Price22K:   rate.Price22K,
			Timestamp:  rate.Timestamp,
			Overridden: false,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
