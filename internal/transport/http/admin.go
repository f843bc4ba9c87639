package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/badhusha-dev/AurumReserve/internal/app"
	"github.com/badhusha-dev/AurumReserve/internal/domain"
)

// CatalogAdmin is the minimal interface needed for admin catalog endpoints.
type CatalogAdmin interface {
	CreateItem(ctx context.Context, in app.CreateItemInput) (domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	ToggleVisibility(ctx context.Context, itemID string) (domain.Item, error)
	UpdateStock(ctx context.Context, itemID string, stock int) (domain.Item, error)
	DeleteItem(ctx context.Context, itemID string) error
	Valuation(ctx context.Context) (decimal.Decimal, error)
}

type createItemRequest struct {
	Name             string          `json:"name"`
	SKU              string          `json:"sku"`
	Category         string          `json:"category"`
	WeightGrams      decimal.Decimal `json:"weight_grams"`
	Purity           int             `json:"purity"`
	MakingCharge     decimal.Decimal `json:"making_charge"`
	MakingChargeKind string          `json:"making_charge_kind"`
	StockCount       int             `json:"stock_count"`
	IsVisible        bool            `json:"is_visible"`
	ImageRef         string          `json:"image_ref"`
}

// HandleAdminItems returns an HTTP handler for item creation and listing.
func HandleAdminItems(svc CatalogAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			items, err := svc.ListItems(r.Context())
			if err != nil {
				writeServiceError(w, err)
				return
			}
			resp := make([]itemResponse, 0, len(items))
			for _, item := range items {
				resp = append(resp, toItemResponse(item))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
			return
		case http.MethodPost:
			var req createItemRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			item, err := svc.CreateItem(r.Context(), app.CreateItemInput{
				Name:             req.Name,
				SKU:              req.SKU,
				Category:         domain.Category(req.Category),
				WeightGrams:      req.WeightGrams,
				Purity:           req.Purity,
				MakingCharge:     req.MakingCharge,
				MakingChargeKind: domain.MakingChargeKind(req.MakingChargeKind),
				StockCount:       req.StockCount,
				IsVisible:        req.IsVisible,
				ImageRef:         req.ImageRef,
			})
			if err != nil {
				writeServiceError(w, err)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(toItemResponse(item))
			return
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
	}
}

type updateItemRequest struct {
	Stock            *int `json:"stock,omitempty"`
	ToggleVisibility bool `json:"toggle_visibility,omitempty"`
}

// HandleAdminItem returns an HTTP handler for per-item updates and deletion.
func HandleAdminItem(svc CatalogAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, ok := parseAdminItemPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch r.Method {
		case http.MethodPatch:
			var req updateItemRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			if req.Stock == nil && !req.ToggleVisibility {
				writeError(w, http.StatusBadRequest, codeValidation, "nothing to update")
				return
			}

			var (
				item domain.Item
				err  error
			)
			if req.Stock != nil {
				item, err = svc.UpdateStock(r.Context(), itemID, *req.Stock)
				if err != nil {
					writeServiceError(w, err)
					return
				}
			}
			if req.ToggleVisibility {
				item, err = svc.ToggleVisibility(r.Context(), itemID)
				if err != nil {
					writeServiceError(w, err)
					return
				}
			}

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(toItemResponse(item))
			return
		case http.MethodDelete:
			if err := svc.DeleteItem(r.Context(), itemID); err != nil {
				writeServiceError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
			return
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
	}
}

type valuationResponse struct {
	TotalValue decimal.Decimal `json:"total_value"`
}

// HandleAdminValuation returns an HTTP handler for total inventory value.
func HandleAdminValuation(svc CatalogAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		total, err := svc.Valuation(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(valuationResponse{TotalValue: total})
	}
}

func parseAdminItemPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 {
		return "", false
	}
	if parts[0] != "admin" || parts[1] != "items" || parts[2] == "" {
		return "", false
	}
	return parts[2], true
}
