package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/badhusha-dev/AurumReserve/internal/app"
	"github.com/badhusha-dev/AurumReserve/internal/domain"
)

// StorefrontService is the minimal interface needed for the public store.
type StorefrontService interface {
	Storefront(ctx context.Context) ([]app.Listing, error)
}

type itemResponse struct {
	ID               string          `json:"id"`
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	WeightGrams      decimal.Decimal `json:"weight_grams"`
	Purity           int             `json:"purity"`
	MakingCharge     decimal.Decimal `json:"making_charge"`
	MakingChargeKind string          `json:"making_charge_kind"`
	StockCount       int             `json:"stock_count"`
	IsVisible        bool            `json:"is_visible"`
	ImageRef         string          `json:"image_ref,omitempty"`
}

type breakdownResponse struct {
	GoldValue decimal.Decimal `json:"gold_value"`
	MakingFee decimal.Decimal `json:"making_fee"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
}

type listingResponse struct {
	Item  itemResponse      `json:"item"`
	Price breakdownResponse `json:"price"`
}

func toItemResponse(item domain.Item) itemResponse {
	return itemResponse{
		ID:               item.ID,
		SKU:              item.SKU,
		Name:             item.Name,
		Category:         string(item.Category),
		WeightGrams:      item.WeightGrams,
		Purity:           item.Purity,
		MakingCharge:     item.MakingCharge,
		MakingChargeKind: string(item.MakingChargeKind),
		StockCount:       item.StockCount,
		IsVisible:        item.IsVisible,
		ImageRef:         item.ImageRef,
	}
}

// HandleStore returns an HTTP handler for the public storefront listing.
func HandleStore(svc StorefrontService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		listings, err := svc.Storefront(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		resp := make([]listingResponse, 0, len(listings))
		for _, l := range listings {
			resp = append(resp, listingResponse{
				Item: toItemResponse(l.Item),
				Price: breakdownResponse{
					GoldValue: l.Price.GoldValue,
					MakingFee: l.Price.MakingFee,
					Subtotal:  l.Price.Subtotal,
					Tax:       l.Price.Tax,
					Total:     l.Price.Total,
				},
			})
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
