package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/badhusha-dev/AurumReserve/internal/app"
	"github.com/badhusha-dev/AurumReserve/internal/domain"
)

// BookingService is the minimal interface needed for the booking endpoints.
type BookingService interface {
	CreateBooking(ctx context.Context, in app.CreateBookingInput) (domain.Booking, error)
	ListUserBookings(ctx context.Context, userID string) ([]domain.Booking, error)
	ConfirmSale(ctx context.Context, bookingID string) (domain.Booking, error)
	Extend(ctx context.Context, bookingID string, by time.Duration) (domain.Booking, error)
	Cancel(ctx context.Context, bookingID string) (domain.Booking, error)
}

type createBookingRequest struct {
	UserID          string          `json:"user_id"`
	ItemID          string          `json:"item_id"`
	CollateralKind  string          `json:"collateral_kind"`
	CollateralValue decimal.Decimal `json:"collateral_value"`
}

type bookingResponse struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	ItemID          string          `json:"item_id"`
	CollateralKind  string          `json:"collateral_kind"`
	CollateralValue decimal.Decimal `json:"collateral_value"`
	LockedRate      decimal.Decimal `json:"locked_rate"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	ExpiresAt       time.Time       `json:"expires_at"`
}

func toBookingResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		ItemID:          b.ItemID,
		CollateralKind:  string(b.CollateralKind),
		CollateralValue: b.CollateralValue,
		LockedRate:      b.LockedRate,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
		ExpiresAt:       b.ExpiresAt,
	}
}

// HandleBookings returns an HTTP handler for creating and listing bookings.
func HandleBookings(svc BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			userID := r.URL.Query().Get("user_id")
			if userID == "" {
				writeError(w, http.StatusBadRequest, codeValidation, "user_id is required")
				return
			}

			bookings, err := svc.ListUserBookings(r.Context(), userID)
			if err != nil {
				writeServiceError(w, err)
				return
			}

			resp := make([]bookingResponse, 0, len(bookings))
			for _, b := range bookings {
				resp = append(resp, toBookingResponse(b))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
			return
		case http.MethodPost:
			var req createBookingRequest
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

			booking, err := svc.CreateBooking(r.Context(), app.CreateBookingInput{
				UserID:          req.UserID,
				ItemID:          req.ItemID,
				CollateralKind:  domain.CollateralKind(req.CollateralKind),
				CollateralValue: req.CollateralValue,
			})
			if err != nil {
				writeServiceError(w, err)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(toBookingResponse(booking))
			return
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
	}
}

// HandleBookingActions returns an HTTP handler for the per-booking
// confirm/extend/cancel transitions.
func HandleBookingActions(svc BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		bookingID, action, ok := parseBookingActionPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		var (
			booking domain.Booking
			err     error
		)
		switch action {
		case "confirm":
			booking, err = svc.ConfirmSale(r.Context(), bookingID)
		case "extend":
			booking, err = svc.Extend(r.Context(), bookingID, 0)
		case "cancel":
			booking, err = svc.Cancel(r.Context(), bookingID)
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		if err != nil {
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(toBookingResponse(booking))
	}
}

func parseBookingActionPath(path string) (string, string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 {
		return "", "", false
	}
	if parts[0] != "bookings" || parts[1] == "" {
		return "", "", false
	}
	return parts[1], parts[2], true
}
