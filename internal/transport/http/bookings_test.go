package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/badhusha-dev/AurumReserve/internal/app"
	"github.com/badhusha-dev/AurumReserve/internal/domain"
)

type stubBookingService struct {
	booking  domain.Booking
	bookings []domain.Booking
	err      error

	lastAction    string
	lastBookingID string
	lastExtendBy  time.Duration
}

func (s *stubBookingService) CreateBooking(_ context.Context, _ app.CreateBookingInput) (domain.Booking, error) {
	s.lastAction = "create"
	return s.booking, s.err
}

func (s *stubBookingService) ListUserBookings(_ context.Context, _ string) ([]domain.Booking, error) {
	return s.bookings, s.err
}

func (s *stubBookingService) ConfirmSale(_ context.Context, id string) (domain.Booking, error) {
	s.lastAction, s.lastBookingID = "confirm", id
	return s.booking, s.err
}

func (s *stubBookingService) Extend(_ context.Context, id string, by time.Duration) (domain.Booking, error) {
	s.lastAction, s.lastBookingID, s.lastExtendBy = "extend", id, by
	return s.booking, s.err
}

func (s *stubBookingService) Cancel(_ context.Context, id string) (domain.Booking, error) {
	s.lastAction, s.lastBookingID = "cancel", id
	return s.booking, s.err
}

func TestHandleBookings_Create(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	successBooking := domain.Booking{
		ID:         "bkg-123",
		UserID:     "usr-1",
		ItemID:     "itm-1",
		LockedRate: decimal.RequireFromString("7250.50"),
		Status:     domain.BookingStatusActive,
		CreatedAt:  now,
		ExpiresAt:  now.Add(96 * time.Hour),
	}

	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			body:           `{"user_id":"usr-1","item_id":"itm-1","collateral_kind":"CASH_ADVANCE","collateral_value":"5000"}`,
			expectedStatus: http.StatusCreated,
			expectedSubstr: `"id":"bkg-123"`,
		},
		{
			name:           "invalid json",
			body:           `{"user_id":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing ids",
			body:           `{"collateral_kind":"CASH_ADVANCE","collateral_value":"5000"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "item not found",
			body:           `{"user_id":"usr-1","item_id":"itm-x","collateral_kind":"CASH_ADVANCE","collateral_value":"5000"}`,
			serviceErr:     domain.ErrItemNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "out of stock",
			body:           `{"user_id":"usr-1","item_id":"itm-1","collateral_kind":"CASH_ADVANCE","collateral_value":"5000"}`,
			serviceErr:     domain.ErrInsufficientStock,
			expectedStatus: http.StatusConflict,
			expectedSubstr: `"code":"insufficient_stock"`,
		},
		{
			name:           "insufficient balance",
			body:           `{"user_id":"usr-1","item_id":"itm-1","collateral_kind":"GOLD_LOCK","collateral_value":"2"}`,
			serviceErr:     domain.ErrInsufficientBalance,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "internal error",
			body:           `{"user_id":"usr-1","item_id":"itm-1","collateral_kind":"CASH_ADVANCE","collateral_value":"5000"}`,
			serviceErr:     errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubBookingService{
				booking: successBooking,
				err:     tt.serviceErr,
			}
			req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			HandleBookings(svc).ServeHTTP(rec, req)

			res := rec.Result()
			if res.StatusCode != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, res.StatusCode)
			}
			if tt.expectedSubstr != "" {
				body := rec.Body.String()
				if !strings.Contains(body, tt.expectedSubstr) {
					t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, body)
				}
			}
		})
	}
}

func TestHandleBookings_List(t *testing.T) {
	t.Parallel()

	svc := &stubBookingService{
		bookings: []domain.Booking{
			{ID: "bkg-1", UserID: "usr-1", Status: domain.BookingStatusActive},
			{ID: "bkg-2", UserID: "usr-1", Status: domain.BookingStatusExpired},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/bookings?user_id=usr-1", nil)
	rec := httptest.NewRecorder()
	HandleBookings(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"id":"bkg-1"`) || !strings.Contains(body, `"id":"bkg-2"`) {
		t.Fatalf("expected both bookings in response, got %q", body)
	}

	req = httptest.NewRequest(http.MethodGet, "/bookings", nil)
	rec = httptest.NewRecorder()
	HandleBookings(svc).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 without user_id, got %d", rec.Code)
	}
}

func TestHandleBookingActions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		path           string
		serviceErr     error
		expectedStatus int
		expectedAction string
	}{
		{
			name:           "confirm",
			path:           "/bookings/bkg-1/confirm",
			expectedStatus: http.StatusOK,
			expectedAction: "confirm",
		},
		{
			name:           "extend",
			path:           "/bookings/bkg-1/extend",
			expectedStatus: http.StatusOK,
			expectedAction: "extend",
		},
		{
			name:           "cancel",
			path:           "/bookings/bkg-1/cancel",
			expectedStatus: http.StatusOK,
			expectedAction: "cancel",
		},
		{
			name:           "unknown action",
			path:           "/bookings/bkg-1/freeze",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "not found",
			path:           "/bookings/bkg-x/confirm",
			serviceErr:     domain.ErrBookingNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "already terminal",
			path:           "/bookings/bkg-1/confirm",
			serviceErr:     domain.ErrInvalidState,
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubBookingService{
				booking: domain.Booking{ID: "bkg-1", Status: domain.BookingStatusCompleted},
				err:     tt.serviceErr,
			}
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			rec := httptest.NewRecorder()

			HandleBookingActions(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.expectedAction != "" && svc.lastAction != tt.expectedAction {
				t.Fatalf("expected action %q, got %q", tt.expectedAction, svc.lastAction)
			}
		})
	}
}

func TestHandleBookingActions_ExtendUsesServiceDefault(t *testing.T) {
	t.Parallel()

	svc := &stubBookingService{booking: domain.Booking{ID: "bkg-1"}}
	req := httptest.NewRequest(http.MethodPost, "/bookings/bkg-1/extend", nil)
	rec := httptest.NewRecorder()

	HandleBookingActions(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if svc.lastExtendBy != 0 {
		t.Fatalf("expected zero duration passed through, got %v", svc.lastExtendBy)
	}
	if svc.lastBookingID != "bkg-1" {
		t.Fatalf("expected booking id bkg-1, got %q", svc.lastBookingID)
	}
}
