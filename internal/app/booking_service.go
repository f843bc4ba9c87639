package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/badhusha-dev/AurumReserve/internal/clock"
	"github.com/badhusha-dev/AurumReserve/internal/domain"
	"github.com/badhusha-dev/AurumReserve/internal/ledger"
)

// RateSource provides a consistent snapshot of the current shop rate.
type RateSource interface {
	Current() domain.Rate
}

type BookingRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetItemForUpdate(ctx context.Context, itemID string) (domain.Item, error)
	AdjustItemStock(ctx context.Context, itemID string, delta int) error
	CreateBooking(ctx context.Context, b domain.Booking) error
	GetBookingForUpdate(ctx context.Context, id string) (domain.Booking, error)
	// SetBookingStatus transitions id from one status to another and reports
	// whether the row actually changed. The from-guard makes confirm, cancel
	// and sweep race-safe: whichever transition loses sees false.
	SetBookingStatus(ctx context.Context, id string, from, to domain.BookingStatus) (bool, error)
	SetBookingExpiry(ctx context.Context, id string, expiresAt time.Time) error
	ListExpiredActive(ctx context.Context, now time.Time) ([]domain.Booking, error)
	ListBookingsByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	GetUser(ctx context.Context, id string) (domain.User, error)
	ListTransactionsByUser(ctx context.Context, userID string) ([]domain.Transaction, error)
	AppendTransaction(ctx context.Context, tx domain.Transaction) error
}

const (
	defaultHoldDuration = 96 * time.Hour
	defaultExtendBy     = 24 * time.Hour
)

type BookingService struct {
	repo         BookingRepository
	rates        RateSource
	clock        clock.Clock
	holdDuration time.Duration
	extendBy     time.Duration
}

func NewBookingService(repo BookingRepository, rates RateSource, clk clock.Clock, opts ...BookingServiceOption) *BookingService {
	svc := &BookingService{
		repo:         repo,
		rates:        rates,
		clock:        clk,
		holdDuration: defaultHoldDuration,
		extendBy:     defaultExtendBy,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type BookingServiceOption func(*BookingService)

// WithHoldDuration overrides the default hold duration for new bookings.
func WithHoldDuration(d time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		if d > 0 {
			s.holdDuration = d
		}
	}
}

// WithExtendBy overrides the default extension granted per extend request.
func WithExtendBy(d time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		if d > 0 {
			s.extendBy = d
		}
	}
}

type CreateBookingInput struct {
	UserID          string
	ItemID          string
	CollateralKind  domain.CollateralKind
	CollateralValue decimal.Decimal
}

// CreateBooking reserves one unit of an item at the current rate. The stock
// decrement, the booking row and any collateral ledger entry commit together
// or not at all.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (domain.Booking, error) {
	if in.UserID == "" || in.ItemID == "" {
		return domain.Booking{}, domain.ErrValidation
	}
	if in.CollateralKind != domain.CollateralCashAdvance && in.CollateralKind != domain.CollateralGoldLock {
		return domain.Booking{}, domain.ErrValidation
	}
	if !in.CollateralValue.IsPositive() {
		return domain.Booking{}, domain.ErrValidation
	}

	now := s.clock.Now()
	rate := s.rates.Current()
	var result domain.Booking

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		user, err := s.repo.GetUser(txCtx, in.UserID)
		if err != nil {
			return err
		}

		item, err := s.repo.GetItemForUpdate(txCtx, in.ItemID)
		if err != nil {
			return err
		}
		if item.StockCount <= 0 {
			return domain.ErrInsufficientStock
		}

		if in.CollateralKind == domain.CollateralGoldLock {
			txs, err := s.repo.ListTransactionsByUser(txCtx, in.UserID)
			if err != nil {
				return err
			}
			if ledger.Balance(txs, user.OpeningGrams).LessThan(in.CollateralValue) {
				return domain.ErrInsufficientBalance
			}
		}

		if err := s.repo.AdjustItemStock(txCtx, in.ItemID, -1); err != nil {
			return err
		}

		booking := domain.Booking{
			ID:              newID("bkg"),
			UserID:          in.UserID,
			ItemID:          in.ItemID,
			CollateralKind:  in.CollateralKind,
			CollateralValue: in.CollateralValue,
			LockedRate:      rate.Price24K,
			Status:          domain.BookingStatusActive,
			CreatedAt:       now,
			ExpiresAt:       now.Add(s.holdDuration),
		}
		if err := s.repo.CreateBooking(txCtx, booking); err != nil {
			return err
		}

		if in.CollateralKind == domain.CollateralGoldLock {
			entry := domain.Transaction{
				ID:              newID("tx"),
				UserID:          in.UserID,
				ExecutedAt:      now,
				Amount:          in.CollateralValue.Mul(rate.Price24K).Round(2),
				Grams:           in.CollateralValue,
				Kind:            domain.KindBookingCollateral,
				Status:          domain.TxStatusCompleted,
				RateAtExecution: rate.Price24K,
				Currency:        domain.CurrencyINR,
				ExchangeRate:    decimal.NewFromInt(1),
				Details:         "Gold locked for reservation " + booking.ID,
			}
			if err := s.repo.AppendTransaction(txCtx, entry); err != nil {
				return err
			}
		}

		result = booking
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return result, nil
}

// ConfirmSale completes an active booking. The unit stays out of stock: it
// has left the vault for good.
func (s *BookingService) ConfirmSale(ctx context.Context, bookingID string) (domain.Booking, error) {
	if bookingID == "" {
		return domain.Booking{}, domain.ErrValidation
	}

	var result domain.Booking
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		booking, err := s.repo.GetBookingForUpdate(txCtx, bookingID)
		if err != nil {
			return err
		}

		ok, err := s.repo.SetBookingStatus(txCtx, bookingID, domain.BookingStatusActive, domain.BookingStatusCompleted)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidState
		}

		booking.Status = domain.BookingStatusCompleted
		result = booking
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return result, nil
}

// Extend pushes an active booking's expiry forward. A zero duration uses the
// service default.
func (s *BookingService) Extend(ctx context.Context, bookingID string, by time.Duration) (domain.Booking, error) {
	if bookingID == "" {
		return domain.Booking{}, domain.ErrValidation
	}
	if by < 0 {
		return domain.Booking{}, domain.ErrValidation
	}
	if by == 0 {
		by = s.extendBy
	}

	var result domain.Booking
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		booking, err := s.repo.GetBookingForUpdate(txCtx, bookingID)
		if err != nil {
			return err
		}
		if booking.Status != domain.BookingStatusActive {
			return domain.ErrInvalidState
		}

		booking.ExpiresAt = booking.ExpiresAt.Add(by)
		if err := s.repo.SetBookingExpiry(txCtx, bookingID, booking.ExpiresAt); err != nil {
			return err
		}

		result = booking
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return result, nil
}

// Cancel releases an active booking early: the unit goes back on the shelf
// and locked gold is returned.
func (s *BookingService) Cancel(ctx context.Context, bookingID string) (domain.Booking, error) {
	if bookingID == "" {
		return domain.Booking{}, domain.ErrValidation
	}

	var result domain.Booking
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		booking, err := s.repo.GetBookingForUpdate(txCtx, bookingID)
		if err != nil {
			return err
		}

		ok, err := s.repo.SetBookingStatus(txCtx, bookingID, domain.BookingStatusActive, domain.BookingStatusCancelled)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidState
		}

		if err := s.releaseHold(txCtx, booking); err != nil {
			return err
		}

		booking.Status = domain.BookingStatusCancelled
		result = booking
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return result, nil
}

// SweepExpirations expires every active booking whose hold has lapsed,
// restocking each reserved unit and returning locked collateral. Running it
// again without time advancing changes nothing. Returns the number of
// bookings expired.
func (s *BookingService) SweepExpirations(ctx context.Context) (int, error) {
	now := s.clock.Now()
	swept := 0

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		lapsed, err := s.repo.ListExpiredActive(txCtx, now)
		if err != nil {
			return err
		}

		for _, booking := range lapsed {
			ok, err := s.repo.SetBookingStatus(txCtx, booking.ID, domain.BookingStatusActive, domain.BookingStatusExpired)
			if err != nil {
				return err
			}
			if !ok {
				// Lost the race to a concurrent confirm or cancel; skip.
				continue
			}
			if err := s.releaseHold(txCtx, booking); err != nil {
				return err
			}
			swept++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return swept, nil
}

// releaseHold restocks the reserved unit and re-credits GOLD_LOCK collateral.
func (s *BookingService) releaseHold(ctx context.Context, booking domain.Booking) error {
	if err := s.repo.AdjustItemStock(ctx, booking.ItemID, 1); err != nil {
		return err
	}
	if booking.CollateralKind != domain.CollateralGoldLock {
		return nil
	}
	entry := domain.Transaction{
		ID:              newID("tx"),
		UserID:          booking.UserID,
		ExecutedAt:      s.clock.Now(),
		Amount:          booking.CollateralValue.Mul(booking.LockedRate).Round(2),
		Grams:           booking.CollateralValue,
		Kind:            domain.KindBookingRefund,
		Status:          domain.TxStatusCompleted,
		RateAtExecution: booking.LockedRate,
		Currency:        domain.CurrencyINR,
		ExchangeRate:    decimal.NewFromInt(1),
		Details:         "Collateral returned for reservation " + booking.ID,
	}
	return s.repo.AppendTransaction(ctx, entry)
}

// ListUserBookings returns all bookings for a user, newest first.
func (s *BookingService) ListUserBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	if userID == "" {
		return nil, domain.ErrValidation
	}
	return s.repo.ListBookingsByUser(ctx, userID)
}
