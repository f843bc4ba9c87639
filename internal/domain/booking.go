package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusExpired   BookingStatus = "expired"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Terminal reports whether s admits no further transitions.
func (s BookingStatus) Terminal() bool {
	return s != BookingStatusActive
}

type CollateralKind string

const (
	CollateralCashAdvance CollateralKind = "CASH_ADVANCE"
	CollateralGoldLock    CollateralKind = "GOLD_LOCK"
)

// Booking is a time-boxed, rate-locked claim on one inventory unit pending
// in-store completion. One unit is taken from stock at creation and returned
// only when the booking expires or is cancelled; completion consumes it.
type Booking struct {
	ID              string
	UserID          string
	ItemID          string
	CollateralKind  CollateralKind
	CollateralValue decimal.Decimal
	LockedRate      decimal.Decimal
	Status          BookingStatus
	CreatedAt       time.Time
	ExpiresAt       time.Time
}
