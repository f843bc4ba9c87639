package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	KindBuy               TransactionKind = "BUY"
	KindBonus             TransactionKind = "BONUS"
	KindRedeem            TransactionKind = "REDEEM"
	KindGiftSent          TransactionKind = "GIFT_SENT"
	KindGiftReceived      TransactionKind = "GIFT_RECEIVED"
	KindJewelryPurchase   TransactionKind = "JEWELRY_PURCHASE"
	KindBookingCollateral TransactionKind = "BOOKING_COLLATERAL"
	KindBookingRefund     TransactionKind = "BOOKING_REFUND"
)

type TransactionStatus string

const (
	TxStatusCompleted TransactionStatus = "COMPLETED"
	TxStatusPending   TransactionStatus = "PENDING"
)

// Transaction is one append-only ledger entry. Entries are never mutated
// after creation; the sign of Grams relative to the balance is determined by
// Kind when the ledger is folded.
type Transaction struct {
	ID              string
	UserID          string
	ExecutedAt      time.Time
	Amount          decimal.Decimal
	Grams           decimal.Decimal
	Kind            TransactionKind
	Status          TransactionStatus
	RateAtExecution decimal.Decimal
	Currency        Currency
	ExchangeRate    decimal.Decimal
	Details         string
}
