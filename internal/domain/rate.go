package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rate is the shop-facing gold price snapshot. Price22K is always derived
// from Price24K in the same assignment so readers never see the two disagree.
type Rate struct {
	Price24K  decimal.Decimal
	Price22K  decimal.Decimal
	Timestamp time.Time
}
