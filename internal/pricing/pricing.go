// Package pricing converts an item's physical attributes and the current
// 24K spot rate into a consumer price breakdown. Everything here is pure and
// safe for concurrent use; no rounding is applied, callers round for display.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/badhusha-dev/AurumReserve/internal/domain"
)

// GSTRate is the flat statutory tax applied to the subtotal. Process-wide,
// not configurable per item.
var GSTRate = decimal.RequireFromString("0.03")

var (
	multiplier24 = decimal.NewFromInt(1)
	multiplier22 = decimal.RequireFromString("0.916")
	multiplier18 = decimal.RequireFromString("0.75")

	percentBase = decimal.NewFromInt(100)
)

// PurityMultiplier returns the fractional gold content factor for a karat
// purity. Only 18, 22 and 24 are recognised.
func PurityMultiplier(purity int) (decimal.Decimal, error) {
	switch purity {
	case 24:
		return multiplier24, nil
	case 22:
		return multiplier22, nil
	case 18:
		return multiplier18, nil
	}
	return decimal.Decimal{}, domain.ErrInvalidPurity
}

// Breakdown is a quoted price split into its components.
type Breakdown struct {
	GoldValue decimal.Decimal
	MakingFee decimal.Decimal
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
}

// Quote prices an item at the given 24K spot rate.
func Quote(weightGrams decimal.Decimal, purity int, makingCharge decimal.Decimal, kind domain.MakingChargeKind, spot24K decimal.Decimal) (Breakdown, error) {
	if !weightGrams.IsPositive() {
		return Breakdown{}, domain.ErrValidation
	}
	if !spot24K.IsPositive() {
		return Breakdown{}, domain.ErrValidation
	}
	if makingCharge.IsNegative() {
		return Breakdown{}, domain.ErrValidation
	}

	mult, err := PurityMultiplier(purity)
	if err != nil {
		return Breakdown{}, err
	}

	goldValue := spot24K.Mul(mult).Mul(weightGrams)

	makingFee := makingCharge
	if kind == domain.MakingChargePercentage {
		makingFee = goldValue.Mul(makingCharge).Div(percentBase)
	}

	subtotal := goldValue.Add(makingFee)
	tax := subtotal.Mul(GSTRate)

	return Breakdown{
		GoldValue: goldValue,
		MakingFee: makingFee,
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     subtotal.Add(tax),
	}, nil
}

// QuoteItem prices a catalog item at the given 24K spot rate.
func QuoteItem(item domain.Item, spot24K decimal.Decimal) (Breakdown, error) {
	return Quote(item.WeightGrams, item.Purity, item.MakingCharge, item.MakingChargeKind, spot24K)
}
