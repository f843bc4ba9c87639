// Package ledger folds an append-only transaction list into derived user
// statistics. The fold is pure; the ledger itself is never mutated here.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/badhusha-dev/AurumReserve/internal/domain"
)

const (
	gramsPrecision    = 4
	currencyPrecision = 2
)

var percentBase = decimal.NewFromInt(100)

// Aggregate computes UserStats from transactions, a starting gold balance
// and the current 24K spot rate. Unknown transaction kinds leave the balance
// untouched so future ledger growth never hard-fails old readers. Grams are
// rounded to 4 decimal places and currency to 2, at this boundary only.
func Aggregate(txs []domain.Transaction, openingGrams, spot24K decimal.Decimal) domain.UserStats {
	totalGrams := openingGrams
	totalInvested := decimal.Zero
	buyCount := 0

	for _, tx := range txs {
		switch tx.Kind {
		case domain.KindBuy, domain.KindBonus, domain.KindGiftReceived, domain.KindBookingRefund:
			totalGrams = totalGrams.Add(tx.Grams)
		case domain.KindRedeem, domain.KindGiftSent, domain.KindJewelryPurchase, domain.KindBookingCollateral:
			totalGrams = totalGrams.Sub(tx.Grams)
		}
		if tx.Kind == domain.KindBuy {
			totalInvested = totalInvested.Add(tx.Amount)
			buyCount++
		}
	}

	currentValue := totalGrams.Mul(spot24K)
	unrealizedGain := currentValue.Sub(totalInvested)

	gainPercentage := decimal.Zero
	if totalInvested.IsPositive() {
		gainPercentage = unrealizedGain.Div(totalInvested).Mul(percentBase)
	}

	return domain.UserStats{
		TotalGrams:     totalGrams.Round(gramsPrecision),
		TotalInvested:  totalInvested.Round(currencyPrecision),
		CurrentValue:   currentValue.Round(currencyPrecision),
		UnrealizedGain: unrealizedGain.Round(currencyPrecision),
		GainPercentage: gainPercentage.Round(currencyPrecision),
		BuyCount:       buyCount,
		LoyaltyTier:    tierFor(buyCount),
	}
}

// Balance returns only the folded gold balance, unrounded. Used where the
// exact figure matters (collateral checks) rather than display.
func Balance(txs []domain.Transaction, openingGrams decimal.Decimal) decimal.Decimal {
	total := openingGrams
	for _, tx := range txs {
		switch tx.Kind {
		case domain.KindBuy, domain.KindBonus, domain.KindGiftReceived, domain.KindBookingRefund:
			total = total.Add(tx.Grams)
		case domain.KindRedeem, domain.KindGiftSent, domain.KindJewelryPurchase, domain.KindBookingCollateral:
			total = total.Sub(tx.Grams)
		}
	}
	return total
}

func tierFor(buyCount int) domain.LoyaltyTier {
	switch {
	case buyCount > 10:
		return domain.TierPlatinum
	case buyCount > 5:
		return domain.TierGold
	default:
		return domain.TierSilver
	}
}
