package domain

import "github.com/shopspring/decimal"

type Category string

const (
	CategoryRing     Category = "RING"
	CategoryNecklace Category = "NECKLACE"
	CategoryCoin     Category = "COIN"
	CategoryBracelet Category = "BRACELET"
)

// ValidCategory reports whether c is one of the catalog categories.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryRing, CategoryNecklace, CategoryCoin, CategoryBracelet:
		return true
	}
	return false
}

type MakingChargeKind string

const (
	MakingChargeFixed      MakingChargeKind = "FIXED"
	MakingChargePercentage MakingChargeKind = "PERCENTAGE"
)

// Item is one jewelry SKU in the vault catalog. StockCount never goes
// negative: purchases and reservations decrement it, reservation expiry and
// cancellation restock it.
type Item struct {
	ID               string
	SKU              string
	Name             string
	Category         Category
	WeightGrams      decimal.Decimal
	Purity           int
	MakingCharge     decimal.Decimal
	MakingChargeKind MakingChargeKind
	StockCount       int
	IsVisible        bool
	ImageRef         string
}
