package domain

import "github.com/shopspring/decimal"

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// User is an account holder. OpeningGrams is the balance carried in before
// the first ledger entry; everything after is derived from the ledger.
type User struct {
	ID           string
	Name         string
	Role         Role
	OpeningGrams decimal.Decimal
}

type LoyaltyTier string

const (
	TierSilver   LoyaltyTier = "SILVER"
	TierGold     LoyaltyTier = "GOLD"
	TierPlatinum LoyaltyTier = "PLATINUM"
)

// UserStats is derived from the ledger on every read; it is never stored.
type UserStats struct {
	TotalGrams     decimal.Decimal
	TotalInvested  decimal.Decimal
	CurrentValue   decimal.Decimal
	UnrealizedGain decimal.Decimal
	GainPercentage decimal.Decimal
	BuyCount       int
	LoyaltyTier    LoyaltyTier
}
