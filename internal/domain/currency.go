package domain

import "github.com/shopspring/decimal"

// Currency is a display currency. All ledger amounts are stored in the base
// currency (INR); the rate in effect is captured per transaction.
type Currency string

const (
	CurrencyINR Currency = "INR"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyAED Currency = "AED"
	CurrencyGBP Currency = "GBP"
)

var exchangeRates = map[Currency]decimal.Decimal{
	CurrencyINR: decimal.NewFromInt(1),
	CurrencyUSD: decimal.RequireFromString("0.012"),
	CurrencyEUR: decimal.RequireFromString("0.011"),
	CurrencyAED: decimal.RequireFromString("0.044"),
	CurrencyGBP: decimal.RequireFromString("0.0095"),
}

var currencySymbols = map[Currency]string{
	CurrencyINR: "₹",
	CurrencyUSD: "$",
	CurrencyEUR: "€",
	CurrencyAED: "د.إ",
	CurrencyGBP: "£",
}

// ExchangeRate returns the base-to-currency conversion factor.
func ExchangeRate(c Currency) (decimal.Decimal, error) {
	rate, ok := exchangeRates[c]
	if !ok {
		return decimal.Decimal{}, ErrUnknownCurrency
	}
	return rate, nil
}

// Symbol returns the display symbol for c, falling back to the code itself.
func Symbol(c Currency) string {
	if s, ok := currencySymbols[c]; ok {
		return s
	}
	return string(c)
}
