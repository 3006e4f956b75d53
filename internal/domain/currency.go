package domain

import "github.com/shopspring/decimal"

type CurrencyType string

const (
	CurrencyCrypto CurrencyType = "crypto"
	CurrencyFiat   CurrencyType = "fiat"
)

// USDCode is the fiat code every USD leg is quoted against.
const USDCode = "USD"

type Currency struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Type      CurrencyType    `json:"type"`
	USDPegged bool            `json:"usdPegged"`
	IsActive  bool            `json:"isActive"`
	MinAmount decimal.Decimal `json:"minAmount"`
	MaxAmount decimal.Decimal `json:"maxAmount"`
}

// IsUSDEquivalent reports whether the currency is USD itself or a USD-pegged stablecoin.
func (c Currency) IsUSDEquivalent() bool {
	return c.Code == USDCode || c.USDPegged
}

func (c Currency) IsFiat() bool {
	return c.Type == CurrencyFiat
}

// AmountInRange checks amount against the currency limits. A zero MaxAmount means no upper bound.
func (c Currency) AmountInRange(amount decimal.Decimal) bool {
	if amount.LessThan(c.MinAmount) {
		return false
	}
	if c.MaxAmount.IsPositive() && amount.GreaterThan(c.MaxAmount) {
		return false
	}
	return true
}
