package rate

import (
	"cryptoexchange/internal/domain"

	"github.com/shopspring/decimal"
)

// Tables holds the static rate data: USD->fiat multipliers, fiat-pair overrides that win over
// live data, and last-known-good rates used when every source fails. Pair tables are keyed by "FROM/TO".
type Tables struct {
	usdMultipliers map[string]decimal.Decimal
	overrides      map[string]decimal.Decimal
	fallback       map[string]decimal.Decimal
}

func (t Tables) USDMultiplier(code string) (decimal.Decimal, bool) {
	if code == domain.USDCode {
		return decimal.NewFromInt(1), true
	}
	v, ok := t.usdMultipliers[code]
	return v, ok
}

func (t Tables) Override(pair domain.CurrencyPair) (decimal.Decimal, bool) {
	v, ok := t.overrides[pair.Key()]
	return v, ok
}

func (t Tables) Fallback(pair domain.CurrencyPair) (decimal.Decimal, bool) {
	v, ok := t.fallback[pair.Key()]
	return v, ok
}

// NewTables converts configured values; non-positive entries are dropped.
func NewTables(usdMultipliers, overrides, fallback map[string]float64) Tables {
	return Tables{
		usdMultipliers: positiveDecimals(usdMultipliers),
		overrides:      positiveDecimals(overrides),
		fallback:       positiveDecimals(fallback),
	}
}

func positiveDecimals(in map[string]float64) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(in))
	for k, v := range in {
		d := decimal.NewFromFloat(v)
		if d.IsPositive() {
			out[k] = d
		}
	}
	return out
}
