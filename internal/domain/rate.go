package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RateSource tells how a rate was obtained.
type RateSource string

const (
	SourceLive     RateSource = "live"
	SourceDerived  RateSource = "derived"
	SourceOverride RateSource = "override"
	SourceFallback RateSource = "fallback"
	SourceUnknown  RateSource = "unknown"
)

// CurrencyPair is ordered: BTC/RUB and RUB/BTC are different pairs.
type CurrencyPair struct {
	From string
	To   string
}

func (p CurrencyPair) Reversed() CurrencyPair {
	return CurrencyPair{
		From: p.To,
		To:   p.From,
	}
}

// Key returns the literal pair string, e.g. "BTC/RUB".
func (p CurrencyPair) Key() string {
	return p.From + "/" + p.To
}

// ParsePair parses "FROM/TO" into a pair, normalizing case.
func ParsePair(s string) (CurrencyPair, bool) {
	from, to, ok := strings.Cut(strings.ToUpper(strings.TrimSpace(s)), "/")
	if !ok || from == "" || to == "" {
		return CurrencyPair{}, false
	}
	return CurrencyPair{From: from, To: to}, true
}

type ResolvedRate struct {
	Pair       CurrencyPair
	Rate       decimal.Decimal
	ResolvedAt time.Time
	Source     RateSource
}

// Degraded reports whether the rate is a placeholder rather than a market or configured value.
func (r ResolvedRate) Degraded() bool {
	return r.Source == SourceUnknown
}
