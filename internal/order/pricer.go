package order

import (
	"context"
	"fmt"
	"time"

	"cryptoexchange/internal/domain"
	"cryptoexchange/internal/metrics"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
)

const defaultRateLock = 10 * time.Minute

type RateResolver interface {
	Resolve(ctx context.Context, from, to string) (domain.ResolvedRate, error)
}

type CurrencyCatalog interface {
	GetCurrency(code string) (domain.Currency, error)
}

// Pricer computes fees, payout amount and rate lock for an order. It does not persist anything.
type Pricer struct {
	resolver RateResolver
	catalog  CurrencyCatalog
	fees     FeeSchedule
	clock    clockwork.Clock
	metrics  *metrics.Metrics
	rateLock time.Duration
}

func (p *Pricer) PriceOrder(ctx context.Context, from, to string, fromAmount decimal.Decimal, rateType domain.RateType) (domain.OrderPricing, error) {
	if !rateType.Valid() {
		return domain.OrderPricing{}, domain.ErrInvalidRateType
	}
	if !fromAmount.IsPositive() {
		return domain.OrderPricing{}, domain.ErrInvalidAmount
	}

	fromCur, err := p.catalog.GetCurrency(from)
	if err != nil {
		return domain.OrderPricing{}, err
	}

	platformFee := p.fees.PlatformFee(fromAmount)
	networkFee := p.fees.NetworkFee(fromCur)
	netAmount := fromAmount.Sub(platformFee).Sub(networkFee)
	if !netAmount.IsPositive() {
		p.metrics.PricingRejectedTotal.WithLabelValues("insufficient_amount").Inc()
		return domain.OrderPricing{}, fmt.Errorf("%w: amount %s, fees %s", domain.ErrInsufficientAmount, fromAmount, platformFee.Add(networkFee))
	}

	rate, err := p.resolver.Resolve(ctx, from, to)
	if err != nil {
		return domain.OrderPricing{}, fmt.Errorf("failed to resolve rate %s/%s: %w", from, to, err)
	}

	now := p.clock.Now()
	var lockExpiry *time.Time
	if rateType == domain.RateFixed {
		expiry := now.Add(p.rateLock)
		lockExpiry = &expiry
	}

	return domain.OrderPricing{
		FromCurrency:   from,
		ToCurrency:     to,
		FromAmount:     fromAmount,
		PlatformFee:    platformFee,
		NetworkFee:     networkFee,
		NetAmount:      netAmount,
		ToAmount:       netAmount.Mul(rate.Rate),
		ExchangeRate:   rate.Rate,
		RateSource:     rate.Source,
		RateType:       rateType,
		RateLockExpiry: lockExpiry,
		PricedAt:       now,
	}, nil
}

func NewPricer(resolver RateResolver, catalog CurrencyCatalog, fees FeeSchedule, clock clockwork.Clock, m *metrics.Metrics, rateLock time.Duration) *Pricer {
	if rateLock <= 0 {
		rateLock = defaultRateLock
	}
	return &Pricer{
		resolver: resolver,
		catalog:  catalog,
		fees:     fees,
		clock:    clock,
		metrics:  m,
		rateLock: rateLock,
	}
}
