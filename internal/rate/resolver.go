package rate

import (
	"context"
	"errors"
	"time"

	"cryptoexchange/internal/adapters"
	"cryptoexchange/internal/domain"
	"cryptoexchange/internal/metrics"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const defaultResolveDeadline = 10 * time.Second

var (
	one = decimal.NewFromInt(1)

	errNonPositivePrice = errors.New("source returned a non-positive price")
)

type CurrencyCatalog interface {
	GetCurrency(code string) (domain.Currency, error)
}

// Resolver turns a currency pair into a rate. Sources are tried in slice order.
// Fetch failures never escape: they degrade to the fallback table and, past that, to an
// "unknown" rate of 1.
type Resolver struct {
	catalog  CurrencyCatalog
	sources  []adapters.PriceSource
	cache    adapters.RateCache
	tables   Tables
	clock    clockwork.Clock
	metrics  *metrics.Metrics
	deadline time.Duration
}

// usdLeg is the price of one asset in USD.
type usdLeg struct {
	price  decimal.Decimal
	source domain.RateSource
}

// Resolve returns the rate for from->to, serving fresh cached values when present.
func (r *Resolver) Resolve(ctx context.Context, from, to string) (domain.ResolvedRate, error) {
	return r.resolve(ctx, from, to, false)
}

// Refresh resolves from->to ignoring cached values, then overwrites the cache.
func (r *Resolver) Refresh(ctx context.Context, from, to string) (domain.ResolvedRate, error) {
	return r.resolve(ctx, from, to, true)
}

func (r *Resolver) resolve(ctx context.Context, fromCode, toCode string, bypassCache bool) (domain.ResolvedRate, error) {
	from, err := r.catalog.GetCurrency(fromCode)
	if err != nil {
		return domain.ResolvedRate{}, err
	}
	to, err := r.catalog.GetCurrency(toCode)
	if err != nil {
		return domain.ResolvedRate{}, err
	}
	pair := domain.CurrencyPair{From: from.Code, To: to.Code}

	if pair.From == pair.To || (from.IsUSDEquivalent() && to.IsUSDEquivalent()) {
		return r.observe(domain.ResolvedRate{Pair: pair, Rate: one, ResolvedAt: r.clock.Now(), Source: domain.SourceDerived}), nil
	}

	if !bypassCache {
		if cached, ok := r.cached(ctx, pair); ok {
			return cached, nil
		}
	}

	resolveCtx, cancel := context.WithTimeout(ctx, r.deadline)
	defer cancel()

	var rate domain.ResolvedRate
	if to.IsFiat() {
		rate = r.resolveToFiat(resolveCtx, pair, from, to, bypassCache)
	} else {
		rate = r.resolveCross(resolveCtx, pair, from, to, bypassCache)
	}

	// the resolution deadline may already be spent, the write must still land
	r.cache.Set(context.WithoutCancel(ctx), rate)
	return r.observe(rate), nil
}

// resolveToFiat prices from in USD and applies the static USD->fiat multiplier,
// unless an override exists for the exact pair.
func (r *Resolver) resolveToFiat(ctx context.Context, pair domain.CurrencyPair, from, to domain.Currency, bypassCache bool) domain.ResolvedRate {
	if v, ok := r.tables.Override(pair); ok {
		return r.newRate(pair, v, domain.SourceOverride)
	}

	multiplier, ok := r.tables.USDMultiplier(to.Code)
	if !ok {
		logrus.WithField("fiat", to.Code).Warn("No USD multiplier configured for fiat currency")
		return r.fallback(pair)
	}
	leg, ok := r.usdPrice(ctx, from, bypassCache)
	if !ok {
		return r.fallback(pair)
	}
	if leg.source == domain.SourceFallback {
		if v, ok := r.tables.Fallback(pair); ok {
			return r.newRate(pair, v, domain.SourceFallback)
		}
	}

	value := leg.price.Mul(multiplier)
	if !value.IsPositive() {
		return r.fallback(pair)
	}
	return r.newRate(pair, value, combinedSource(to, leg))
}

// resolveCross divides the USD prices of both sides.
func (r *Resolver) resolveCross(ctx context.Context, pair domain.CurrencyPair, from, to domain.Currency, bypassCache bool) domain.ResolvedRate {
	fromLeg, ok := r.usdPrice(ctx, from, bypassCache)
	if !ok {
		return r.fallback(pair)
	}
	toLeg, ok := r.usdPrice(ctx, to, bypassCache)
	if !ok || !toLeg.price.IsPositive() {
		return r.fallback(pair)
	}
	if fromLeg.source == domain.SourceFallback || toLeg.source == domain.SourceFallback {
		if v, ok := r.tables.Fallback(pair); ok {
			return r.newRate(pair, v, domain.SourceFallback)
		}
	}

	value := fromLeg.price.Div(toLeg.price)
	if !value.IsPositive() {
		return r.fallback(pair)
	}
	return r.newRate(pair, value, combinedSource(to, fromLeg, toLeg))
}

// combinedSource tags a rate built from USD legs: fallback if any leg came from the fallback table,
// live only for a single live leg quoted in USD, derived otherwise.
func combinedSource(to domain.Currency, legs ...usdLeg) domain.RateSource {
	for _, leg := range legs {
		if leg.source == domain.SourceFallback {
			return domain.SourceFallback
		}
	}
	if to.IsUSDEquivalent() && legs[0].source == domain.SourceLive {
		return domain.SourceLive
	}
	return domain.SourceDerived
}

// usdPrice resolves one asset against USD. Live legs are cached under (asset, USD); when every
// source fails the (asset, USD) fallback entry is used and never cached as a leg.
func (r *Resolver) usdPrice(ctx context.Context, cur domain.Currency, bypassCache bool) (usdLeg, bool) {
	if cur.IsUSDEquivalent() {
		return usdLeg{price: one, source: domain.SourceDerived}, true
	}
	if cur.IsFiat() {
		multiplier, ok := r.tables.USDMultiplier(cur.Code)
		if !ok {
			return usdLeg{}, false
		}
		return usdLeg{price: one.Div(multiplier), source: domain.SourceDerived}, true
	}

	legPair := domain.CurrencyPair{From: cur.Code, To: domain.USDCode}
	if !bypassCache {
		if cached, ok := r.cachedLiveLeg(ctx, legPair); ok {
			return usdLeg{price: cached.Rate, source: domain.SourceLive}, true
		}
	}

	price, ok := r.fetchFirst(ctx, cur)
	if !ok {
		if v, ok := r.tables.Fallback(legPair); ok {
			logrus.WithField("asset", cur.Code).Warn("Live USD price unavailable, using fallback table for the USD leg")
			return usdLeg{price: v, source: domain.SourceFallback}, true
		}
		return usdLeg{}, false
	}
	r.cache.Set(context.WithoutCancel(ctx), r.newRate(legPair, price, domain.SourceLive))
	return usdLeg{price: price, source: domain.SourceLive}, true
}

// fetchFirst walks the sources in priority order and stops at the first usable price.
func (r *Resolver) fetchFirst(ctx context.Context, cur domain.Currency) (decimal.Decimal, bool) {
	for _, src := range r.sources {
		if ctx.Err() != nil {
			logrus.WithError(ctx.Err()).WithField("asset", cur.Code).Warn("Rate resolution deadline reached, skipping remaining sources")
			return decimal.Zero, false
		}

		start := time.Now()
		price, err := src.FetchUSDPrice(ctx, cur)
		r.metrics.SourceFetchDuration.WithLabelValues(src.Name()).Observe(time.Since(start).Seconds())

		if err == nil && !price.IsPositive() {
			err = &domain.FetchError{Source: src.Name(), Asset: cur.Code, Err: errNonPositivePrice}
		}
		if err != nil {
			r.metrics.SourceFetchTotal.WithLabelValues(src.Name(), "failure").Inc()
			logrus.WithError(err).WithFields(logrus.Fields{"source": src.Name(), "asset": cur.Code}).Warn("Rate source failed, trying next")
			continue
		}

		r.metrics.SourceFetchTotal.WithLabelValues(src.Name(), "success").Inc()
		return price, true
	}
	return decimal.Zero, false
}

func (r *Resolver) fallback(pair domain.CurrencyPair) domain.ResolvedRate {
	if v, ok := r.tables.Fallback(pair); ok {
		logrus.WithField("pair", pair.Key()).Warn("Live rate unavailable, using fallback table")
		return r.newRate(pair, v, domain.SourceFallback)
	}
	logrus.WithField("pair", pair.Key()).Warn("Live rate unavailable and pair has no fallback entry, returning 1")
	return r.newRate(pair, one, domain.SourceUnknown)
}

func (r *Resolver) cached(ctx context.Context, pair domain.CurrencyPair) (domain.ResolvedRate, bool) {
	rate, ok := r.cache.Get(ctx, pair)
	if ok {
		r.metrics.RateCacheTotal.WithLabelValues("hit").Inc()
	} else {
		r.metrics.RateCacheTotal.WithLabelValues("miss").Inc()
	}
	return rate, ok
}

// cachedLiveLeg only counts a hit when the cached leg is live and therefore reusable.
func (r *Resolver) cachedLiveLeg(ctx context.Context, legPair domain.CurrencyPair) (domain.ResolvedRate, bool) {
	rate, ok := r.cache.Get(ctx, legPair)
	if !ok || rate.Source != domain.SourceLive {
		r.metrics.RateCacheTotal.WithLabelValues("miss").Inc()
		return domain.ResolvedRate{}, false
	}
	r.metrics.RateCacheTotal.WithLabelValues("hit").Inc()
	return rate, true
}

func (r *Resolver) newRate(pair domain.CurrencyPair, value decimal.Decimal, source domain.RateSource) domain.ResolvedRate {
	return domain.ResolvedRate{Pair: pair, Rate: value, ResolvedAt: r.clock.Now(), Source: source}
}

func (r *Resolver) observe(rate domain.ResolvedRate) domain.ResolvedRate {
	r.metrics.RateResolvedTotal.WithLabelValues(string(rate.Source)).Inc()
	return rate
}

// NewResolver wires a resolver. sources must be given in priority order.
func NewResolver(
	catalog CurrencyCatalog,
	sources []adapters.PriceSource,
	cache adapters.RateCache,
	tables Tables,
	clock clockwork.Clock,
	m *metrics.Metrics,
	deadline time.Duration,
) *Resolver {
	if deadline <= 0 {
		deadline = defaultResolveDeadline
	}
	return &Resolver{
		catalog:  catalog,
		sources:  sources,
		cache:    cache,
		tables:   tables,
		clock:    clock,
		metrics:  m,
		deadline: deadline,
	}
}
