package cache

import (
	"context"
	"fmt"
	"time"

	"cryptoexchange/internal/domain"

	"github.com/dgraph-io/ristretto"
	"github.com/jonboulle/clockwork"
)

// RistrettoRateCache keeps the last resolved rate per ordered pair in process memory.
// Entries are replaced wholesale, the last writer wins.
type RistrettoRateCache struct {
	cache     *ristretto.Cache
	clock     clockwork.Clock
	freshness time.Duration
}

// NewRateCache holds up to maxItems pairs.
func NewRateCache(maxItems int64, freshness time.Duration, clock clockwork.Clock) (*RistrettoRateCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        10 * maxItems,
		MaxCost:            maxItems,
		BufferItems:        64,
		IgnoreInternalCost: true, // cost is one per pair, so MaxCost counts entries
	})
	if err != nil {
		return nil, fmt.Errorf("create rate cache failed: %w", err)
	}
	return &RistrettoRateCache{cache: c, clock: clock, freshness: freshness}, nil
}

func (c *RistrettoRateCache) Get(_ context.Context, pair domain.CurrencyPair) (domain.ResolvedRate, bool) {
	v, ok := c.cache.Get(pair.Key())
	if !ok {
		return domain.ResolvedRate{}, false
	}
	rate, ok := v.(domain.ResolvedRate)
	if !ok || !isFresh(rate, c.clock.Now(), c.freshness) {
		return domain.ResolvedRate{}, false
	}
	return rate, true
}

func (c *RistrettoRateCache) Set(_ context.Context, rate domain.ResolvedRate) {
	// ristretto buffers writes; Wait makes the entry visible to the next Get
	c.cache.Set(rate.Pair.Key(), rate, 1)
	c.cache.Wait()
}

func (c *RistrettoRateCache) Close() { c.cache.Close() }

func isFresh(rate domain.ResolvedRate, now time.Time, freshness time.Duration) bool {
	return now.Sub(rate.ResolvedAt) <= freshness
}
