package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cryptoexchange/internal/domain"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const redisKeyPrefix = "rates:"

// RedisRateCache shares resolved rates between service instances.
type RedisRateCache struct {
	client    *redis.Client
	clock     clockwork.Clock
	freshness time.Duration
}

type redisRateEntry struct {
	From       string          `json:"from"`
	To         string          `json:"to"`
	Rate       decimal.Decimal `json:"rate"`
	ResolvedAt time.Time       `json:"resolvedAt"`
	Source     string          `json:"source"`
}

func NewRedisRateCache(ctx context.Context, url string, freshness time.Duration, clock clockwork.Clock) (*RedisRateCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisRateCache{client: client, clock: clock, freshness: freshness}, nil
}

func (c *RedisRateCache) Get(ctx context.Context, pair domain.CurrencyPair) (domain.ResolvedRate, bool) {
	data, err := c.client.Get(ctx, redisKeyPrefix+pair.Key()).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logrus.WithError(err).WithField("pair", pair.Key()).Warn("Redis rate cache read failed")
		}
		return domain.ResolvedRate{}, false
	}

	var entry redisRateEntry
	if err = json.Unmarshal(data, &entry); err != nil {
		logrus.WithError(err).WithField("pair", pair.Key()).Warn("Redis rate cache entry is malformed")
		return domain.ResolvedRate{}, false
	}

	rate := domain.ResolvedRate{
		Pair:       domain.CurrencyPair{From: entry.From, To: entry.To},
		Rate:       entry.Rate,
		ResolvedAt: entry.ResolvedAt,
		Source:     domain.RateSource(entry.Source),
	}
	if !isFresh(rate, c.clock.Now(), c.freshness) {
		return domain.ResolvedRate{}, false
	}
	return rate, true
}

func (c *RedisRateCache) Set(ctx context.Context, rate domain.ResolvedRate) {
	data, err := json.Marshal(redisRateEntry{
		From:       rate.Pair.From,
		To:         rate.Pair.To,
		Rate:       rate.Rate,
		ResolvedAt: rate.ResolvedAt,
		Source:     string(rate.Source),
	})
	if err != nil {
		logrus.WithError(err).WithField("pair", rate.Pair.Key()).Warn("Failed to marshal rate for redis cache")
		return
	}
	if err = c.client.Set(ctx, redisKeyPrefix+rate.Pair.Key(), data, c.freshness).Err(); err != nil {
		logrus.WithError(err).WithField("pair", rate.Pair.Key()).Warn("Redis rate cache write failed")
	}
}

func (c *RedisRateCache) Close() error { return c.client.Close() }
