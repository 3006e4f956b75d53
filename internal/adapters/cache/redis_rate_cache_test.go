package cache

import (
	"context"
	"testing"
	"time"

	"cryptoexchange/internal/domain"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("redis container tests are skipped in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	return "redis://" + endpoint + "/0"
}

func TestRedisRateCache_SetGetAndFreshness(t *testing.T) {
	url := setupRedis(t)
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(time.Now().UTC().Truncate(time.Second))

	c, err := NewRedisRateCache(ctx, url, 30*time.Second, clock)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	pair := domain.CurrencyPair{From: "USDT", To: "RUB"}
	_, ok := c.Get(ctx, pair)
	require.False(t, ok)

	c.Set(ctx, domain.ResolvedRate{
		Pair:       pair,
		Rate:       decimal.RequireFromString("92.45"),
		ResolvedAt: clock.Now(),
		Source:     domain.SourceDerived,
	})

	got, ok := c.Get(ctx, pair)
	require.True(t, ok)
	require.Equal(t, pair, got.Pair)
	require.True(t, got.Rate.Equal(decimal.RequireFromString("92.45")))
	require.True(t, got.ResolvedAt.Equal(clock.Now()))
	require.Equal(t, domain.SourceDerived, got.Source)

	_, ok = c.Get(ctx, pair.Reversed())
	require.False(t, ok)

	clock.Advance(31 * time.Second)
	_, ok = c.Get(ctx, pair)
	require.False(t, ok)
}

func TestNewRedisRateCache_BadURL(t *testing.T) {
	_, err := NewRedisRateCache(context.Background(), "not a url", time.Second, clockwork.NewFakeClock())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse redis url")
}
