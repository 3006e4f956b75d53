package rate

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"cryptoexchange/internal/adapters"
	"cryptoexchange/internal/domain"
	"cryptoexchange/internal/metrics"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockResolving struct{ mock.Mock }

func (m *MockResolving) Resolve(ctx context.Context, from, to string) (domain.ResolvedRate, error) {
	args := m.Called(ctx, from, to)
	r, _ := args.Get(0).(domain.ResolvedRate)
	return r, args.Error(1)
}

func (m *MockResolving) Refresh(ctx context.Context, from, to string) (domain.ResolvedRate, error) {
	args := m.Called(ctx, from, to)
	r, _ := args.Get(0).(domain.ResolvedRate)
	return r, args.Error(1)
}

type MockBroadcaster struct{ mock.Mock }

func (m *MockBroadcaster) Broadcast(ctx context.Context, payload any) int {
	args := m.Called(ctx, payload)
	return args.Int(0)
}

type MockCatalogReloader struct{ mock.Mock }

func (m *MockCatalogReloader) Reload(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var watchPairs = []domain.CurrencyPair{
	{From: "BTC", To: "RUB"},
	{From: "USDT", To: "RUB"},
	{From: "ETH", To: "RUB"},
}

func resolved(from, to string, value string, source domain.RateSource) domain.ResolvedRate {
	return domain.ResolvedRate{
		Pair:       domain.CurrencyPair{From: from, To: to},
		Rate:       decimal.RequireFromString(value),
		ResolvedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Source:     source,
	}
}

func newTestScheduler(resolver Resolving, catalog CatalogReloader, b *MockBroadcaster, intervals Intervals) *Scheduler {
	var broadcaster adapters.RateBroadcaster
	if b != nil {
		broadcaster = b
	}
	return NewScheduler(resolver, catalog, broadcaster, watchPairs, intervals, clockwork.NewFakeClock(), metrics.New(prometheus.NewRegistry()))
}

// --- lifecycle ---

func TestNewScheduler_Constructs(t *testing.T) {
	s := newTestScheduler(new(MockResolving), nil, nil, Intervals{})
	require.NotNil(t, s)
	require.False(t, s.running())
}

func TestNewScheduler_DefaultsIntervalsWhenInvalid(t *testing.T) {
	s := newTestScheduler(new(MockResolving), nil, nil, Intervals{Refresh: -1})
	require.Equal(t, 60*time.Second, s.intervals.Refresh)
	require.Equal(t, 15*time.Minute, s.intervals.Broadcast)
	require.Equal(t, 5*time.Minute, s.intervals.CatalogReload)
}

func TestNewScheduler_UsesProvidedIntervals(t *testing.T) {
	s := newTestScheduler(new(MockResolving), nil, nil, Intervals{Refresh: 42 * time.Second, Broadcast: time.Minute, CatalogReload: time.Hour})
	require.Equal(t, 42*time.Second, s.intervals.Refresh)
	require.Equal(t, time.Minute, s.intervals.Broadcast)
	require.Equal(t, time.Hour, s.intervals.CatalogReload)
}

func TestScheduler_Shutdown_NoScheduler_ReturnsNil(t *testing.T) {
	s := newTestScheduler(new(MockResolving), nil, nil, Intervals{})
	require.NoError(t, s.Shutdown())
	require.False(t, s.running())
}

func TestScheduler_Start_And_ContextCancel_ShutsDown(t *testing.T) {
	s := newTestScheduler(new(MockResolving), new(MockCatalogReloader), new(MockBroadcaster), Intervals{})
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, s.Start(ctx))
	require.True(t, s.running())

	cancel()

	require.Eventually(t, func() bool { return !s.running() }, 2*time.Second, 10*time.Millisecond,
		"expected scheduler to be shutdown after ctx cancel")
}

func TestScheduler_Shutdown_AfterStart_Idempotent(t *testing.T) {
	s := newTestScheduler(new(MockResolving), nil, new(MockBroadcaster), Intervals{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	require.True(t, s.running())

	require.NoError(t, s.Shutdown())
	require.False(t, s.running())

	require.NoError(t, s.Shutdown())
}

// --- jobs ---

func TestRefreshRates_RefreshesAllPairs(t *testing.T) {
	resolver := new(MockResolving)
	resolver.On("Refresh", mock.Anything, "BTC", "RUB").Return(resolved("BTC", "RUB", "5850000", domain.SourceDerived), nil).Once()
	resolver.On("Refresh", mock.Anything, "USDT", "RUB").Return(resolved("USDT", "RUB", "95", domain.SourceOverride), nil).Once()
	resolver.On("Refresh", mock.Anything, "ETH", "RUB").Return(resolved("ETH", "RUB", "1", domain.SourceUnknown), nil).Once()

	refreshed := RefreshRates(context.Background(), "exec-1", resolver, watchPairs)

	require.Equal(t, 2, refreshed, "degraded rates are not counted")
	resolver.AssertExpectations(t)
}

func TestRefreshRates_ErrorsAreSkipped(t *testing.T) {
	resolver := new(MockResolving)
	resolver.On("Refresh", mock.Anything, "BTC", "RUB").Return(domain.ResolvedRate{}, domain.ErrCurrencyNotFound).Once()
	resolver.On("Refresh", mock.Anything, "USDT", "RUB").Return(resolved("USDT", "RUB", "95", domain.SourceOverride), nil).Once()
	resolver.On("Refresh", mock.Anything, "ETH", "RUB").Return(resolved("ETH", "RUB", "270000", domain.SourceDerived), nil).Once()

	require.Equal(t, 2, RefreshRates(context.Background(), "exec-2", resolver, watchPairs))
	resolver.AssertExpectations(t)
}

func TestRefreshRates_NoPairs(t *testing.T) {
	resolver := new(MockResolving)
	require.Zero(t, RefreshRates(context.Background(), "exec-3", resolver, nil))
	resolver.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything, mock.Anything)
}

func TestRefreshRates_RunsConcurrently(t *testing.T) {
	var inFlight, peak int32
	resolver := new(MockResolving)
	resolver.On("Refresh", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(50 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
		}).
		Return(resolved("BTC", "RUB", "1", domain.SourceDerived), nil)

	RefreshRates(context.Background(), "exec-4", resolver, watchPairs)

	require.Greater(t, atomic.LoadInt32(&peak), int32(1))
	resolver.AssertNumberOfCalls(t, "Refresh", len(watchPairs))
}

func TestBroadcastRates_PushesViews(t *testing.T) {
	resolver := new(MockResolving)
	btcRub := resolved("BTC", "RUB", "5850000", domain.SourceDerived)
	usdtRub := resolved("USDT", "RUB", "95", domain.SourceOverride)
	resolver.On("Resolve", mock.Anything, "BTC", "RUB").Return(btcRub, nil).Once()
	resolver.On("Resolve", mock.Anything, "USDT", "RUB").Return(usdtRub, nil).Once()
	resolver.On("Resolve", mock.Anything, "ETH", "RUB").Return(domain.ResolvedRate{}, errors.New("boom")).Once()

	broadcaster := new(MockBroadcaster)
	broadcaster.On("Broadcast", mock.Anything, []View{NewView(btcRub), NewView(usdtRub)}).Return(3).Once()

	reached := BroadcastRates(context.Background(), "exec-5", resolver, broadcaster, watchPairs)

	require.Equal(t, 3, reached)
	resolver.AssertExpectations(t)
	broadcaster.AssertExpectations(t)
}

func TestBroadcastRates_NothingResolved_SkipsBroadcast(t *testing.T) {
	resolver := new(MockResolving)
	resolver.On("Resolve", mock.Anything, mock.Anything, mock.Anything).Return(domain.ResolvedRate{}, domain.ErrCurrencyNotFound)
	broadcaster := new(MockBroadcaster)

	require.Zero(t, BroadcastRates(context.Background(), "exec-6", resolver, broadcaster, watchPairs))
	broadcaster.AssertNotCalled(t, "Broadcast", mock.Anything, mock.Anything)
}

func TestScheduler_BroadcastJob_RecordsRecipients(t *testing.T) {
	resolver := new(MockResolving)
	resolver.On("Resolve", mock.Anything, mock.Anything, mock.Anything).Return(resolved("BTC", "RUB", "5850000", domain.SourceDerived), nil)
	broadcaster := new(MockBroadcaster)
	broadcaster.On("Broadcast", mock.Anything, mock.Anything).Return(7).Once()

	s := newTestScheduler(resolver, nil, broadcaster, Intervals{})
	s.broadcastJob(context.Background())

	require.Equal(t, float64(7), testutil.ToFloat64(s.metrics.BroadcastRecipientsLast))
}

func TestScheduler_CatalogReloadJob(t *testing.T) {
	catalog := new(MockCatalogReloader)
	catalog.On("Reload", mock.Anything).Return(errors.New("db down")).Once()

	s := newTestScheduler(new(MockResolving), catalog, nil, Intervals{})
	s.catalogReloadJob(context.Background())

	catalog.AssertExpectations(t)
}
