package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOrderStatus_CanTransitionTo_HappyPath(t *testing.T) {
	require.True(t, StatusAwaitingDeposit.CanTransitionTo(StatusConfirmed))
	require.True(t, StatusConfirmed.CanTransitionTo(StatusProcessing))
	require.True(t, StatusProcessing.CanTransitionTo(StatusCompleted))
}

func TestOrderStatus_CanTransitionTo_ErrorBranchesFromNonTerminal(t *testing.T) {
	for _, from := range []OrderStatus{StatusAwaitingDeposit, StatusConfirmed, StatusProcessing} {
		require.True(t, from.CanTransitionTo(StatusFailed), from)
		require.True(t, from.CanTransitionTo(StatusRefunded), from)
	}
}

func TestOrderStatus_CanTransitionTo_Rejected(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
	}{
		{StatusAwaitingDeposit, StatusProcessing}, // skipping a step
		{StatusAwaitingDeposit, StatusCompleted},
		{StatusConfirmed, StatusAwaitingDeposit}, // backward
		{StatusProcessing, StatusConfirmed},
		{StatusConfirmed, StatusConfirmed}, // self
		{StatusCompleted, StatusRefunded},  // terminal
		{StatusFailed, StatusRefunded},
		{StatusRefunded, StatusFailed},
		{StatusAwaitingDeposit, OrderStatus("paid")},
		{OrderStatus("paid"), StatusConfirmed},
	}
	for _, tc := range cases {
		require.False(t, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestOrder_RateLockExpired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	expiry := now.Add(10 * time.Minute)

	fixed := Order{RateType: RateFixed, RateLockExpiry: &expiry}
	require.False(t, fixed.RateLockExpired(now))
	require.True(t, fixed.RateLockExpired(now.Add(11*time.Minute)))

	float := Order{RateType: RateFloat}
	require.False(t, float.RateLockExpired(now.Add(time.Hour)))
}

func TestParsePair(t *testing.T) {
	p, ok := ParsePair(" btc/rub ")
	require.True(t, ok)
	require.Equal(t, CurrencyPair{From: "BTC", To: "RUB"}, p)
	require.Equal(t, "BTC/RUB", p.Key())
	require.Equal(t, CurrencyPair{From: "RUB", To: "BTC"}, p.Reversed())

	_, ok = ParsePair("BTCRUB")
	require.False(t, ok)
	_, ok = ParsePair("/RUB")
	require.False(t, ok)
}

func TestFetchError_MatchesSentinel(t *testing.T) {
	var err error = &FetchError{Source: "binance", Asset: "BTC", Err: ErrInvalidAmount}
	require.ErrorIs(t, err, ErrFetchFailure)
	require.ErrorIs(t, err, ErrInvalidAmount)
	require.Contains(t, err.Error(), "binance: failed to fetch BTC usd price")
}
