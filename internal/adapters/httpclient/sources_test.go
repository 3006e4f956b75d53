package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"cryptoexchange/internal/config"
	"cryptoexchange/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	btc  = domain.Currency{Code: "BTC", Type: domain.CurrencyCrypto, IsActive: true}
	usdt = domain.Currency{Code: "USDT", Type: domain.CurrencyCrypto, USDPegged: true, IsActive: true}
)

func newJSONServer(t *testing.T, status int, body string, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// --- CoinGecko ---

func TestCoinGeckoSource_Success(t *testing.T) {
	var gotPath, gotIDs, gotVs, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotIDs = r.URL.Query().Get("ids")
		gotVs = r.URL.Query().Get("vs_currencies")
		gotKey = r.Header.Get("x-cg-demo-api-key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"bitcoin": {"usd": 65000.12}}`))
	}))
	t.Cleanup(srv.Close)

	s := NewCoinGeckoSource(srv.Client(), config.CoinGecko{
		BaseURL:  srv.URL + "/api/v3/",
		APIKey:   "secret",
		AssetIDs: map[string]string{"BTC": "bitcoin"},
	}, time.Second)

	price, err := s.FetchUSDPrice(context.Background(), btc)
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("65000.12").Equal(price))
	require.Equal(t, "/api/v3/simple/price", gotPath)
	require.Equal(t, "bitcoin", gotIDs)
	require.Equal(t, "usd", gotVs)
	require.Equal(t, "secret", gotKey)
	require.Equal(t, CoinGeckoName, s.Name())
}

func TestCoinGeckoSource_StablecoinShortCircuits(t *testing.T) {
	var hits int32
	srv := newJSONServer(t, http.StatusOK, `{}`, &hits)
	s := NewCoinGeckoSource(srv.Client(), config.CoinGecko{BaseURL: srv.URL}, time.Second)

	price, err := s.FetchUSDPrice(context.Background(), usdt)
	require.NoError(t, err)
	require.True(t, price.Equal(decimal.NewFromInt(1)))
	require.Zero(t, atomic.LoadInt32(&hits))
}

func TestCoinGeckoSource_Failures(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "bad status", status: http.StatusTooManyRequests, body: `{}`, wantMsg: "unexpected status code 429"},
		{name: "malformed json", status: http.StatusOK, body: `{`, wantMsg: "failed to decode response"},
		{name: "missing asset", status: http.StatusOK, body: `{"ethereum": {"usd": 3000}}`, wantMsg: "usd price for \"bitcoin\" is missing"},
		{name: "missing usd field", status: http.StatusOK, body: `{"bitcoin": {"eur": 60000}}`, wantMsg: "is missing"},
		{name: "zero price", status: http.StatusOK, body: `{"bitcoin": {"usd": 0}}`, wantMsg: "is not positive"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newJSONServer(t, tc.status, tc.body, nil)
			s := NewCoinGeckoSource(srv.Client(), config.CoinGecko{
				BaseURL:  srv.URL,
				AssetIDs: map[string]string{"BTC": "bitcoin"},
			}, time.Second)

			_, err := s.FetchUSDPrice(context.Background(), btc)
			require.ErrorIs(t, err, domain.ErrFetchFailure)
			require.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestCoinGeckoSource_UnmappedAsset(t *testing.T) {
	var hits int32
	srv := newJSONServer(t, http.StatusOK, `{}`, &hits)
	s := NewCoinGeckoSource(srv.Client(), config.CoinGecko{BaseURL: srv.URL}, time.Second)

	_, err := s.FetchUSDPrice(context.Background(), btc)
	require.ErrorIs(t, err, domain.ErrFetchFailure)
	require.Contains(t, err.Error(), "no asset id mapping")
	require.Zero(t, atomic.LoadInt32(&hits))
}

func TestCoinGeckoSource_TimeoutIsFetchFailure(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() { close(release); srv.Close() })

	s := NewCoinGeckoSource(srv.Client(), config.CoinGecko{
		BaseURL:  srv.URL,
		AssetIDs: map[string]string{"BTC": "bitcoin"},
	}, 50*time.Millisecond)

	start := time.Now()
	_, err := s.FetchUSDPrice(context.Background(), btc)
	require.ErrorIs(t, err, domain.ErrFetchFailure)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), 2*time.Second)
}

func TestNewCoinGeckoSource_DefaultsTimeout(t *testing.T) {
	s := NewCoinGeckoSource(http.DefaultClient, config.CoinGecko{}, 0)
	require.Equal(t, 5*time.Second, s.timeout)
}

// --- Binance ---

func TestBinanceSource_Success(t *testing.T) {
	var gotPath, gotSymbol string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSymbol = r.URL.Query().Get("symbol")
		_, _ = w.Write([]byte(`{"symbol": "BTCUSDT", "price": "64999.50000000"}`))
	}))
	t.Cleanup(srv.Close)

	s := NewBinanceSource(srv.Client(), config.ExchangeTicker{BaseURL: srv.URL, QuoteSymbol: "usdt"}, time.Second)

	price, err := s.FetchUSDPrice(context.Background(), btc)
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("64999.5").Equal(price))
	require.Equal(t, "/api/v3/ticker/price", gotPath)
	require.Equal(t, "BTCUSDT", gotSymbol)
}

func TestBinanceSource_Failures(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "invalid symbol", status: http.StatusBadRequest, body: `{"code": -1121, "msg": "Invalid symbol."}`, wantMsg: "unexpected status code 400"},
		{name: "symbol mismatch", status: http.StatusOK, body: `{"symbol": "ETHUSDT", "price": "3000"}`, wantMsg: "unexpected symbol"},
		{name: "missing price", status: http.StatusOK, body: `{"symbol": "BTCUSDT"}`, wantMsg: "price field is missing"},
		{name: "garbage price", status: http.StatusOK, body: `{"symbol": "BTCUSDT", "price": "n/a"}`, wantMsg: "failed to parse price"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newJSONServer(t, tc.status, tc.body, nil)
			s := NewBinanceSource(srv.Client(), config.ExchangeTicker{BaseURL: srv.URL, QuoteSymbol: "USDT"}, time.Second)

			_, err := s.FetchUSDPrice(context.Background(), btc)
			require.ErrorIs(t, err, domain.ErrFetchFailure)
			require.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

// --- Bybit ---

func TestBybitSource_Success(t *testing.T) {
	var gotCategory, gotSymbol string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCategory = r.URL.Query().Get("category")
		gotSymbol = r.URL.Query().Get("symbol")
		_, _ = w.Write([]byte(`{
			"retCode": 0,
			"retMsg": "OK",
			"result": {"category": "spot", "list": [{"symbol": "BTCUSDT", "lastPrice": "65010.2"}]}
		}`))
	}))
	t.Cleanup(srv.Close)

	s := NewBybitSource(srv.Client(), config.ExchangeTicker{BaseURL: srv.URL, QuoteSymbol: "USDT"}, time.Second)

	price, err := s.FetchUSDPrice(context.Background(), btc)
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("65010.2").Equal(price))
	require.Equal(t, "spot", gotCategory)
	require.Equal(t, "BTCUSDT", gotSymbol)
}

func TestBybitSource_Failures(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "ret code", body: `{"retCode": 10001, "retMsg": "params error"}`, wantMsg: "api returned retCode 10001: params error"},
		{name: "empty list", body: `{"retCode": 0, "result": {"list": []}}`, wantMsg: "ticker \"BTCUSDT\" is missing"},
		{name: "negative price", body: `{"retCode": 0, "result": {"list": [{"symbol": "BTCUSDT", "lastPrice": "-1"}]}}`, wantMsg: "is not positive"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newJSONServer(t, http.StatusOK, tc.body, nil)
			s := NewBybitSource(srv.Client(), config.ExchangeTicker{BaseURL: srv.URL, QuoteSymbol: "USDT"}, time.Second)

			_, err := s.FetchUSDPrice(context.Background(), btc)
			require.ErrorIs(t, err, domain.ErrFetchFailure)
			require.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestBybitSource_BaseURLParseError(t *testing.T) {
	s := NewBybitSource(&http.Client{}, config.ExchangeTicker{BaseURL: "http://::1]", QuoteSymbol: "USDT"}, time.Second)
	_, err := s.FetchUSDPrice(context.Background(), btc)
	require.ErrorIs(t, err, domain.ErrFetchFailure)
	require.Contains(t, err.Error(), "failed to parse base URL")
}
