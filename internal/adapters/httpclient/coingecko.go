package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cryptoexchange/internal/config"
	"cryptoexchange/internal/domain"

	"github.com/shopspring/decimal"
)

const CoinGeckoName = "coingecko"

// CoinGeckoSource is the primary aggregator, backed by the /simple/price endpoint.
type CoinGeckoSource struct {
	http     *http.Client
	baseURL  string
	apiKey   string
	assetIDs map[string]string
	timeout  time.Duration
}

func (s *CoinGeckoSource) Name() string { return CoinGeckoName }

func (s *CoinGeckoSource) FetchUSDPrice(ctx context.Context, currency domain.Currency) (decimal.Decimal, error) {
	if currency.IsUSDEquivalent() {
		return one, nil
	}

	id, ok := s.assetIDs[currency.Code]
	if !ok {
		return decimal.Zero, fetchFailure(CoinGeckoName, currency.Code, fmt.Errorf("no asset id mapping"))
	}

	u, err := url.Parse(s.baseURL)
	if err != nil {
		return decimal.Zero, fetchFailure(CoinGeckoName, currency.Code, fmt.Errorf("failed to parse base URL: %w", err))
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/simple/price"
	q := u.Query()
	q.Set("ids", id)
	q.Set("vs_currencies", "usd")
	u.RawQuery = q.Encode()

	var header http.Header
	if s.apiKey != "" {
		header = http.Header{"x-cg-demo-api-key": []string{s.apiKey}}
	}

	reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// {"bitcoin": {"usd": 65000.12}}
	var body map[string]map[string]json.Number
	if err = getJSON(reqCtx, s.http, u.String(), header, &body); err != nil {
		return decimal.Zero, fetchFailure(CoinGeckoName, currency.Code, err)
	}

	raw, ok := body[id]["usd"]
	if !ok {
		return decimal.Zero, fetchFailure(CoinGeckoName, currency.Code, fmt.Errorf("usd price for %q is missing", id))
	}
	price, err := parsePrice(raw.String())
	if err != nil {
		return decimal.Zero, fetchFailure(CoinGeckoName, currency.Code, err)
	}
	return price, nil
}

func NewCoinGeckoSource(httpClient *http.Client, cfg config.CoinGecko, timeout time.Duration) *CoinGeckoSource {
	return &CoinGeckoSource{
		http:     httpClient,
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		assetIDs: cfg.AssetIDs,
		timeout:  timeoutOrDefault(timeout),
	}
}
