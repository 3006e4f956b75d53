package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cryptoexchange/internal/config"
	"cryptoexchange/internal/domain"

	"github.com/shopspring/decimal"
)

const BybitName = "bybit"

// BybitSource reads the v5 spot tickers endpoint.
type BybitSource struct {
	http        *http.Client
	baseURL     string
	quoteSymbol string
	timeout     time.Duration
}

type bybitTickerResponse struct {
	RetCode int    `json:"retCode"`
	RetMsg  string `json:"retMsg"`
	Result  struct {
		Category string `json:"category"`
		List     []struct {
			Symbol    string `json:"symbol"`
			LastPrice string `json:"lastPrice"`
		} `json:"list"`
	} `json:"result"`
}

func (s *BybitSource) Name() string { return BybitName }

func (s *BybitSource) FetchUSDPrice(ctx context.Context, currency domain.Currency) (decimal.Decimal, error) {
	if currency.IsUSDEquivalent() {
		return one, nil
	}

	u, err := url.Parse(s.baseURL)
	if err != nil {
		return decimal.Zero, fetchFailure(BybitName, currency.Code, fmt.Errorf("failed to parse base URL: %w", err))
	}
	symbol := currency.Code + s.quoteSymbol
	u.Path = strings.TrimSuffix(u.Path, "/") + "/v5/market/tickers"
	u.RawQuery = url.Values{"category": []string{"spot"}, "symbol": []string{symbol}}.Encode()

	reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var body bybitTickerResponse
	if err = getJSON(reqCtx, s.http, u.String(), nil, &body); err != nil {
		return decimal.Zero, fetchFailure(BybitName, currency.Code, err)
	}
	if body.RetCode != 0 {
		return decimal.Zero, fetchFailure(BybitName, currency.Code, fmt.Errorf("api returned retCode %d: %s", body.RetCode, body.RetMsg))
	}

	for _, t := range body.Result.List {
		if t.Symbol != symbol {
			continue
		}
		price, parseErr := parsePrice(t.LastPrice)
		if parseErr != nil {
			return decimal.Zero, fetchFailure(BybitName, currency.Code, parseErr)
		}
		return price, nil
	}
	return decimal.Zero, fetchFailure(BybitName, currency.Code, fmt.Errorf("ticker %q is missing", symbol))
}

func NewBybitSource(httpClient *http.Client, cfg config.ExchangeTicker, timeout time.Duration) *BybitSource {
	return &BybitSource{
		http:        httpClient,
		baseURL:     cfg.BaseURL,
		quoteSymbol: strings.ToUpper(cfg.QuoteSymbol),
		timeout:     timeoutOrDefault(timeout),
	}
}
