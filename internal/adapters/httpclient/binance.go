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

const BinanceName = "binance"

// BinanceSource reads the spot ticker of <ASSET><quote>, quote being a USD stablecoin.
type BinanceSource struct {
	http        *http.Client
	baseURL     string
	quoteSymbol string
	timeout     time.Duration
}

type binanceTicker struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

func (s *BinanceSource) Name() string { return BinanceName }

func (s *BinanceSource) FetchUSDPrice(ctx context.Context, currency domain.Currency) (decimal.Decimal, error) {
	if currency.IsUSDEquivalent() {
		return one, nil
	}

	u, err := url.Parse(s.baseURL)
	if err != nil {
		return decimal.Zero, fetchFailure(BinanceName, currency.Code, fmt.Errorf("failed to parse base URL: %w", err))
	}
	symbol := currency.Code + s.quoteSymbol
	u.Path = strings.TrimSuffix(u.Path, "/") + "/api/v3/ticker/price"
	u.RawQuery = url.Values{"symbol": []string{symbol}}.Encode()

	reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var body binanceTicker
	if err = getJSON(reqCtx, s.http, u.String(), nil, &body); err != nil {
		return decimal.Zero, fetchFailure(BinanceName, currency.Code, err)
	}
	if body.Symbol != symbol {
		return decimal.Zero, fetchFailure(BinanceName, currency.Code, fmt.Errorf("unexpected symbol %q in response", body.Symbol))
	}

	price, err := parsePrice(body.Price)
	if err != nil {
		return decimal.Zero, fetchFailure(BinanceName, currency.Code, err)
	}
	return price, nil
}

func NewBinanceSource(httpClient *http.Client, cfg config.ExchangeTicker, timeout time.Duration) *BinanceSource {
	return &BinanceSource{
		http:        httpClient,
		baseURL:     cfg.BaseURL,
		quoteSymbol: strings.ToUpper(cfg.QuoteSymbol),
		timeout:     timeoutOrDefault(timeout),
	}
}
