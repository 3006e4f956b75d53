package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cryptoexchange/internal/adapters"
	"cryptoexchange/internal/adapters/cache"
	"cryptoexchange/internal/adapters/httpclient"
	"cryptoexchange/internal/adapters/kafka"
	"cryptoexchange/internal/adapters/postgres"
	"cryptoexchange/internal/adapters/websocket"
	"cryptoexchange/internal/api"
	"cryptoexchange/internal/config"
	"cryptoexchange/internal/currency"
	"cryptoexchange/internal/domain"
	"cryptoexchange/internal/metrics"
	"cryptoexchange/internal/order"
	orderhandler "cryptoexchange/internal/order/handler"
	"cryptoexchange/internal/platform/db"
	httpserver "cryptoexchange/internal/platform/http"
	"cryptoexchange/internal/platform/logging"
	"cryptoexchange/internal/rate"
	ratehandler "cryptoexchange/internal/rate/handler"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	logCloser := logging.Setup(appCfg.Logging)
	defer func() { _ = logCloser.Close() }()
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, initial reads)
	startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// DB pool
	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	// Currency catalog
	catalog, err := currency.LoadCatalog(startupCtx, postgres.NewCurrencyRepository(pool))
	if err != nil {
		logrus.WithError(err).Error("Failed to load supported currencies")
		return err
	}
	logrus.WithField("codes", catalog.SupportedCodes()).Info("✅ Supported currencies loaded")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)
	clock := clockwork.NewRealClock()

	// Rate sources in priority order
	sources := newPriceSources(appCfg)

	rateCache, closeCache, err := newRateCache(startupCtx, appCfg, clock)
	if err != nil {
		logrus.WithError(err).Error("Failed to create rate cache")
		return err
	}
	defer closeCache()
	logrus.WithField("driver", appCfg.Rates.CacheDriver).Info("✅ Rate cache ready")

	resolver := rate.NewResolver(
		catalog,
		sources,
		rateCache,
		rate.NewTables(appCfg.Rates.USDMultipliers, appCfg.Rates.Overrides, appCfg.Rates.Fallback),
		clock,
		appMetrics,
		seconds(appCfg.Rates.ResolveDeadlineSeconds),
	)

	// Orders
	references, err := order.NewReferenceGenerator()
	if err != nil {
		return err
	}
	pricer := order.NewPricer(
		resolver,
		catalog,
		order.NewFeeSchedule(appCfg.Pricing),
		clock,
		appMetrics,
		time.Duration(appCfg.Pricing.RateLockMinutes)*time.Minute,
	)
	publisher, closePublisher := newOrderEventPublisher(appCfg.Kafka)
	defer closePublisher()
	orderService := order.NewService(
		catalog,
		pricer,
		postgres.NewOrderRepository(pool),
		publisher,
		order.StaticDepositAddresses(appCfg.Orders.DepositAddresses),
		references,
		clock,
		appMetrics,
	)

	// Rate push channel and background jobs
	hub := websocket.NewHub()
	scheduler := rate.NewScheduler(
		resolver,
		catalog,
		hub,
		watchPairs(appCfg.Rates.WatchPairs),
		rate.Intervals{
			Refresh:       seconds(appCfg.Scheduler.RefreshIntervalSeconds),
			Broadcast:     seconds(appCfg.Scheduler.BroadcastIntervalSeconds),
			CatalogReload: seconds(appCfg.Scheduler.CatalogReloadIntervalSeconds),
		},
		clock,
		appMetrics,
	)
	// Ensure scheduler stops before DB pool closes
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	// Start scheduler tied to root context
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Scheduler activation successful")

	// Handlers and router
	router := api.NewRouter(api.Handlers{
		Rates:   ratehandler.NewRateHandler(catalog, resolver),
		Orders:  orderhandler.NewOrderHandler(orderService),
		RatesWS: hub.ServeWS,
	}, registry)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router, hub.Close); serverErr != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

func newPriceSources(cfg *config.AppConfig) []adapters.PriceSource {
	httpTimeout := seconds(cfg.HTTPClient.TimeoutSeconds)
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}
	sourceTimeout := seconds(cfg.Rates.SourceTimeoutSeconds)

	return []adapters.PriceSource{
		httpclient.NewCoinGeckoSource(baseHTTPClient, cfg.Sources.CoinGecko, sourceTimeout),
		httpclient.NewBinanceSource(baseHTTPClient, cfg.Sources.Binance, sourceTimeout),
		httpclient.NewBybitSource(baseHTTPClient, cfg.Sources.Bybit, sourceTimeout),
	}
}

func newRateCache(ctx context.Context, cfg *config.AppConfig, clock clockwork.Clock) (adapters.RateCache, func(), error) {
	freshness := seconds(cfg.Rates.FreshnessSeconds)
	switch cfg.Rates.CacheDriver {
	case "redis":
		c, err := cache.NewRedisRateCache(ctx, cfg.Redis.URL, freshness, clock)
		if err != nil {
			return nil, nil, err
		}
		return c, func() { _ = c.Close() }, nil
	case "memory", "":
		c, err := cache.NewRateCache(cfg.Rates.CacheMaxItems, freshness, clock)
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown rate cache driver %q", cfg.Rates.CacheDriver)
	}
}

// newOrderEventPublisher returns a nil publisher when no brokers are configured; the order service then only logs events.
func newOrderEventPublisher(cfg config.Kafka) (adapters.OrderEventPublisher, func()) {
	if len(cfg.Brokers) == 0 {
		logrus.Warn("Kafka brokers are not configured, order events will only be logged")
		return nil, func() {}
	}
	p := kafka.NewOrderEventPublisher(cfg.Brokers, cfg.Topic)
	logrus.WithField("topic", cfg.Topic).Info("✅ Kafka order event publisher ready")
	return p, func() {
		if err := p.Close(); err != nil {
			logrus.WithError(err).Error("Failed to close kafka writer")
		}
	}
}

func watchPairs(raw []string) []domain.CurrencyPair {
	pairs := make([]domain.CurrencyPair, 0, len(raw))
	for _, s := range raw {
		pair, ok := domain.ParsePair(s)
		if !ok {
			logrus.WithField("pair", s).Warn("Skipping malformed watch pair")
			continue
		}
		pairs = append(pairs, pair)
	}
	return pairs
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
