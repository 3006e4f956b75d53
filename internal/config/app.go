package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable pool_max_conns=10",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type Logging struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type Rates struct {
	CacheDriver            string             `mapstructure:"cache_driver"`
	CacheMaxItems          int64              `mapstructure:"cache_max_items"`
	FreshnessSeconds       int                `mapstructure:"freshness_seconds"`
	SourceTimeoutSeconds   int                `mapstructure:"source_timeout_seconds"`
	ResolveDeadlineSeconds int                `mapstructure:"resolve_deadline_seconds"`
	USDMultipliers         map[string]float64 `mapstructure:"usd_multipliers"`
	Overrides              map[string]float64 `mapstructure:"overrides"`
	Fallback               map[string]float64 `mapstructure:"fallback"`
	WatchPairs             []string           `mapstructure:"watch_pairs"`
}

type CoinGecko struct {
	BaseURL  string            `mapstructure:"base_url"`
	APIKey   string            `mapstructure:"api_key"`
	AssetIDs map[string]string `mapstructure:"asset_ids"`
}

type ExchangeTicker struct {
	BaseURL     string `mapstructure:"base_url"`
	QuoteSymbol string `mapstructure:"quote_symbol"`
}

type Sources struct {
	CoinGecko CoinGecko      `mapstructure:"coingecko"`
	Binance   ExchangeTicker `mapstructure:"binance"`
	Bybit     ExchangeTicker `mapstructure:"bybit"`
}

type Scheduler struct {
	RefreshIntervalSeconds       int `mapstructure:"refresh_interval_seconds"`
	BroadcastIntervalSeconds     int `mapstructure:"broadcast_interval_seconds"`
	CatalogReloadIntervalSeconds int `mapstructure:"catalog_reload_interval_seconds"`
}

type Pricing struct {
	PlatformFeePercent float64            `mapstructure:"platform_fee_percent"`
	StableNetworkFee   float64            `mapstructure:"stable_network_fee"`
	DefaultNetworkFee  float64            `mapstructure:"default_network_fee"`
	NetworkFees        map[string]float64 `mapstructure:"network_fees"`
	RateLockMinutes    int                `mapstructure:"rate_lock_minutes"`
}

type Orders struct {
	DepositAddresses map[string]string `mapstructure:"deposit_addresses"`
}

type Redis struct {
	URL string `mapstructure:"url"`
}

type Kafka struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	DbServer   DbServer   `mapstructure:"db_server"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	Logging    Logging    `mapstructure:"logging"`
	Rates      Rates      `mapstructure:"rates"`
	Sources    Sources    `mapstructure:"sources"`
	Scheduler  Scheduler  `mapstructure:"scheduler"`
	Pricing    Pricing    `mapstructure:"pricing"`
	Orders     Orders     `mapstructure:"orders"`
	Redis      Redis      `mapstructure:"redis"`
	Kafka      Kafka      `mapstructure:"kafka"`
}

func Init() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigFile("config.yaml")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	return load(v)
}

func load(v *viper.Viper) (*AppConfig, error) {
	var cfg AppConfig

	setDefaults(v)
	bindEnv(v)

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// viper lowercases map keys, currency codes are upper case everywhere else
	cfg.Rates.USDMultipliers = upperKeys(cfg.Rates.USDMultipliers)
	cfg.Rates.Overrides = upperKeys(cfg.Rates.Overrides)
	cfg.Rates.Fallback = upperKeys(cfg.Rates.Fallback)
	cfg.Sources.CoinGecko.AssetIDs = upperKeys(cfg.Sources.CoinGecko.AssetIDs)
	cfg.Pricing.NetworkFees = upperKeys(cfg.Pricing.NetworkFees)
	cfg.Orders.DepositAddresses = upperKeys(cfg.Orders.DepositAddresses)

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_server.port", "8080")
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 28)

	v.SetDefault("rates.cache_driver", "memory")
	v.SetDefault("rates.cache_max_items", 4096)
	v.SetDefault("rates.freshness_seconds", 30)
	v.SetDefault("rates.source_timeout_seconds", 5)
	v.SetDefault("rates.resolve_deadline_seconds", 10)

	v.SetDefault("sources.coingecko.base_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("sources.binance.base_url", "https://api.binance.com")
	v.SetDefault("sources.binance.quote_symbol", "USDT")
	v.SetDefault("sources.bybit.base_url", "https://api.bybit.com")
	v.SetDefault("sources.bybit.quote_symbol", "USDT")

	v.SetDefault("scheduler.refresh_interval_seconds", 60)
	v.SetDefault("scheduler.broadcast_interval_seconds", 900)
	v.SetDefault("scheduler.catalog_reload_interval_seconds", 300)

	v.SetDefault("pricing.platform_fee_percent", 0.5)
	v.SetDefault("pricing.stable_network_fee", 2)
	v.SetDefault("pricing.default_network_fee", 0.0001)
	v.SetDefault("pricing.rate_lock_minutes", 10)

	v.SetDefault("kafka.topic", "exchange.orders")
}

func bindEnv(v *viper.Viper) {
	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	_ = v.BindEnv("http_server.port", "HTTP_PORT")
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")

	_ = v.BindEnv("sources.coingecko.api_key", "COINGECKO_API_KEY")
	_ = v.BindEnv("rates.cache_driver", "RATES_CACHE_DRIVER")
	_ = v.BindEnv("redis.url", "REDIS_URL")
	_ = v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
}

func upperKeys[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	return out
}
