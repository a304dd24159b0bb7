package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
)

// Cache backends
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config holds application configuration
type Config struct {
	Port                 string
	DBConn               string
	DBEnabled            bool
	LogLevel             string
	ECBURL               string
	BankRatesURL         string
	BankRatesAPIKey      string
	BureauURL            string
	BureauAPIKey         string
	FeedTimeout          time.Duration
	RateCacheTTL         time.Duration
	BureauCacheTTL       time.Duration
	CacheBackend         string
	RedisAddr            string
	RefreshSchedule      string
	AllowCountryFallback bool
	RateLimitPerMinute   int
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DBConn:          getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=mortgage sslmode=disable"),
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		ECBURL:          getEnv("ECB_URL", "https://data-api.ecb.europa.eu/service/data/FM/M.U2.EUR.RT.MM.EURIBOR1YD_.HSTA"),
		BankRatesURL:    getEnv("BANK_RATES_URL", ""),
		BankRatesAPIKey: getEnv("BANK_RATES_API_KEY", ""),
		BureauURL:       getEnv("BUREAU_URL", ""),
		BureauAPIKey:    getEnv("BUREAU_API_KEY", ""),
		CacheBackend:    getEnv("CACHE_BACKEND", CacheMemory),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RefreshSchedule: getEnv("REFRESH_SCHEDULE", "@every 6h"),
	}

	var err error
	if cfg.DBEnabled, err = getEnvBool("DB_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.AllowCountryFallback, err = getEnvBool("ALLOW_COUNTRY_FALLBACK", false); err != nil {
		return nil, err
	}
	if cfg.FeedTimeout, err = getEnvDuration("FEED_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.RateCacheTTL, err = getEnvDuration("RATE_CACHE_TTL", 6*time.Hour); err != nil {
		return nil, err
	}
	if cfg.BureauCacheTTL, err = getEnvDuration("BUREAU_CACHE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerMinute, err = getEnvInt("RATE_LIMIT_PER_MINUTE", 60); err != nil {
		return nil, err
	}

	if cfg.DBEnabled && cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required when DB_ENABLED is set")
	}
	if cfg.CacheBackend != CacheMemory && cfg.CacheBackend != CacheRedis {
		return nil, fmt.Errorf("CACHE_BACKEND must be %q or %q, got %q", CacheMemory, CacheRedis, cfg.CacheBackend)
	}
	if cfg.CacheBackend == CacheRedis && cfg.RedisAddr == "" {
		return nil, fmt.Errorf("REDIS_ADDR is required for the redis cache backend")
	}
	if cfg.FeedTimeout <= 0 {
		return nil, fmt.Errorf("FEED_TIMEOUT must be positive")
	}
	if cfg.RateCacheTTL <= 0 || cfg.BureauCacheTTL <= 0 {
		return nil, fmt.Errorf("cache TTLs must be positive")
	}
	if cfg.RateLimitPerMinute < 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	if _, err := cron.ParseStandard(cfg.RefreshSchedule); err != nil {
		return nil, fmt.Errorf("invalid REFRESH_SCHEDULE %q: %w", cfg.RefreshSchedule, err)
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
