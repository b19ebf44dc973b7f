package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr          string
	LogLevel      string
	DatabaseURL   string
	JWTSigningKey string
	JWTIssuer     string
	TxTimeout     time.Duration
	Redis         RedisConfig
	Fraud         FraudConfig
	RateLimit     RateLimitConfig
}

// RedisConfig configures the fraud-signal cache. An empty URL disables it.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	SignalTTL    time.Duration
}

// FraudConfig carries the per-domain linkage rules.
type FraudConfig struct {
	SIMCap                int
	BankCap               int
	SIMVelocityThreshold  int
	BankVelocityThreshold int
	AnomalyWindow         time.Duration
}

// RateLimitConfig sets per-actor request budgets per minute.
type RateLimitConfig struct {
	Disabled       bool
	ReadPerMinute  int
	WritePerMinute int
}

// FromEnv builds a Server config from environment variables so main stays lean.
// Malformed values are reported rather than silently replaced by defaults.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:          envOr("NINHUB_ADDR", ":8080"),
		LogLevel:      envOr("LOG_LEVEL", "info"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSigningKey: os.Getenv("JWT_SIGNING_KEY"),
		JWTIssuer:     envOr("JWT_ISSUER", "ninhub"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		},
	}
	cfg.RateLimit.Disabled = os.Getenv("RATE_LIMIT_DISABLED") == "true"
	if cfg.JWTSigningKey == "" {
		// Use a default for development - should be overridden in production
		cfg.JWTSigningKey = "dev-secret-key-change-in-production"
	}

	var err error
	if cfg.TxTimeout, err = durationEnv("TX_TIMEOUT", 5*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Redis.SignalTTL, err = durationEnv("SIGNAL_CACHE_TTL", 30*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Fraud.AnomalyWindow, err = durationEnv("ANOMALY_WINDOW", time.Hour); err != nil {
		return Server{}, err
	}
	if cfg.Fraud.SIMCap, err = positiveIntEnv("SIM_LINK_CAP", 2); err != nil {
		return Server{}, err
	}
	if cfg.Fraud.BankCap, err = positiveIntEnv("BANK_LINK_CAP", 3); err != nil {
		return Server{}, err
	}
	if cfg.Fraud.SIMVelocityThreshold, err = positiveIntEnv("SIM_VELOCITY_THRESHOLD", 1); err != nil {
		return Server{}, err
	}
	if cfg.Fraud.BankVelocityThreshold, err = positiveIntEnv("BANK_VELOCITY_THRESHOLD", 2); err != nil {
		return Server{}, err
	}
	if cfg.RateLimit.ReadPerMinute, err = positiveIntEnv("RATE_LIMIT_READ_PER_MINUTE", 300); err != nil {
		return Server{}, err
	}
	if cfg.RateLimit.WritePerMinute, err = positiveIntEnv("RATE_LIMIT_WRITE_PER_MINUTE", 60); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return d, nil
}

func positiveIntEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s: must be a positive integer, got %q", key, v)
	}
	return n, nil
}
