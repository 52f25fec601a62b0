package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RedisConfig holds Redis connection and behavior settings.
type RedisConfig struct {
	URL                string
	DialTimeout        *time.Duration
	ReadTimeout        *time.Duration
	WriteTimeout       *time.Duration
	PoolSize           *int
	MinIdleConns       *int
	MaxRetries         *int
	HealthcheckTimeout time.Duration
	DraftTTL           time.Duration
	EnableOTel         bool
}

// LedgerConfig holds the sheet endpoint and dispatcher settings.
type LedgerConfig struct {
	Endpoint           string
	Timeout            *time.Duration
	QueueSize          int
	BreakerMaxFailures int
	BreakerReset       time.Duration
}

// PaymentConfig holds the payment provider's public key.
type PaymentConfig struct {
	PublicKey string
}

// HTTPConfig holds the address of the order-flow API.
type HTTPConfig struct {
	Addr string
}

// ObservabilityConfig holds the HTTP address for the metrics endpoint.
type ObservabilityConfig struct {
	Addr string
}

// LoadRedis reads Redis config from env.
func LoadRedis() (RedisConfig, error) {
	cfg := RedisConfig{}

	url, err := requiredString("REDIS_URL")
	if err != nil {
		return cfg, err
	}
	cfg.URL = url

	if cfg.DialTimeout, err = optionalDuration("REDIS_DIAL_TIMEOUT"); err != nil {
		return cfg, err
	}
	if cfg.ReadTimeout, err = optionalDuration("REDIS_READ_TIMEOUT"); err != nil {
		return cfg, err
	}
	if cfg.WriteTimeout, err = optionalDuration("REDIS_WRITE_TIMEOUT"); err != nil {
		return cfg, err
	}
	if cfg.PoolSize, err = optionalInt("REDIS_POOL_SIZE"); err != nil {
		return cfg, err
	}
	if cfg.MinIdleConns, err = optionalInt("REDIS_MIN_IDLE_CONNS"); err != nil {
		return cfg, err
	}
	if cfg.MaxRetries, err = optionalInt("REDIS_MAX_RETRIES"); err != nil {
		return cfg, err
	}

	if cfg.HealthcheckTimeout, err = requiredDuration("REDIS_HEALTHCHECK_TIMEOUT"); err != nil {
		return cfg, err
	}

	ttl, err := optionalDuration("REDIS_DRAFT_TTL")
	if err != nil {
		return cfg, err
	}
	if ttl != nil {
		cfg.DraftTTL = *ttl
	}

	if cfg.EnableOTel, err = optionalBool("REDIS_OTEL"); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// LoadLedger reads ledger forwarder config from env.
func LoadLedger() (LedgerConfig, error) {
	cfg := LedgerConfig{}

	endpoint, err := requiredString("LEDGER_ENDPOINT")
	if err != nil {
		return cfg, err
	}
	cfg.Endpoint = endpoint

	if cfg.Timeout, err = optionalDuration("LEDGER_TIMEOUT"); err != nil {
		return cfg, err
	}

	queueSize, err := optionalInt("LEDGER_QUEUE_SIZE")
	if err != nil {
		return cfg, err
	}
	if queueSize != nil {
		cfg.QueueSize = *queueSize
	}

	maxFails, err := optionalInt("LEDGER_BREAKER_MAX_FAILURES")
	if err != nil {
		return cfg, err
	}
	if maxFails != nil {
		cfg.BreakerMaxFailures = *maxFails
	}

	reset, err := optionalDuration("LEDGER_BREAKER_RESET")
	if err != nil {
		return cfg, err
	}
	if reset != nil {
		cfg.BreakerReset = *reset
	}

	return cfg, nil
}

// LoadPayment reads the payment provider config from env.
func LoadPayment() (PaymentConfig, error) {
	key, err := requiredString("PAYSTACK_PUBLIC_KEY")
	if err != nil {
		return PaymentConfig{}, err
	}
	return PaymentConfig{PublicKey: key}, nil
}

// LoadHTTP reads the API listen address from env.
func LoadHTTP() (HTTPConfig, error) {
	addr, err := requiredString("HTTP_ADDR")
	if err != nil {
		return HTTPConfig{}, err
	}
	return HTTPConfig{Addr: addr}, nil
}

// LoadObservability reads the metrics listen address from env.
func LoadObservability() (ObservabilityConfig, error) {
	addr, err := requiredString("OBS_ADDR")
	if err != nil {
		return ObservabilityConfig{}, err
	}
	return ObservabilityConfig{Addr: addr}, nil
}

func requiredString(name string) (string, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", fmt.Errorf("%s is required", name)
	}
	return raw, nil
}

func optionalDuration(name string) (*time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return nil, nil
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if val < 0 {
		return nil, fmt.Errorf("%s must be >= 0", name)
	}
	return &val, nil
}

func requiredDuration(name string) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if val < 0 {
		return 0, fmt.Errorf("%s must be >= 0", name)
	}
	return val, nil
}

func optionalInt(name string) (*int, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return nil, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if val < 0 {
		return nil, fmt.Errorf("%s must be >= 0", name)
	}
	return &val, nil
}

func optionalBool(name string) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, nil
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}
	return val, nil
}
