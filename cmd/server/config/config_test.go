package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadRedis(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("REDIS_HEALTHCHECK_TIMEOUT", "2s")
	t.Setenv("REDIS_DIAL_TIMEOUT", "500ms")
	t.Setenv("REDIS_POOL_SIZE", "20")
	t.Setenv("REDIS_DRAFT_TTL", "24h")
	t.Setenv("REDIS_OTEL", "true")

	cfg, err := LoadRedis()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.URL != "redis://localhost:6379/0" {
		t.Fatalf("url = %q", cfg.URL)
	}
	if cfg.HealthcheckTimeout != 2*time.Second {
		t.Fatalf("healthcheck timeout = %v", cfg.HealthcheckTimeout)
	}
	if cfg.DialTimeout == nil || *cfg.DialTimeout != 500*time.Millisecond {
		t.Fatalf("dial timeout = %v", cfg.DialTimeout)
	}
	if cfg.PoolSize == nil || *cfg.PoolSize != 20 {
		t.Fatalf("pool size = %v", cfg.PoolSize)
	}
	if cfg.ReadTimeout != nil {
		t.Fatalf("unset read timeout should stay nil, got %v", *cfg.ReadTimeout)
	}
	if cfg.DraftTTL != 24*time.Hour {
		t.Fatalf("draft ttl = %v", cfg.DraftTTL)
	}
	if !cfg.EnableOTel {
		t.Fatal("otel should be enabled")
	}
}

func TestLoadRedisMissingURL(t *testing.T) {
	t.Setenv("REDIS_URL", "")
	t.Setenv("REDIS_HEALTHCHECK_TIMEOUT", "2s")

	if _, err := LoadRedis(); err == nil || !strings.Contains(err.Error(), "REDIS_URL") {
		t.Fatalf("expected missing REDIS_URL error, got %v", err)
	}
}

func TestLoadRedisRejectsBadValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"malformed duration", "REDIS_DIAL_TIMEOUT", "fast"},
		{"negative duration", "REDIS_DIAL_TIMEOUT", "-1s"},
		{"malformed int", "REDIS_POOL_SIZE", "many"},
		{"negative int", "REDIS_POOL_SIZE", "-3"},
		{"malformed bool", "REDIS_OTEL", "yes please"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("REDIS_URL", "redis://localhost:6379/0")
			t.Setenv("REDIS_HEALTHCHECK_TIMEOUT", "2s")
			t.Setenv(tc.key, tc.value)

			if _, err := LoadRedis(); err == nil || !strings.Contains(err.Error(), tc.key) {
				t.Fatalf("expected error naming %s, got %v", tc.key, err)
			}
		})
	}
}

func TestLoadLedger(t *testing.T) {
	t.Setenv("LEDGER_ENDPOINT", "https://sheetdb.io/api/v1/abc123")
	t.Setenv("LEDGER_QUEUE_SIZE", "128")
	t.Setenv("LEDGER_BREAKER_MAX_FAILURES", "3")
	t.Setenv("LEDGER_BREAKER_RESET", "45s")

	cfg, err := LoadLedger()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Endpoint != "https://sheetdb.io/api/v1/abc123" {
		t.Fatalf("endpoint = %q", cfg.Endpoint)
	}
	if cfg.QueueSize != 128 {
		t.Fatalf("queue size = %d", cfg.QueueSize)
	}
	if cfg.BreakerMaxFailures != 3 {
		t.Fatalf("breaker max failures = %d", cfg.BreakerMaxFailures)
	}
	if cfg.BreakerReset != 45*time.Second {
		t.Fatalf("breaker reset = %v", cfg.BreakerReset)
	}
}

func TestLoadLedgerDefaultsWhenUnset(t *testing.T) {
	t.Setenv("LEDGER_ENDPOINT", "https://sheetdb.io/api/v1/abc123")
	t.Setenv("LEDGER_QUEUE_SIZE", "")
	t.Setenv("LEDGER_BREAKER_MAX_FAILURES", "")
	t.Setenv("LEDGER_BREAKER_RESET", "")

	cfg, err := LoadLedger()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// Zero here; the forwarder and breaker apply their own defaults.
	if cfg.QueueSize != 0 || cfg.BreakerMaxFailures != 0 || cfg.BreakerReset != 0 {
		t.Fatalf("cfg = %+v, want zero dispatcher settings", cfg)
	}
}

func TestLoadPayment(t *testing.T) {
	t.Setenv("PAYSTACK_PUBLIC_KEY", "pk_test_abc")

	cfg, err := LoadPayment()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.PublicKey != "pk_test_abc" {
		t.Fatalf("public key = %q", cfg.PublicKey)
	}

	t.Setenv("PAYSTACK_PUBLIC_KEY", "  ")
	if _, err := LoadPayment(); err == nil {
		t.Fatal("expected error for blank public key")
	}
}

func TestLoadAddrs(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("OBS_ADDR", ":9090")

	httpCfg, err := LoadHTTP()
	if err != nil {
		t.Fatalf("load http: %v", err)
	}
	if httpCfg.Addr != ":8080" {
		t.Fatalf("http addr = %q", httpCfg.Addr)
	}

	obsCfg, err := LoadObservability()
	if err != nil {
		t.Fatalf("load observability: %v", err)
	}
	if obsCfg.Addr != ":9090" {
		t.Fatalf("observability addr = %q", obsCfg.Addr)
	}
}
