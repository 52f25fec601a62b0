package main

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"atelier/cmd/server/config"
	draftdb "atelier/internal/db/draft"
	"atelier/internal/order"
)

var openDraftDB = func(driver, dsn string) (*sql.DB, error) {
	return sql.Open(driver, dsn)
}

// buildDraftStore wires the durable draft store: Redis when REDIS_URL is set,
// else Postgres when DATABASE_URL is set, else an in-memory store. A backend
// that fails to initialize falls through to the next with a log line; drafts
// must survive a restart only when a durable backend is actually available.
func buildDraftStore(ctx context.Context, logf func(format string, args ...any)) (order.DraftStore, func(), error) {
	if strings.TrimSpace(os.Getenv("REDIS_URL")) != "" {
		store, cleanup, err := buildRedisStore(ctx)
		if err == nil {
			logf("redis draft store enabled")
			return store, cleanup, nil
		}
		logf("redis draft store init failed, falling back: %v", err)
	}

	if dsn := strings.TrimSpace(os.Getenv("DATABASE_URL")); dsn != "" {
		store, cleanup, err := buildPostgresStore(ctx, dsn)
		if err == nil {
			logf("postgres draft store enabled")
			return store, cleanup, nil
		}
		logf("postgres draft store init failed, falling back: %v", err)
	}

	logf("no durable backend configured, drafts held in memory")
	return order.NewMemoryStore(), func() {}, nil
}

func buildRedisStore(ctx context.Context) (order.DraftStore, func(), error) {
	cfg, err := config.LoadRedis()
	if err != nil {
		return nil, nil, err
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, nil, err
	}
	if cfg.DialTimeout != nil {
		opts.DialTimeout = *cfg.DialTimeout
	}
	if cfg.ReadTimeout != nil {
		opts.ReadTimeout = *cfg.ReadTimeout
	}
	if cfg.WriteTimeout != nil {
		opts.WriteTimeout = *cfg.WriteTimeout
	}
	if cfg.PoolSize != nil {
		opts.PoolSize = *cfg.PoolSize
	}
	if cfg.MinIdleConns != nil {
		opts.MinIdleConns = *cfg.MinIdleConns
	}
	if cfg.MaxRetries != nil {
		opts.MaxRetries = *cfg.MaxRetries
	}

	client := redis.NewClient(opts)
	if cfg.EnableOTel {
		if err := redisotel.InstrumentTracing(client); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		if err := redisotel.InstrumentMetrics(client); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
	}

	pingCtx := ctx
	if cfg.HealthcheckTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(pingCtx, cfg.HealthcheckTimeout)
		defer cancel()
	}
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	cleanup := func() { _ = client.Close() }
	return draftdb.NewRedisStore(client, cfg.DraftTTL), cleanup, nil
}

func buildPostgresStore(ctx context.Context, dsn string) (order.DraftStore, func(), error) {
	db, err := openDraftDB("pgx", dsn)
	if err != nil {
		return nil, nil, err
	}

	setupCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	store, err := draftdb.NewPostgresStoreWithSchema(setupCtx, db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	cleanup := func() { _ = db.Close() }
	return store, cleanup, nil
}
