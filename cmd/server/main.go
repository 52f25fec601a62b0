package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"atelier/cmd/server/config"
	"atelier/internal/httpapi"
	"atelier/internal/ledger"
	"atelier/internal/observability"
	"atelier/internal/order"
	"atelier/internal/payment"
	"atelier/internal/realtime"
	"atelier/internal/resume"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func run(ctx context.Context) error {
	store, cleanupStore, err := buildDraftStore(ctx, log.Printf)
	if err != nil {
		return err
	}
	defer cleanupStore()

	metrics := observability.NewMetrics()

	hub := realtime.NewHub()
	go hub.Run()
	defer hub.Close()

	forwarder, err := buildForwarder(hub, metrics)
	if err != nil {
		return err
	}
	defer forwarder.Close()

	paymentCfg, err := config.LoadPayment()
	if err != nil {
		return err
	}
	gateway := payment.NewGateway(paymentCfg.PublicKey)

	orders := order.NewService(store, forwarder, gateway, nil)
	resumes := resume.NewController(store, orders, metrics.AddResumeOffer)

	httpCfg, err := config.LoadHTTP()
	if err != nil {
		return err
	}
	api := httpapi.New(orders, resumes, hub, metrics, log.Printf)
	srv := &http.Server{
		Addr:    httpCfg.Addr,
		Handler: api.Router(),
	}

	obsSrv, err := startObservabilityServer(metrics)
	if err != nil {
		return err
	}

	log.Printf("order flow API listening on %s", httpCfg.Addr)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		if obsSrv != nil {
			_ = obsSrv.Shutdown(shutdownCtx)
		}
		return nil
	case err := <-errCh:
		return err
	}
}

func buildForwarder(hub *realtime.Hub, metrics *observability.Metrics) (*ledger.Forwarder, error) {
	cfg, err := config.LoadLedger()
	if err != nil {
		return nil, err
	}

	var client *http.Client
	if cfg.Timeout != nil {
		client = &http.Client{Timeout: *cfg.Timeout}
	}

	sink := ledger.NewMultiSink(
		ledger.NewHTTPSink(cfg.Endpoint, client),
		ledger.NewBroadcastSink(hub),
	)

	return ledger.NewForwarder(ledger.ForwarderConfig{
		Sink: sink,
		Breaker: ledger.NewBreaker(ledger.BreakerConfig{
			MaxFailures:  cfg.BreakerMaxFailures,
			ResetTimeout: cfg.BreakerReset,
		}),
		QueueSize: cfg.QueueSize,
		Counters:  metrics,
		Logf:      log.Printf,
	}), nil
}

func startObservabilityServer(metrics *observability.Metrics) (*http.Server, error) {
	cfg, err := config.LoadObservability()
	if err != nil {
		return nil, err
	}
	srv := observability.NewServer(cfg.Addr, metrics)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("observability server: %v", err)
		}
	}()
	return srv, nil
}
