// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vendor-subscription-checkout/internal/config"
	"vendor-subscription-checkout/internal/domain/ports/repository"
	payAdapters "vendor-subscription-checkout/internal/infra/adapters/payment"
	"vendor-subscription-checkout/internal/infra/api"
	pg "vendor-subscription-checkout/internal/infra/db/postgres"
	"vendor-subscription-checkout/internal/infra/logging"
	"vendor-subscription-checkout/internal/infra/memory"
	"vendor-subscription-checkout/internal/infra/metrics"
	red "vendor-subscription-checkout/internal/infra/redis"
	"vendor-subscription-checkout/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file (optional)")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, unredacted ids)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("[DEV MODE] Enabled")
	}
	metrics.MustRegister()

	// ---- Subscription store ----
	var subs repository.SubscriptionRepository
	switch cfg.Store.Backend {
	case "redis":
		redisClient, err := red.NewClient(ctx, &cfg.Store.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		subs = red.NewSubscriptionStore(redisClient, cfg.Store.Redis.Key)
	case "postgres":
		pool, err := pg.NewPgxPool(ctx, cfg.Store.Postgres.URL, cfg.Store.Postgres.MaxConns)
		if err != nil {
			logger.Fatal().Err(err).Msg("postgres")
		}
		defer pool.Close()
		subs = pg.NewSubscriptionRepo(pool)
	default:
		subs = memory.NewSubscriptionStore()
	}
	logger.Info().Str("backend", cfg.Store.Backend).Msg("subscription store ready")

	// ---- Payment gateway ----
	gw, err := payAdapters.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret, cfg.Stripe.APIURL, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("stripe gateway")
	}

	// ---- Use cases ----
	checkoutUC := usecase.NewCheckoutUseCase(gw, cfg.Payment.PlatformFeeBps, cfg.Runtime.Dev, logger)
	webhookUC := usecase.NewWebhookUseCase(gw, subs, logger)
	salesUC := usecase.NewSalesUseCase(logger)

	// ---- HTTP server ----
	srv := api.NewServer(checkoutUC, webhookUC, salesUC, api.Options{
		TrustProxy:  cfg.HTTP.TrustProxy,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	}, logger)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
			cancel()
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigc:
		logger.Info().Msg("shutdown requested")
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
}
