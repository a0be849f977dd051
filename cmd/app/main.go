// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"telegram-stars-store/internal/application"
	"telegram-stars-store/internal/config"
	pg "telegram-stars-store/internal/infra/db/postgres"
	"telegram-stars-store/internal/infra/logging"
	"telegram-stars-store/internal/infra/metrics"
	red "telegram-stars-store/internal/infra/redis"
	"telegram-stars-store/internal/infra/sched"
	tele "telegram-stars-store/internal/infra/telegram"
	"telegram-stars-store/internal/infra/web"
	"telegram-stars-store/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()
	if err := pg.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("schema: %v", err)
	}

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()
	stateRepo := red.NewStateRepo(redisClient, cfg.Redis.StateTTL)
	rateLimiter := red.NewRateLimiter(redisClient)

	// ---- Repositories ----
	txManager := pg.NewTxManager(pool)
	productRepo := pg.NewProductRepo(pool)
	paymentRepo := pg.NewPaymentRepo(pool)
	subRepo := pg.NewSubscriptionRepo(pool)
	donationRepo := pg.NewPendingDonationRepo(pool)
	refundRepo := pg.NewRefundRepo(pool)

	// ---- Use cases ----
	catalogUC := usecase.NewCatalogUseCase(productRepo, logger)
	invoiceUC := usecase.NewInvoiceUseCase(productRepo, donationRepo, cfg.Payment.Currency, cfg.Payment.MinAmount, cfg.Payment.MaxAmount, logger)
	paymentUC := usecase.NewPaymentUseCase(txManager, paymentRepo, productRepo, subRepo, donationRepo, logger)
	entitlementUC := usecase.NewEntitlementUseCase(subRepo)
	refundUC := usecase.NewRefundUseCase(txManager, paymentRepo, refundRepo, logger)
	statsUC := usecase.NewStatsUseCase(paymentRepo, subRepo)

	// ---- Facade ----
	facade := application.NewBotFacade(catalogUC, invoiceUC, paymentUC, entitlementUC, refundUC, statsUC, stateRepo, cfg.Bot.AdminIDs, logger)

	// ---- Telegram ----
	botAdapter, err := tele.NewRealBotAdapter(cfg, facade, rateLimiter, logger)
	if err != nil {
		log.Fatalf("telegram: %v", err)
	}
	go func() {
		if err := botAdapter.StartPolling(ctx); err != nil {
			logger.Error().Err(err).Msg("telegram polling stopped")
		}
	}()

	// ---- Admin HTTP server ----
	adminSrv := web.NewServer(cfg.Admin, statsUC, catalogUC, refundUC, logger)
	go func() {
		if err := adminSrv.Start(ctx); err != nil {
			logger.Error().Err(err).Msg("admin server stopped")
		}
	}()

	// ---- Donation reaper ----
	reaper := sched.NewDonationReaper(cfg.Reaper.Interval, cfg.Reaper.PendingTTL, donationRepo, logger)
	go func() { _ = reaper.Run(ctx) }()

	logger.Info().Msg("bot is up")

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()
	botAdapter.StopPolling()
}
