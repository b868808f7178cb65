package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/paywise/paywise-backend/internal/api"
	"github.com/paywise/paywise-backend/internal/auth"
	"github.com/paywise/paywise-backend/internal/config"
	"github.com/paywise/paywise-backend/internal/db"
	"github.com/paywise/paywise-backend/internal/logger"
	"github.com/paywise/paywise-backend/internal/metrics"
	"github.com/paywise/paywise-backend/internal/repository/postgres"
	"github.com/paywise/paywise-backend/internal/services"
	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	// balances are plain JSON numbers on the wire
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	repos := postgres.NewRepositories(pool)
	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	userSvc := services.NewUserService(repos.Users, tm)
	accountSvc := services.NewAccountService(repos.Accounts)

	metrics.Init()
	r := api.NewRouter(cfg, tm, userSvc, accountSvc)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
