package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/commercelab/storefront/internal/config"
	"github.com/commercelab/storefront/internal/handlers"
	"github.com/commercelab/storefront/internal/pkg/logger"
	"github.com/commercelab/storefront/internal/repository"
	"github.com/commercelab/storefront/internal/server"
	"github.com/commercelab/storefront/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited", "error", err)
	}
}

func run(cfg config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.PostgresDSN())
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}
	log.Info("connected to postgres", "host", cfg.PostgresHost, "database", cfg.PostgresName)

	if err := repository.Migrate(ctx, pool); err != nil {
		return err
	}

	customerRepo := repository.NewCustomer(pool)
	productRepo := repository.NewProduct(pool)
	orderRepo := repository.NewOrder(pool)
	txRunner := repository.NewTxRunner(pool)

	router := server.NewRouter(server.RouterConfig{
		AnalyticsHandler: handlers.NewAnalyticsHandler(service.NewAnalytics(orderRepo)),
		CatalogHandler:   handlers.NewCatalogHandler(service.NewCatalog(productRepo, customerRepo)),
		OrderHandler:     handlers.NewOrderHandler(service.NewOrder(txRunner, orderRepo)),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "port", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
