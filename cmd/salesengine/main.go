package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"salesengine/internal/config"
	apphttp "salesengine/internal/http"
	"salesengine/internal/log"
	"salesengine/internal/store"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	cfg := config.Load()

	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: log.ComponentApp,
	})
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", log.FieldError, err)
		os.Exit(1)
	}

	loadCtx, loadCancel := context.WithTimeout(context.Background(), time.Minute)
	ds, err := store.LoadDataset(loadCtx, cfg.DataDir)
	loadCancel()
	if err != nil {
		logger.Error("failed to load dataset", log.FieldError, err, log.FieldDataDir, cfg.DataDir)
		os.Exit(1)
	}
	logger.Info("dataset loaded",
		log.FieldDataDir, cfg.DataDir,
		"merchants", ds.Merchants.Len(),
		"items", ds.Items.Len(),
		"invoices", ds.Invoices.Len(),
		"invoice_items", ds.InvoiceItems.Len(),
		"transactions", ds.Transactions.Len(),
		"customers", ds.Customers.Len(),
	)

	srv := apphttp.NewServer(cfg, ds, logger)

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("starting salesengine server", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("server stopped gracefully")
}
