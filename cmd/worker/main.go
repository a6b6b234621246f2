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

	"github.com/joshu-sajeev/bidboard/internal/app"
	"github.com/joshu-sajeev/bidboard/internal/audit"
	"github.com/joshu-sajeev/bidboard/internal/config"
	"github.com/joshu-sajeev/bidboard/internal/logging"
	"github.com/joshu-sajeev/bidboard/internal/metrics"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger := logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel).With("service", "worker")
	logger.Info("starting drift auditor", "store", cfg.StoreDriver, "schedule", cfg.AuditSchedule)

	store, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		log.Fatal("Connection failed:", err)
	}

	m := metrics.New()
	auditor := audit.New(store.Drift, cfg.AuditSchedule, m, logger)
	if err := auditor.Start(ctx); err != nil {
		log.Fatal("Auditor failed to start:", err)
	}

	// The worker only exposes metrics.
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	metricsServer := &http.Server{
		Addr:              cfg.WorkerMetrics,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	logger.Info("auditor active. Press Ctrl+C to stop.")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	cancel()
	auditor.Stop()

	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	_ = metricsServer.Shutdown(shutdownCtx)
	if err := store.Close(shutdownCtx); err != nil {
		logger.Error("store close failed", "error", err)
	}
	logger.Info("shutdown complete")
}
