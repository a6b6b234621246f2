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

	"github.com/gin-gonic/gin"
	"github.com/joshu-sajeev/bidboard/internal/app"
	"github.com/joshu-sajeev/bidboard/internal/bid"
	"github.com/joshu-sajeev/bidboard/internal/config"
	"github.com/joshu-sajeev/bidboard/internal/events"
	"github.com/joshu-sajeev/bidboard/internal/job"
	"github.com/joshu-sajeev/bidboard/internal/logging"
	"github.com/joshu-sajeev/bidboard/internal/metrics"
	"github.com/joshu-sajeev/bidboard/internal/server"
	"github.com/joshu-sajeev/bidboard/internal/telemetry"
	"go.opentelemetry.io/otel"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger := logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel).With("service", "api")
	logger.Info("starting", "store", cfg.StoreDriver, "addr", cfg.HTTPAddr)

	shutdownTracing, err := telemetry.SetupTracing(ctx, telemetry.TraceConfig{
		ServiceName:  "bidboard-api",
		Exporter:     cfg.TraceExporter,
		OTLPEndpoint: cfg.OTLPEndpoint,
		OTLPInsecure: cfg.OTLPInsecure,
	}, logger)
	if err != nil {
		log.Fatal("Tracing setup failed:", err)
	}

	store, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		log.Fatal("Connection failed:", err)
	}

	if cfg.MigrateOnStart {
		if err := store.Migrate(ctx); err != nil {
			log.Fatal("Migration failed:", err)
		}
	}

	rdb, err := events.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	var publisher events.Publisher = events.Nop{}
	if rdb != nil {
		publisher = events.NewRedisPublisher(rdb, cfg.EventsPrefix)
		logger.Info("publishing events to redis", "prefix", cfg.EventsPrefix)
	}

	m := metrics.New()

	jobService := job.NewJobService(store.Jobs, job.WithPublisher(publisher), job.WithLogger(logger))
	bidService := bid.NewBidService(store.Bids, store.Jobs,
		bid.WithPublisher(publisher),
		bid.WithMetrics(m),
		bid.WithLogger(logger),
	)

	gin.SetMode(gin.ReleaseMode)
	router := server.NewRouter(server.Deps{
		Jobs:           job.NewJobHandler(jobService),
		Bids:           bid.NewBidHandler(bidService),
		Metrics:        m,
		Tracer:         otel.Tracer(telemetry.TracerName),
		Logger:         logger,
		Health:         store.Ping,
		RequestTimeout: cfg.RequestTimeout,
	})

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Error("redis close failed", "error", err)
		}
	}
	if err := store.Close(shutdownCtx); err != nil {
		logger.Error("store close failed", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing shutdown failed", "error", err)
	}
	logger.Info("shutdown complete")
}
