// Package server wires handlers and middleware into the gin engine.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshu-sajeev/bidboard/common"
	"github.com/joshu-sajeev/bidboard/internal/bid"
	"github.com/joshu-sajeev/bidboard/internal/job"
	"github.com/joshu-sajeev/bidboard/internal/metrics"
	"github.com/joshu-sajeev/bidboard/middleware"
	"go.opentelemetry.io/otel/trace"
)

const banner = "Hello from bidboard server...."

type Deps struct {
	Jobs           job.JobHandlerInterface
	Bids           bid.BidHandlerInterface
	Metrics        *metrics.Metrics
	Tracer         trace.Tracer
	Logger         *slog.Logger
	Health         func(ctx context.Context) error
	RequestTimeout time.Duration
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.CORS())

	if d.Logger != nil {
		r.Use(middleware.RequestLogger(d.Logger))
	}
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}
	if d.Tracer != nil {
		r.Use(middleware.Tracing(d.Tracer))
	}
	if d.RequestTimeout > 0 {
		r.Use(middleware.TimeoutMiddleware(d.RequestTimeout))
	}
	r.Use(middleware.ErrorHandler())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, banner)
	})
	r.GET("/healthz", healthz(d.Health))

	r.POST("/add-job", d.Jobs.Create)
	r.GET("/jobs", d.Jobs.List)
	r.GET("/jobs/:email", d.Jobs.ListByBuyer)
	r.GET("/job/:id", d.Jobs.Get)
	r.DELETE("/job/:id", d.Jobs.Delete)
	r.PUT("/update-job/:id", d.Jobs.Replace)
	r.GET("/all-jobs", d.Jobs.Search)
	r.GET("/categories", d.Jobs.Categories)

	r.POST("/add-bid", d.Bids.Create)
	r.GET("/bids/:email", d.Bids.List)
	r.PATCH("/bid-status-update/:id", d.Bids.UpdateStatus)

	return r
}

func healthz(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(c.Request.Context()); err != nil {
				c.Error(common.KindErrf(http.StatusServiceUnavailable, common.KindStoreUnavailable,
					"store unavailable"))
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
