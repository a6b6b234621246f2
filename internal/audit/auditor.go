// Package audit reports bid_count drift. bid_count is increment-only, so
// bids removed outside the API leave it too high; the auditor surfaces that
// and bids orphaned by job deletion, but never rewrites either.
package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joshu-sajeev/bidboard/internal/metrics"
	"github.com/joshu-sajeev/bidboard/internal/models"
	"github.com/robfig/cron/v3"
)

type DriftReader interface {
	ReadDrift(ctx context.Context) (*models.DriftReport, error)
}

// Auditor wraps robfig/cron and runs one drift pass per tick.
type Auditor struct {
	reader   DriftReader
	metrics  *metrics.Metrics
	logger   *slog.Logger
	cron     *cron.Cron
	schedule string
}

func New(reader DriftReader, schedule string, m *metrics.Metrics, logger *slog.Logger) *Auditor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auditor{
		reader:   reader,
		metrics:  m,
		logger:   logger.With("component", "audit"),
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		schedule: schedule,
	}
}

// Start registers the audit on the cron schedule, starts the scheduler and runs
// one pass immediately in the background.
func (a *Auditor) Start(ctx context.Context) error {
	_, err := a.cron.AddFunc(a.schedule, func() {
		_, _ = a.Run(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	a.cron.Start()
	a.logger.Info("audit scheduled", "schedule", a.schedule)

	go func() { _, _ = a.Run(ctx) }()
	return nil
}

// Stop halts the scheduler and waits for a running pass to finish.
func (a *Auditor) Stop() {
	<-a.cron.Stop().Done()
	a.logger.Info("audit stopped")
}

// Run performs a single audit pass, logs every finding and updates the
// drift gauges.
func (a *Auditor) Run(ctx context.Context) (*models.DriftReport, error) {
	report, err := a.reader.ReadDrift(ctx)
	if err != nil {
		a.logger.Error("audit failed", "error", err)
		if a.metrics != nil {
			a.metrics.AuditRuns.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	for _, d := range report.Drifted {
		a.logger.Warn("bid_count drift",
			"job_id", d.JobID,
			"bid_count", d.BidCount,
			"bids", d.Actual,
		)
	}
	if report.OrphanedBids > 0 {
		a.logger.Warn("orphaned bids", "count", report.OrphanedBids)
	}
	a.logger.Info("audit complete", "drifted_jobs", len(report.Drifted), "orphaned_bids", report.OrphanedBids)

	if a.metrics != nil {
		a.metrics.DriftedJobs.Set(float64(len(report.Drifted)))
		a.metrics.OrphanedBids.Set(float64(report.OrphanedBids))
		a.metrics.AuditRuns.WithLabelValues("ok").Inc()
	}
	return report, nil
}
