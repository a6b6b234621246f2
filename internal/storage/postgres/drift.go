package postgres

import (
	"context"
	"fmt"

	"github.com/joshu-sajeev/bidboard/internal/models"
	"gorm.io/gorm"
)

type DriftReader struct {
	db *gorm.DB
}

func NewDriftReader(db *gorm.DB) *DriftReader {
	return &DriftReader{db: db}
}

// ReadDrift reports jobs whose bid_count disagrees with their bids and bids
// whose job no longer exists. It only reads.
func (r *DriftReader) ReadDrift(ctx context.Context) (*models.DriftReport, error) {
	report := &models.DriftReport{Drifted: make([]models.BidCountDrift, 0)}

	if err := r.db.WithContext(ctx).Raw(`
		SELECT j.id AS job_id, j.bid_count AS bid_count, COUNT(b.id) AS actual
		FROM jobs j
		LEFT JOIN bids b ON b.job_id = j.id
		GROUP BY j.id, j.bid_count
		HAVING j.bid_count <> COUNT(b.id)
		ORDER BY j.id`).
		Scan(&report.Drifted).Error; err != nil {
		return nil, fmt.Errorf("read bid_count drift: %w", err)
	}

	var orphaned int64
	if err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM bids b
		LEFT JOIN jobs j ON j.id = b.job_id
		WHERE j.id IS NULL`).
		Scan(&orphaned).Error; err != nil {
		return nil, fmt.Errorf("count orphaned bids: %w", err)
	}
	report.OrphanedBids = int(orphaned)

	return report, nil
}
