package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/joshu-sajeev/bidboard/internal/bid"
	"github.com/joshu-sajeev/bidboard/internal/config"
	"github.com/joshu-sajeev/bidboard/internal/models"
	"github.com/joshu-sajeev/bidboard/internal/storage"
	"gorm.io/gorm"
)

type BidRepository struct {
	db *gorm.DB
}

func NewBidRepository(db *gorm.DB) *BidRepository {
	return &BidRepository{db: db}
}

var _ bid.BidRepoInterface = (*BidRepository)(nil)

// Place inserts the bid and bumps the job's bid_count in one transaction.
// The unique index idx_bids_email_job rejects a second bid for the same
// (email, job_id), so concurrent duplicates cannot both commit. If the job
// row is gone the transaction is rolled back and storage.ErrJobNotFound is
// returned.
func (r *BidRepository) Place(ctx context.Context, b *models.Bid) error {
	if b.Status == "" {
		b.Status = config.BidStatusPending
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(b).Error; err != nil {
			return translateError(err)
		}

		res := tx.Model(&models.Job{}).
			Where("id = ?", b.JobID).
			Update("bid_count", gorm.Expr("bid_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return storage.ErrJobNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("place bid: %w", translateError(err))
	}
	return nil
}

// Get retrieves a single bid by id, or storage.ErrNotFound.
func (r *BidRepository) Get(ctx context.Context, id string) (*models.Bid, error) {
	var b models.Bid
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get bid: %w", translateError(err))
	}
	return &b, nil
}

// ListByBidder returns the bids placed by email.
func (r *BidRepository) ListByBidder(ctx context.Context, email string) ([]models.Bid, error) {
	return r.list(ctx, "email = ?", email)
}

// ListByBuyer returns the bids received on jobs owned by email.
func (r *BidRepository) ListByBuyer(ctx context.Context, email string) ([]models.Bid, error) {
	return r.list(ctx, "buyer = ?", email)
}

func (r *BidRepository) list(ctx context.Context, where string, email string) ([]models.Bid, error) {
	bids := make([]models.Bid, 0)
	if err := r.db.WithContext(ctx).
		Where(where, email).
		Order("created_at ASC").
		Find(&bids).Error; err != nil {
		return nil, fmt.Errorf("list bids: %w", translateError(err))
	}
	return bids, nil
}

// UpdateStatus is a compare-and-swap on the status column.
func (r *BidRepository) UpdateStatus(ctx context.Context, id string, from, to config.BidStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Bid{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{
			"status":     to,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return fmt.Errorf("update status: %w", translateError(res.Error))
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Bid{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return fmt.Errorf("update status: %w", translateError(err))
	}
	if count == 0 {
		return fmt.Errorf("update status: %w", storage.ErrNotFound)
	}
	return fmt.Errorf("update status: %w", storage.ErrConflict)
}
