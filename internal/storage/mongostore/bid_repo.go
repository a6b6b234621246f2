package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joshu-sajeev/bidboard/internal/bid"
	"github.com/joshu-sajeev/bidboard/internal/config"
	"github.com/joshu-sajeev/bidboard/internal/models"
	"github.com/joshu-sajeev/bidboard/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BidRepository struct {
	bids *mongo.Collection
	jobs *mongo.Collection
}

func NewBidRepository(db *mongo.Database) *BidRepository {
	return &BidRepository{
		bids: db.Collection(bidsCollection),
		jobs: db.Collection(jobsCollection),
	}
}

var _ bid.BidRepoInterface = (*BidRepository)(nil)

// Place relies on the unique (email, job_id) index for atomic duplicate
// rejection, then $incs the job. Standalone servers have no multi-document
// transactions, so a missing job is handled by deleting the bid just
// inserted before reporting storage.ErrJobNotFound.
func (r *BidRepository) Place(ctx context.Context, b *models.Bid) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = config.BidStatusPending
	}
	now := time.Now().UTC()
	b.CreatedAt, b.UpdatedAt = now, now

	if _, err := r.bids.InsertOne(ctx, bidToDocument(b)); err != nil {
		return fmt.Errorf("place bid: %w", translateError(err))
	}

	res, err := r.jobs.UpdateOne(ctx,
		bson.M{"_id": b.JobID},
		bson.M{"$inc": bson.M{"bid_count": 1}, "$set": bson.M{"updated_at": now}},
	)
	if err == nil && res.MatchedCount == 1 {
		return nil
	}

	// The job write failed or matched nothing; take the bid back out so the
	// counter and the bids stay in agreement.
	if _, delErr := r.bids.DeleteOne(context.WithoutCancel(ctx), bson.M{"_id": b.ID}); delErr != nil {
		return fmt.Errorf("place bid: undo insert after failed increment: %w", errors.Join(err, delErr))
	}
	if err != nil {
		return fmt.Errorf("place bid: increment bid_count: %w", translateError(err))
	}
	return fmt.Errorf("place bid: %w", storage.ErrJobNotFound)
}

func (r *BidRepository) Get(ctx context.Context, id string) (*models.Bid, error) {
	var doc bidDocument
	if err := r.bids.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, fmt.Errorf("get bid: %w", translateError(err))
	}
	b := doc.model()
	return &b, nil
}

func (r *BidRepository) ListByBidder(ctx context.Context, email string) ([]models.Bid, error) {
	return r.list(ctx, bson.M{"email": email})
}

func (r *BidRepository) ListByBuyer(ctx context.Context, email string) ([]models.Bid, error) {
	return r.list(ctx, bson.M{"buyer": email})
}

func (r *BidRepository) list(ctx context.Context, filter bson.M) ([]models.Bid, error) {
	cur, err := r.bids.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list bids: %w", translateError(err))
	}

	docs := make([]bidDocument, 0)
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list bids: %w", translateError(err))
	}

	bids := make([]models.Bid, len(docs))
	for i, d := range docs {
		bids[i] = d.model()
	}
	return bids, nil
}

// UpdateStatus matches on both _id and the expected status so the write is
// a compare-and-swap.
func (r *BidRepository) UpdateStatus(ctx context.Context, id string, from, to config.BidStatus) error {
	res, err := r.bids.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("update status: %w", translateError(err))
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := r.bids.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("update status: %w", translateError(err))
	}
	if n == 0 {
		return fmt.Errorf("update status: %w", storage.ErrNotFound)
	}
	return fmt.Errorf("update status: %w", storage.ErrConflict)
}
