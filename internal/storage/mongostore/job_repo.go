package mongostore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/joshu-sajeev/bidboard/internal/job"
	"github.com/joshu-sajeev/bidboard/internal/models"
	"github.com/joshu-sajeev/bidboard/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type JobRepository struct {
	jobs *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{jobs: db.Collection(jobsCollection)}
}

var _ job.JobRepoInterface = (*JobRepository)(nil)

func (r *JobRepository) Create(ctx context.Context, j *models.Job) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	j.CreatedAt, j.UpdatedAt = now, now
	j.BidCount = 0

	if _, err := r.jobs.InsertOne(ctx, jobToDocument(j)); err != nil {
		return fmt.Errorf("create job: %w", translateError(err))
	}
	return nil
}

func (r *JobRepository) Get(ctx context.Context, id string) (*models.Job, error) {
	var doc jobDocument
	if err := r.jobs.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, fmt.Errorf("get job: %w", translateError(err))
	}
	j := doc.model()
	return &j, nil
}

// List matches the title as a case-insensitive literal substring.
func (r *JobRepository) List(ctx context.Context, q models.JobQuery) ([]models.Job, error) {
	filter := bson.M{}
	if q.Search != "" {
		filter["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
	}
	if q.Category != "" {
		filter["category"] = q.Category
	}

	opts := options.Find()
	switch q.Sort {
	case models.SortAsc:
		opts.SetSort(bson.D{{Key: "deadline", Value: 1}})
	case models.SortDesc:
		opts.SetSort(bson.D{{Key: "deadline", Value: -1}})
	}

	return r.find(ctx, filter, opts)
}

func (r *JobRepository) ListByBuyer(ctx context.Context, email string) ([]models.Job, error) {
	return r.find(ctx, bson.M{"buyer.email": email}, options.Find())
}

func (r *JobRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Job, error) {
	cur, err := r.jobs.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", translateError(err))
	}

	docs := make([]jobDocument, 0)
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list jobs: %w", translateError(err))
	}

	jobs := make([]models.Job, len(docs))
	for i, d := range docs {
		jobs[i] = d.model()
	}
	return jobs, nil
}

// Upsert $sets the caller-owned fields; bid_count and created_at are only
// written on insert.
func (r *JobRepository) Upsert(ctx context.Context, j *models.Job) (bool, error) {
	now := time.Now().UTC()
	doc := jobToDocument(j)

	update := bson.M{
		"$set": bson.M{
			"title":       doc.Title,
			"description": doc.Description,
			"deadline":    doc.Deadline,
			"min_price":   doc.MinPrice,
			"max_price":   doc.MaxPrice,
			"category":    doc.Category,
			"buyer":       doc.Buyer,
			"updated_at":  now,
		},
		"$setOnInsert": bson.M{
			"bid_count":  0,
			"created_at": now,
		},
	}

	res, err := r.jobs.UpdateOne(ctx, bson.M{"_id": j.ID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, fmt.Errorf("upsert job: %w", translateError(err))
	}
	return res.UpsertedCount > 0, nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	res, err := r.jobs.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete job: %w", translateError(err))
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete job: %w", storage.ErrNotFound)
	}
	return nil
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return storage.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return storage.ErrDuplicate
	}
	return err
}
