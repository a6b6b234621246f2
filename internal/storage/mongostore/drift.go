package mongostore

import (
	"context"
	"fmt"

	"github.com/joshu-sajeev/bidboard/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type DriftReader struct {
	jobs *mongo.Collection
	bids *mongo.Collection
}

func NewDriftReader(db *mongo.Database) *DriftReader {
	return &DriftReader{
		jobs: db.Collection(jobsCollection),
		bids: db.Collection(bidsCollection),
	}
}

// ReadDrift is the document-store version of the SQL join in the postgres
// package. It only reads.
func (r *DriftReader) ReadDrift(ctx context.Context) (*models.DriftReport, error) {
	report := &models.DriftReport{Drifted: make([]models.BidCountDrift, 0)}

	cur, err := r.jobs.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         bidsCollection,
			"localField":   "_id",
			"foreignField": "job_id",
			"as":           "bids",
		}}},
		{{Key: "$project", Value: bson.M{
			"bid_count": 1,
			"actual":    bson.M{"$size": "$bids"},
		}}},
		{{Key: "$match", Value: bson.M{
			"$expr": bson.M{"$ne": bson.A{"$bid_count", "$actual"}},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("read bid_count drift: %w", err)
	}

	var rows []struct {
		ID       string `bson:"_id"`
		BidCount int    `bson:"bid_count"`
		Actual   int    `bson:"actual"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("read bid_count drift: %w", err)
	}
	for _, row := range rows {
		report.Drifted = append(report.Drifted, models.BidCountDrift{
			JobID:    row.ID,
			BidCount: row.BidCount,
			Actual:   row.Actual,
		})
	}

	cur, err = r.bids.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         jobsCollection,
			"localField":   "job_id",
			"foreignField": "_id",
			"as":           "job",
		}}},
		{{Key: "$match", Value: bson.M{"job": bson.M{"$size": 0}}}},
		{{Key: "$count", Value: "orphaned"}},
	})
	if err != nil {
		return nil, fmt.Errorf("count orphaned bids: %w", err)
	}

	var counts []struct {
		Orphaned int `bson:"orphaned"`
	}
	if err := cur.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("count orphaned bids: %w", err)
	}
	if len(counts) > 0 {
		report.OrphanedBids = counts[0].Orphaned
	}

	return report, nil
}
