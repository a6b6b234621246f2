// Package mongostore stores jobs and bids as documents. It mirrors the gorm
// repositories: the (email, job_id) uniqueness lives in a unique index and
// bid_count is maintained with $inc.
package mongostore

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	jobsCollection = "jobs"
	bidsCollection = "bids"

	bidUniqueIndex = "idx_bids_email_job"
)

type Config struct {
	URI            string        `env:"MONGO_URI,default=mongodb://localhost:27017"`
	Database       string        `env:"MONGO_DB,default=bidboard"`
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT,default=10s"`
}

// to help with testing
var envProcess = envconfig.Process

func LoadConfigFromEnv(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envProcess(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	var errors []string
	if strings.TrimSpace(cfg.URI) == "" {
		errors = append(errors, "MONGO_URI is required")
	}
	if strings.TrimSpace(cfg.Database) == "" {
		errors = append(errors, "MONGO_DB is required")
	}
	if cfg.ConnectTimeout <= 0 {
		errors = append(errors, "MONGO_CONNECT_TIMEOUT must be positive")
	}
	if len(errors) > 0 {
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(errors, "; "))
	}

	return &cfg, nil
}

// Store owns the client connection; repositories borrow its collections.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials cfg.URI, pings the primary and makes sure the indexes the
// consistency rules depend on exist.
func Connect(ctx context.Context, cfg *Config, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "mongo")

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	s := &Store{client: client, db: client.Database(cfg.Database)}
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Info("connected", "database", cfg.Database)
	return s, nil
}

// EnsureIndexes creates the unique (email, job_id) bid index and the lookup
// indexes. It is idempotent.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(bidsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "job_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(bidUniqueIndex),
		},
		{Keys: bson.D{{Key: "buyer", Value: 1}}},
		{Keys: bson.D{{Key: "job_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create bid indexes: %w", err)
	}

	_, err = s.db.Collection(jobsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "buyer.email", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "deadline", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create job indexes: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) Jobs() *JobRepository {
	return NewJobRepository(s.db)
}

func (s *Store) Bids() *BidRepository {
	return NewBidRepository(s.db)
}

func (s *Store) Drift() *DriftReader {
	return NewDriftReader(s.db)
}
