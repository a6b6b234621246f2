package mongostore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/joshu-sajeev/bidboard/internal/config"
	"github.com/joshu-sajeev/bidboard/internal/models"
	"github.com/joshu-sajeev/bidboard/internal/storage"
	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/datatypes"
)

func TestLoadConfigFromEnv(t *testing.T) {
	tests := []struct {
		name          string
		setupEnv      func(*Config) error
		errorContains string
	}{
		{
			name: "valid configuration",
			setupEnv: func(cfg *Config) error {
				cfg.URI = "mongodb://localhost:27017"
				cfg.Database = "bidboard"
				cfg.ConnectTimeout = 10 * time.Second
				return nil
			},
		},
		{
			name:          "env processing error",
			setupEnv:      func(*Config) error { return errors.New("env: bad duration") },
			errorContains: "failed to process env config",
		},
		{
			name: "missing database and timeout",
			setupEnv: func(cfg *Config) error {
				cfg.URI = "mongodb://localhost:27017"
				return nil
			},
			errorContains: "MONGO_DB is required; MONGO_CONNECT_TIMEOUT must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			originalEnvProcess := envProcess
			defer func() { envProcess = originalEnvProcess }()

			envProcess = func(ctx context.Context, v any, mus ...envconfig.Mutator) error {
				return tt.setupEnv(v.(*Config))
			}

			cfg, err := LoadConfigFromEnv(context.Background())
			if tt.errorContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "bidboard", cfg.Database)
		})
	}
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))
	assert.ErrorIs(t, translateError(mongo.ErrNoDocuments), storage.ErrNotFound)
	assert.ErrorIs(t, translateError(fmt.Errorf("find: %w", mongo.ErrNoDocuments)), storage.ErrNotFound)

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}}}
	assert.ErrorIs(t, translateError(dup), storage.ErrDuplicate)

	other := errors.New("server selection timeout")
	assert.Equal(t, other, translateError(other))
}

func TestDocuments_KeepDateOnlyDeadline(t *testing.T) {
	deadline := datatypes.Date(time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC))

	job := models.Job{ID: "j", Title: "t", Deadline: deadline, Buyer: models.Buyer{Email: "b@x.com"}, BidCount: 3}
	back := jobToDocument(&job).model()
	assert.Equal(t, job.DeadlineTime(), back.DeadlineTime())
	assert.Equal(t, "b@x.com", back.Buyer.Email)
	assert.Equal(t, 3, back.BidCount)

	bid := models.Bid{ID: "b", JobID: "j", Deadline: deadline, Status: config.BidStatusInProgress}
	bidBack := bidToDocument(&bid).model()
	assert.Equal(t, bid.DeadlineTime(), bidBack.DeadlineTime())
	assert.Equal(t, config.BidStatusInProgress, bidBack.Status)
}
