package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/joshu-sajeev/bidboard/internal/models"
	"github.com/joshu-sajeev/bidboard/internal/storage"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB returns an in-memory SQLite database with the embedded
// migrations applied.
func SetupTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := OpenSQLite(":memory:", logger.Silent)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)

	goose.SetLogger(goose.NopLogger())
	require.NoError(t, storage.MigrateUp(context.Background(), sqlDB, storage.DialectSQLite))

	t.Cleanup(func() { _ = Close(db) })
	return db
}

func date(y int, m time.Month, d int) datatypes.Date {
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func newJob(title, category string, deadline datatypes.Date) *models.Job {
	return &models.Job{
		Title:    title,
		Deadline: deadline,
		MinPrice: 500,
		MaxPrice: 600,
		Category: category,
		Buyer:    models.Buyer{Email: "buyer@x.com", Name: "Buyer"},
	}
}

func mustCreateJob(t testing.TB, db *gorm.DB, job *models.Job) *models.Job {
	t.Helper()
	require.NoError(t, NewJobRepository(db).Create(context.Background(), job))
	return job
}

func bidFor(job *models.Job, email string) *models.Bid {
	return &models.Bid{
		JobID:    job.ID,
		Email:    email,
		Buyer:    job.Buyer.Email,
		Price:    550,
		Deadline: job.Deadline,
		Title:    job.Title,
		Category: job.Category,
	}
}

func bidCount(t testing.TB, db *gorm.DB, jobID string) int {
	t.Helper()
	job, err := NewJobRepository(db).Get(context.Background(), jobID)
	require.NoError(t, err)
	return job.BidCount
}
