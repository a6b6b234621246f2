package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/joshu-sajeev/bidboard/internal/models"
	"github.com/joshu-sajeev/bidboard/internal/storage"
	"github.com/joshu-sajeev/bidboard/internal/storage/postgres"
	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	pgOnce     sync.Once
	pgPool     *dockertest.Pool
	pgResource *dockertest.Resource
	pgPort     string
	pgErr      error
)

func TestMain(m *testing.M) {
	code := m.Run()

	if pgResource != nil {
		if err := pgPool.Purge(pgResource); err != nil {
			log.Printf("Could not purge postgres container: %s", err)
		}
	}

	os.Exit(code)
}

// startPostgres runs one postgres container for the whole package and
// applies the embedded migrations through lib/pq.
func startPostgres(tb testing.TB) string {
	tb.Helper()
	if testing.Short() {
		tb.Skip("Skipping docker integration test in short mode")
	}

	pgOnce.Do(func() {
		pgPool, pgErr = dockertest.NewPool("")
		if pgErr != nil {
			return
		}
		pgPool.MaxWait = 60 * time.Second
		if pgErr = pgPool.Client.Ping(); pgErr != nil {
			return
		}

		pgResource, pgErr = pgPool.RunWithOptions(&dockertest.RunOptions{
			Repository: "postgres",
			Tag:        "17-alpine",
			Env: []string{
				"POSTGRES_USER=testuser",
				"POSTGRES_PASSWORD=testpass",
				"POSTGRES_DB=bidboard",
				"POSTGRES_INITDB_ARGS=--encoding=UTF8 --locale-provider=builtin --builtin-locale=C.UTF-8",
			},
		}, func(config *docker.HostConfig) {
			config.AutoRemove = true
			config.RestartPolicy = docker.RestartPolicy{Name: "no"}
		})
		if pgErr != nil {
			return
		}
		pgPort = pgResource.GetPort("5432/tcp")

		dsn := fmt.Sprintf(
			"host=localhost user=testuser password=testpass dbname=bidboard port=%s sslmode=disable",
			pgPort,
		)
		pgErr = pgPool.Retry(func() error {
			db, err := sql.Open("postgres", dsn)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				return err
			}

			goose.SetLogger(goose.NopLogger())
			return storage.MigrateUp(ctx, db, storage.DialectPostgres)
		})
	})

	if pgErr != nil {
		tb.Skipf("postgres container unavailable: %v", pgErr)
	}
	return pgPort
}

// connect opens a gorm handle through ConnectDB and empties both tables.
func connect(tb testing.TB) (*gorm.DB, context.Context) {
	tb.Helper()
	port := startPostgres(tb)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	tb.Cleanup(cancel)

	db, err := postgres.ConnectDB(ctx, &postgres.Config{
		User:           "testuser",
		Password:       "testpass",
		Host:           "localhost",
		Port:           port,
		Database:       "bidboard",
		SSLMode:        "disable",
		MaxRetries:     3,
		RetryDelay:     100 * time.Millisecond,
		ConnectTimeout: 5,
		LogLevel:       logger.Silent,
	}, nil)
	require.NoError(tb, err)
	tb.Cleanup(func() { _ = postgres.Close(db) })

	require.NoError(tb, db.Exec("DELETE FROM bids").Error)
	require.NoError(tb, db.Exec("DELETE FROM jobs").Error)
	return db, ctx
}

func pgJob(title, category string) *models.Job {
	return &models.Job{
		Title:    title,
		Deadline: datatypes.Date(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)),
		MinPrice: 500,
		MaxPrice: 600,
		Category: category,
		Buyer:    models.Buyer{Email: "buyer@x.com"},
	}
}

func pgBid(job *models.Job, email string) *models.Bid {
	return &models.Bid{JobID: job.ID, Email: email, Buyer: job.Buyer.Email, Title: job.Title, Category: job.Category}
}

func TestPostgres_ConnectDB(t *testing.T) {
	db, ctx := connect(t)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 50, sqlDB.Stats().MaxOpenConnections)
	assert.NoError(t, postgres.Ping(ctx, db))

	v, err := storage.MigrationVersion(ctx, sqlDB, storage.DialectPostgres)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
}

func TestPostgres_ConnectDB_WrongPort(t *testing.T) {
	startPostgres(t)

	_, err := postgres.ConnectDB(context.Background(), &postgres.Config{
		User:           "testuser",
		Password:       "testpass",
		Host:           "localhost",
		Port:           "19999",
		Database:       "bidboard",
		SSLMode:        "disable",
		MaxRetries:     2,
		RetryDelay:     5 * time.Millisecond,
		ConnectTimeout: 1,
		LogLevel:       logger.Silent,
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database connection failed after 2 attempts")
}

func TestPostgres_BidCountScenario(t *testing.T) {
	db, ctx := connect(t)
	jobs := postgres.NewJobRepository(db)
	bids := postgres.NewBidRepository(db)

	j1 := pgJob("Storefront", "Web Development")
	require.NoError(t, jobs.Create(ctx, j1))

	count := func() int {
		j, err := jobs.Get(ctx, j1.ID)
		require.NoError(t, err)
		return j.BidCount
	}

	require.NoError(t, bids.Place(ctx, pgBid(j1, "a@x.com")))
	assert.Equal(t, 1, count())

	assert.ErrorIs(t, bids.Place(ctx, pgBid(j1, "a@x.com")), storage.ErrDuplicate)
	assert.Equal(t, 1, count())

	require.NoError(t, bids.Place(ctx, pgBid(j1, "b@x.com")))
	assert.Equal(t, 2, count())
}

func TestPostgres_ConcurrentDuplicateBids(t *testing.T) {
	db, ctx := connect(t)
	jobs := postgres.NewJobRepository(db)
	bids := postgres.NewBidRepository(db)

	job := pgJob("Race", "Web Development")
	require.NoError(t, jobs.Create(ctx, job))

	const attempts = 16
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- bids.Place(ctx, pgBid(job, "racer@x.com"))
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, storage.ErrDuplicate)
	}
	assert.Equal(t, 1, succeeded)

	stored, err := jobs.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.BidCount)
}

func TestPostgres_SearchFilterSort(t *testing.T) {
	db, ctx := connect(t)
	jobs := postgres.NewJobRepository(db)

	for _, j := range []*models.Job{
		pgJob("Web app", "Web Development"),
		pgJob("webshop 50% off", "Web Development"),
		pgJob("Web banner", "Graphics Design"),
		pgJob("SEO audit", "Digital Marketing"),
		pgJob("ÉCOLE landing page", "Graphics Design"),
	} {
		require.NoError(t, jobs.Create(ctx, j))
	}

	got, err := jobs.List(ctx, models.JobQuery{Search: "Web", Category: "Web Development"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = jobs.List(ctx, models.JobQuery{Search: "50%"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "webshop 50% off", got[0].Title)

	got, err = jobs.List(ctx, models.JobQuery{Search: "école"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ÉCOLE landing page", got[0].Title)
}

func TestPostgres_DriftAndOrphans(t *testing.T) {
	db, ctx := connect(t)
	jobs := postgres.NewJobRepository(db)
	bids := postgres.NewBidRepository(db)

	job := pgJob("Short lived", "Web Development")
	require.NoError(t, jobs.Create(ctx, job))
	require.NoError(t, bids.Place(ctx, pgBid(job, "a@x.com")))
	require.NoError(t, jobs.Delete(ctx, job.ID))

	report, err := postgres.NewDriftReader(db).ReadDrift(ctx)
	require.NoError(t, err)
	assert.Empty(t, report.Drifted)
	assert.Equal(t, 1, report.OrphanedBids)
}
