package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/joshu-sajeev/bidboard/internal/config"
	"github.com/joshu-sajeev/bidboard/internal/models"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestMain(m *testing.M) {
	goose.SetLogger(goose.NopLogger())
	m.Run()
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpenStore_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := &config.App{StoreDriver: config.DriverSQLite, SQLitePath: ":memory:"}

	store, err := OpenStore(ctx, cfg, quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(ctx) })

	require.NoError(t, store.Migrate(ctx))
	assert.NoError(t, store.Ping(ctx))

	_, dialect, ok := store.SQL()
	assert.True(t, ok)
	assert.Equal(t, "sqlite3", dialect)

	job := &models.Job{
		Title:    "Logo design",
		Deadline: datatypes.Date(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)),
		Category: "Graphics Design",
		Buyer:    models.Buyer{Email: "owner@example.com"},
	}
	require.NoError(t, store.Jobs.Create(ctx, job))

	report, err := store.Drift.ReadDrift(ctx)
	require.NoError(t, err)
	assert.Empty(t, report.Drifted)
	assert.Zero(t, report.OrphanedBids)
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, err := OpenStore(context.Background(), &config.App{StoreDriver: "oracle"}, quietLogger())
	assert.ErrorContains(t, err, `unknown store driver "oracle"`)
}
