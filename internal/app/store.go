// Package app assembles the store backend chosen by configuration. It is
// the only place that knows about every backend.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joshu-sajeev/bidboard/internal/audit"
	"github.com/joshu-sajeev/bidboard/internal/bid"
	"github.com/joshu-sajeev/bidboard/internal/config"
	"github.com/joshu-sajeev/bidboard/internal/job"
	"github.com/joshu-sajeev/bidboard/internal/storage"
	"github.com/joshu-sajeev/bidboard/internal/storage/mongostore"
	"github.com/joshu-sajeev/bidboard/internal/storage/postgres"
	"gorm.io/gorm"
)

// Store is an open backend handle. Callers must Close it.
type Store struct {
	Jobs  job.JobRepoInterface
	Bids  bid.BidRepoInterface
	Drift audit.DriftReader

	gdb     *gorm.DB
	dialect string
	ping    func(context.Context) error
	close   func(context.Context) error
}

func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	return s.close(ctx)
}

// SQL returns the gorm handle and goose dialect for SQL backends; ok is
// false for the document store.
func (s *Store) SQL() (db *gorm.DB, dialect string, ok bool) {
	return s.gdb, s.dialect, s.gdb != nil
}

// OpenStore connects to the backend named by cfg.StoreDriver.
func OpenStore(ctx context.Context, cfg *config.App, logger *slog.Logger) (*Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pgCfg, err := postgres.LoadConfigFromEnv(ctx)
		if err != nil {
			return nil, err
		}
		gdb, err := postgres.ConnectDB(ctx, pgCfg, logger)
		if err != nil {
			return nil, err
		}
		return sqlStore(gdb, storage.DialectPostgres), nil

	case config.DriverSQLite:
		level := postgres.ParseLogLevel("warn")
		gdb, err := postgres.OpenSQLite(cfg.SQLitePath, level)
		if err != nil {
			return nil, err
		}
		return sqlStore(gdb, storage.DialectSQLite), nil

	case config.DriverMongo:
		mCfg, err := mongostore.LoadConfigFromEnv(ctx)
		if err != nil {
			return nil, err
		}
		ms, err := mongostore.Connect(ctx, mCfg, logger)
		if err != nil {
			return nil, err
		}
		return &Store{
			Jobs:  ms.Jobs(),
			Bids:  ms.Bids(),
			Drift: ms.Drift(),
			ping:  ms.Ping,
			close: ms.Close,
		}, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func sqlStore(gdb *gorm.DB, dialect string) *Store {
	return &Store{
		Jobs:    postgres.NewJobRepository(gdb),
		Bids:    postgres.NewBidRepository(gdb),
		Drift:   postgres.NewDriftReader(gdb),
		gdb:     gdb,
		dialect: dialect,
		ping:    func(ctx context.Context) error { return postgres.Ping(ctx, gdb) },
		close:   func(context.Context) error { return postgres.Close(gdb) },
	}
}

// Migrate applies the embedded goose migrations on SQL backends. The
// document store has no schema and only needs its indexes, which Connect
// already created.
func (s *Store) Migrate(ctx context.Context) error {
	gdb, dialect, ok := s.SQL()
	if !ok {
		return nil
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return storage.MigrateUp(ctx, sqlDB, dialect)
}
