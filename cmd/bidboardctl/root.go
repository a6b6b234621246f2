package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joshu-sajeev/bidboard/internal/app"
	"github.com/joshu-sajeev/bidboard/internal/audit"
	"github.com/joshu-sajeev/bidboard/internal/config"
	"github.com/joshu-sajeev/bidboard/internal/logging"
	"github.com/joshu-sajeev/bidboard/internal/storage"
	"github.com/spf13/cobra"
)

var errNoSQL = errors.New("migrations only apply to SQL store drivers")

// cli carries the state opened by the root command for its subcommands.
type cli struct {
	cfg    *config.App
	logger *slog.Logger
	store  *app.Store
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "bidboardctl",
		Short:         "Operate a bidboard store: migrations and drift audits",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.open(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.store == nil {
				return nil
			}
			return c.store.Close(context.Background())
		},
	}

	root.AddCommand(newMigrateCmd(c), newAuditCmd(c))
	return root
}

func (c *cli) open(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = logging.New(os.Stderr, "text", cfg.LogLevel)

	store, err := app.OpenStore(ctx, cfg, c.logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	c.store = store
	return nil
}

func (c *cli) sqlDB() (*sql.DB, string, error) {
	gdb, dialect, ok := c.store.SQL()
	if !ok {
		return nil, "", errNoSQL
	}
	db, err := gdb.DB()
	if err != nil {
		return nil, "", err
	}
	return db, dialect, nil
}

func newMigrateCmd(c *cli) *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the SQL schema",
	}

	migrate.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				db, dialect, err := c.sqlDB()
				if err != nil {
					return err
				}
				if err := storage.MigrateUp(cmd.Context(), db, dialect); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
				return nil
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				db, dialect, err := c.sqlDB()
				if err != nil {
					return err
				}
				if err := storage.MigrateDown(cmd.Context(), db, dialect); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "rolled back one migration")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print the state of every migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				db, dialect, err := c.sqlDB()
				if err != nil {
					return err
				}
				return storage.MigrateStatus(cmd.Context(), db, dialect)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				db, dialect, err := c.sqlDB()
				if err != nil {
					return err
				}
				v, err := storage.MigrationVersion(cmd.Context(), db, dialect)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d\n", v)
				return nil
			},
		},
	)

	return migrate
}

func newAuditCmd(c *cli) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Run one bid_count drift audit and print the findings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := audit.New(c.store.Drift, c.cfg.AuditSchedule, nil, c.logger)
			report, err := a.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			if len(report.Drifted) == 0 && report.OrphanedBids == 0 {
				fmt.Fprintln(out, "no drift found")
				return nil
			}
			for _, d := range report.Drifted {
				fmt.Fprintf(out, "job %s: bid_count=%d actual=%d\n", d.JobID, d.BidCount, d.Actual)
			}
			fmt.Fprintf(out, "orphaned bids: %d\n", report.OrphanedBids)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}
