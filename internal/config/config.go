package config

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sethvargo/go-envconfig"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

// App is the process-level configuration shared by the api, worker and CLI
// binaries. Backend specific settings live with their storage package.
type App struct {
	HTTPAddr       string        `env:"HTTP_ADDR,default=:9000"`
	StoreDriver    string        `env:"STORE_DRIVER,default=postgres"`
	SQLitePath     string        `env:"SQLITE_PATH,default=bidboard.db"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT,default=10s"`
	MigrateOnStart bool          `env:"MIGRATE_ON_START,default=true"`

	LogFormat string `env:"LOG_FORMAT,default=json"`
	LogLevel  string `env:"LOG_LEVEL,default=info"`

	RedisURL      string `env:"REDIS_URL"`
	EventsPrefix  string `env:"EVENTS_CHANNEL_PREFIX,default=bidboard"`
	AuditSchedule string `env:"AUDIT_SCHEDULE,default=@every 15m"`
	WorkerMetrics string `env:"WORKER_METRICS_ADDR,default=:9100"`

	TraceExporter string `env:"TRACE_EXPORTER,default=none"`
	OTLPEndpoint  string `env:"OTLP_ENDPOINT"`
	OTLPInsecure  bool   `env:"OTLP_INSECURE,default=false"`
}

// to help with testing
var envProcess = envconfig.Process

func Load(ctx context.Context) (*App, error) {
	var cfg App
	if err := envProcess(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func validate(cfg *App) error {
	var errors []string

	switch cfg.StoreDriver {
	case DriverPostgres, DriverSQLite, DriverMongo:
	default:
		errors = append(errors, fmt.Sprintf("STORE_DRIVER must be one of postgres, sqlite, mongo (got %q)", cfg.StoreDriver))
	}

	if cfg.StoreDriver == DriverSQLite && strings.TrimSpace(cfg.SQLitePath) == "" {
		errors = append(errors, "SQLITE_PATH is required for the sqlite driver")
	}

	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		errors = append(errors, "HTTP_ADDR is required")
	}

	if cfg.RequestTimeout <= 0 {
		errors = append(errors, "REQUEST_TIMEOUT must be positive")
	}

	switch strings.ToLower(cfg.LogFormat) {
	case "json", "text":
	default:
		errors = append(errors, "LOG_FORMAT must be json or text")
	}

	switch strings.ToLower(cfg.TraceExporter) {
	case "", "none", "stdout":
	case "otlp":
		if strings.TrimSpace(cfg.OTLPEndpoint) == "" {
			errors = append(errors, "OTLP_ENDPOINT is required when TRACE_EXPORTER=otlp")
		}
	default:
		errors = append(errors, "TRACE_EXPORTER must be none, stdout or otlp")
	}

	if _, err := cron.ParseStandard(cfg.AuditSchedule); err != nil {
		errors = append(errors, fmt.Sprintf("AUDIT_SCHEDULE is invalid: %v", err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return nil
}

// ParseLogLevel converts LOG_LEVEL into a slog level, defaulting to info.
func ParseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
