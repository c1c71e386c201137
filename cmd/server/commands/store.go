package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/personal-blog-api/internal/config"
	"github.com/personal-blog-api/internal/database"
	"github.com/personal-blog-api/internal/repository"
	"github.com/personal-blog-api/pkg/logger"
)

// store is an opened article store of either kind
type store struct {
	sql   *database.DB
	mongo *database.Mongo
}

// newLogger builds the process logger, letting flags override the environment
func newLogger(cfg *config.Config) zerolog.Logger {
	level, format := cfg.Log.Level, cfg.Log.Format
	if logLevel != "" {
		level = logLevel
	}
	if logFormat != "" {
		format = logFormat
	}
	return logger.New(level, format)
}

// openStore connects to the configured driver without touching its schema
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store, error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		m, err := database.ConnectMongo(ctx, &cfg.Store, log)
		if err != nil {
			return nil, err
		}
		return &store{mongo: m}, nil
	case config.DriverPostgres, config.DriverSQLite:
		db, err := database.New(&cfg.Store, log)
		if err != nil {
			return nil, err
		}
		return &store{sql: db}, nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

// prepare applies pending migrations, or ensures indexes for MongoDB
func (s *store) prepare(ctx context.Context) error {
	if s.mongo != nil {
		return s.mongo.EnsureIndexes(ctx)
	}
	return s.sql.RunMigrations()
}

func (s *store) repositories() *repository.Repositories {
	if s.mongo != nil {
		return repository.NewMongo(s.mongo)
	}
	return repository.NewSQL(s.sql)
}

// HealthCheck pings whichever connection is open
func (s *store) HealthCheck(ctx context.Context) error {
	if s.mongo != nil {
		return s.mongo.HealthCheck(ctx)
	}
	return s.sql.HealthCheck(ctx)
}

func (s *store) Close(ctx context.Context) error {
	if s.mongo != nil {
		return s.mongo.Close(ctx)
	}
	return s.sql.Close()
}
