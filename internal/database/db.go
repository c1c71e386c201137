package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	gosqlite3 "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/personal-blog-api/internal/config"
)

//go:embed migrations
var migrationFiles embed.FS

// MemoryPath opens a private in-memory SQLite database
const MemoryPath = ":memory:"

// SQLiteDriverName is the go-sqlite3 driver registered with the blog's SQL functions
const SQLiteDriverName = "sqlite3_blog"

// SQLiteLowerFunc lowercases text with Go's Unicode case mapping.
// SQLite's built-in LOWER only folds ASCII letters.
const SQLiteLowerFunc = "go_lower"

func init() {
	sql.Register(SQLiteDriverName, &gosqlite3.SQLiteDriver{
		ConnectHook: func(conn *gosqlite3.SQLiteConn) error {
			return conn.RegisterFunc(SQLiteLowerFunc, strings.ToLower, true)
		},
	})
	sqlx.BindDriver(SQLiteDriverName, sqlx.QUESTION)
}

// DB wraps the sqlx connection with migration and health helpers
type DB struct {
	*sqlx.DB
	log zerolog.Logger
}

// New opens a SQL connection for the postgres or sqlite driver with connection pooling
func New(cfg *config.StoreConfig, log zerolog.Logger) (*DB, error) {
	var (
		driverName string
		dsn        string
	)

	switch cfg.Driver {
	case config.DriverPostgres:
		driverName, dsn = "postgres", cfg.DatabaseURL
	case config.DriverSQLite:
		driverName, dsn = SQLiteDriverName, sqliteDSN(cfg.SQLitePath)
		if cfg.SQLitePath != MemoryPath {
			if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return nil, fmt.Errorf("failed to create directory for database: %w", err)
				}
			}
		}
	default:
		return nil, fmt.Errorf("unsupported SQL driver %q", cfg.Driver)
	}

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Configure connection pool
	if cfg.Driver == config.DriverSQLite && cfg.SQLitePath == MemoryPath {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.MaxLifetime)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	wrapper := &DB{
		DB:  db,
		log: log.With().Str("component", "database").Logger(),
	}

	wrapper.log.Info().
		Str("driver", driverName).
		Int("max_open_conns", db.Stats().MaxOpenConnections).
		Msg("Database connection established")

	return wrapper, nil
}

func sqliteDSN(path string) string {
	if path == MemoryPath {
		return path
	}
	// WAL allows concurrent reads while writing
	return fmt.Sprintf("%s?_journal=WAL&_synchronous=NORMAL&_busy_timeout=5000", path)
}

// IsPostgres reports whether the connection speaks the postgres dialect
func (db *DB) IsPostgres() bool {
	return db.DriverName() == "postgres"
}

// newMigrate builds a migrate instance over the embedded migrations for this dialect
func (db *DB) newMigrate() (*migrate.Migrate, error) {
	var (
		driver  migratedb.Driver
		dirName string
		err     error
	)

	if db.IsPostgres() {
		dirName = "postgres"
		driver, err = postgres.WithInstance(db.DB.DB, &postgres.Config{})
	} else {
		dirName = "sqlite3"
		driver, err = sqlite3.WithInstance(db.DB.DB, &sqlite3.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationFiles, "migrations/"+dirName)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, dirName, driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// RunMigrations executes all pending migrations using golang-migrate
func (db *DB) RunMigrations() error {
	db.log.Info().Str("driver", db.DriverName()).Msg("Running database migrations")

	m, err := db.newMigrate()
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	db.log.Info().
		Uint("version", version).
		Bool("dirty", dirty).
		Msg("Migrations completed")

	return nil
}

// MigrateDown rolls back the last migration
func (db *DB) MigrateDown() error {
	db.log.Info().Msg("Rolling back last migration")

	m, err := db.newMigrate()
	if err != nil {
		return err
	}

	if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}

	db.log.Info().Msg("Migration rolled back")
	return nil
}

// MigrateToVersion migrates to a specific version
func (db *DB) MigrateToVersion(version uint) error {
	db.log.Info().Uint("version", version).Msg("Migrating to specific version")

	m, err := db.newMigrate()
	if err != nil {
		return err
	}

	if err := m.Migrate(version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to migrate to version %d: %w", version, err)
	}

	return nil
}

// MigrationVersion returns the current schema version; 0 when nothing was applied
func (db *DB) MigrationVersion() (uint, bool, error) {
	m, err := db.newMigrate()
	if err != nil {
		return 0, false, err
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// HealthCheck verifies the database connection is healthy
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.PingContext(ctx)
}
