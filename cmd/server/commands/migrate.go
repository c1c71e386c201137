package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/personal-blog-api/internal/config"
)

var (
	// Migrate flags
	targetVersion uint
)

// errMongoSchema is returned by schema commands that only make sense for SQL stores
var errMongoSchema = errors.New("the mongo driver has no versioned schema; use 'migrate up' to ensure indexes")

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the article store schema",
	Long: `Manage the article store schema.

Subcommands:
  up       - Apply pending migrations (ensure indexes for mongo)
  down     - Roll back the last migration
  version  - Show the current schema version`,
}

// migrateUpCmd applies pending migrations
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	Long: `Apply pending migrations to the configured store.

Examples:
  blog-api migrate up                  # Apply all pending migrations
  blog-api migrate up --target 1       # Migrate to a specific version`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrateUp(cmd.Context())
	},
}

// migrateDownCmd rolls back a migration
var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the last migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrateDown(cmd.Context())
	},
}

// migrateVersionCmd shows the schema version
var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrateVersion(cmd)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateVersionCmd)

	migrateUpCmd.Flags().UintVar(&targetVersion, "target", 0, "Migrate to this version instead of the latest")
}

// withStore loads store-only configuration, opens the store and runs fn against it
func withStore(ctx context.Context, fn func(ctx context.Context, st *store) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadStore()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log := newLogger(cfg)

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to connect to store: %w", err)
	}
	defer st.Close(context.Background())

	return fn(ctx, st)
}

func runMigrateUp(ctx context.Context) error {
	return withStore(ctx, func(ctx context.Context, st *store) error {
		if targetVersion > 0 {
			if st.sql == nil {
				return errMongoSchema
			}
			return st.sql.MigrateToVersion(targetVersion)
		}
		return st.prepare(ctx)
	})
}

func runMigrateDown(ctx context.Context) error {
	return withStore(ctx, func(ctx context.Context, st *store) error {
		if st.sql == nil {
			return errMongoSchema
		}
		return st.sql.MigrateDown()
	})
}

func runMigrateVersion(cmd *cobra.Command) error {
	return withStore(cmd.Context(), func(ctx context.Context, st *store) error {
		if st.sql == nil {
			return errMongoSchema
		}
		version, dirty, err := st.sql.MigrationVersion()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "version: %d\ndirty: %t\n", version, dirty)
		return nil
	})
}
