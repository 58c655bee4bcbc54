package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"geotrivia-service/internal/catalog"
	"geotrivia-service/internal/config"
	pgmigrations "geotrivia-service/internal/infra/postgres/migrations"
)

// NewMigrateCmd applies database migrations and seeds the built-in
// question groups.
func NewMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and seed built-in question groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(cmd.Context(), *configPath)
		},
	}
}

func runMigrations(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	return runMigrationsWithConfig(ctx, cfg)
}

func runMigrationsWithConfig(ctx context.Context, cfg config.Config) error {
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)

	if err := migrator.Init(ctx); err != nil {
		return err
	}

	if _, err := migrator.Migrate(ctx); err != nil {
		return err
	}

	if err := seedBuiltinGroups(ctx, db); err != nil {
		return err
	}
	log.Printf("migrations applied")
	return nil
}

// seedBuiltinGroups upserts the catalog's built-in groups so a fresh
// database serves the same content as the static fallback.
func seedBuiltinGroups(ctx context.Context, db *bun.DB) error {
	for position, group := range catalog.BuiltinGroups() {
		data, err := json.Marshal(group)
		if err != nil {
			return fmt.Errorf("marshal group %s: %w", group.ID, err)
		}
		_, err = db.ExecContext(ctx,
			`INSERT INTO question_groups (id, position, data) VALUES (?, ?, ?::jsonb)
			 ON CONFLICT (id) DO UPDATE SET position=EXCLUDED.position, data=EXCLUDED.data`,
			group.ID, position, string(data))
		if err != nil {
			return fmt.Errorf("seed group %s: %w", group.ID, err)
		}
	}
	return nil
}
