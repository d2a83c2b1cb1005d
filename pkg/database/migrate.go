package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"feedback-portal/pkg/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations applies every pending migration. goose works on
// database/sql, so it gets its own short-lived connection through the
// pgx stdlib driver instead of borrowing the pool.
func RunMigrations(ctx context.Context, config utils.DatabaseConfig, log *zap.Logger) error {
	db, err := sql.Open("pgx", DSN(config))
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	return migrate(ctx, db, log)
}

func migrate(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("configure goose: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	before, err := goose.GetDBVersionContext(runCtx, db)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if err := goose.UpContext(runCtx, db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	after, err := goose.GetDBVersionContext(runCtx, db)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	log.Info("Database migrations applied",
		zap.Int64("from_version", before),
		zap.Int64("to_version", after),
	)
	return nil
}
