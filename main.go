// main.go
package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"feedback-portal/cmd"
	"feedback-portal/internal/data/repository"
	"feedback-portal/internal/wire"
	"feedback-portal/pkg/database"
	"feedback-portal/pkg/utils"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	flags := pflag.NewFlagSet("feedback-portal", pflag.ExitOnError)
	envFile := flags.String("env", ".env", "path to the .env file")
	migrateOnly := flags.Bool("migrate-only", false, "apply database migrations and exit")
	grants := flags.StringSlice("grant-role", nil, "grant a role at startup, as username=role (repeatable)")
	_ = flags.Parse(os.Args[1:])

	// Load config
	config, err := utils.LoadConfig(*envFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx := context.Background()

	// Apply schema before anything touches the pool
	if err := database.RunMigrations(ctx, config.Database, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if *migrateOnly {
		logger.Info("Migrations applied, exiting")
		return
	}

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	if err := bootstrap(ctx, app, *grants, logger); err != nil {
		logger.Fatal("Startup bootstrap failed", zap.Error(err))
	}

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}

// bootstrap seeds the role catalogue, applies --grant-role and drops stale
// sessions. Every step is safe to repeat on each start.
func bootstrap(ctx context.Context, app *wire.App, grants []string, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := app.Service.Role.EnsureDefaultRoles(ctx); err != nil {
		return err
	}

	for _, grant := range grants {
		username, role, ok := strings.Cut(grant, "=")
		if !ok || username == "" || role == "" {
			logger.Warn("Ignoring malformed --grant-role, expected username=role", zap.String("value", grant))
			continue
		}
		if err := app.Service.Role.GrantRole(ctx, strings.TrimSpace(username), strings.TrimSpace(role)); err != nil {
			return err
		}
	}

	if _, err := app.Service.Auth.CleanupSessions(ctx); err != nil {
		logger.Warn("Failed to clean expired sessions", zap.Error(err))
	}
	return nil
}
