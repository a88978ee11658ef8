package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Supported goose commands.
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandStatus  = "status"
	CommandVersion = "version"
)

// RunMigrations applies all pending goose migrations from files against dbURL.
func RunMigrations(ctx context.Context, dbURL string, files fs.FS) error {
	return Run(ctx, dbURL, files, CommandUp)
}

// Run executes a goose command against the migrations in files.
func Run(ctx context.Context, dbURL string, files fs.FS, command string) error {
	switch command {
	case CommandUp, CommandDown, CommandStatus, CommandVersion:
	default:
		return fmt.Errorf("unsupported migration command %q", command)
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	goose.SetBaseFS(files)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.RunContext(ctx, command, db, "."); err != nil {
		return fmt.Errorf("failed to run migrations %s: %w", command, err)
	}
	return nil
}
