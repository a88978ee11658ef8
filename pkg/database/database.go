// Package database owns the PostgreSQL connection pool shared by all repositories.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ghuser/stockroom/pkg/logger"
)

// DBTX is the subset of database/sql used by repositories.
// Both *sql.DB and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Database wraps a *sql.DB opened through the pgx stdlib driver.
type Database struct {
	db *sql.DB
}

// NewPool opens a pgx-backed pool for url and verifies it with a ping.
func NewPool(ctx context.Context, url string, log logger.Logger) (*Database, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database: ping: %w", err)
	}
	log.Debug("database pool configured", "max_open_conns", 20, "max_idle_conns", 5)
	return &Database{db: db}, nil
}

// New wraps an already opened handle. Used by tests with sqlmock.
func New(db *sql.DB) *Database {
	return &Database{db: db}
}

// DB returns the underlying handle for non-transactional queries.
func (d *Database) DB() *sql.DB {
	return d.db
}

// WithTx runs fn inside a transaction. It commits when fn returns nil and
// rolls back on error or panic; panics are re-raised.
func (d *Database) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("database: begin: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = fmt.Errorf("database: commit: %w", cerr)
		}
	}()
	return fn(tx)
}

// Ping checks connectivity.
func (d *Database) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database: ping: %w", err)
	}
	return nil
}

// Close releases the pool.
func (d *Database) Close() error {
	return d.db.Close()
}
