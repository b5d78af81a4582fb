// Package database is the shared data-access toolkit: pooled connection
// setup, named parameter binding, and the error taxonomy every repository
// in internal/modules builds on. It issues single statements only; callers
// that need transactions hold a *sql.Tx themselves.
package database

import (
	"context"
	"database/sql"
	"time"
)

// Querier executes queries that return rows. Satisfied by *sql.DB,
// *sql.Tx, and *sql.Conn, so repositories stay testable against a stub.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Execer executes statements that do not return rows.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// DB is the full capability set repositories depend on.
type DB interface {
	Querier
	Execer
}

// Config is the connection descriptor supplied by the configuration
// boundary. The DSN carries credentials and must never be logged.
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

const (
	defaultMaxOpenConns    = 10
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 30 * time.Minute
	defaultConnMaxIdleTime = 5 * time.Minute
)

// Open creates a pooled connection to the backing store and verifies it
// with a context-bound ping. Error messages are sanitized: the DSN and
// its credentials never appear in them, only in the wrapped cause.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	if cfg.DSN == "" {
		return nil, New(KindInvalidRequest, "database: connection string is required")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, Wrap(KindConnection, "database: invalid connection configuration", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	} else {
		db.SetMaxOpenConns(defaultMaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	} else {
		db.SetMaxIdleConns(defaultMaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	} else {
		db.SetConnMaxLifetime(defaultConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	} else {
		db.SetConnMaxIdleTime(defaultConnMaxIdleTime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		if ctx.Err() != nil {
			return nil, Wrap(KindCanceled, "database: connection attempt canceled", err)
		}
		return nil, Wrap(KindConnection, "database: could not reach the store", err)
	}

	return db, nil
}
