// Package db provides the local sqlite store used as a lookup cache.
//
// This package contains:
//   - DB: connection wrapper with sqlite pragmas applied
//   - Migration support via goose
//   - A key/value cache with per-entry max age (cache.go)
//
// The driver is modernc.org/sqlite, so no cgo toolchain is needed.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"

	"github.com/lueurxax/intel-watch/migrations"
)

const (
	driverName   = "sqlite"
	gooseDialect = "sqlite3"
	dirPerm      = 0o755
)

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA foreign_keys=ON",
}

// DB wraps a sqlite connection.
type DB struct {
	SQL    *sql.DB
	Logger *zerolog.Logger
	now    func() time.Time
}

// Open opens (creating if needed) the sqlite file at path and applies
// migrations.
func Open(ctx context.Context, path string, logger *zerolog.Logger) (*DB, error) {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	conn, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// sqlite serialises writers anyway; one connection avoids SQLITE_BUSY.
	conn.SetMaxOpenConns(1)

	db := &DB{SQL: conn, Logger: logger, now: time.Now}

	if err := db.configure(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := db.Migrate(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (db *DB) configure(ctx context.Context) error {
	for _, p := range pragmas {
		if _, err := db.SQL.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("sqlite pragma %q: %w", p, err)
		}
	}

	return nil
}

// Ping checks that the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.SQL.PingContext(ctx); err != nil {
		return fmt.Errorf("ping sqlite: %w", err)
	}

	return nil
}

// Close closes the connection.
func (db *DB) Close() error {
	if db.SQL == nil {
		return nil
	}

	return db.SQL.Close()
}

type gooseLogger struct {
	logger *zerolog.Logger
}

func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Fatal().Msgf(format, v...)
}

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Debug().Msgf(format, v...)
}

// Migrate applies the embedded migrations.
func (db *DB) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(&gooseLogger{logger: db.Logger})

	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db.SQL, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}
