// Package database opens connections to the dossier SQLite database.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver
)

// DefaultBusyTimeout is how long a statement waits on SQLite's file lock
// before failing. Writer serialization between concurrent migration runs
// relies entirely on this engine-level locking.
const DefaultBusyTimeout = 5 * time.Second

// Open opens the database file at path and verifies connectivity.
// It returns ErrDatabaseMissing if the file does not exist or cannot be
// read: the migration maintains an existing database and must never
// create one. The caller owns the returned handle and must close it.
func Open(ctx context.Context, path string, busyTimeout time.Duration) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDatabaseMissing, path, err)
	}

	if busyTimeout <= 0 {
		busyTimeout = DefaultBusyTimeout
	}

	db, err := sql.Open("sqlite3", dsn(path, busyTimeout))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	// One connection: schema migration is a strictly serial workload and
	// pool growth would only contend on the file lock.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()

		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	return db, nil
}

// dsn builds a URI-style DSN that refuses to create a missing file
// (mode=rw, not rwc), enforces foreign keys, sets the busy timeout, and
// makes every transaction BEGIN IMMEDIATE so the write lock is taken up
// front instead of failing mid-transaction on lock upgrade.
func dsn(path string, busyTimeout time.Duration) string {
	return fmt.Sprintf("file:%s?mode=rw&_foreign_keys=1&_txlock=immediate&_busy_timeout=%d",
		path, busyTimeout.Milliseconds())
}
