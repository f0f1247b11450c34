package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/opsintel/dossier-migrate/internal/change"
	"github.com/opsintel/dossier-migrate/internal/config"
	"github.com/opsintel/dossier-migrate/internal/database"
	"github.com/opsintel/dossier-migrate/internal/schema"
)

// errDatabasePathRequired is returned when no database path is configured.
var errDatabasePathRequired = errors.New(
	"database path is required (set --database, DOSSIER_DATABASE_PATH, or database_path in config)",
)

// openDatabase validates the declaration, then opens the configured
// database. The caller must close the returned handle on every exit path.
func openDatabase(ctx context.Context, cfg *config.Config, declared []change.Change) (*sql.DB, error) {
	if cfg.DatabasePath == "" {
		return nil, errDatabasePathRequired
	}

	if err := change.Validate(declared); err != nil {
		return nil, fmt.Errorf("invalid declaration: %w", err)
	}

	db, err := database.Open(ctx, cfg.DatabasePath, cfg.BusyTimeout)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", cfg.DatabasePath, err)
	}

	return db, nil
}

// readDiff takes a fresh snapshot of the live schema and diffs it against
// the declaration. The diff is only valid against this same connection.
func readDiff(ctx context.Context, db *sql.DB, declared []change.Change) (schema.Diff, error) {
	snap, err := schema.Read(ctx, db)
	if err != nil {
		return schema.Diff{}, fmt.Errorf("inspecting schema: %w", err)
	}

	return schema.Compute(snap, declared), nil
}

// reportConnecting prints the target database when verbose is set.
func reportConnecting(out io.Writer, cfg *config.Config, verbose bool) {
	if verbose {
		fmt.Fprintf(out, "Database: %s\n", cfg.DatabasePath)
	}
}
