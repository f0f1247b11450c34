//go:build integration

package integration

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/opsintel/dossier-migrate/internal/applier"
	"github.com/opsintel/dossier-migrate/internal/change"
	"github.com/opsintel/dossier-migrate/internal/database"
	"github.com/opsintel/dossier-migrate/internal/schema"
)

// baselineDDL is a realistic pre-migration dossier database: populated
// reports, sources, and assessments, none of the ensemble-review fields.
const baselineDDL = `
CREATE TABLE reports (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	body TEXT,
	source_id TEXT,
	classification TEXT NOT NULL DEFAULT 'unclassified',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE sources (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	reliability TEXT
);
CREATE TABLE assessments (
	id TEXT PRIMARY KEY,
	report_id TEXT REFERENCES reports(id),
	analyst TEXT,
	summary TEXT
);
INSERT INTO sources (id, name, reliability) VALUES
	('SRC-01', 'harbor watch', 'B'),
	('SRC-02', 'signals', 'C');
INSERT INTO reports (id, title, body, source_id, classification) VALUES
	('RPT-001', 'Port activity', 'three vessels at berth 4', 'SRC-01', 'restricted'),
	('RPT-002', 'Comms intercept', 'partial transcript, garbled', 'SRC-02', 'secret'),
	('RPT-003', 'Courier sighting', 'known courier, new route', 'SRC-01', 'unclassified');
INSERT INTO assessments (id, report_id, analyst, summary) VALUES
	('ASM-001', 'RPT-001', 'fender', 'routine traffic'),
	('ASM-002', 'RPT-002', 'mills', 'needs corroboration');
`

// SetupDossier creates a populated pre-migration database file and
// returns its path. The file is cleaned up with the test's temp dir.
func SetupDossier(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "dossier.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(baselineDDL)
	require.NoError(t, err)

	return path
}

// RunMigration exercises the full driver contract against a database
// file: open, inspect, diff, apply, close on every exit path.
func RunMigration(ctx context.Context, path string, declared []change.Change) (applier.Outcome, error) {
	db, err := database.Open(ctx, path, database.DefaultBusyTimeout)
	if err != nil {
		return applier.Outcome{}, err
	}
	defer db.Close()

	snap, err := schema.Read(ctx, db)
	if err != nil {
		return applier.Outcome{}, err
	}

	return applier.New(db).Apply(ctx, schema.Compute(snap, declared))
}

// Inspect opens the database read-side and returns a fresh snapshot.
func Inspect(t *testing.T, path string) schema.Snapshot {
	t.Helper()

	ctx := context.Background()

	db, err := database.Open(ctx, path, database.DefaultBusyTimeout)
	require.NoError(t, err)
	defer db.Close()

	snap, err := schema.Read(ctx, db)
	require.NoError(t, err)

	return snap
}

// QueryAll runs a query against the database file and returns all rows
// rendered as strings, for before/after data comparisons.
func QueryAll(t *testing.T, path, query string) []string {
	t.Helper()

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query(query)
	require.NoError(t, err)
	defer rows.Close()

	cols, err := rows.Columns()
	require.NoError(t, err)

	var out []string

	for rows.Next() {
		values := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))

		for i := range values {
			ptrs[i] = &values[i]
		}

		require.NoError(t, rows.Scan(ptrs...))

		line := ""
		for _, v := range values {
			line += v.String + "|"
		}

		out = append(out, line)
	}

	require.NoError(t, rows.Err())

	return out
}
