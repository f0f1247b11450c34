package schema_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsintel/dossier-migrate/internal/schema"
)

// baselineDDL is a pre-migration dossier database: reports, sources, and
// assessments exist, none of the ensemble-review fields do.
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
INSERT INTO reports (id, title, body, source_id) VALUES
	('RPT-001', 'Port activity', 'three vessels', 'SRC-01'),
	('RPT-002', 'Comms intercept', 'garbled', 'SRC-02');
INSERT INTO sources (id, name, reliability) VALUES
	('SRC-01', 'harbor watch', 'B'),
	('SRC-02', 'signals', 'C');
`

// newBaselineDB creates a populated temp-file dossier database.
func newBaselineDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "dossier.db")

	db, err := sql.Open("sqlite3", "file:"+path+"?_foreign_keys=1")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(baselineDDL)
	require.NoError(t, err)

	return db
}

func TestRead(t *testing.T) {
	t.Parallel()

	db := newBaselineDB(t)

	snap, err := schema.Read(context.Background(), db)
	require.NoError(t, err)

	assert.Equal(t, 3, snap.Tables())
	assert.True(t, snap.HasTable("reports"))
	assert.True(t, snap.HasTable("sources"))
	assert.False(t, snap.HasTable("ensemble_reviews"))

	typ, ok := snap.ColumnType("reports", "title")
	require.True(t, ok)
	assert.Equal(t, "TEXT", typ)

	_, ok = snap.ColumnType("reports", "review_status")
	assert.False(t, ok)

	_, ok = snap.ColumnType("nonexistent", "anything")
	assert.False(t, ok)
}

func TestRead_closedConnection_returnsSchemaReadError(t *testing.T) {
	t.Parallel()

	db := newBaselineDB(t)
	require.NoError(t, db.Close())

	_, err := schema.Read(context.Background(), db)

	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrSchemaRead)
}

func TestNormalizeType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"text", "TEXT"},
		{"  Integer ", "INTEGER"},
		{"varchar(40)", "VARCHAR(40)"},
		{"TIMESTAMP   WITH TIME ZONE", "TIMESTAMP WITH TIME ZONE"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, schema.NormalizeType(tt.in), "input %q", tt.in)
	}
}
