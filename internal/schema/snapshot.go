// Package schema inspects the live database and diffs it against the
// declared additive changes. It never mutates the database.
package schema

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Snapshot is the set of tables and columns present in the database at
// the start of a migration run. It is read fresh on every run and never
// persisted; a diff computed from it must not be applied to a database
// that has since changed.
type Snapshot struct {
	// tables maps table name to column name to normalized column type.
	tables map[string]map[string]string
}

// Read enumerates the database's tables and columns. Returns an error
// wrapping ErrSchemaRead if the catalog cannot be read.
func Read(ctx context.Context, db *sql.DB) (Snapshot, error) {
	snap := Snapshot{tables: make(map[string]map[string]string)}

	names, err := tableNames(ctx, db)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrSchemaRead, err)
	}

	for _, name := range names {
		cols, err := tableColumns(ctx, db, name)
		if err != nil {
			return Snapshot{}, fmt.Errorf("%w: %w", ErrSchemaRead, err)
		}

		snap.tables[name] = cols
	}

	return snap, nil
}

// HasTable reports whether the snapshot contains the given table.
func (s Snapshot) HasTable(table string) bool {
	_, ok := s.tables[table]

	return ok
}

// ColumnType returns the normalized type of the given column, and whether
// the column exists in the snapshot.
func (s Snapshot) ColumnType(table, column string) (string, bool) {
	cols, ok := s.tables[table]
	if !ok {
		return "", false
	}

	typ, ok := cols[column]

	return typ, ok
}

// Tables returns the number of tables in the snapshot.
func (s Snapshot) Tables() int {
	return len(s.tables)
}

// tableNames lists user tables from sqlite_master, excluding SQLite's
// internal bookkeeping tables.
func tableNames(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT name FROM sqlite_master
		 WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		 ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying sqlite_master: %w", err)
	}
	defer rows.Close()

	var names []string

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning table name: %w", err)
		}

		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating table names: %w", err)
	}

	return names, nil
}

// tableColumns reads a table's columns via the pragma_table_info
// table-valued function, returning column name -> normalized type.
func tableColumns(ctx context.Context, db *sql.DB, table string) (map[string]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT name, type FROM pragma_table_info(?)`, table,
	)
	if err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", table, err)
	}
	defer rows.Close()

	cols := make(map[string]string)

	for rows.Next() {
		var name, typ string
		if err := rows.Scan(&name, &typ); err != nil {
			return nil, fmt.Errorf("scanning column of %s: %w", table, err)
		}

		cols[name] = NormalizeType(typ)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating columns of %s: %w", table, err)
	}

	return cols, nil
}

// NormalizeType canonicalizes a column type for comparison. SQLite stores
// the declared type verbatim, so case and surrounding whitespace vary.
func NormalizeType(typ string) string {
	return strings.ToUpper(strings.Join(strings.Fields(typ), " "))
}
