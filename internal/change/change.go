package change

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Change represents a single declared additive schema change: either a
// column added to an existing table or a brand-new table.
type Change struct {
	Table     string // table the change touches
	Column    string // empty for table creations
	Type      string // column type, e.g. "TEXT"
	NotNull   bool
	Default   string // rendered default literal; required when NotNull is set
	CreateSQL string // full DDL for table creations (may include index statements)
}

// IsTable reports whether the change creates a new table rather than
// adding a column to an existing one.
func (c Change) IsTable() bool {
	return c.Column == ""
}

// ID returns the stable human-readable identity of the change,
// "reports.review_status" for columns or "ensemble_reviews" for tables.
func (c Change) ID() string {
	if c.IsTable() {
		return c.Table
	}

	return c.Table + "." + c.Column
}

// SQL renders the minimal additive statement for the change.
func (c Change) SQL() string {
	if c.IsTable() {
		return c.CreateSQL
	}

	var b strings.Builder

	fmt.Fprintf(&b, "ALTER TABLE %s ADD COLUMN %s %s", c.Table, c.Column, c.Type)

	if c.NotNull {
		b.WriteString(" NOT NULL")
	}

	if c.Default != "" {
		fmt.Fprintf(&b, " DEFAULT %s", c.Default)
	}

	return b.String()
}

// Fingerprint returns the SHA-256 hex digest over the rendered SQL of all
// changes in order. It identifies a declaration revision: two builds with
// the same fingerprint will drive a database to the same schema.
func Fingerprint(changes []Change) string {
	h := sha256.New()

	for _, c := range changes {
		h.Write([]byte(c.SQL()))
		h.Write([]byte{'\n'})
	}

	return hex.EncodeToString(h.Sum(nil))
}
