package schema

import (
	"github.com/opsintel/dossier-migrate/internal/change"
)

// Diff partitions a declaration into changes to apply and changes to skip.
// Both slices preserve declaration order.
type Diff struct {
	Missing []change.Change
	Present []change.Change
}

// Pending reports whether any declared change still needs to be applied.
func (d Diff) Pending() bool {
	return len(d.Missing) > 0
}

// Compute partitions the declared changes against the snapshot. It is
// deterministic for identical inputs and performs no database access.
//
// A column that exists under the declared name but with a different
// normalized type is classified as missing: the applier's ALTER will then
// fail with a duplicate-column error that names the conflicting change,
// rather than the diff silently treating an incompatible column as done.
func Compute(snap Snapshot, declared []change.Change) Diff {
	var d Diff

	for _, c := range declared {
		if isPresent(snap, c) {
			d.Present = append(d.Present, c)
		} else {
			d.Missing = append(d.Missing, c)
		}
	}

	return d
}

func isPresent(snap Snapshot, c change.Change) bool {
	if c.IsTable() {
		return snap.HasTable(c.Table)
	}

	typ, ok := snap.ColumnType(c.Table, c.Column)
	if !ok {
		return false
	}

	return typ == NormalizeType(c.Type)
}
