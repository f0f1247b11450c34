// Package applier executes the missing subset of the declared schema
// changes, and nothing else.
package applier

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/opsintel/dossier-migrate/internal/change"
	"github.com/opsintel/dossier-migrate/internal/schema"
)

// Progress status constants reported via ProgressEvent.
const (
	StatusStarting  = "starting"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

// ProgressEvent is emitted by the applier for each declared change processed.
type ProgressEvent struct {
	Change   change.Change
	Status   string
	Duration time.Duration
	Error    error
}

// Outcome reports what a single migration run did. Applied and Skipped
// preserve declaration order; Failed names the change that stopped the
// run, if any. Changes after a failure are never attempted.
type Outcome struct {
	Applied []change.Change
	Skipped []change.Change
	Failed  *change.Change
}

// sqlExecFunc executes a single change's SQL.
type sqlExecFunc func(ctx context.Context, c change.Change) error

// Applier applies the missing changes from a schema diff, one immediate
// transaction per change. A failure leaves every earlier change in the
// run committed: their success is real and is not rolled back.
type Applier struct {
	db         *sql.DB
	dryRun     bool
	onProgress func(ProgressEvent)
	execSQL    sqlExecFunc
}

// Option configures an Applier.
type Option func(*Applier)

// WithDryRun enables dry-run mode where no SQL is executed.
func WithDryRun(b bool) Option {
	return func(a *Applier) { a.dryRun = b }
}

// WithProgressCallback sets a function called for each change processed.
func WithProgressCallback(fn func(ProgressEvent)) Option {
	return func(a *Applier) { a.onProgress = fn }
}

// New creates an Applier with the given database handle and options.
func New(db *sql.DB, opts ...Option) *Applier {
	a := &Applier{db: db}

	for _, opt := range opts {
		opt(a)
	}

	// Set the default after options are applied, so tests can override
	// the exec path without a live database.
	if a.execSQL == nil {
		a.execSQL = a.executeChange
	}

	return a
}

// Apply executes the diff's missing changes in declaration order.
// Present changes are reported as skipped and never touched. The caller
// must have computed the diff from this connection's current state.
// No automatic retry: a structurally invalid change needs a human.
func (a *Applier) Apply(ctx context.Context, d schema.Diff) (Outcome, error) {
	out := Outcome{}

	for _, c := range d.Present {
		a.fireProgress(ProgressEvent{Change: c, Status: StatusSkipped})
		out.Skipped = append(out.Skipped, c)
	}

	if a.dryRun {
		return out, nil
	}

	for _, c := range d.Missing {
		a.fireProgress(ProgressEvent{Change: c, Status: StatusStarting})

		start := time.Now()
		execErr := a.execSQL(ctx, c)
		duration := time.Since(start)

		if execErr != nil {
			a.fireProgress(ProgressEvent{
				Change:   c,
				Status:   StatusFailed,
				Duration: duration,
				Error:    execErr,
			})

			failed := c
			out.Failed = &failed

			return out, fmt.Errorf("%w %s: %w", ErrApplyFailed, c.ID(), execErr)
		}

		a.fireProgress(ProgressEvent{
			Change:   c,
			Status:   StatusCompleted,
			Duration: duration,
		})

		out.Applied = append(out.Applied, c)
	}

	return out, nil
}

// executeChange runs one change inside its own transaction. Schema
// mutation only: existing rows are never rewritten, and added columns
// carry their declared default.
func (a *Applier) executeChange(ctx context.Context, c change.Change) error {
	return ExecInTransaction(ctx, a.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, c.SQL()); err != nil {
			return fmt.Errorf("executing SQL: %w", err)
		}

		return nil
	})
}

func (a *Applier) fireProgress(event ProgressEvent) {
	if a.onProgress != nil {
		a.onProgress(event)
	}
}
