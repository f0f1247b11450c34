package applier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsintel/dossier-migrate/internal/change"
	"github.com/opsintel/dossier-migrate/internal/schema"
)

func TestApply_stopsAtFirstFailure_laterChangesNotAttempted(t *testing.T) {
	t.Parallel()

	a := change.Change{Table: "reports", Column: "a", Type: "TEXT"}
	b := change.Change{Table: "reports", Column: "b", Type: "TEXT"}
	c := change.Change{Table: "reports", Column: "c", Type: "TEXT"}

	execErr := errors.New("duplicate column name: b")

	var executed []string

	ap := New(nil)
	ap.execSQL = func(_ context.Context, ch change.Change) error {
		executed = append(executed, ch.ID())

		if ch.ID() == b.ID() {
			return execErr
		}

		return nil
	}

	outcome, err := ap.Apply(context.Background(), schema.Diff{Missing: []change.Change{a, b, c}})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrApplyFailed)
	assert.ErrorIs(t, err, execErr)
	assert.Equal(t, []string{"reports.a", "reports.b"}, executed, "c never attempted")
	assert.Equal(t, []change.Change{a}, outcome.Applied)
	require.NotNil(t, outcome.Failed)
	assert.Equal(t, b.ID(), outcome.Failed.ID())
}

func TestApply_presentChangesAreNeverExecuted(t *testing.T) {
	t.Parallel()

	present := change.Change{Table: "reports", Column: "done", Type: "TEXT"}

	var executed int

	ap := New(nil)
	ap.execSQL = func(_ context.Context, _ change.Change) error {
		executed++

		return nil
	}

	outcome, err := ap.Apply(context.Background(), schema.Diff{Present: []change.Change{present}})

	require.NoError(t, err)
	assert.Zero(t, executed)
	assert.Equal(t, []change.Change{present}, outcome.Skipped)
}

func TestApply_dryRun_skipsExecPath(t *testing.T) {
	t.Parallel()

	missing := change.Change{Table: "reports", Column: "x", Type: "TEXT"}

	var executed int

	ap := New(nil, WithDryRun(true))
	ap.execSQL = func(_ context.Context, _ change.Change) error {
		executed++

		return nil
	}

	outcome, err := ap.Apply(context.Background(), schema.Diff{Missing: []change.Change{missing}})

	require.NoError(t, err)
	assert.Zero(t, executed)
	assert.Empty(t, outcome.Applied)
}
