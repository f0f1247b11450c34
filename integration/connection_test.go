//go:build integration

package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsintel/dossier-migrate/internal/change"
	"github.com/opsintel/dossier-migrate/internal/database"
)

func TestConnection_missingFile_failsWithoutCreating(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "no-such-dossier.db")

	_, err := RunMigration(context.Background(), path, change.EnsembleReviewFields())

	require.Error(t, err)
	assert.ErrorIs(t, err, database.ErrDatabaseMissing)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "migration must never create a database file")
}

func TestConnection_openClose_leavesFileUsable(t *testing.T) {
	t.Parallel()

	path := SetupDossier(t)
	ctx := context.Background()

	db, err := database.Open(ctx, path, database.DefaultBusyTimeout)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// A fresh connection still works after close.
	rows := QueryAll(t, path, `SELECT id FROM reports ORDER BY id`)
	assert.Len(t, rows, 3)
}
