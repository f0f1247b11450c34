package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsintel/dossier-migrate/internal/config"
)

func newStatusCmd(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().String("format", "", "")
	cmd.SetOut(out)

	return cmd
}

func TestRunStatus_freshBaseline_allPending(t *testing.T) { //nolint:paralleltest // writes global AppConfig
	AppConfig = &config.Config{DatabasePath: newBaselineDB(t), Format: "text"}

	out := new(bytes.Buffer)

	err := runStatus(newStatusCmd(out), nil)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "pending")
	assert.Contains(t, out.String(), "reports.review_status")
	assert.Contains(t, out.String(), "0 applied, 6 pending.")
	assert.Contains(t, out.String(), "fingerprint")
}

func TestRunStatus_afterApply_allApplied(t *testing.T) { //nolint:paralleltest // writes global AppConfig
	AppConfig = &config.Config{DatabasePath: newBaselineDB(t), Format: "text"}

	require.NoError(t, runApply(newApplyCmd(new(bytes.Buffer)), nil))

	out := new(bytes.Buffer)
	err := runStatus(newStatusCmd(out), nil)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "6 applied, 0 pending.")
}

func TestRunStatus_jsonFormat(t *testing.T) { //nolint:paralleltest // writes global AppConfig
	AppConfig = &config.Config{DatabasePath: newBaselineDB(t), Format: "text"}

	out := new(bytes.Buffer)
	cmd := newStatusCmd(out)
	require.NoError(t, cmd.Flags().Set("format", "json"))

	err := runStatus(cmd, nil)
	require.NoError(t, err)

	var payload struct {
		Fingerprint string `json:"fingerprint"`
		Changes     []struct {
			ID      string `json:"id"`
			SQL     string `json:"sql"`
			Applied bool   `json:"applied"`
		} `json:"changes"`
	}

	require.NoError(t, json.Unmarshal(out.Bytes(), &payload))
	assert.Len(t, payload.Fingerprint, 64)
	require.Len(t, payload.Changes, 6)
	assert.Equal(t, "reports.review_status", payload.Changes[0].ID)
	assert.False(t, payload.Changes[0].Applied)
	assert.Contains(t, payload.Changes[0].SQL, "ALTER TABLE reports ADD COLUMN review_status")
}

func TestRunPlan_freshBaseline_printsSQL(t *testing.T) { //nolint:paralleltest // writes global AppConfig
	AppConfig = &config.Config{DatabasePath: newBaselineDB(t)}

	out := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(out)

	err := runPlan(cmd, nil)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "-- 1. reports.review_status")
	assert.Contains(t, out.String(), "ALTER TABLE reports ADD COLUMN review_status TEXT NOT NULL DEFAULT 'unreviewed';")
	assert.Contains(t, out.String(), "CREATE TABLE ensemble_reviews")
}

func TestRunPlan_fullyMigrated_reportsNothingPending(t *testing.T) { //nolint:paralleltest // writes global AppConfig
	AppConfig = &config.Config{DatabasePath: newBaselineDB(t)}

	require.NoError(t, runApply(newApplyCmd(new(bytes.Buffer)), nil))

	out := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(out)

	err := runPlan(cmd, nil)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "No pending changes.")
}
