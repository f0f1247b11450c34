package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opsintel/dossier-migrate/internal/change"
)

var planCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "plan",
	Short: "Show the SQL that apply would execute",
	Long: `Display the exact additive statements that apply would run for the
declared changes still missing from the database, in execution order.
Read-only.`,
	RunE: runPlan,
}

func init() { //nolint:gochecknoinits // standard Cobra pattern for flag registration
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	cfg := AppConfig
	out := cmd.OutOrStdout()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	declared := change.EnsembleReviewFields()

	db, err := openDatabase(ctx, cfg, declared)
	if err != nil {
		return err
	}
	defer db.Close()

	diff, err := readDiff(ctx, db, declared)
	if err != nil {
		return err
	}

	if !diff.Pending() {
		fmt.Fprintln(out, "No pending changes.")

		return nil
	}

	for i, c := range diff.Missing {
		fmt.Fprintf(out, "-- %d. %s\n%s;\n\n", i+1, c.ID(), c.SQL())
	}

	return nil
}
