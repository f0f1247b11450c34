package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/opsintel/dossier-migrate/internal/applier"
	"github.com/opsintel/dossier-migrate/internal/change"
	"github.com/opsintel/dossier-migrate/internal/schema"
)

var applyCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "apply",
	Short: "Apply missing ensemble-review fields",
	Long: `Apply the declared ensemble-review schema additions that are not yet
present in the database. Already-present fields are skipped; existing
rows are never touched. Safe to run repeatedly.`,
	RunE: runApply,
}

func init() { //nolint:gochecknoinits // standard Cobra pattern for flag registration
	applyCmd.Flags().Bool("dry-run", false, "show what would be applied without executing")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, _ []string) error {
	cfg := AppConfig
	out := cmd.OutOrStdout()

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	declared := change.EnsembleReviewFields()

	reportConnecting(out, cfg, verbose)

	db, err := openDatabase(ctx, cfg, declared)
	if err != nil {
		return err
	}
	defer db.Close()

	diff, err := readDiff(ctx, db, declared)
	if err != nil {
		return err
	}

	return executeChanges(ctx, out, db, diff, dryRun)
}

func executeChanges(ctx context.Context, out io.Writer, db *sql.DB, diff schema.Diff, dryRun bool) error {
	if dryRun {
		fmt.Fprintln(out, "--- DRY RUN (no changes will be made) ---")
	}

	a := applier.New(db,
		applier.WithDryRun(dryRun),
		applier.WithProgressCallback(progressPrinter(out)),
	)

	outcome, err := a.Apply(ctx, diff)
	if err != nil {
		if outcome.Failed != nil {
			fmt.Fprintf(out, "\nApply stopped: %d applied, %d skipped, failed on %s.\n",
				len(outcome.Applied), len(outcome.Skipped), outcome.Failed.ID())
		}

		return err
	}

	if dryRun {
		fmt.Fprintf(out, "Dry run complete: %d change(s) would be applied, %d already present.\n",
			len(diff.Missing), len(outcome.Skipped))
	} else {
		fmt.Fprintf(out, "\nApply complete: %d applied, %d skipped.\n",
			len(outcome.Applied), len(outcome.Skipped))
	}

	return nil
}

// progressPrinter renders applier progress events one line per change.
func progressPrinter(out io.Writer) func(applier.ProgressEvent) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	return func(event applier.ProgressEvent) {
		switch event.Status {
		case applier.StatusStarting:
			fmt.Fprintf(out, "  Adding %s ... ", event.Change.ID())
		case applier.StatusCompleted:
			green.Fprint(out, "done")
			fmt.Fprintf(out, " (%s)\n", event.Duration.Truncate(time.Millisecond))
		case applier.StatusFailed:
			red.Fprintln(out, "FAILED")
			fmt.Fprintf(out, "    Error: %v\n", event.Error)
		case applier.StatusSkipped:
			// counted in the summary, not printed per change
		}
	}
}
