package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/opsintel/dossier-migrate/internal/change"
	"github.com/opsintel/dossier-migrate/internal/schema"
)

var statusCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "status",
	Short: "Show migration status",
	Long: `Display, for each declared ensemble-review field, whether it is
already present in the database. Read-only.`,
	RunE: runStatus,
}

func init() { //nolint:gochecknoinits // standard Cobra pattern for flag registration
	statusCmd.Flags().String("format", "", "output format (text, json)")
	rootCmd.AddCommand(statusCmd)
}

// statusEntry is the JSON representation of one declared change's state.
type statusEntry struct {
	ID      string `json:"id"`
	SQL     string `json:"sql"`
	Applied bool   `json:"applied"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfg := AppConfig
	out := cmd.OutOrStdout()

	format := cfg.Format
	if cmd.Flags().Changed("format") {
		format, _ = cmd.Flags().GetString("format")
	}

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

	if format == "json" {
		return printStatusJSON(out, declared, diff)
	}

	printStatusText(out, declared, diff)

	return nil
}

func printStatusText(out io.Writer, declared []change.Change, diff schema.Diff) {
	applied := make(map[string]bool, len(diff.Present))
	for _, c := range diff.Present {
		applied[c.ID()] = true
	}

	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	for _, c := range declared {
		if applied[c.ID()] {
			green.Fprint(out, "  applied  ")
		} else {
			yellow.Fprint(out, "  pending  ")
		}

		fmt.Fprintln(out, c.ID())
	}

	fmt.Fprintf(out, "\n%d applied, %d pending. Declaration fingerprint %s\n",
		len(diff.Present), len(diff.Missing), change.Fingerprint(declared)[:12])
}

func printStatusJSON(out io.Writer, declared []change.Change, diff schema.Diff) error {
	applied := make(map[string]bool, len(diff.Present))
	for _, c := range diff.Present {
		applied[c.ID()] = true
	}

	entries := make([]statusEntry, 0, len(declared))
	for _, c := range declared {
		entries = append(entries, statusEntry{
			ID:      c.ID(),
			SQL:     c.SQL(),
			Applied: applied[c.ID()],
		})
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	if err := enc.Encode(map[string]any{
		"fingerprint": change.Fingerprint(declared),
		"changes":     entries,
	}); err != nil {
		return fmt.Errorf("encoding status: %w", err)
	}

	return nil
}
