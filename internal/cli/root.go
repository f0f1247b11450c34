// Package cli is the driver boundary: it owns the connection lifecycle,
// translates the core's typed errors into exit codes and messages, and
// performs no schema logic of its own.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opsintel/dossier-migrate/internal/config"
)

const version = "0.3.0"

// AppConfig holds the loaded configuration, set during PersistentPreRunE.
var AppConfig *config.Config //nolint:gochecknoglobals // standard Cobra pattern for shared config

// rootCmd is the base command for the dossier-migrate CLI.
var rootCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:     "dossier-migrate",
	Version: version,
	Short:   "Maintenance CLI for the dossier intelligence database",
	Long: `dossier-migrate maintains an existing dossier database: it inspects
the live schema, determines which of the declared ensemble-review fields
are missing, and applies only those, leaving every existing row, column,
and table untouched. Safe to run repeatedly.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
}

func init() { //nolint:gochecknoinits // standard Cobra pattern for flag registration
	rootCmd.PersistentFlags().String("config", "dossier.yml", "path to configuration file")
	rootCmd.PersistentFlags().String("database", "", "path to the dossier database file")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable verbose output")
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig loads configuration with precedence: flag > env > file.
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	allowMissing := !cmd.Flags().Changed("config")

	cfg, err := config.Load(configPath, allowMissing)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	config.MergeEnv(cfg)
	mergeFlags(cmd, cfg)

	AppConfig = cfg

	return nil
}

// mergeFlags overrides config with explicitly-set CLI flags.
func mergeFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("database") {
		path, _ := cmd.Flags().GetString("database")
		cfg.DatabasePath = config.ExpandPath(path)
	}
}
