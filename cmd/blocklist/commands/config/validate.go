package config

import (
	"fmt"

	"github.com/marmos91/blocklist/internal/cli/output"
	"github.com/marmos91/blocklist/pkg/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate the Blocklist configuration file.

Checks for syntax errors, missing required fields, and invalid values.

Examples:
  # Validate default config
  blocklist config validate

  # Validate specific config file
  blocklist config validate --config ./bench.yaml`,
	RunE: runConfigValidate,
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.MustLoad(configPath)
	if err != nil {
		return err
	}

	displayPath := configPath
	if displayPath == "" {
		displayPath = config.GetDefaultConfigPath()
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Configuration file: %s\n", displayPath)
	_, _ = fmt.Fprintln(out, "Validation: OK")

	if warnings := configWarnings(cfg); len(warnings) > 0 {
		_, _ = fmt.Fprintln(out, "\nWarnings:")
		for _, w := range warnings {
			_, _ = fmt.Fprintf(out, "  - %s\n", w)
		}
	}

	_, _ = fmt.Fprintln(out, "\nConfiguration summary:")
	return output.PrintKeyValues(out, [][2]string{
		{"Degree", fmt.Sprint(cfg.List.Degree)},
		{"Workload", cfg.Workload.Name},
		{"Operations", fmt.Sprint(cfg.Workload.Operations)},
		{"Runs", fmt.Sprint(cfg.Workload.Runs)},
		{"Log level", cfg.Logging.Level},
	})
}

// configWarnings reports settings that are valid but probably unintended.
func configWarnings(cfg *config.Config) []string {
	var warnings []string

	if d := cfg.List.Degree; d&(d-1) != 0 {
		warnings = append(warnings, fmt.Sprintf("list.degree %d is not a power of two and will be rounded up", d))
	}
	if cfg.Workload.Mix.Iterate == 0 && cfg.Workload.Mix.Compact == 0 && cfg.Workload.CompactEvery == 0 {
		warnings = append(warnings, "workload never iterates or compacts; full-sequence checks only run at the end")
	}
	if cfg.Workload.Seed != 0 && cfg.Workload.Runs > 1 {
		warnings = append(warnings, fmt.Sprintf("verify will use seeds %d..%d", cfg.Workload.Seed, cfg.Workload.Seed+uint64(cfg.Workload.Runs)-1))
	}
	if cfg.Metrics.Enabled && cfg.Logging.Output == "stdout" {
		warnings = append(warnings, "logging to stdout mixes log lines with report output")
	}
	return warnings
}
