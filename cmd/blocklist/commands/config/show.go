package config

import (
	"github.com/marmos91/blocklist/internal/cli/output"
	"github.com/marmos91/blocklist/pkg/config"
	"github.com/spf13/cobra"
)

var showOutput string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Display the Blocklist configuration after defaults and environment
overrides have been applied.

Without a configuration file the built-in defaults are shown.

Examples:
  # Show config as YAML
  blocklist config show

  # Show as JSON
  blocklist config show --output json

  # See the effect of an environment override
  BLOCKLIST_LIST_DEGREE=32 blocklist config show`,
	RunE: runConfigShow,
}

func init() {
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "yaml", "Output format (yaml|json)")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(showOutput)
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(cmd.OutOrStdout(), cfg)
	default:
		return output.PrintYAML(cmd.OutOrStdout(), cfg)
	}
}
