package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/marmos91/blocklist/internal/cli/prompt"
	"github.com/marmos91/blocklist/pkg/blocklist"
	"github.com/marmos91/blocklist/pkg/config"
	"github.com/spf13/cobra"
)

var (
	initForce       bool
	initInteractive bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a sample configuration file",
	Long: `Initialize a sample Blocklist configuration file.

By default, the configuration file is created at $XDG_CONFIG_HOME/blocklist/config.yaml.
Use --config to specify a custom path.

Examples:
  # Initialize with default location
  blocklist init

  # Initialize with custom path
  blocklist init --config ./bench.yaml

  # Answer a few questions instead of writing the defaults
  blocklist init --interactive

  # Force overwrite existing config
  blocklist init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
	initCmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false, "Prompt for the workload settings")
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := GetConfigFile()
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	cfg := config.GetDefaultConfig()
	force := initForce

	if initInteractive {
		if err := runInitWizard(cfg); err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				return fmt.Errorf("initialization aborted")
			}
			return err
		}

		if _, err := os.Stat(configPath); err == nil && !force {
			ok, err := prompt.Confirm(fmt.Sprintf("Overwrite %s", configPath), false)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("initialization aborted")
			}
			force = true
		}
	}

	if err := config.WriteConfig(cfg, configPath, force); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Configuration file created at: %s\n", configPath)
	_, _ = fmt.Fprintln(out, "\nNext steps:")
	_, _ = fmt.Fprintln(out, "  1. Edit the configuration file to customize the workload")
	_, _ = fmt.Fprintln(out, "  2. Benchmark it with: blocklist bench")
	_, _ = fmt.Fprintln(out, "  3. Verify a batch of seeds with: blocklist verify")
	if GetConfigFile() != "" {
		_, _ = fmt.Fprintf(out, "\nPass --config %s to use this file.\n", configPath)
	}
	return nil
}

// runInitWizard asks for the workload settings and stores them in cfg.
func runInitWizard(cfg *config.Config) error {
	options := make([]prompt.SelectOption, 0, len(config.MixPresets()))
	for _, p := range config.MixPresets() {
		options = append(options, prompt.SelectOption{
			Label:       p.Name,
			Value:       p.Name,
			Description: p.Description,
		})
	}
	preset, err := prompt.Select("Operation mix", options)
	if err != nil {
		return err
	}
	mix, err := config.LookupMix(preset)
	if err != nil {
		return err
	}
	cfg.Workload.Name = preset
	cfg.Workload.Mix = mix

	if cfg.List.Degree, err = prompt.InputInt("Block degree", cfg.List.Degree, blocklist.MinDegree, blocklist.MaxDegree); err != nil {
		return err
	}
	if cfg.Workload.Operations, err = prompt.InputInt("Operations per run", cfg.Workload.Operations, 1, 1<<31-1); err != nil {
		return err
	}
	if cfg.Workload.InitialSize, err = prompt.InputInt("Initial size", cfg.Workload.InitialSize, 0, 1<<31-1); err != nil {
		return err
	}
	if cfg.Workload.Seed, err = prompt.InputUint("Seed (0 for a fresh seed per run)", cfg.Workload.Seed); err != nil {
		return err
	}
	if cfg.Workload.Runs, err = prompt.InputInt("Runs for verify", cfg.Workload.Runs, 1, 1<<20); err != nil {
		return err
	}

	if cfg.Metrics.Enabled, err = prompt.Confirm("Serve Prometheus metrics during runs", false); err != nil {
		return err
	}
	config.ApplyDefaults(cfg)

	return config.Validate(cfg)
}
