// Package commands implements the blocklist CLI.
package commands

import (
	"context"
	"errors"

	"github.com/marmos91/blocklist/cmd/blocklist/commands/config"
	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	// Global flags.
	cfgFile string
)

// ErrRunsFailed is returned when at least one workload run diverged or
// failed. The report has already been printed when it is returned.
var ErrRunsFailed = errors.New("workload runs failed")

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "blocklist",
	Short: "Blocklist - unrolled list benchmarks and differential verification",
	Long: `Blocklist drives the block-linked list through seeded random workloads.

Every run applies the same operation stream to the list and to a plain slice
and stops at the first difference. "bench" measures a single run, "verify"
runs a batch of seeds and fails if any of them diverges.

Configuration is read from $XDG_CONFIG_HOME/blocklist/config.yaml when present
and can be overridden with BLOCKLIST_<SECTION>_<KEY> environment variables
and command flags.

Use "blocklist [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, which commands use to stop
// a workload early (SIGINT/SIGTERM in main).
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/blocklist/config.yaml)")

	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(config.Cmd)
	rootCmd.AddCommand(completionCmd)

	// Hide the default completion command (we provide our own)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// GetConfigFile returns the config file path from the global flag.
func GetConfigFile() string {
	return cfgFile
}

// PrintErr prints an error message to stderr.
func PrintErr(format string, args ...any) {
	rootCmd.PrintErrf(format+"\n", args...)
}
