package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/thand-io/azure-export/internal/config"
)

// Global configuration instance
var cfg *config.Config

// loadConfig loads the configuration based on the --config flag or default locations
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, err := cmd.Flags().GetString("config")

	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	return config.Load(configFile)
}

func preRunConfigE(cmd *cobra.Command, _ []string) error {
	// Load configuration before any command runs
	var err error
	cfg, err = loadConfig(cmd)

	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// check if verbose flag is set
	verbose, err := cmd.Flags().GetBool("verbose")
	if err == nil && verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	// Flags override whatever the config file or environment provided
	if cmd.Flags().Changed("output") {
		cfg.Output, _ = cmd.Flags().GetString("output")
	}
	if cmd.Flags().Changed("format") {
		cfg.Format, _ = cmd.Flags().GetString("format")
	}
	if cmd.Flags().Changed("non-interactive") {
		cfg.NonInteractive, _ = cmd.Flags().GetBool("non-interactive")
	}

	if !cfg.ValidFormat() {
		return fmt.Errorf("unsupported format %q, expected json, yaml or markdown", cfg.Format)
	}

	return nil
}

var rootCmd = &cobra.Command{
	Use:   "azure-export",
	Short: "Export Azure resources and generate documentation",
	Long: `Export Azure resources and generate documentation.

Authenticates against Azure, lets you pick a tenant and a set of
subscriptions, exports every resource group and resource in those
subscriptions and renders the inventory as a raw data snapshot plus a
hierarchical set of markdown pages.`,
	PersistentPreRunE: preRunConfigE,
	RunE:              runExport,
	SilenceUsage:      true,
}

func init() {

	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default is ./config.yaml)")

	rootCmd.Flags().String("output", "./output", "Output directory for exported data and documentation")
	rootCmd.Flags().String("format", config.FormatMarkdown, "Output format for the raw data snapshot (json, yaml or markdown)")
	rootCmd.Flags().Bool("non-interactive", false, "Use default credentials instead of interactive login")
}

func GetCommandOptions() *cobra.Command {
	return rootCmd
}
