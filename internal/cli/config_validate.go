package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/puretable/internal/config"
)

// NewConfigValidateCmd creates the config validate command.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the effective configuration",
		Long: `Validates the configuration that commands would run with: defaults, the
user and project files, and PURETABLE_* environment variables.

Checks schema_version against the supported range, page and window sizes,
the default output format, the server port and the logging settings.`,
		Example: `  # Validate current configuration
  puretable config validate

  # Validate a specific file and show the resolved values
  puretable --config ./puretable.yaml config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()
	if err := cfg.Validate(); err != nil {
		return usageError(fmt.Errorf("configuration validation failed: %w", err))
	}

	cmd.Println("Configuration is valid")
	if verbose {
		printVerboseDetails(cmd, cfg)
	}
	return nil
}

func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Schema version: %s\n", cfg.SchemaVersion)
	cmd.Printf("  Page size: %d\n", cfg.View.PageSize)
	cmd.Printf("  Page window: %d\n", cfg.View.WindowSize)
	cmd.Printf("  Locale: %s\n", cfg.View.Locale)
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Server: %s:%d\n", cfg.Server.Host, cfg.Server.Port)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	if cfg.Logging.File != "" {
		cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	}
}
