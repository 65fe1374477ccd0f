// Package cli wires puretable's cobra commands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/puretable/internal/config"
	"github.com/rshade/puretable/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root command for the puretable CLI. Configuration
// and logging are set up before any subcommand runs.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "puretable",
		Short:   "Browse JSON record sets as a table",
		Long:    "puretable shows a JSON array of flat objects as a searchable, filterable, sortable, paginated table.",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default $PURETABLE_HOME/config.yaml)")
	cmd.PersistentFlags().String("project-dir", "", "project directory holding .puretable/config.yaml")

	cmd.AddCommand(
		NewViewCmd(),
		NewBrowseCmd(),
		NewServeCmd(),
		NewColumnsCmd(),
		newConfigCmd(),
		NewVersionCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Print the first page of a document
  puretable view people.json

  # Search, filter and sort
  puretable view people.json --search smith --filter city=oslo --sort age:desc

  # Read from stdin and emit JSON
  cat people.json | puretable view - --output json

  # Browse interactively
  puretable browse people.json

  # Serve the browser viewer
  puretable serve people.json --port 8080`

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}

// loadConfig resolves the configuration for this invocation and installs
// it as the global config. An explicit --config file must exist and parse.
func loadConfig(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
		cmd.SetContext(ctx)
	}

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return &ExitError{Code: ExitUsage, Err: fmt.Errorf("loading config: %w", err)}
		}
		config.SetGlobalConfig(cfg)
		return nil
	}

	flagDir, _ := cmd.Flags().GetString("project-dir")
	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	projectDir := config.ResolveProjectDir(ctx, flagDir, cwd)
	config.SetGlobalConfig(config.NewWithProjectDir(ctx, projectDir))
	return nil
}
