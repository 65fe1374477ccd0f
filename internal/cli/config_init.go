package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/puretable/internal/config"
)

var errConfigExists = errors.New("configuration file already exists, use --force to overwrite")

// NewConfigInitCmd creates the config init command. By default it writes
// the user config; --project writes .puretable/config.yaml under the
// current directory (or --project-dir) together with a .gitignore.
func NewConfigInitCmd() *cobra.Command {
	var (
		force   bool
		project bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a configuration file holding the default values.

Without flags the user configuration at $PURETABLE_HOME/config.yaml
(default ~/.puretable/config.yaml) is written. With --project a
project-local .puretable/config.yaml is written instead; it is picked up
by any puretable command run below that directory.`,
		Example: `  # Create the user configuration
  puretable config init

  # Create a project configuration in the current directory
  puretable config init --project

  # Overwrite an existing file
  puretable config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if project {
				return initProjectConfig(cmd, force)
			}
			return initUserConfig(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&project, "project", false, "write a project-local configuration")

	return cmd
}

func initProjectConfig(cmd *cobra.Command, force bool) error {
	base, _ := cmd.Flags().GetString("project-dir")
	if base == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
		base = cwd
	}
	projectDir := config.ResolveProjectDir(cmd.Context(), base, "")
	path := config.ProjectConfigPath(projectDir)

	if err := writeDefaultConfig(path, force); err != nil {
		return err
	}
	created, err := config.EnsureGitignore(projectDir)
	if err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", path)
	if created {
		cmd.Printf("Created .gitignore in %s\n", projectDir)
	}
	return nil
}

func initUserConfig(cmd *cobra.Command, force bool) error {
	path, err := config.UserConfigPath()
	if err != nil {
		return err
	}
	if err = writeDefaultConfig(path, force); err != nil {
		return err
	}
	cmd.Printf("Configuration initialized at %s\n", path)
	return nil
}

func writeDefaultConfig(path string, force bool) error {
	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return errConfigExists
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}
	if err := config.Default().Save(path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}
