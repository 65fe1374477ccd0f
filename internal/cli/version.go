package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/puretable/pkg/version"
)

// NewVersionCmd creates the "version" command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}
