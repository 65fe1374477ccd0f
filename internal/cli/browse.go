package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/puretable/internal/render"
	"github.com/rshade/puretable/internal/tui"
)

var errNoDocument = errors.New("a document is required when not running interactively")

// browseParams holds the flags of the browse command.
type browseParams struct {
	view  viewParams
	plain bool
}

// NewBrowseCmd creates the "browse" command, the interactive table browser.
func NewBrowseCmd() *cobra.Command {
	var params browseParams

	cmd := &cobra.Command{
		Use:   "browse [FILE]",
		Short: "Browse a document interactively",
		Long: `Opens FILE in an interactive table browser. Without FILE the browser
starts empty; press "o" to open a document.

When stdout is not a terminal, or --plain is set, the first page is printed
as a table instead.`,
		Example: `  # Browse a document
  puretable browse people.json

  # Start sorted by name
  puretable browse people.json --sort name

  # Print the table even on a terminal
  puretable browse people.json --plain`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runBrowse(cmd, path, params)
		},
	}

	params.view.register(cmd)
	cmd.Flags().BoolVar(&params.plain, "plain", false, "force non-interactive plain text output")

	return cmd
}

func runBrowse(cmd *cobra.Command, path string, params browseParams) error {
	ctx := cmd.Context()

	cfg, err := effectiveConfig()
	if err != nil {
		return err
	}
	state, err := params.view.state(cfg.View.PageSize)
	if err != nil {
		return usageError(err)
	}
	sess, err := newSession(cfg, params.view.locale, cfg.Server.MaxUploadBytes)
	if err != nil {
		return err
	}

	mode := tui.DetectOutputMode(false, false, params.plain)
	if mode != tui.OutputModeInteractive && path == "" {
		return usageError(errNoDocument)
	}
	if path != "" {
		if err = loadDocument(ctx, sess, path, cmd.InOrStdin()); err != nil {
			return err
		}
	}
	sess.SetState(state)

	logger.Debug().
		Ctx(ctx).
		Str("operation", "browse").
		Str("output_mode", mode.String()).
		Msg("starting browser")

	if mode != tui.OutputModeInteractive {
		return renderState(cmd, sess, cfg, render.FormatTable, state)
	}

	p := tea.NewProgram(tui.NewBrowserModel(ctx, sess, cfg.View.WindowSize), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err = p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run interactive browser: %w", err)
	}
	return nil
}
