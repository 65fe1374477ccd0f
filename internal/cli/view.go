package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/puretable/internal/config"
	"github.com/rshade/puretable/internal/render"
	"github.com/rshade/puretable/internal/session"
	"github.com/rshade/puretable/internal/view"
)

// NewViewCmd creates the "view" command, which prints one page of a
// document and exits.
func NewViewCmd() *cobra.Command {
	var (
		params viewParams
		output string
	)

	cmd := &cobra.Command{
		Use:   "view FILE",
		Short: "Print one page of a document",
		Long: `Loads FILE, a JSON array of objects, and prints one page of the derived view.

The view is computed in a fixed order: global search, then field filters,
then sort, then pagination. Use "-" to read the document from stdin.`,
		Example: `  # First page as a table
  puretable view people.json

  # Third page of people named smith, oldest first
  puretable view people.json --search smith --sort age:desc --page 3

  # Records whose city contains "os", as NDJSON
  puretable view people.json --filter city=os --output ndjson`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, args[0], params, output)
		},
	}

	params.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format (table, json, ndjson; default from config)")

	return cmd
}

func runView(cmd *cobra.Command, path string, params viewParams, output string) error {
	ctx := cmd.Context()

	cfg, err := effectiveConfig()
	if err != nil {
		return err
	}
	if output == "" {
		output = cfg.Output.DefaultFormat
	}
	format, err := render.ParseFormat(output)
	if err != nil {
		return usageError(err)
	}
	state, err := params.state(cfg.View.PageSize)
	if err != nil {
		return usageError(err)
	}

	sess, err := newSession(cfg, params.locale, cfg.Server.MaxUploadBytes)
	if err != nil {
		return err
	}
	if err = loadDocument(ctx, sess, path, cmd.InOrStdin()); err != nil {
		return err
	}
	sess.SetState(state)

	logger.Debug().
		Ctx(ctx).
		Str("operation", "view").
		Str("source", path).
		Str("state", state.Key()).
		Msg("rendering view")

	return renderState(cmd, sess, cfg, format, state)
}

// renderState renders state against the session's document to stdout.
func renderState(cmd *cobra.Command, sess *session.Session, cfg *config.Config, format render.Format, state view.State) error {
	doc, res := sess.ViewOf(cmd.Context(), state)
	payload := render.NewPayload(doc, state, res, cfg.View.WindowSize)
	if err := render.Render(cmd.OutOrStdout(), format, payload); err != nil {
		return fmt.Errorf("rendering view: %w", err)
	}
	return nil
}
