package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/puretable/internal/render"
)

// columnsInfo is the JSON form of the columns command.
type columnsInfo struct {
	Source      string   `json:"source"`
	Version     string   `json:"version"`
	Columns     []string `json:"columns"`
	RecordCount int      `json:"record_count"`
}

// NewColumnsCmd creates the "columns" command, which lists a document's
// column names in display order.
func NewColumnsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "columns FILE",
		Short: "List the columns of a document",
		Long: `Prints the column names of FILE in display order, one per line. Columns
are the keys of the first record, as written in the file.`,
		Example: `  puretable columns people.json
  puretable columns people.json --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColumns(cmd, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", string(render.FormatTable), "output format (table, json)")

	return cmd
}

func runColumns(cmd *cobra.Command, path, output string) error {
	format, err := render.ParseFormat(output)
	if err != nil || format == render.FormatNDJSON {
		return usageError(fmt.Errorf("%w: %q", render.ErrUnknownFormat, output))
	}
	cfg, err := effectiveConfig()
	if err != nil {
		return err
	}
	sess, err := newSession(cfg, "", cfg.Server.MaxUploadBytes)
	if err != nil {
		return err
	}
	if err = loadDocument(cmd.Context(), sess, path, cmd.InOrStdin()); err != nil {
		return err
	}

	doc := sess.Document()
	if format == render.FormatJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(columnsInfo{
			Source:      doc.Source(),
			Version:     doc.Version(),
			Columns:     doc.Columns(),
			RecordCount: doc.Len(),
		})
	}
	for _, c := range doc.Columns() {
		if _, err = fmt.Fprintln(cmd.OutOrStdout(), c); err != nil {
			return err
		}
	}
	return nil
}
