package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

// Format is an output format.
type Format string

// Supported formats.
const (
	FormatTable  Format = "table"
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
)

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists the supported format names.
func Formats() []string {
	return []string{string(FormatTable), string(FormatJSON), string(FormatNDJSON)}
}

// ParseFormat maps a name to a Format, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatNDJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: %s)", ErrUnknownFormat, s, strings.Join(Formats(), ", "))
	}
}

// Render writes p to w in format f.
func Render(w io.Writer, f Format, p Payload) error {
	switch f {
	case FormatTable:
		return Table(w, p)
	case FormatJSON:
		return JSON(w, p)
	case FormatNDJSON:
		return NDJSON(w, p)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

const (
	// maxCellWidth is the widest a table cell gets before it is truncated.
	maxCellWidth = 40

	tabwriterPadding = 2
	truncateMinLen   = 3
)

// Table writes p as an aligned text table followed by a page footer.
func Table(w io.Writer, p Payload) error {
	if len(p.Columns) > 0 {
		tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

		header := make([]string, len(p.Columns))
		rule := make([]string, len(p.Columns))
		for i, c := range p.Columns {
			header[i] = cell(c)
			rule[i] = strings.Repeat("-", len([]rune(header[i])))
		}
		if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		if _, err := fmt.Fprintln(tw, strings.Join(rule, "\t")); err != nil {
			return fmt.Errorf("writing separator: %w", err)
		}

		values := make([]string, len(p.Columns))
		for _, row := range p.Rows {
			for i, c := range p.Columns {
				values[i] = cell(row.Record.Get(c))
			}
			if _, err := fmt.Fprintln(tw, strings.Join(values, "\t")); err != nil {
				return fmt.Errorf("writing row: %w", err)
			}
		}

		if err := tw.Flush(); err != nil {
			return fmt.Errorf("flushing table: %w", err)
		}
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, Footer(p)); err != nil {
		return fmt.Errorf("writing footer: %w", err)
	}
	return nil
}

// Footer summarises the page position, e.g.
// "Page 2 of 3 | 1 [2] 3 | 23 of 40 records".
func Footer(p Payload) string {
	counts := fmt.Sprintf("%d of %d records", p.TotalMatched, p.TotalRecords)
	if p.Meta.TotalPages == 0 {
		return "No matching records | " + counts
	}
	return fmt.Sprintf("Page %d of %d | %s | %s",
		p.Meta.CurrentPage, p.Meta.TotalPages, WindowLabel(p.Window, p.Meta.CurrentPage), counts)
}

// WindowLabel renders page numbers with the current one in brackets.
func WindowLabel(window []int, current int) string {
	parts := make([]string, len(window))
	for i, n := range window {
		if n == current {
			parts[i] = "[" + strconv.Itoa(n) + "]"
		} else {
			parts[i] = strconv.Itoa(n)
		}
	}
	return strings.Join(parts, " ")
}

// cell flattens control characters and shortens long values.
func cell(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return ' '
		}
		return r
	}, s)
	return truncate(s, maxCellWidth)
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= truncateMinLen {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// JSON writes p as one indented JSON object.
func JSON(w io.Writer, p Payload) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(p); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// NDJSON writes one JSON object per row, with no page metadata.
func NDJSON(w io.Writer, p Payload) error {
	for _, row := range p.Rows {
		data, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("marshaling row: %w", err)
		}
		if _, err = fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	return nil
}
