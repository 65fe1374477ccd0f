package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/puretable/internal/cache"
	"github.com/rshade/puretable/internal/config"
	"github.com/rshade/puretable/internal/document"
	"github.com/rshade/puretable/internal/session"
	"github.com/rshade/puretable/internal/view"
)

// stdinPath names standard input as the document argument.
const stdinPath = "-"

var errFilterFormat = errors.New("filter must be field=value")

// viewParams holds the flags that select a view.
type viewParams struct {
	search   string
	filters  []string
	sort     string
	page     int
	pageSize int
	locale   string
}

func (p *viewParams) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&p.search, "search", "s", "", "global search text, matched case-insensitively in any field")
	cmd.Flags().StringArrayVarP(&p.filters, "filter", "f", nil, "field filter as field=value (repeatable)")
	cmd.Flags().StringVar(&p.sort, "sort", "", "sort as field or field:asc|desc")
	cmd.Flags().IntVar(&p.page, "page", 1, "page number, starting at 1")
	cmd.Flags().IntVar(&p.pageSize, "page-size", 0, "records per page (0 = config default)")
	cmd.Flags().StringVar(&p.locale, "locale", "", "BCP 47 locale for text sorting (default from config)")
}

// state builds the view state from the flags, validated the same way as
// query strings.
func (p viewParams) state(defaultPageSize int) (view.State, error) {
	values := url.Values{}
	if p.search != "" {
		values.Set(view.ParamSearch, p.search)
	}
	for _, f := range p.filters {
		field, value, ok := strings.Cut(f, "=")
		if !ok || field == "" {
			return view.State{}, fmt.Errorf("%w: got %q", errFilterFormat, f)
		}
		values.Set(view.ParamFilterPrefix+field, value)
	}
	if p.sort != "" {
		values.Set(view.ParamSort, p.sort)
	}
	values.Set(view.ParamPage, strconv.Itoa(p.page))
	if p.pageSize != 0 {
		values.Set(view.ParamPageSize, strconv.Itoa(p.pageSize))
	}
	return view.ParseQuery(values, defaultPageSize)
}

// effectiveConfig returns the validated global configuration.
func effectiveConfig() (*config.Config, error) {
	cfg := config.GetGlobalConfig()
	if err := cfg.Validate(); err != nil {
		return nil, usageError(fmt.Errorf("invalid configuration: %w", err))
	}
	return cfg, nil
}

// newSession builds a session whose pipeline collates for locale, falling
// back to the configured locale.
func newSession(cfg *config.Config, locale string, maxBytes int64) (*session.Session, error) {
	if locale == "" {
		locale = cfg.View.Locale
	}
	pipeline, err := view.NewPipeline(locale)
	if err != nil {
		return nil, usageError(err)
	}
	loader, err := document.NewLoader(document.WithMaxBytes(maxBytes))
	if err != nil {
		return nil, err
	}
	store := cache.NewMemoryStore[view.Result](cfg.View.CacheEntries, cfg.View.CacheTTL)
	return session.New(loader, view.NewDeriver(pipeline, store), cfg.View.PageSize), nil
}

// loadDocument loads path, or stdin for "-", into sess.
func loadDocument(ctx context.Context, sess *session.Session, path string, stdin io.Reader) error {
	var err error
	if path == stdinPath {
		_, err = sess.Load(ctx, "stdin", stdin)
	} else {
		_, err = sess.LoadFile(ctx, path)
	}
	if err != nil {
		return documentError(fmt.Errorf("loading %s: %w", path, err))
	}
	return nil
}
