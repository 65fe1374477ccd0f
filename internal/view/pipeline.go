package view

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rshade/puretable/internal/document"
	"github.com/rshade/puretable/internal/pagination"
)

// Result is one derived page.
type Result struct {
	// Rows are the records on the requested page, in display order.
	Rows []document.Record `json:"rows"`

	// TotalPages is ceil(TotalMatched / page size), 0 when nothing matched.
	TotalPages int `json:"total_pages"`

	// TotalMatched counts records passing search and filters.
	TotalMatched int `json:"total_matched"`

	// TotalRecords counts every record in the input.
	TotalRecords int `json:"total_records"`

	Meta pagination.Meta `json:"meta"`
}

// Pipeline derives views using the collation rules of one locale.
// A Pipeline is safe for concurrent use.
type Pipeline struct {
	tag language.Tag
}

// NewPipeline returns a Pipeline for the BCP 47 locale, "und" or "" for the
// root collation.
func NewPipeline(locale string) (*Pipeline, error) {
	if locale == "" {
		return &Pipeline{tag: language.Und}, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parsing locale %q: %w", locale, err)
	}
	return &Pipeline{tag: tag}, nil
}

// Locale returns the pipeline's language tag.
func (p *Pipeline) Locale() string {
	return p.tag.String()
}

//nolint:gochecknoglobals // Root-locale pipeline shared by Derive.
var rootPipeline = &Pipeline{tag: language.Und}

// Derive runs records through state using the root locale.
func Derive(records []document.Record, state State) Result {
	return rootPipeline.Derive(records, state)
}

// Derive filters, sorts and paginates records for state. records is not
// modified; the returned rows share the record maps with it.
func (p *Pipeline) Derive(records []document.Record, state State) Result {
	pageSize := state.PageSize
	if pageSize < pagination.MinPageSize {
		pageSize = pagination.DefaultPageSize
	}

	lower := cases.Lower(p.tag)
	matched := make([]document.Record, 0, len(records))

	search := lower.String(state.Search)
	filters := activeFilters(lower, state)
	for _, r := range records {
		if search != "" && !matchesSearch(lower, r, search) {
			continue
		}
		if !matchesFilters(lower, r, filters) {
			continue
		}
		matched = append(matched, r)
	}

	if state.Sort != nil && state.Sort.Field != "" {
		sortRecords(collate.New(p.tag), matched, state.Sort)
	}

	return Result{
		Rows:         pagination.Paginate(matched, state.Page, pageSize),
		TotalPages:   pagination.TotalPages(len(matched), pageSize),
		TotalMatched: len(matched),
		TotalRecords: len(records),
		Meta:         pagination.NewMeta(state.Page, pageSize, len(matched)),
	}
}

type fieldFilter struct {
	field string
	text  string
}

// activeFilters lowercases the non-empty filters once per derivation.
func activeFilters(lower cases.Caser, state State) []fieldFilter {
	fields := state.ActiveFilters()
	out := make([]fieldFilter, 0, len(fields))
	for _, f := range fields {
		out = append(out, fieldFilter{field: f, text: lower.String(state.Filters[f])})
	}
	return out
}

func matchesSearch(lower cases.Caser, r document.Record, search string) bool {
	for _, v := range r {
		if strings.Contains(lower.String(v), search) {
			return true
		}
	}
	return false
}

func matchesFilters(lower cases.Caser, r document.Record, filters []fieldFilter) bool {
	for _, f := range filters {
		if !strings.Contains(lower.String(r.Get(f.field)), f.text) {
			return false
		}
	}
	return true
}

// sortRecords sorts records in place on spec.Field. Equal values keep their
// relative order.
func sortRecords(coll *collate.Collator, records []document.Record, spec *SortSpec) {
	type item struct {
		rec document.Record
		key sortKey
	}
	items := make([]item, len(records))
	for i, r := range records {
		items[i] = item{rec: r, key: newSortKey(r.Get(spec.Field))}
	}

	sign := spec.Direction.Sign()
	sort.SliceStable(items, func(i, j int) bool {
		return sign*compareKeys(coll, items[i].key, items[j].key) < 0
	})

	for i := range items {
		records[i] = items[i].rec
	}
}

// PageWindow returns at most width page numbers around current, clipped to
// [1, total]. A width below 1 uses the default of 5.
func PageWindow(current, total, width int) []int {
	if width < 1 {
		width = pagination.DefaultWindowSize
	}
	return pagination.Window(current, total, width)
}
