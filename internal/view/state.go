package view

import (
	"maps"
	"slices"

	"github.com/rshade/puretable/internal/document"
	"github.com/rshade/puretable/internal/pagination"
)

// Direction is a sort direction.
type Direction string

// Sort directions.
const (
	Ascending  Direction = pagination.SortOrderAsc
	Descending Direction = pagination.SortOrderDesc
)

// Sign returns 1 for ascending and -1 for descending.
func (d Direction) Sign() int {
	if d == Descending {
		return -1
	}
	return 1
}

// SortSpec selects the sort field and direction.
type SortSpec struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// State is everything that decides which records are visible.
type State struct {
	Filters  map[string]string `json:"filters,omitempty"`
	Search   string            `json:"search,omitempty"`
	Sort     *SortSpec         `json:"sort,omitempty"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// NewState returns the start-up state: no filters, no search, no sort,
// page 1 and pageSize records per page. A pageSize below 1 uses the default.
func NewState(pageSize int) State {
	if pageSize < pagination.MinPageSize {
		pageSize = pagination.DefaultPageSize
	}
	return State{Page: pagination.DefaultPage, PageSize: pageSize}
}

// Filter returns the filter text for field.
func (s State) Filter(field string) string {
	return s.Filters[field]
}

// ActiveFilters returns the fields with a non-empty filter, sorted by name.
func (s State) ActiveFilters() []string {
	fields := make([]string, 0, len(s.Filters))
	for f, v := range s.Filters {
		if v != "" {
			fields = append(fields, f)
		}
	}
	slices.Sort(fields)
	return fields
}

// IsFiltered reports whether a search or any filter is active.
func (s State) IsFiltered() bool {
	return s.Search != "" || len(s.ActiveFilters()) > 0
}

// WithFilter sets the filter for field and returns to page 1. An empty
// value removes the filter.
func (s State) WithFilter(field, value string) State {
	filters := maps.Clone(s.Filters)
	if value == "" {
		delete(filters, field)
	} else {
		if filters == nil {
			filters = make(map[string]string, 1)
		}
		filters[field] = value
	}
	if len(filters) == 0 {
		filters = nil
	}
	s.Filters = filters
	s.Page = pagination.DefaultPage
	return s
}

// WithSearch sets the global search text and returns to page 1.
func (s State) WithSearch(text string) State {
	s.Search = text
	s.Page = pagination.DefaultPage
	return s
}

// ClearFilters drops every filter and the search text and returns to page 1.
func (s State) ClearFilters() State {
	s.Filters = nil
	s.Search = ""
	s.Page = pagination.DefaultPage
	return s
}

// ToggleSort sorts by field ascending, or flips the direction when field is
// already the sort field.
func (s State) ToggleSort(field string) State {
	next := &SortSpec{Field: field, Direction: Ascending}
	if s.Sort != nil && s.Sort.Field == field && s.Sort.Direction == Ascending {
		next.Direction = Descending
	}
	s.Sort = next
	return s
}

// WithSort sets the sort explicitly. An empty field clears it.
func (s State) WithSort(field string, dir Direction) State {
	if field == "" {
		s.Sort = nil
		return s
	}
	if dir != Descending {
		dir = Ascending
	}
	s.Sort = &SortSpec{Field: field, Direction: dir}
	return s
}

// WithPage moves to page. Pages below 1 become 1; there is no upper bound.
func (s State) WithPage(page int) State {
	if page < pagination.MinPage {
		page = pagination.MinPage
	}
	s.Page = page
	return s
}

// NextPage moves forward one page unless already at or past totalPages.
func (s State) NextPage(totalPages int) State {
	if s.Page < totalPages {
		s.Page++
	}
	return s
}

// PrevPage moves back one page unless already on page 1.
func (s State) PrevPage() State {
	if s.Page > pagination.MinPage {
		s.Page--
	}
	return s
}

// WithPageSize changes the page size and returns to page 1. Sizes below 1
// use the default.
func (s State) WithPageSize(size int) State {
	if size < pagination.MinPageSize {
		size = pagination.DefaultPageSize
	}
	s.PageSize = size
	s.Page = pagination.DefaultPage
	return s
}

// ResetForDocument adjusts s after doc replaced the previous document:
// filters are cleared and the page returns to 1. The search text is kept,
// and so is the sort unless doc has no such column.
func (s State) ResetForDocument(doc *document.Document) State {
	s.Filters = nil
	s.Page = pagination.DefaultPage
	if s.Sort != nil && (doc == nil || !doc.HasColumn(s.Sort.Field)) {
		s.Sort = nil
	}
	return s
}

// Equal reports whether s and other select the same view.
func (s State) Equal(other State) bool {
	return s.Key() == other.Key()
}
