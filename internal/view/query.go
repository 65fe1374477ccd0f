package view

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rshade/puretable/internal/pagination"
)

// Query parameter names.
const (
	ParamSearch       = "q"
	ParamFilterPrefix = "f."
	ParamSort         = "sort"
	ParamPage         = "page"
	ParamPageSize     = "page_size"
)

// Query encodes s as URL query parameters.
func (s State) Query() url.Values {
	v := url.Values{}
	if s.Search != "" {
		v.Set(ParamSearch, s.Search)
	}
	for _, field := range s.ActiveFilters() {
		v.Set(ParamFilterPrefix+field, s.Filters[field])
	}
	if s.Sort != nil {
		v.Set(ParamSort, pagination.FormatSort(s.Sort.Field, string(s.Sort.Direction)))
	}
	v.Set(ParamPage, strconv.Itoa(s.Page))
	v.Set(ParamPageSize, strconv.Itoa(s.PageSize))
	return v
}

// Key is a canonical string for s. Equal states have equal keys.
func (s State) Key() string {
	return s.Query().Encode()
}

// ParseQuery decodes a State from URL query parameters. Absent parameters
// take start-up defaults, with defaultPageSize records per page.
func ParseQuery(values url.Values, defaultPageSize int) (State, error) {
	s := NewState(defaultPageSize)
	params := pagination.Params{Page: s.Page, PageSize: s.PageSize, Sort: values.Get(ParamSort)}

	if raw := values.Get(ParamPage); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return State{}, fmt.Errorf("%w: %q", pagination.ErrInvalidPage, raw)
		}
		params.Page = n
	}
	if raw := values.Get(ParamPageSize); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return State{}, fmt.Errorf("%w: %q", pagination.ErrInvalidPageSize, raw)
		}
		params.PageSize = n
	}
	if err := params.Validate(); err != nil {
		return State{}, err
	}

	field, order, err := pagination.ParseSort(params.Sort)
	if err != nil {
		return State{}, err
	}

	s.Page = params.Page
	s.PageSize = params.PageSize
	s = s.WithSort(field, Direction(order))
	s.Search = values.Get(ParamSearch)

	for key, vals := range values {
		name, ok := strings.CutPrefix(key, ParamFilterPrefix)
		if !ok || name == "" || len(vals) == 0 || vals[0] == "" {
			continue
		}
		if s.Filters == nil {
			s.Filters = make(map[string]string)
		}
		s.Filters[name] = vals[0]
	}

	return s, nil
}
