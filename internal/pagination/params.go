package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Pagination defaults and validation limits.
const (
	DefaultPage       = 1
	MinPage           = 1
	DefaultPageSize   = 10
	MinPageSize       = 1
	MaxPageSize       = 1000
	DefaultWindowSize = 5
	SortOrderAsc      = "asc"
	SortOrderDesc     = "desc"
)

// Common validation errors.
var (
	ErrInvalidPage       = errors.New("page must be >= 1")
	ErrInvalidPageSize   = fmt.Errorf("page-size must be between %d and %d", MinPageSize, MaxPageSize)
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'age:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
)

// Params holds the page-based pagination and sort flags of a CLI command.
type Params struct {
	// Page is the 1-based page number.
	Page int

	// PageSize is the number of records per page.
	PageSize int

	// Sort is the raw sort expression, "" for document order.
	Sort string
}

// NewParams creates Params with default values.
func NewParams() *Params {
	return &Params{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}
}

// Validate checks the page bounds and the sort expression.
func (p Params) Validate() error {
	if p.Page < MinPage {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.PageSize < MinPageSize || p.PageSize > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, p.PageSize)
	}
	if _, _, err := ParseSort(p.Sort); err != nil {
		return err
	}
	return nil
}

// sortPartsMax is the number of colons at which a sort string without a
// valid order is reported as malformed rather than as a bad order.
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order".
// The order defaults to ascending. An empty string means no sort and
// returns an empty field.
//
// Field names may contain colons when an explicit order is given:
// "a:b:desc" sorts field "a:b" descending.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if strings.TrimSpace(sortStr) == "" {
		return "", SortOrderAsc, nil
	}

	idx := strings.LastIndex(sortStr, ":")
	if idx < 0 {
		return strings.TrimSpace(sortStr), SortOrderAsc, nil
	}

	field = strings.TrimSpace(sortStr[:idx])
	order = strings.ToLower(strings.TrimSpace(sortStr[idx+1:]))

	switch {
	case order == SortOrderAsc || order == SortOrderDesc:
	case order == "" || strings.Count(sortStr, ":") >= sortPartsMax:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	default:
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}

	return field, order, nil
}

// FormatSort is the inverse of ParseSort.
func FormatSort(field, order string) string {
	if field == "" {
		return ""
	}
	return field + ":" + order
}
