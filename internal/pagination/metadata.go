package pagination

// Meta contains metadata about a paginated result.
type Meta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewMeta creates metadata for page of pageSize over totalItems items.
// The current page is reported as given, even when it lies past the last page.
func NewMeta(page, pageSize, totalItems int) Meta {
	totalPages := TotalPages(totalItems, pageSize)

	return Meta{
		CurrentPage: page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		HasPrevious: page > 1,
		HasNext:     page < totalPages,
	}
}

// InRange reports whether the current page holds any items.
func (m Meta) InRange() bool {
	return m.CurrentPage >= MinPage && m.CurrentPage <= m.TotalPages
}
