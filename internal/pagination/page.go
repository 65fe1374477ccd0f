package pagination

// TotalPages returns ceil(total / pageSize), 0 when there is nothing to show.
// A non-positive pageSize yields 0.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	pages := total / pageSize
	if total%pageSize > 0 {
		pages++
	}
	return pages
}

// Offset returns the index of the first item on page.
func Offset(page, pageSize int) int {
	return (page - 1) * pageSize
}

// Paginate returns items[(page-1)*pageSize : page*pageSize], clipped to the
// slice. Pages past the end, pages below 1 and non-positive sizes yield an
// empty, non-nil slice; out-of-range pages are not an error.
// The result shares the backing array of items.
func Paginate[T any](items []T, page, pageSize int) []T {
	if page < MinPage || pageSize <= 0 {
		return []T{}
	}

	start := Offset(page, pageSize)
	if start >= len(items) {
		return []T{}
	}

	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Window returns at most width consecutive page numbers, centred on current
// as far as [1, total] allows. It returns nil when total is 0.
//
// With total=20, width=5: current=1 -> 1..5, current=10 -> 8..12,
// current=20 -> 16..20. A current page beyond total yields the last pages.
func Window(current, total, width int) []int {
	if total <= 0 || width <= 0 {
		return nil
	}

	start := current - width/2
	if start < 1 {
		start = 1
	}
	end := start + width - 1
	if end > total {
		end = total
		start = end - width + 1
		if start < 1 {
			start = 1
		}
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}
