// Package pagination provides page arithmetic, sort-flag parsing and page
// metadata shared by every puretable surface.
//
// This package contains:
//   - Params: CLI flag values and their validation
//   - ParseSort: "field" / "field:asc" / "field:desc" parsing
//   - Paginate and TotalPages: 1-based page slicing
//   - Meta: response metadata for paginated results
//   - Window: the sliding run of page numbers shown as page controls
package pagination
