package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{name: "valid default", params: *NewParams()},
		{name: "valid with sort", params: Params{Page: 3, PageSize: 25, Sort: "age:desc"}},
		{name: "zero page", params: Params{Page: 0, PageSize: 10}, wantErr: ErrInvalidPage},
		{name: "negative page", params: Params{Page: -1, PageSize: 10}, wantErr: ErrInvalidPage},
		{name: "zero page size", params: Params{Page: 1, PageSize: 0}, wantErr: ErrInvalidPageSize},
		{name: "page size too large", params: Params{Page: 1, PageSize: 1001}, wantErr: ErrInvalidPageSize},
		{name: "bad sort order", params: Params{Page: 1, PageSize: 10, Sort: "age:sideways"}, wantErr: ErrInvalidSortOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		name      string
		sortStr   string
		wantField string
		wantOrder string
		wantErr   error
	}{
		{name: "empty", sortStr: "", wantField: "", wantOrder: "asc"},
		{name: "field only", sortStr: "age", wantField: "age", wantOrder: "asc"},
		{name: "field and order asc", sortStr: "age:asc", wantField: "age", wantOrder: "asc"},
		{name: "field and order desc", sortStr: "age:desc", wantField: "age", wantOrder: "desc"},
		{name: "order is case insensitive", sortStr: "age:DESC", wantField: "age", wantOrder: "desc"},
		{name: "whitespace trimmed", sortStr: " age : desc ", wantField: "age", wantOrder: "desc"},
		{name: "field containing colon", sortStr: "time:utc:desc", wantField: "time:utc", wantOrder: "desc"},
		{name: "invalid order", sortStr: "age:invalid", wantErr: ErrInvalidSortOrder},
		{name: "trailing colon", sortStr: "age:", wantErr: ErrInvalidSortFormat},
		{name: "too many parts", sortStr: "field:order:extra", wantErr: ErrInvalidSortFormat},
		{name: "empty field", sortStr: ":asc", wantErr: ErrEmptySortField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, order, err := ParseSort(tt.sortStr)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantOrder, order)
		})
	}
}

func TestFormatSort(t *testing.T) {
	assert.Empty(t, FormatSort("", "asc"))
	assert.Equal(t, "age:desc", FormatSort("age", "desc"))

	field, order, err := ParseSort(FormatSort("time:utc", "asc"))
	require.NoError(t, err)
	assert.Equal(t, "time:utc", field)
	assert.Equal(t, "asc", order)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 3, TotalPages(23, 10))
	assert.Equal(t, 0, TotalPages(23, 0))
}

func TestPaginate(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	tests := []struct {
		name     string
		page     int
		pageSize int
		want     []int
	}{
		{name: "first page", page: 1, pageSize: 10, want: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{name: "last partial page", page: 3, pageSize: 10, want: []int{20, 21, 22}},
		{name: "past the end", page: 4, pageSize: 10, want: []int{}},
		{name: "page zero", page: 0, pageSize: 10, want: []int{}},
		{name: "zero size", page: 1, pageSize: 0, want: []int{}},
		{name: "size larger than items", page: 1, pageSize: 50, want: items},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(items, tt.page, tt.pageSize)
			assert.Equal(t, tt.want, got)
			assert.NotNil(t, got)
		})
	}

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, []string{}, Paginate([]string(nil), 1, 10))
	})
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		width   int
		want    []int
	}{
		{name: "no pages", current: 1, total: 0, width: 5, want: nil},
		{name: "first of twenty", current: 1, total: 20, width: 5, want: []int{1, 2, 3, 4, 5}},
		{name: "second of twenty", current: 2, total: 20, width: 5, want: []int{1, 2, 3, 4, 5}},
		{name: "middle of twenty", current: 10, total: 20, width: 5, want: []int{8, 9, 10, 11, 12}},
		{name: "near end", current: 19, total: 20, width: 5, want: []int{16, 17, 18, 19, 20}},
		{name: "last of twenty", current: 20, total: 20, width: 5, want: []int{16, 17, 18, 19, 20}},
		{name: "fewer pages than width", current: 2, total: 3, width: 5, want: []int{1, 2, 3}},
		{name: "current past total", current: 9, total: 3, width: 5, want: []int{1, 2, 3}},
		{name: "single page", current: 1, total: 1, width: 5, want: []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Window(tt.current, tt.total, tt.width))
		})
	}
}

func TestWindow_Bounds(t *testing.T) {
	const total = 20
	for current := 1; current <= total; current++ {
		pages := Window(current, total, DefaultWindowSize)
		require.NotEmpty(t, pages)
		assert.LessOrEqual(t, len(pages), DefaultWindowSize)
		assert.GreaterOrEqual(t, pages[0], 1)
		assert.LessOrEqual(t, pages[len(pages)-1], total)
		assert.Contains(t, pages, current)
	}
}

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		size  int
		total int
		want  Meta
	}{
		{
			name: "first page", page: 1, size: 10, total: 25,
			want: Meta{CurrentPage: 1, PageSize: 10, TotalPages: 3, TotalItems: 25, HasPrevious: false, HasNext: true},
		},
		{
			name: "middle page", page: 2, size: 10, total: 25,
			want: Meta{CurrentPage: 2, PageSize: 10, TotalPages: 3, TotalItems: 25, HasPrevious: true, HasNext: true},
		},
		{
			name: "last page", page: 3, size: 10, total: 25,
			want: Meta{CurrentPage: 3, PageSize: 10, TotalPages: 3, TotalItems: 25, HasPrevious: true, HasNext: false},
		},
		{
			name: "empty", page: 1, size: 10, total: 0,
			want: Meta{CurrentPage: 1, PageSize: 10, TotalPages: 0, TotalItems: 0, HasPrevious: false, HasNext: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewMeta(tt.page, tt.size, tt.total))
		})
	}
}

func TestMeta_InRange(t *testing.T) {
	assert.True(t, NewMeta(3, 10, 23).InRange())
	assert.False(t, NewMeta(4, 10, 23).InRange())
	assert.False(t, NewMeta(1, 10, 0).InRange())
}
