package server

import (
	"github.com/rshade/puretable/internal/pagination"
	"github.com/rshade/puretable/internal/render"
	"github.com/rshade/puretable/internal/view"
)

// pageData feeds index.html.tmpl. Every link carries the full view state
// in its query string.
type pageData struct {
	Loaded   bool
	Source   string
	Message  string
	Search   string
	PageSize int
	Sort     string
	Columns  []columnData
	Rows     [][]string
	Pages    []pageLink
	PrevURL  string
	NextURL  string
	Footer   string
}

type columnData struct {
	Name        string
	FilterParam string
	Filter      string
	SortURL     string
	Sort        *view.SortSpec
}

type pageLink struct {
	Number  int
	URL     string
	Current bool
}

func stateURL(s view.State) string {
	return "/?" + s.Query().Encode()
}

func newPageData(p render.Payload, message string) pageData {
	state := p.State
	data := pageData{
		Loaded:   p.Version != "",
		Source:   p.Source,
		Message:  message,
		Search:   state.Search,
		PageSize: state.PageSize,
		Footer:   render.Footer(p),
	}
	if state.Sort != nil {
		data.Sort = pagination.FormatSort(state.Sort.Field, string(state.Sort.Direction))
	}

	for _, c := range p.Columns {
		data.Columns = append(data.Columns, columnData{
			Name:        c,
			FilterParam: view.ParamFilterPrefix + c,
			Filter:      state.Filter(c),
			SortURL:     stateURL(state.ToggleSort(c)),
			Sort:        state.Sort,
		})
	}
	for _, row := range p.Rows {
		values := make([]string, len(p.Columns))
		for i, c := range p.Columns {
			values[i] = row.Record.Get(c)
		}
		data.Rows = append(data.Rows, values)
	}
	for _, n := range p.Window {
		data.Pages = append(data.Pages, pageLink{
			Number:  n,
			URL:     stateURL(state.WithPage(n)),
			Current: n == state.Page,
		})
	}
	if state.Page > pagination.MinPage {
		data.PrevURL = stateURL(state.PrevPage())
	}
	if state.Page < p.Meta.TotalPages {
		data.NextURL = stateURL(state.NextPage(p.Meta.TotalPages))
	}
	return data
}
