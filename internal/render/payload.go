// Package render writes a derived page as a text table, JSON or NDJSON.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/rshade/puretable/internal/document"
	"github.com/rshade/puretable/internal/pagination"
	"github.com/rshade/puretable/internal/view"
)

// OrderedRecord is a record bound to the document's column order. It
// marshals as a JSON object whose keys follow that order, with
// document.MissingValue for absent fields.
type OrderedRecord struct {
	Columns []string
	Record  document.Record
}

// MarshalJSON implements json.Marshaler.
func (o OrderedRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range o.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, fmt.Errorf("marshaling column %q: %w", col, err)
		}
		val, err := json.Marshal(o.Record.Get(col))
		if err != nil {
			return nil, fmt.Errorf("marshaling value of %q: %w", col, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Payload is one rendered page together with what produced it. The HTTP
// API returns the same structure.
type Payload struct {
	Source       string          `json:"source"`
	Version      string          `json:"version"`
	Columns      []string        `json:"columns"`
	State        view.State      `json:"state"`
	Rows         []OrderedRecord `json:"rows"`
	Meta         pagination.Meta `json:"meta"`
	Window       []int           `json:"window"`
	TotalMatched int             `json:"total_matched"`
	TotalRecords int             `json:"total_records"`
}

// NewPayload binds res to doc's columns. doc may be nil before anything
// has been loaded.
func NewPayload(doc *document.Document, state view.State, res view.Result, windowSize int) Payload {
	p := Payload{
		Columns:      []string{},
		State:        state,
		Rows:         make([]OrderedRecord, 0, len(res.Rows)),
		Meta:         res.Meta,
		Window:       view.PageWindow(state.Page, res.TotalPages, windowSize),
		TotalMatched: res.TotalMatched,
		TotalRecords: res.TotalRecords,
	}
	if p.Window == nil {
		p.Window = []int{}
	}
	if doc != nil {
		p.Source = doc.Source()
		p.Version = doc.Version()
		p.Columns = doc.Columns()
	}
	for _, r := range res.Rows {
		p.Rows = append(p.Rows, OrderedRecord{Columns: p.Columns, Record: r})
	}
	return p
}
