// Package document holds the loaded record set and the loader that reads it
// from a JSON array of flat objects.
package document

import (
	"crypto/rand"
	"slices"
	"time"

	"github.com/oklog/ulid/v2"
)

// MissingValue is what a lookup of an absent field yields, for filtering and
// for display alike.
const MissingValue = "undefined"

// Record maps field names to display strings.
type Record map[string]string

// Get returns the value of field, or MissingValue when the record lacks it.
func (r Record) Get(field string) string {
	if v, ok := r[field]; ok {
		return v
	}
	return MissingValue
}

// Document is an immutable, ordered set of records.
type Document struct {
	id       ulid.ULID
	source   string
	loadedAt time.Time
	columns  []string
	records  []Record
}

// New creates a Document. columns lists the column names in display order;
// when nil they are taken from the first record, sorted by name.
func New(source string, records []Record, columns []string) *Document {
	if columns == nil && len(records) > 0 {
		columns = make([]string, 0, len(records[0]))
		for k := range records[0] {
			columns = append(columns, k)
		}
		slices.Sort(columns)
	}
	if records == nil {
		records = []Record{}
	}
	now := time.Now()
	return &Document{
		id:       ulid.MustNew(ulid.Timestamp(now), rand.Reader),
		source:   source,
		loadedAt: now,
		columns:  columns,
		records:  records,
	}
}

// Version uniquely identifies this load of the document.
func (d *Document) Version() string {
	return d.id.String()
}

// Source is the file name or label the document was loaded from.
func (d *Document) Source() string {
	return d.source
}

// LoadedAt is when the document was created.
func (d *Document) LoadedAt() time.Time {
	return d.loadedAt
}

// Columns returns a copy of the column names, taken from the first record.
func (d *Document) Columns() []string {
	return slices.Clone(d.columns)
}

// HasColumn reports whether name is one of the document's columns.
func (d *Document) HasColumn(name string) bool {
	return slices.Contains(d.columns, name)
}

// Records returns the records in document order. Callers must not modify
// the returned slice or its records.
func (d *Document) Records() []Record {
	return d.records
}

// Len returns the number of records.
func (d *Document) Len() int {
	return len(d.records)
}

// Row returns the values of r in column order.
func (d *Document) Row(r Record) []string {
	row := make([]string, len(d.columns))
	for i, c := range d.columns {
		row[i] = r.Get(c)
	}
	return row
}
