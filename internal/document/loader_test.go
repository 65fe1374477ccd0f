package document_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/puretable/internal/document"
)

func newLoader(t *testing.T, opts ...document.LoaderOption) *document.Loader {
	t.Helper()
	l, err := document.NewLoader(opts...)
	require.NoError(t, err)
	return l
}

func TestLoader_Parse(t *testing.T) {
	l := newLoader(t)
	input := `[
		{"name": "Ada", "age": 36, "admin": true, "team": null},
		{"name": "Linus", "age": 54.5, "tags": ["a", "b"], "meta": {"x": 1}}
	]`

	doc, err := l.Parse(context.Background(), "people.json", []byte(input))
	require.NoError(t, err)

	assert.Equal(t, "people.json", doc.Source())
	assert.Equal(t, 2, doc.Len())
	assert.Equal(t, []string{"name", "age", "admin", "team"}, doc.Columns())

	first := doc.Records()[0]
	assert.Equal(t, "Ada", first.Get("name"))
	assert.Equal(t, "36", first.Get("age"))
	assert.Equal(t, "true", first.Get("admin"))
	assert.Equal(t, "null", first.Get("team"))
	assert.Equal(t, document.MissingValue, first.Get("tags"))

	second := doc.Records()[1]
	assert.Equal(t, "54.5", second.Get("age"))
	assert.Equal(t, `["a","b"]`, second.Get("tags"))
	assert.Equal(t, `{"x":1}`, second.Get("meta"))
	assert.Equal(t, document.MissingValue, second.Get("admin"))
}

func TestLoader_ParseErrors(t *testing.T) {
	l := newLoader(t)

	tests := []struct {
		name    string
		input   []byte
		wantErr error
	}{
		{name: "malformed", input: []byte(`[{"a": 1}`), wantErr: document.ErrInvalidJSON},
		{name: "trailing garbage", input: []byte(`[] []`), wantErr: document.ErrInvalidJSON},
		{name: "empty input", input: []byte(``), wantErr: document.ErrInvalidJSON},
		{name: "top level object", input: []byte(`{"a": 1}`), wantErr: document.ErrNotArray},
		{name: "top level string", input: []byte(`"rows"`), wantErr: document.ErrNotArray},
		{name: "array of numbers", input: []byte(`[1, 2]`), wantErr: document.ErrNotObject},
		{name: "mixed entries", input: []byte(`[{"a": 1}, null]`), wantErr: document.ErrNotObject},
		{name: "invalid utf8", input: []byte{'[', '"', 0xff, '"', ']'}, wantErr: document.ErrInvalidEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := l.Parse(context.Background(), "bad.json", tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, doc)
		})
	}
}

func TestLoader_NotObjectNamesEntry(t *testing.T) {
	l := newLoader(t)
	_, err := l.Parse(context.Background(), "x", []byte(`[{}, {}, "three"]`))
	require.ErrorIs(t, err, document.ErrNotObject)
	assert.Contains(t, err.Error(), "entry 2 is a string")
}

func TestLoader_EmptyArray(t *testing.T) {
	doc, err := newLoader(t).Parse(context.Background(), "empty.json", []byte(`[]`))
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Len())
	assert.Empty(t, doc.Columns())
	assert.NotNil(t, doc.Records())
}

func TestLoader_StripsBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`[{"a":"b"}]`)...)
	doc, err := newLoader(t).Parse(context.Background(), "bom.json", data)
	require.NoError(t, err)
	assert.Equal(t, "b", doc.Records()[0].Get("a"))
}

func TestLoader_DuplicateKeys(t *testing.T) {
	doc, err := newLoader(t).Parse(context.Background(), "dup.json", []byte(`[{"a":"1","b":"2","a":"3"}]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, doc.Columns())
	assert.Equal(t, "3", doc.Records()[0].Get("a"))
}

func TestLoader_ColumnsFromFirstRecordOnly(t *testing.T) {
	doc, err := newLoader(t).Parse(context.Background(), "x", []byte(`[{"z":1,"a":2},{"a":3,"extra":4}]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a"}, doc.Columns())
	assert.False(t, doc.HasColumn("extra"))
	assert.Equal(t, "4", doc.Records()[1].Get("extra"))
}

func TestLoader_IntegerKeysFirst(t *testing.T) {
	src := `[{"name":"a","10":1,"2":2,"07":3,"-1":4,"0":5,"4294967295":6,"1.5":7}]`
	doc, err := newLoader(t).Parse(context.Background(), "x", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "2", "10", "name", "07", "-1", "4294967295", "1.5"}, doc.Columns())
}

func TestLoader_Load_SizeLimit(t *testing.T) {
	l := newLoader(t, document.WithMaxBytes(8))

	_, err := l.Load(context.Background(), "big", strings.NewReader(`[{"a":"long value"}]`))
	require.ErrorIs(t, err, document.ErrTooLarge)

	doc, err := l.Load(context.Background(), "small", strings.NewReader(`[{}]`))
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Len())
}

func TestLoader_LoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rows.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": 1}, {"id": 2}]`), 0o600))

	doc, err := newLoader(t).LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "rows.json", doc.Source())
	assert.Equal(t, 2, doc.Len())

	_, err = newLoader(t).LoadFile(context.Background(), filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStringify(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: `"plain"`, want: "plain"},
		{raw: `"esc\"aped\n"`, want: "esc\"aped\n"},
		{raw: `42`, want: "42"},
		{raw: `-1.50`, want: "-1.50"},
		{raw: `1e3`, want: "1e3"},
		{raw: `true`, want: "true"},
		{raw: `null`, want: "null"},
		{raw: `[ 1, 2 ]`, want: "[1,2]"},
		{raw: `{ "k" : "v" }`, want: `{"k":"v"}`},
		{raw: ``, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, document.Stringify(json.RawMessage(tt.raw)))
		})
	}
}
