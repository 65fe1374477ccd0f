package document

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/rshade/puretable/internal/logging"
)

// DefaultMaxBytes caps how much input a Loader reads.
const DefaultMaxBytes int64 = 64 << 20

const documentSchemaURL = "https://github.com/rshade/puretable/schemas/document.json"

// documentSchema accepts exactly "an array of objects"; value types are not
// constrained because every value is rendered as a string.
const documentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": { "type": "object" }
}`

var errTrailingData = errors.New("unexpected data after top-level value")

// utf8BOM is dropped from the start of input, as browsers do when reading text.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF} //nolint:gochecknoglobals // Constant byte sequence.

// Loader reads documents and validates their shape.
// A Loader is safe for concurrent use.
type Loader struct {
	schema   *jsonschema.Schema
	maxBytes int64
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithMaxBytes sets the input size limit. n <= 0 keeps the default.
func WithMaxBytes(n int64) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.maxBytes = n
		}
	}
}

// NewLoader compiles the document schema and returns a Loader.
func NewLoader(opts ...LoaderOption) (*Loader, error) {
	schemaDoc, err := jsonschema.UnmarshalJSON(strings.NewReader(documentSchema))
	if err != nil {
		return nil, fmt.Errorf("parsing document schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err = compiler.AddResource(documentSchemaURL, schemaDoc); err != nil {
		return nil, fmt.Errorf("registering document schema: %w", err)
	}
	schema, err := compiler.Compile(documentSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling document schema: %w", err)
	}

	l := &Loader{schema: schema, maxBytes: DefaultMaxBytes}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// LoadFile reads and parses the document at path.
func (l *Loader) LoadFile(ctx context.Context, path string) (*Document, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Ctx(ctx).
		Str("component", "document").
		Str("operation", "load_file").
		Str("path", path).
		Msg("loading document")

	f, err := os.Open(path)
	if err != nil {
		log.Error().
			Ctx(ctx).
			Str("component", "document").
			Str("operation", "load_file").
			Str("path", path).
			Err(err).
			Msg("failed to open document")
		return nil, fmt.Errorf("opening document: %w", err)
	}
	defer func() { _ = f.Close() }()

	return l.Load(ctx, filepath.Base(path), f)
}

// Load reads the whole of r and parses it. source labels the document.
func (l *Loader) Load(ctx context.Context, source string, r io.Reader) (*Document, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	if int64(len(data)) > l.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, l.maxBytes)
	}
	return l.Parse(ctx, source, data)
}

// Parse validates data as a JSON array of objects and decodes it. Column
// order follows the keys of the first object as written in the input.
func (l *Loader) Parse(ctx context.Context, source string, data []byte) (*Document, error) {
	log := logging.FromContext(ctx)

	doc, err := l.parse(source, data)
	if err != nil {
		log.Warn().
			Ctx(ctx).
			Str("component", "document").
			Str("operation", "parse").
			Str("source", source).
			Int("data_size_bytes", len(data)).
			Err(err).
			Msg("failed to parse document")
		return nil, err
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "document").
		Str("operation", "parse").
		Str("source", source).
		Str("version", doc.Version()).
		Int("record_count", doc.Len()).
		Int("column_count", len(doc.columns)).
		Msg("document parsed")

	return doc, nil
}

func (l *Loader) parse(source string, data []byte) (*Document, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, ErrInvalidEncoding
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	if err = l.schema.Validate(inst); err != nil {
		return nil, shapeError(inst)
	}

	records, columns, err := decodeRecords(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	if columns == nil {
		columns = []string{}
	}
	return New(source, records, columns), nil
}

// shapeError explains why inst failed schema validation.
func shapeError(inst any) error {
	items, ok := inst.([]any)
	if !ok {
		return fmt.Errorf("%w: got %s", ErrNotArray, jsonTypeName(inst))
	}
	for i, item := range items {
		if _, isObj := item.(map[string]any); !isObj {
			return fmt.Errorf("%w: entry %d is %s", ErrNotObject, i, jsonTypeName(item))
		}
	}
	return ErrNotObject
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case string:
		return "a string"
	case json.Number, float64:
		return "a number"
	case []any:
		return "an array"
	case map[string]any:
		return "an object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// decodeRecords streams an already validated array of objects. Columns come
// from the first object in property order: integer-like keys ascending,
// then the other keys as written.
func decodeRecords(data []byte) ([]Record, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}

	var records []Record
	var columns []string
	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return nil, nil, err
		}

		first := records == nil
		rec := Record{}
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, nil, err
			}
			key, _ := tok.(string)

			var raw json.RawMessage
			if err = dec.Decode(&raw); err != nil {
				return nil, nil, err
			}
			if _, dup := rec[key]; !dup && first {
				columns = append(columns, key)
			}
			rec[key] = Stringify(raw)
		}

		if _, err := dec.Token(); err != nil {
			return nil, nil, err
		}
		records = append(records, rec)
	}

	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, nil, errTrailingData
	}
	return records, propertyOrder(columns), nil
}

// maxArrayIndex bounds the keys that count as integer-like, 2^32 - 2.
const maxArrayIndex = 1<<32 - 2

// arrayIndex reports whether key is the canonical form of an integer index,
// so "7" is one while "07", "-1" and "1.0" are not.
func arrayIndex(key string) (uint64, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(key, 10, 64)
	if err != nil || n > maxArrayIndex {
		return 0, false
	}
	return n, true
}

func propertyOrder(keys []string) []string {
	slices.SortStableFunc(keys, func(a, b string) int {
		ai, aok := arrayIndex(a)
		bi, bok := arrayIndex(b)
		switch {
		case aok && bok:
			return cmp.Compare(ai, bi)
		case aok:
			return -1
		case bok:
			return 1
		}
		return 0
	})
	return keys
}

// Stringify renders a raw JSON value as a display string: strings unquoted,
// numbers as written, booleans and null as their literals, and arrays and
// objects as compact JSON.
func Stringify(raw json.RawMessage) string {
	b := bytes.TrimSpace(raw)
	if len(b) == 0 {
		return ""
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			return s
		}
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, b); err == nil {
			return buf.String()
		}
	}
	return string(b)
}
