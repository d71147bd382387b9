package dump

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fileconv/fileconv/pkg/sanitize"
	"github.com/fileconv/fileconv/pkg/value"
)

// JSONOption configures the JSON dumper via [NewJSON].
type JSONOption func(*JSON)

// WithJSONIndent overrides the indentation width (default 4 spaces).
// Zero writes compact output.
func WithJSONIndent(n int) JSONOption { return func(d *JSON) { d.indent = n } }

// WithJSONKeyErrors makes non-primitive mapping keys an encode error instead
// of silently dropping those entries.
func WithJSONKeyErrors() JSONOption { return func(d *JSON) { d.skipKeys = false } }

// WithJSONEscapeHTML enables HTML-safe escaping of <, >, and & in strings.
func WithJSONEscapeHTML() JSONOption { return func(d *JSON) { d.escapeHTML = true } }

// JSON dumps a document tree as pretty-printed JSON with lexicographically
// sorted object keys.
type JSON struct {
	indent     int
	skipKeys   bool
	escapeHTML bool
}

// NewJSON returns a JSON dumper with 4-space indentation, sorted keys, and
// non-primitive mapping keys skipped.
func NewJSON(opts ...JSONOption) *JSON {
	d := &JSON{indent: 4, skipKeys: true}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *JSON) Name() string { return "JSON" }

func (d *JSON) Ext() string { return "json" }

// Rules rewrites what JSON cannot carry: binary blobs become raw strings and
// date/time values become strings. Ordered-mapping wrappers are flattened;
// JSON output is key-sorted anyway, so no order is lost that would have
// survived encoding.
func (d *JSON) Rules() []sanitize.Rule {
	return []sanitize.Rule{
		DictToMap(),
		BlobToString(),
		DateToString(),
	}
}

// Write encodes v to w. Mappings with non-string keys are rewritten first:
// primitive keys (numbers, booleans, null) are coerced to their string
// spelling, anything else is skipped or rejected depending on the key option.
// There is no cyclic-reference detection; input trees are acyclic.
func (d *JSON) Write(w io.Writer, v any) error {
	v, err := normalizeJSONKeys(v, d.skipKeys)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(d.escapeHTML)
	if d.indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", d.indent))
	}
	return enc.Encode(v)
}

// normalizeJSONKeys walks the tree converting map[any]any into map[string]any
// so encoding/json (which sorts string keys) can handle it.
func normalizeJSONKeys(v any, skip bool) (any, error) {
	switch c := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(c))
		for k, e := range c {
			ks, ok := jsonKeyString(k)
			if !ok {
				if skip {
					continue
				}
				return nil, fmt.Errorf("mapping key %v (%T) is not a primitive", k, k)
			}
			ne, err := normalizeJSONKeys(e, skip)
			if err != nil {
				return nil, err
			}
			out[ks] = ne
		}
		return out, nil

	case map[string]any:
		for k, e := range c {
			ne, err := normalizeJSONKeys(e, skip)
			if err != nil {
				return nil, err
			}
			c[k] = ne
		}
		return c, nil

	case []any:
		for i, e := range c {
			ne, err := normalizeJSONKeys(e, skip)
			if err != nil {
				return nil, err
			}
			c[i] = ne
		}
		return c, nil

	case value.Tuple:
		nt := make(value.Tuple, len(c))
		for i, e := range c {
			ne, err := normalizeJSONKeys(e, skip)
			if err != nil {
				return nil, err
			}
			nt[i] = ne
		}
		return nt, nil

	default:
		return v, nil
	}
}

// jsonKeyString coerces a primitive mapping key to its string spelling,
// mirroring how lenient JSON encoders treat non-string basic keys.
func jsonKeyString(k any) (string, bool) {
	switch t := k.(type) {
	case string:
		return t, true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case uint64:
		return strconv.FormatUint(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	case nil:
		return "null", true
	default:
		return "", false
	}
}
