package dump

import (
	"time"

	"github.com/fileconv/fileconv/pkg/sanitize"
	"github.com/fileconv/fileconv/pkg/value"
)

// Shared sanitization rules. Each dumper composes the subset its format
// needs; the rewrites are all idempotent (a rewritten value never matches
// its own rule again).

// DateToString rewrites date/time values as RFC 3339 strings, for formats
// without a native timestamp type.
func DateToString() sanitize.Rule {
	return sanitize.Rule{
		Incompatible: func(v any) bool {
			_, ok := v.(time.Time)
			return ok
		},
		Rewrite: func(v any) (any, error) {
			return v.(time.Time).Format(time.RFC3339), nil
		},
	}
}

// BlobToString rewrites binary blobs as their raw bytes interpreted as a
// string, for formats without a native binary type.
func BlobToString() sanitize.Rule {
	return sanitize.Rule{
		Incompatible: func(v any) bool {
			_, ok := v.([]byte)
			return ok
		},
		Rewrite: func(v any) (any, error) {
			return string(v.([]byte)), nil
		},
	}
}

// DictToMap rewrites the order-preserving mapping wrapper produced by the
// plist loader into a plain map. The wrapper exists only as a read-side
// artifact; no encoder handles it natively.
func DictToMap() sanitize.Rule {
	return sanitize.Rule{
		Incompatible: func(v any) bool {
			_, ok := v.(*value.Dict)
			return ok
		},
		Rewrite: func(v any) (any, error) {
			return v.(*value.Dict).Map(), nil
		},
	}
}

// NullToFalse rewrites null values as boolean false, for formats with no
// native null. The mapping is deliberately lossy.
func NullToFalse() sanitize.Rule {
	return sanitize.Rule{
		Incompatible: func(v any) bool { return v == nil },
		Rewrite:      func(v any) (any, error) { return false, nil },
	}
}
