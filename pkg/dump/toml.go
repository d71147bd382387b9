package dump

import (
	"io"

	"github.com/BurntSushi/toml"

	"github.com/fileconv/fileconv/pkg/sanitize"
)

// TOMLOption configures the TOML dumper via [NewTOML].
type TOMLOption func(*TOML)

// WithTOMLIndent overrides the indentation string for nested tables
// (default two spaces).
func WithTOMLIndent(s string) TOMLOption { return func(d *TOML) { d.indent = s } }

// TOML dumps a document tree as TOML. The tree's root must be a mapping;
// TOML documents are tables.
type TOML struct {
	indent string
}

// NewTOML returns a TOML dumper with two-space indentation.
func NewTOML(opts ...TOMLOption) *TOML {
	d := &TOML{indent: "  "}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *TOML) Name() string { return "TOML" }

func (d *TOML) Ext() string { return "toml" }

// Rules flattens ordered-mapping wrappers, rewrites blobs as raw strings,
// and rewrites nulls as boolean false (TOML has no null; same lossy mapping
// as plist). Dates stay native; TOML has first-class datetimes.
func (d *TOML) Rules() []sanitize.Rule {
	return []sanitize.Rule{
		DictToMap(),
		BlobToString(),
		NullToFalse(),
	}
}

func (d *TOML) Write(w io.Writer, v any) error {
	enc := toml.NewEncoder(w)
	enc.Indent = d.indent
	return enc.Encode(v)
}
