package dump

import (
	"errors"
	"fmt"
	"io"

	"github.com/fileconv/fileconv/pkg/sanitize"
)

// ErrUnknownFormat is returned by [Registry.Lookup] for an extension with no
// registered dumper.
var ErrUnknownFormat = errors.New("unknown format")

// Dumper serializes a sanitized document tree into one target format.
type Dumper interface {
	// Name is the display name used in progress and error lines,
	// e.g. "Property List".
	Name() string

	// Ext is the canonical file extension, without a leading dot.
	Ext() string

	// Rules returns the ordered sanitization rules for this format. The
	// driver applies them before calling Write; Write itself assumes a
	// sanitized tree.
	Rules() []sanitize.Rule

	// Write encodes v to w with the dumper's options. Values the format
	// cannot represent (left behind by an incomplete rule set or produced
	// by a caller skipping sanitization) surface as errors here.
	Write(w io.Writer, v any) error
}

// Factory creates a fresh dumper with default options. Dumpers are cheap
// per-conversion objects; registries hand out factories rather than shared
// instances.
type Factory func() Dumper

// Registry maps file extensions to dumper factories. It is built once by
// [NewRegistry] and never mutated afterwards, so concurrent lookups are safe.
type Registry map[string]Factory

// NewRegistry returns the registry of built-in formats.
func NewRegistry() Registry {
	return Registry{
		"json":  func() Dumper { return NewJSON() },
		"plist": func() Dumper { return NewPlist() },
		"yaml":  func() Dumper { return NewYAML() },
		"toml":  func() Dumper { return NewTOML() },
	}
}

// Lookup resolves an extension to its dumper factory. The match is
// case-sensitive. A miss returns an error wrapping [ErrUnknownFormat].
func (r Registry) Lookup(ext string) (Factory, error) {
	f, ok := r[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	return f, nil
}

// Exts returns the registered extensions. Order is unspecified.
func (r Registry) Exts() []string {
	out := make([]string, 0, len(r))
	for ext := range r {
		out = append(out, ext)
	}
	return out
}
