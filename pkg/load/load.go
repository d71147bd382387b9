// Package load parses documents in the supported input formats into the
// plain value trees the dumpers consume.
//
// Loaders are the read side of the conversion pipeline and mirror the dump
// package's shape: one [Loader] per format, an extension-keyed [Registry],
// and a sentinel error for unknown extensions. Loaders are stateless, so the
// registry stores instances directly.
package load

import (
	"errors"
	"fmt"
	"io"
)

// ErrUnknownFormat is returned by [Registry.Lookup] for an extension with no
// registered loader.
var ErrUnknownFormat = errors.New("unknown format")

// Loader parses one input format into a value tree of maps, slices, and
// scalars (plus the container types in pkg/value where a format calls for
// them).
type Loader interface {
	Name() string
	Ext() string
	Load(r io.Reader) (any, error)
}

// Registry maps file extensions to loaders. Built once by [NewRegistry],
// never mutated, safe for concurrent lookups.
type Registry map[string]Loader

// NewRegistry returns the registry of built-in input formats.
func NewRegistry() Registry {
	return Registry{
		"json":  JSONLoader{},
		"plist": PlistLoader{},
		"yaml":  YAMLLoader{},
		"toml":  TOMLLoader{},
	}
}

// Lookup resolves an extension to its loader, case-sensitively. A miss
// returns an error wrapping [ErrUnknownFormat].
func (r Registry) Lookup(ext string) (Loader, error) {
	l, ok := r[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	return l, nil
}

// Exts returns the registered extensions. Order is unspecified.
func (r Registry) Exts() []string {
	out := make([]string, 0, len(r))
	for ext := range r {
		out = append(out, ext)
	}
	return out
}
