// Package dump serializes parsed document trees into the supported output
// formats (JSON, property list, YAML, TOML).
//
// # Architecture
//
// Each format implements [Dumper]: a display name, a canonical file
// extension, the ordered sanitization rules that rewrite values the format
// cannot represent, and a Write method that encodes an already-sanitized
// tree. The closed set of formats lives in a [Registry] built explicitly by
// [NewRegistry]; lookup is by extension, case-sensitive.
//
// [Dump] is the conversion driver and the single error-recovery boundary:
// it reports progress to a [Sink], sanitizes, opens the target file, and
// encodes. Every failure — rule errors, encoder rejections, I/O errors —
// is written to the sink as one error line and collapsed into a false
// return. Callers that need to distinguish an unsupported extension do so
// before calling Dump, at registry lookup.
//
// # Adding a format
//
// Implement Dumper, reuse the shared rules where they fit ([DictToMap],
// [BlobToString], [DateToString], [NullToFalse]), and add the factory to
// NewRegistry.
package dump
