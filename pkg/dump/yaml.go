package dump

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/fileconv/fileconv/pkg/sanitize"
)

// YAMLOption configures the YAML dumper via [NewYAML].
type YAMLOption func(*YAML)

// WithYAMLIndent overrides the block indentation (default 2). Values must
// satisfy 1 < n < 10; Write rejects anything else.
func WithYAMLIndent(n int) YAMLOption { return func(d *YAML) { d.indent = n } }

// WithYAMLFlow renders collections in flow style ({...}, [...]) instead of
// block style.
func WithYAMLFlow() YAMLOption { return func(d *YAML) { d.flow = true } }

// WithYAMLExplicitStart writes an explicit "---" document start marker.
func WithYAMLExplicitStart() YAMLOption { return func(d *YAML) { d.explicitStart = true } }

// WithYAMLExplicitEnd writes an explicit "..." document end marker.
func WithYAMLExplicitEnd() YAMLOption { return func(d *YAML) { d.explicitEnd = true } }

// WithYAMLLineBreak overrides the line terminator. Accepted values are
// "\n", "\r", and "\r\n"; Write rejects anything else.
func WithYAMLLineBreak(lb string) YAMLOption { return func(d *YAML) { d.lineBreak = lb } }

// YAML dumps a document tree as safe YAML: plain scalars, sequences, and
// mappings only, no arbitrary type tags.
type YAML struct {
	indent        int
	flow          bool
	explicitStart bool
	explicitEnd   bool
	lineBreak     string
}

// NewYAML returns a YAML dumper with 2-space indentation, block style, and
// no document markers.
func NewYAML(opts ...YAMLOption) *YAML {
	d := &YAML{indent: 2, lineBreak: "\n"}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *YAML) Name() string { return "YAML" }

func (d *YAML) Ext() string { return "yaml" }

// Rules flattens ordered-mapping wrappers (a plist read-side artifact the
// YAML encoder would otherwise tag) and rewrites binary blobs as raw strings
// so no !!binary tags appear. Dates stay native; YAML has timestamps.
func (d *YAML) Rules() []sanitize.Rule {
	return []sanitize.Rule{
		DictToMap(),
		BlobToString(),
	}
}

func (d *YAML) Write(w io.Writer, v any) error {
	if d.indent <= 1 || d.indent >= 10 {
		return fmt.Errorf("yaml indent %d out of range (need 1 < n < 10)", d.indent)
	}
	switch d.lineBreak {
	case "\n", "\r", "\r\n":
	default:
		return fmt.Errorf("yaml line break %q not one of \\n, \\r, \\r\\n", d.lineBreak)
	}

	var root yaml.Node
	if err := root.Encode(v); err != nil {
		return err
	}
	if d.flow {
		setFlowStyle(&root)
	}

	var buf bytes.Buffer
	if d.explicitStart {
		buf.WriteString("---\n")
	}
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(d.indent)
	if err := enc.Encode(&root); err != nil {
		enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	if d.explicitEnd {
		buf.WriteString("...\n")
	}

	out := buf.Bytes()
	if d.lineBreak != "\n" {
		out = bytes.ReplaceAll(out, []byte("\n"), []byte(d.lineBreak))
	}
	_, err := w.Write(out)
	return err
}

// setFlowStyle marks every collection node for flow rendering.
func setFlowStyle(n *yaml.Node) {
	if n.Kind == yaml.MappingNode || n.Kind == yaml.SequenceNode {
		n.Style = yaml.FlowStyle
	}
	for _, c := range n.Content {
		setFlowStyle(c)
	}
}
