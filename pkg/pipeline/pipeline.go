// Package pipeline wires the load → sanitize → dump stages into one code
// path shared by the CLI and the HTTP API, so both entry points behave
// identically.
package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fileconv/fileconv/pkg/dump"
	"github.com/fileconv/fileconv/pkg/load"
	"github.com/fileconv/fileconv/pkg/sanitize"
)

// Options configures one conversion.
type Options struct {
	// Source and Target are file paths. Their extensions select the input
	// and output formats unless From/To override them.
	Source string `json:"source"`
	Target string `json:"target"`

	// From and To are format extensions ("json", "plist", "yaml", "toml").
	// Empty means "derive from the corresponding path".
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`

	// Dumper, when set, is used instead of the registry's default for To.
	// The CLI sets this to carry per-format encoding flags.
	Dumper dump.Dumper `json:"-"`

	// Sink receives progress and error lines. Defaults to stderr.
	Sink dump.Sink `json:"-"`

	// Logger, when set, receives debug-level stage tracing.
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults derives missing formats from the path extensions and
// checks that both paths are present. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Source == "" {
		return fmt.Errorf("source path is required")
	}
	if o.Target == "" {
		return fmt.Errorf("target path is required")
	}
	if o.From == "" {
		o.From = extOf(o.Source)
	}
	if o.To == "" {
		o.To = extOf(o.Target)
	}
	if o.From == "" {
		return fmt.Errorf("cannot derive input format from %q; set From", o.Source)
	}
	if o.To == "" {
		return fmt.Errorf("cannot derive output format from %q; set To", o.Target)
	}
	if o.Sink == nil {
		o.Sink = dump.WriterSink{W: os.Stderr}
	}
	return nil
}

func extOf(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

// Result reports one conversion's outcome.
type Result struct {
	// Format is the target dumper's display name.
	Format string

	// Path is the target file path.
	Path string

	// OK reports whether the dump succeeded. When false, the reason was
	// written to the sink; there is no finer-grained signal.
	OK bool

	// Duration covers load through write.
	Duration time.Duration
}

// Convert runs one file-to-file conversion.
//
// Caller errors — bad options, unknown extensions, an unreadable or
// unparseable source — are returned as errors before any output is touched.
// Failures inside the dump boundary (sanitize, encode, write) are reported
// through the sink and surface only as Result.OK == false.
func Convert(opts Options) (Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Result{}, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	start := time.Now()

	loader, err := load.NewRegistry().Lookup(opts.From)
	if err != nil {
		return Result{}, err
	}
	d, err := resolveDumper(opts)
	if err != nil {
		return Result{}, err
	}

	f, err := os.Open(opts.Source)
	if err != nil {
		return Result{}, err
	}
	v, err := loader.Load(f)
	f.Close()
	if err != nil {
		return Result{}, fmt.Errorf("parse %s as %s: %w", opts.Source, loader.Name(), err)
	}
	logger.Debug("parsed source", "path", opts.Source, "format", loader.Name())

	ok := dump.Dump(d, opts.Sink, opts.Target, v)
	return Result{
		Format:   d.Name(),
		Path:     opts.Target,
		OK:       ok,
		Duration: time.Since(start),
	}, nil
}

// ConvertBytes converts an in-memory document between formats. Unlike
// [Convert] there is no sink and no file: every failure, including sanitize
// and encode errors, comes back as an error. The HTTP API uses this.
func ConvertBytes(data []byte, from, to string) ([]byte, error) {
	loader, err := load.NewRegistry().Lookup(from)
	if err != nil {
		return nil, err
	}
	factory, err := dump.NewRegistry().Lookup(to)
	if err != nil {
		return nil, err
	}
	d := factory()

	v, err := loader.Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse as %s: %w", loader.Name(), err)
	}
	sanitized, err := sanitize.Sanitize(v, d.Rules())
	if err != nil {
		return nil, fmt.Errorf("sanitize for %s: %w", d.Name(), err)
	}

	var buf bytes.Buffer
	if err := d.Write(&buf, sanitized); err != nil {
		return nil, fmt.Errorf("encode as %s: %w", d.Name(), err)
	}
	return buf.Bytes(), nil
}

func resolveDumper(opts Options) (dump.Dumper, error) {
	if opts.Dumper != nil {
		return opts.Dumper, nil
	}
	factory, err := dump.NewRegistry().Lookup(opts.To)
	if err != nil {
		return nil, err
	}
	return factory(), nil
}
