package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fileconv/fileconv/pkg/dump"
	"github.com/fileconv/fileconv/pkg/pipeline"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	output     string // output file path
	to         string // target format extension
	from       string // source format override
	indent     int    // indentation width (json/yaml)
	flow       bool   // yaml: flow-style collections
	docStart   bool   // yaml: explicit "---" marker
	docEnd     bool   // yaml: explicit "..." marker
	crlf       bool   // yaml: CRLF line breaks
	escapeHTML bool   // json: escape <, >, &
	strictKeys bool   // json: error on non-primitive mapping keys
}

// newConvertCmd creates the convert command.
//
// The target format comes from --to, or from the output path's extension,
// or — when neither decides it — from an interactive picker.
func newConvertCmd() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert <input> [output]",
		Short: "Convert a structured data file to another format",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := args[0]
			if len(args) == 2 {
				opts.output = args[1]
			}
			return runConvert(cmd, source, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input path with the target extension)")
	cmd.Flags().StringVarP(&opts.to, "to", "t", "", "target format: json, plist, yaml, toml")
	cmd.Flags().StringVar(&opts.from, "from", "", "source format (default: derived from the input extension)")
	cmd.Flags().IntVar(&opts.indent, "indent", 0, "indentation width (json default 4, yaml default 2)")
	cmd.Flags().BoolVar(&opts.flow, "flow", false, "yaml: render collections in flow style")
	cmd.Flags().BoolVar(&opts.docStart, "explicit-start", false, "yaml: write an explicit --- document start")
	cmd.Flags().BoolVar(&opts.docEnd, "explicit-end", false, "yaml: write an explicit ... document end")
	cmd.Flags().BoolVar(&opts.crlf, "crlf", false, "yaml: use CRLF line breaks")
	cmd.Flags().BoolVar(&opts.escapeHTML, "escape-html", false, "json: escape <, >, and & in strings")
	cmd.Flags().BoolVar(&opts.strictKeys, "strict-keys", false, "json: fail on non-primitive mapping keys instead of skipping them")

	return cmd
}

func runConvert(cmd *cobra.Command, source string, opts *convertOpts) error {
	logger := loggerFromContext(cmd.Context())

	to, err := resolveTargetFormat(source, opts)
	if err != nil {
		return err
	}
	output := opts.output
	if output == "" {
		output = replaceExt(source, to)
	}

	dumper, err := buildDumper(to, opts)
	if err != nil {
		return err
	}

	p := newProgress(logger)
	res, err := pipeline.Convert(pipeline.Options{
		Source: source,
		Target: output,
		From:   opts.from,
		To:     to,
		Dumper: dumper,
		Sink:   stderrSink{},
		Logger: logger,
	})
	if err != nil {
		return err
	}
	if !res.OK {
		printError("%s %s %s failed", source, iconArrow, output)
		return fmt.Errorf("converting %s to %s failed", source, res.Format)
	}

	p.done(fmt.Sprintf("Converted %s to %s", source, res.Format))
	printSuccess("%s %s %s", source, iconArrow, StyleValue.Render(output))
	return nil
}

// resolveTargetFormat picks the target format from --to, then the output
// extension, then an interactive picker.
func resolveTargetFormat(source string, opts *convertOpts) (string, error) {
	registry := dump.NewRegistry()

	if opts.to != "" {
		if _, err := registry.Lookup(opts.to); err != nil {
			return "", err
		}
		return opts.to, nil
	}
	if opts.output != "" {
		if ext := strings.TrimPrefix(filepath.Ext(opts.output), "."); ext != "" {
			if _, err := registry.Lookup(ext); err != nil {
				return "", err
			}
			return ext, nil
		}
	}

	picked, err := pickFormat(registry)
	if err != nil {
		return "", fmt.Errorf("target format required (use --to): %w", err)
	}
	return picked, nil
}

// buildDumper constructs the target dumper carrying the per-format flags.
func buildDumper(to string, opts *convertOpts) (dump.Dumper, error) {
	switch to {
	case "json":
		var jopts []dump.JSONOption
		if opts.indent > 0 {
			jopts = append(jopts, dump.WithJSONIndent(opts.indent))
		}
		if opts.escapeHTML {
			jopts = append(jopts, dump.WithJSONEscapeHTML())
		}
		if opts.strictKeys {
			jopts = append(jopts, dump.WithJSONKeyErrors())
		}
		return dump.NewJSON(jopts...), nil
	case "yaml":
		var yopts []dump.YAMLOption
		if opts.indent > 0 {
			yopts = append(yopts, dump.WithYAMLIndent(opts.indent))
		}
		if opts.flow {
			yopts = append(yopts, dump.WithYAMLFlow())
		}
		if opts.docStart {
			yopts = append(yopts, dump.WithYAMLExplicitStart())
		}
		if opts.docEnd {
			yopts = append(yopts, dump.WithYAMLExplicitEnd())
		}
		if opts.crlf {
			yopts = append(yopts, dump.WithYAMLLineBreak("\r\n"))
		}
		return dump.NewYAML(yopts...), nil
	default:
		factory, err := dump.NewRegistry().Lookup(to)
		if err != nil {
			return nil, err
		}
		return factory(), nil
	}
}

// replaceExt swaps path's extension for the target format's.
func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + ext
}
