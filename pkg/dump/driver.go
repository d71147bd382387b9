package dump

import (
	"fmt"
	"os"

	"github.com/fileconv/fileconv/pkg/sanitize"
)

// Dump runs one conversion: report progress to the sink, sanitize v with the
// dumper's rules, create the target file, and encode into it. It returns true
// on success.
//
// This is the only error-recovery boundary in the conversion path. Rule
// errors, encoder rejections, and I/O failures are all handled the same way:
// one "Error writing <Name>: <message>" line on the sink and a false return.
// Nothing is rolled back — a failure mid-encode leaves a partial target file.
//
// Resolving the dumper for an extension is the caller's job (see
// [Registry.Lookup]); by the time Dump runs, the format is already decided.
func Dump(d Dumper, sink Sink, path string, v any) bool {
	sink.WriteLine(fmt.Sprintf("Writing %s... (%s)", d.Name(), path))
	sink.Show()

	sanitized, err := sanitize.Sanitize(v, d.Rules())
	if err != nil {
		return fail(d, sink, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fail(d, sink, err)
	}
	werr := d.Write(f, sanitized)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return fail(d, sink, werr)
	}
	return true
}

func fail(d Dumper, sink Sink, err error) bool {
	sink.WriteLine(fmt.Sprintf("Error writing %s: %s", d.Name(), err))
	return false
}
