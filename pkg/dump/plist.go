package dump

import (
	"io"

	"howett.net/plist"

	"github.com/fileconv/fileconv/pkg/sanitize"
)

// Plist dumps a document tree as an XML property list. The format's native
// writer is used as-is; there are no encoding options to override.
type Plist struct{}

// NewPlist returns a property list dumper.
func NewPlist() *Plist { return &Plist{} }

func (d *Plist) Name() string { return "Property List" }

func (d *Plist) Ext() string { return "plist" }

// Rules rewrites date/time values as strings and nulls as boolean false.
// Plist has no null; false is the documented lossy stand-in. Ordered-mapping
// wrappers flatten back to plain dicts before encoding.
func (d *Plist) Rules() []sanitize.Rule {
	return []sanitize.Rule{
		DictToMap(),
		DateToString(),
		NullToFalse(),
	}
}

func (d *Plist) Write(w io.Writer, v any) error {
	enc := plist.NewEncoder(w)
	enc.Indent("\t")
	return enc.Encode(v)
}
