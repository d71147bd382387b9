package dump

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/fileconv/fileconv/pkg/sanitize"
)

func TestJSONRoundTrip(t *testing.T) {
	d := NewJSON()
	in := map[string]any{
		"title":   "settings",
		"blob":    []byte("raw-bytes"),
		"updated": time.Date(2022, 3, 4, 5, 6, 7, 0, time.UTC),
		"items":   []any{"one", float64(2)},
		"flag":    true,
	}

	sanitized, err := sanitize.Sanitize(in, d.Rules())
	if err != nil {
		t.Fatalf("Sanitize error: %v", err)
	}

	var buf bytes.Buffer
	if err := d.Write(&buf, sanitized); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	var back any
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	want := map[string]any{
		"title":   "settings",
		"blob":    "raw-bytes",
		"updated": "2022-03-04T05:06:07Z",
		"items":   []any{"one", float64(2)},
		"flag":    true,
	}
	if diff := cmp.Diff(want, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONSkipsIncompatibleKeys(t *testing.T) {
	// A time.Time key is comparable but not a primitive; default behavior is
	// to drop the entry rather than fail.
	in := map[string]any{
		"m": map[any]any{
			time.Now(): "dropped",
			"keep":     "kept",
		},
	}

	var buf bytes.Buffer
	if err := NewJSON().Write(&buf, in); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	var back map[string]any
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatal(err)
	}
	m := back["m"].(map[string]any)
	if _, ok := m["keep"]; !ok {
		t.Error("primitive-keyed entry missing")
	}
	if len(m) != 1 {
		t.Errorf("incompatible key not skipped: %v", m)
	}
}

func TestJSONKeyErrorsOption(t *testing.T) {
	in := map[any]any{time.Now(): "x"}
	err := NewJSON(WithJSONKeyErrors()).Write(&bytes.Buffer{}, in)
	if err == nil {
		t.Fatal("want error for non-primitive key with WithJSONKeyErrors")
	}
}

func TestJSONKeyCoercion(t *testing.T) {
	in := map[any]any{
		int64(7):     "int",
		true:         "bool",
		nil:          "null",
		float64(1.5): "float",
	}

	var buf bytes.Buffer
	if err := NewJSON().Write(&buf, in); err != nil {
		t.Fatal(err)
	}

	var back map[string]any
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"7", "true", "null", "1.5"} {
		if _, ok := back[key]; !ok {
			t.Errorf("missing coerced key %q in %v", key, back)
		}
	}
}

func TestJSONOutputShape(t *testing.T) {
	in := map[string]any{"zeta": 1, "alpha": 2}

	var buf bytes.Buffer
	if err := NewJSON().Write(&buf, in); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	// Default 4-space indent.
	if !strings.Contains(out, "\n    \"") {
		t.Errorf("output not indented with 4 spaces:\n%s", out)
	}
	// Keys sorted lexicographically.
	if strings.Index(out, `"alpha"`) > strings.Index(out, `"zeta"`) {
		t.Errorf("keys not sorted:\n%s", out)
	}

	// Compact with indent 0.
	buf.Reset()
	if err := NewJSON(WithJSONIndent(0)).Write(&buf, in); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(strings.TrimRight(buf.String(), "\n"), "\n") {
		t.Errorf("indent 0 should be compact:\n%s", buf.String())
	}
}
