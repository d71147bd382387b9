package load

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fileconv/fileconv/pkg/value"
)

func TestJSONLoader(t *testing.T) {
	v, err := JSONLoader{}.Load(strings.NewReader(`{"a": [1, "two"], "b": null}`))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"a": []any{float64(1), "two"},
		"b": nil,
	}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestYAMLLoader(t *testing.T) {
	v, err := YAMLLoader{}.Load(strings.NewReader("a: 1\nlist:\n  - x\n  - y\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"a":    1,
		"list": []any{"x", "y"},
	}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestTOMLLoader(t *testing.T) {
	v, err := TOMLLoader{}.Load(strings.NewReader("title = \"demo\"\n[owner]\nname = \"someone\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	m := v.(map[string]any)
	if m["title"] != "demo" {
		t.Errorf("title = %v", m["title"])
	}
}

func TestPlistLoaderWrapsDicts(t *testing.T) {
	const doc = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>name</key>
	<string>cfg</string>
	<key>nested</key>
	<dict>
		<key>on</key>
		<true/>
	</dict>
</dict>
</plist>`

	v, err := PlistLoader{}.Load(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	d, ok := v.(*value.Dict)
	if !ok {
		t.Fatalf("root is %T, want *value.Dict", v)
	}
	if got, _ := d.Get("name"); got != "cfg" {
		t.Errorf("name = %v", got)
	}
	nested, _ := d.Get("nested")
	if _, ok := nested.(*value.Dict); !ok {
		t.Errorf("nested dict is %T, want *value.Dict", nested)
	}
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	l, err := r.Lookup("yaml")
	if err != nil {
		t.Fatal(err)
	}
	if l.Name() != "YAML" {
		t.Errorf("Name = %q", l.Name())
	}

	if _, err := r.Lookup("csv"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Lookup(csv) err = %v, want ErrUnknownFormat", err)
	}
}
