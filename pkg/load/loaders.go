package load

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
	"howett.net/plist"

	"github.com/fileconv/fileconv/pkg/value"
)

// JSONLoader parses JSON documents.
type JSONLoader struct{}

func (JSONLoader) Name() string { return "JSON" }

func (JSONLoader) Ext() string { return "json" }

func (JSONLoader) Load(r io.Reader) (any, error) {
	var v any
	dec := json.NewDecoder(r)
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// YAMLLoader parses YAML documents.
type YAMLLoader struct{}

func (YAMLLoader) Name() string { return "YAML" }

func (YAMLLoader) Ext() string { return "yaml" }

func (YAMLLoader) Load(r io.Reader) (any, error) {
	var v any
	if err := yaml.NewDecoder(r).Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// TOMLLoader parses TOML documents.
type TOMLLoader struct{}

func (TOMLLoader) Name() string { return "TOML" }

func (TOMLLoader) Ext() string { return "toml" }

func (TOMLLoader) Load(r io.Reader) (any, error) {
	var v map[string]any
	if _, err := toml.NewDecoder(r).Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// PlistLoader parses XML or binary property lists.
//
// Every decoded dictionary is wrapped in a [value.Dict]. The plist format is
// order-preserving, but the underlying decoder only exposes plain maps, so
// the wrapper's key order is canonicalized to sorted. Dumpers for formats
// that cannot encode the wrapper carry a rule flattening it back to a map.
type PlistLoader struct{}

func (PlistLoader) Name() string { return "Property List" }

func (PlistLoader) Ext() string { return "plist" }

func (PlistLoader) Load(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var v any
	if _, err := plist.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return wrapDicts(v), nil
}

func wrapDicts(v any) any {
	switch c := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(c))
		for k := range c {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		d := value.NewDict()
		for _, k := range keys {
			d.Set(k, wrapDicts(c[k]))
		}
		return d
	case []any:
		for i, e := range c {
			c[i] = wrapDicts(e)
		}
		return c
	default:
		return v
	}
}
