// File: strataconf/strata/format_toml.go
package strata

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
)

// tomlFormat parses and serializes TOML via BurntSushi. The decoder
// exposes no key order, so tables are built with sorted keys for
// deterministic output regardless of mode. TOML has no null, so
// marshalling a tree containing nulls fails.
type tomlFormat struct{}

func (tomlFormat) Name() string { return FormatTOML }

func (tomlFormat) Parse(data []byte) (Value, error) {
	raw := make(map[string]any)
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Null(), err
	}
	return FromAny(raw)
}

func (tomlFormat) Marshal(v Value) ([]byte, error) {
	if v.kind != KindTable {
		return nil, fmt.Errorf("TOML document root must be a table, not %s", v.kind)
	}
	plain, err := tomlEncodable(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(plain); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// tomlEncodable converts to plain Go data, rejecting nulls up front
// so the failure names the limitation instead of surfacing as an
// encoder reflection error.
func tomlEncodable(v Value) (any, error) {
	switch v.kind {
	case KindNull:
		return nil, fmt.Errorf("TOML cannot represent null values")
	case KindArray:
		items := make([]any, len(v.a))
		for i := range v.a {
			item, err := tomlEncodable(v.a[i])
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return items, nil
	case KindTable:
		m := make(map[string]any, v.t.Len())
		for _, key := range v.t.Keys() {
			item, _ := v.t.Get(key)
			plain, err := tomlEncodable(item)
			if err != nil {
				return nil, err
			}
			m[key] = plain
		}
		return m, nil
	default:
		return v.Interface(), nil
	}
}
