// File: strataconf/strata/format_ini.go
package strata

import (
	"bytes"
	"fmt"
	"strconv"

	"gopkg.in/ini.v1"
)

// iniFormat parses and serializes INI via gopkg.in/ini.v1. INI has no
// native types beyond strings and at most one level of nesting:
// every value parses as a string (typed getters coerce on demand),
// sections become tables of string scalars, and marshalling anything
// deeper fails.
type iniFormat struct{}

func (iniFormat) Name() string { return FormatINI }

func (iniFormat) Parse(data []byte) (Value, error) {
	f, err := ini.Load(data)
	if err != nil {
		return Null(), err
	}
	root := NewOrderedTable()
	for _, sec := range f.Sections() {
		if sec.Name() == ini.DefaultSection {
			for _, key := range sec.KeyStrings() {
				root.Set(key, String(sec.Key(key).String()))
			}
			continue
		}
		if len(sec.KeyStrings()) == 0 {
			continue
		}
		t := NewOrderedTable()
		for _, key := range sec.KeyStrings() {
			t.Set(key, String(sec.Key(key).String()))
		}
		root.Set(sec.Name(), TableValue(t))
	}
	return TableValue(root), nil
}

func (iniFormat) Marshal(v Value) ([]byte, error) {
	if v.kind != KindTable {
		return nil, fmt.Errorf("INI document root must be a table, not %s", v.kind)
	}
	out := ini.Empty()
	rootSec := out.Section(ini.DefaultSection)
	for _, key := range v.t.Keys() {
		item, _ := v.t.Get(key)
		if item.kind == KindTable {
			sec, err := out.NewSection(key)
			if err != nil {
				return nil, err
			}
			for _, subKey := range item.t.Keys() {
				subItem, _ := item.t.Get(subKey)
				s, err := iniScalar(subItem)
				if err != nil {
					return nil, fmt.Errorf("section %q key %q: %w", key, subKey, err)
				}
				if _, err := sec.NewKey(subKey, s); err != nil {
					return nil, err
				}
			}
			continue
		}
		s, err := iniScalar(item)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		if _, err := rootSec.NewKey(key, s); err != nil {
			return nil, err
		}
	}
	var buf bytes.Buffer
	if _, err := out.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func iniScalar(v Value) (string, error) {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b), nil
	case KindInt:
		return strconv.FormatInt(v.i, 10), nil
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64), nil
	case KindString:
		return v.s, nil
	default:
		return "", fmt.Errorf("INI cannot represent %s values", v.kind)
	}
}
