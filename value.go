// File: strataconf/strata/value.go
package strata

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the runtime type of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindTable:
		return "table"
	default:
		return "invalid"
	}
}

// Value is the universal intermediate representation every source is
// converted into before merging. It is a closed tagged union: null,
// bool, int64, float64, string, array, or table. Format codecs never
// leak their native types past this boundary.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	a    []Value
	t    *Table
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a bool.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps an int64.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float wraps a float64.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array wraps an ordered sequence of values.
func Array(items ...Value) Value {
	return Value{kind: KindArray, a: items}
}

// TableValue wraps a table. A nil table is treated as empty.
func TableValue(t *Table) Value {
	if t == nil {
		t = NewTable()
	}
	return Value{kind: KindTable, t: t}
}

// Kind reports the runtime type of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is the explicit null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns the underlying string. Only an exact kind match
// succeeds: scalars are never implicitly stringified.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", fmt.Errorf("%w: have %s, want string", ErrTypeMismatch, v.kind)
	}
	return v.s, nil
}

// AsInt64 returns the value as an int64. Floats convert only when the
// fractional part is exactly zero; stored strings are parsed.
func (v Value) AsInt64() (int64, error) {
	switch v.kind {
	case KindInt:
		return v.i, nil
	case KindFloat:
		if v.f != math.Trunc(v.f) || math.IsInf(v.f, 0) || math.IsNaN(v.f) {
			return 0, fmt.Errorf("%w: float %v has a fractional part", ErrCannotConvert, v.f)
		}
		return int64(v.f), nil
	case KindString:
		i, err := strconv.ParseInt(v.s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: string %q is not an integer", ErrCannotConvert, v.s)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("%w: have %s, want int", ErrTypeMismatch, v.kind)
	}
}

// AsFloat64 returns the value as a float64. Ints always widen; stored
// strings are parsed.
func (v Value) AsFloat64() (float64, error) {
	switch v.kind {
	case KindFloat:
		return v.f, nil
	case KindInt:
		return float64(v.i), nil
	case KindString:
		f, err := strconv.ParseFloat(v.s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: string %q is not a number", ErrCannotConvert, v.s)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: have %s, want float", ErrTypeMismatch, v.kind)
	}
}

// AsBool returns the value as a bool. Stored strings are parsed with
// strconv semantics ("true", "1", "f", ...).
func (v Value) AsBool() (bool, error) {
	switch v.kind {
	case KindBool:
		return v.b, nil
	case KindString:
		b, err := strconv.ParseBool(v.s)
		if err != nil {
			return false, fmt.Errorf("%w: string %q is not a bool", ErrCannotConvert, v.s)
		}
		return b, nil
	default:
		return false, fmt.Errorf("%w: have %s, want bool", ErrTypeMismatch, v.kind)
	}
}

// AsArray returns the underlying element slice.
func (v Value) AsArray() ([]Value, error) {
	if v.kind != KindArray {
		return nil, fmt.Errorf("%w: have %s, want array", ErrTypeMismatch, v.kind)
	}
	return v.a, nil
}

// AsTable returns the underlying table.
func (v Value) AsTable() (*Table, error) {
	if v.kind != KindTable {
		return nil, fmt.Errorf("%w: have %s, want table", ErrTypeMismatch, v.kind)
	}
	return v.t, nil
}

// Equal reports deep structural equality. Table comparison is
// content-based; key order does not participate.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindString:
		return v.s == o.s
	case KindArray:
		if len(v.a) != len(o.a) {
			return false
		}
		for i := range v.a {
			if !v.a[i].Equal(o.a[i]) {
				return false
			}
		}
		return true
	case KindTable:
		return v.t.Equal(o.t)
	default:
		return false
	}
}

// Clone returns a deep copy. Scalars are copied by value; arrays and
// tables are duplicated recursively.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		items := make([]Value, len(v.a))
		for i := range v.a {
			items[i] = v.a[i].Clone()
		}
		return Value{kind: KindArray, a: items}
	case KindTable:
		return Value{kind: KindTable, t: v.t.Clone()}
	default:
		return v
	}
}

// String renders the value for diagnostics: null, quoted strings,
// "[a, b]" for arrays, "{(k: v)}" for tables.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.s)
	case KindArray:
		parts := make([]string, len(v.a))
		for i := range v.a {
			parts[i] = v.a[i].String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindTable:
		var b strings.Builder
		b.WriteString("{")
		for i, key := range v.t.Keys() {
			if i > 0 {
				b.WriteString(", ")
			}
			item, _ := v.t.Get(key)
			fmt.Fprintf(&b, "(%s: %s)", key, item)
		}
		b.WriteString("}")
		return b.String()
	default:
		return "invalid"
	}
}

// withTableMode returns the value with every table switched to the
// requested iteration mode. Called once per source after parsing.
func (v Value) withTableMode(ordered bool) Value {
	switch v.kind {
	case KindArray:
		for i := range v.a {
			v.a[i] = v.a[i].withTableMode(ordered)
		}
		return v
	case KindTable:
		v.t.ordered = ordered
		for _, key := range v.t.Keys() {
			item, _ := v.t.Get(key)
			v.t.items[key] = item.withTableMode(ordered)
		}
		return v
	default:
		return v
	}
}

// FromAny converts plain Go data (the shape produced by the standard
// decoders: nil, bool, numbers, string, []any, map[string]any) into a
// Value. Map keys are inserted in sorted order so the result is
// deterministic.
func FromAny(data any) (Value, error) {
	switch d := data.(type) {
	case nil:
		return Null(), nil
	case Value:
		return d, nil
	case bool:
		return Bool(d), nil
	case int:
		return Int(int64(d)), nil
	case int8:
		return Int(int64(d)), nil
	case int16:
		return Int(int64(d)), nil
	case int32:
		return Int(int64(d)), nil
	case int64:
		return Int(d), nil
	case uint:
		return Int(int64(d)), nil
	case uint8:
		return Int(int64(d)), nil
	case uint16:
		return Int(int64(d)), nil
	case uint32:
		return Int(int64(d)), nil
	case uint64:
		return Int(int64(d)), nil
	case float32:
		return Float(float64(d)), nil
	case float64:
		return Float(d), nil
	case string:
		return String(d), nil
	case time.Time:
		return String(d.Format(time.RFC3339)), nil
	case []Value:
		return Array(d...), nil
	case *Table:
		return TableValue(d), nil
	case []any:
		items := make([]Value, len(d))
		for i, item := range d {
			v, err := FromAny(item)
			if err != nil {
				return Null(), err
			}
			items[i] = v
		}
		return Array(items...), nil
	case []map[string]any:
		// BurntSushi decodes TOML arrays of tables this way.
		items := make([]Value, len(d))
		for i, item := range d {
			v, err := FromAny(item)
			if err != nil {
				return Null(), err
			}
			items[i] = v
		}
		return Array(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(d))
		for key := range d {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		t := NewTable()
		for _, key := range keys {
			v, err := FromAny(d[key])
			if err != nil {
				return Null(), err
			}
			t.Set(key, v)
		}
		return TableValue(t), nil
	default:
		return Null(), fmt.Errorf("%w: unsupported Go type %T", ErrCannotConvert, data)
	}
}

// Interface converts the value back into plain Go data: nil, bool,
// int64, float64, string, []any, or map[string]any. The inverse of
// FromAny up to table ordering.
func (v Value) Interface() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindArray:
		items := make([]any, len(v.a))
		for i := range v.a {
			items[i] = v.a[i].Interface()
		}
		return items
	case KindTable:
		m := make(map[string]any, v.t.Len())
		for _, key := range v.t.Keys() {
			item, _ := v.t.Get(key)
			m[key] = item.Interface()
		}
		return m
	default:
		return nil
	}
}
