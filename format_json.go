// File: strataconf/strata/format_json.go
package strata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// jsonFormat parses and serializes JSON using the stdlib decoder at
// token level, so document key order survives and number precision is
// kept (integral literals become ints, the rest floats).
type jsonFormat struct{}

func (jsonFormat) Name() string { return FormatJSON }

func (jsonFormat) Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Null(), errors.New("empty document")
		}
		return Null(), err
	}
	if dec.More() {
		return Null(), errors.New("trailing content after JSON document")
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Null(), err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		default:
			return Null(), fmt.Errorf("unexpected delimiter %q", t.String())
		}
	case bool:
		return Bool(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return Null(), fmt.Errorf("invalid number %q", t.String())
		}
		return Float(f), nil
	case string:
		return String(t), nil
	case nil:
		return Null(), nil
	default:
		return Null(), fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeJSONObject(dec *json.Decoder) (Value, error) {
	t := NewOrderedTable()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Null(), err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Null(), fmt.Errorf("object key is %v, not a string", keyTok)
		}
		v, err := decodeJSONValue(dec)
		if err != nil {
			return Null(), err
		}
		t.Set(key, v)
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return Null(), err
	}
	return TableValue(t), nil
}

func decodeJSONArray(dec *json.Decoder) (Value, error) {
	var items []Value
	for dec.More() {
		v, err := decodeJSONValue(dec)
		if err != nil {
			return Null(), err
		}
		items = append(items, v)
	}
	if _, err := dec.Token(); err != nil { // closing bracket
		return Null(), err
	}
	return Array(items...), nil
}

func (jsonFormat) Marshal(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeJSON writes compact JSON, emitting table keys in iteration
// order. Floats always carry a decimal point or exponent so they
// re-parse as floats.
func encodeJSON(buf *bytes.Buffer, v Value) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindInt:
		buf.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat:
		if math.IsInf(v.f, 0) || math.IsNaN(v.f) {
			return fmt.Errorf("cannot encode %v as JSON", v.f)
		}
		s := strconv.FormatFloat(v.f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		buf.WriteString(s)
	case KindString:
		quoted, err := json.Marshal(v.s)
		if err != nil {
			return err
		}
		buf.Write(quoted)
	case KindArray:
		buf.WriteByte('[')
		for i := range v.a {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeJSON(buf, v.a[i]); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindTable:
		buf.WriteByte('{')
		for i, key := range v.t.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			quoted, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(quoted)
			buf.WriteByte(':')
			item, _ := v.t.Get(key)
			if err := encodeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}
