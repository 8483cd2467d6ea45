// FILE: strataconf/strata/format_test.go
package strata

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONParse(t *testing.T) {
	t.Run("NumberKindFollowsLiteral", func(t *testing.T) {
		v := mustParseJSON(t, `{"i": 3, "f": 3.0, "e": 1e2}`)

		i, err := lookupPath(v, "i")
		require.NoError(t, err)
		assert.Equal(t, KindInt, i.Kind())

		f, err := lookupPath(v, "f")
		require.NoError(t, err)
		assert.Equal(t, KindFloat, f.Kind())

		e, err := lookupPath(v, "e")
		require.NoError(t, err)
		assert.Equal(t, KindFloat, e.Kind())
	})

	t.Run("KeyOrderPreserved", func(t *testing.T) {
		v := mustParseJSON(t, `{"zebra": 1, "apple": 2, "mango": 3}`)
		tbl, err := v.AsTable()
		require.NoError(t, err)
		assert.Equal(t, []string{"zebra", "apple", "mango"}, tbl.Keys())
	})

	t.Run("ScalarRoot", func(t *testing.T) {
		v, err := jsonFormat{}.Parse([]byte(`42`))
		require.NoError(t, err)
		assert.Equal(t, KindInt, v.Kind())
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := jsonFormat{}.Parse([]byte(`{"k": `))
		assert.Error(t, err)
	})

	t.Run("TrailingContent", func(t *testing.T) {
		_, err := jsonFormat{}.Parse([]byte(`{} garbage`))
		assert.Error(t, err)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := jsonFormat{}.Parse(nil)
		assert.Error(t, err)
	})
}

func TestJSONMarshal(t *testing.T) {
	t.Run("FloatsSurviveRoundTrip", func(t *testing.T) {
		original := mustParseJSON(t, `{"f": 3.0, "i": 3}`)
		data, err := jsonFormat{}.Marshal(original)
		require.NoError(t, err)

		reparsed, err := jsonFormat{}.Parse(data)
		require.NoError(t, err)

		f, err := lookupPath(reparsed, "f")
		require.NoError(t, err)
		assert.Equal(t, KindFloat, f.Kind())

		i, err := lookupPath(reparsed, "i")
		require.NoError(t, err)
		assert.Equal(t, KindInt, i.Kind())
	})

	t.Run("OrderedKeys", func(t *testing.T) {
		tbl := NewOrderedTable()
		tbl.Set("b", Int(1))
		tbl.Set("a", Array(Null(), Bool(true)))
		data, err := jsonFormat{}.Marshal(TableValue(tbl))
		require.NoError(t, err)
		assert.Equal(t, `{"b":1,"a":[null,true]}`, string(data))
	})

	t.Run("NonFiniteFloatFails", func(t *testing.T) {
		_, err := jsonFormat{}.Marshal(Float(math.NaN()))
		assert.Error(t, err)
	})
}

func TestYAMLParse(t *testing.T) {
	doc := `
zebra: 1
apple:
  nested: true
  pi: 3.14
list:
  - one
  - 2
empty: null
`
	v, err := yamlFormat{}.Parse([]byte(doc))
	require.NoError(t, err)

	tbl, err := v.AsTable()
	require.NoError(t, err)
	assert.Equal(t, []string{"zebra", "apple", "list", "empty"}, tbl.Keys())

	pi, err := lookupPath(v, "apple.pi")
	require.NoError(t, err)
	assert.Equal(t, KindFloat, pi.Kind())

	nested, err := lookupPath(v, "apple.nested")
	require.NoError(t, err)
	assert.Equal(t, KindBool, nested.Kind())

	second, err := lookupPath(v, "list.1")
	require.NoError(t, err)
	assert.True(t, second.Equal(Int(2)))

	empty, err := lookupPath(v, "empty")
	require.NoError(t, err)
	assert.True(t, empty.IsNull())

	t.Run("EmptyDocument", func(t *testing.T) {
		v, err := yamlFormat{}.Parse(nil)
		require.NoError(t, err)
		tbl, err := v.AsTable()
		require.NoError(t, err)
		assert.Equal(t, 0, tbl.Len())
	})

	t.Run("Anchors", func(t *testing.T) {
		v, err := yamlFormat{}.Parse([]byte("base: &b 42\nother: *b\n"))
		require.NoError(t, err)
		other, err := lookupPath(v, "other")
		require.NoError(t, err)
		assert.True(t, other.Equal(Int(42)))
	})
}

func TestYAMLRoundTrip(t *testing.T) {
	original := mustParseJSON(t, `{"a": {"b": [1, 2.5, "x", null, true]}}`)
	data, err := yamlFormat{}.Marshal(original)
	require.NoError(t, err)

	reparsed, err := yamlFormat{}.Parse(data)
	require.NoError(t, err)
	assert.True(t, original.Equal(reparsed))
}

func TestTOMLParse(t *testing.T) {
	doc := `
title = "demo"
count = 3

[server]
host = "localhost"
port = 8080
timeout = 1.5

[[points]]
x = 1

[[points]]
x = 2
`
	v, err := tomlFormat{}.Parse([]byte(doc))
	require.NoError(t, err)

	port, err := lookupPath(v, "server.port")
	require.NoError(t, err)
	assert.True(t, port.Equal(Int(8080)))

	timeout, err := lookupPath(v, "server.timeout")
	require.NoError(t, err)
	assert.Equal(t, KindFloat, timeout.Kind())

	secondX, err := lookupPath(v, "points.1.x")
	require.NoError(t, err)
	assert.True(t, secondX.Equal(Int(2)))
}

func TestTOMLMarshal(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		original, err := tomlFormat{}.Parse([]byte("a = 1\n[b]\nc = \"x\"\n"))
		require.NoError(t, err)

		data, err := tomlFormat{}.Marshal(original)
		require.NoError(t, err)

		reparsed, err := tomlFormat{}.Parse(data)
		require.NoError(t, err)
		assert.True(t, original.Equal(reparsed))
	})

	t.Run("NullFails", func(t *testing.T) {
		tbl := NewTable()
		tbl.Set("k", Null())
		_, err := tomlFormat{}.Marshal(TableValue(tbl))
		assert.Error(t, err)
	})

	t.Run("NonTableRootFails", func(t *testing.T) {
		_, err := tomlFormat{}.Marshal(Int(1))
		assert.Error(t, err)
	})
}

func TestINIParse(t *testing.T) {
	doc := `
debug = true
port = 8080

[database]
host = localhost
name = app
`
	v, err := iniFormat{}.Parse([]byte(doc))
	require.NoError(t, err)

	// INI values are always strings; typed getters coerce on demand.
	port, err := lookupPath(v, "port")
	require.NoError(t, err)
	assert.Equal(t, KindString, port.Kind())
	i, err := port.AsInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(8080), i)

	host, err := lookupPath(v, "database.host")
	require.NoError(t, err)
	assert.True(t, host.Equal(String("localhost")))
}

func TestINIMarshal(t *testing.T) {
	t.Run("OneLevelRoundTrip", func(t *testing.T) {
		tbl := NewOrderedTable()
		tbl.Set("port", Int(8080))
		sec := NewOrderedTable()
		sec.Set("host", String("localhost"))
		tbl.Set("database", TableValue(sec))

		data, err := iniFormat{}.Marshal(TableValue(tbl))
		require.NoError(t, err)

		reparsed, err := iniFormat{}.Parse(data)
		require.NoError(t, err)

		host, err := lookupPath(reparsed, "database.host")
		require.NoError(t, err)
		assert.True(t, host.Equal(String("localhost")))

		port, err := lookupPath(reparsed, "port")
		require.NoError(t, err)
		assert.True(t, port.Equal(String("8080")))
	})

	t.Run("DeepNestingFails", func(t *testing.T) {
		inner := NewTable()
		inner.Set("deep", Int(1))
		sec := NewTable()
		sec.Set("sub", TableValue(inner))
		tbl := NewTable()
		tbl.Set("section", TableValue(sec))

		_, err := iniFormat{}.Marshal(TableValue(tbl))
		assert.Error(t, err)
	})

	t.Run("ArrayFails", func(t *testing.T) {
		tbl := NewTable()
		tbl.Set("list", Array(Int(1)))
		_, err := iniFormat{}.Marshal(TableValue(tbl))
		assert.Error(t, err)
	})
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()

	for _, name := range []string{FormatJSON, FormatYAML, FormatTOML, FormatINI} {
		_, ok := reg.Lookup(name)
		assert.True(t, ok, name)
	}

	_, ok := reg.Lookup("ron")
	assert.False(t, ok)
}

func TestDetectFormat(t *testing.T) {
	cases := map[string]string{
		"config.json": FormatJSON,
		"config.yaml": FormatYAML,
		"config.yml":  FormatYAML,
		"config.toml": FormatTOML,
		"CONFIG.TOML": FormatTOML,
		"config.ini":  FormatINI,
	}
	for path, want := range cases {
		got, err := detectFormat(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := detectFormat("config.conf")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
