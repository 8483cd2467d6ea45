// FILE: strataconf/strata/env_test.go
package strata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverride(t *testing.T) {
	cfg, err := NewBuilder().
		Add(NewSource("file", FormatJSON, `{"nested": {"x": 1, "y": 2}}`)).
		Env("APP_", "_").
		WithEnvironment(map[string]string{
			"APP_NESTED_X": "99",
			"UNRELATED":    "ignored",
		}).
		Build()
	require.NoError(t, err)

	x, err := cfg.Int64("nested.x")
	require.NoError(t, err)
	assert.Equal(t, int64(99), x)

	y, err := cfg.Int64("nested.y")
	require.NoError(t, err)
	assert.Equal(t, int64(2), y)

	_, err = cfg.Get("unrelated")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEnvAppliedLast(t *testing.T) {
	// Env is declared before the overriding source; it still wins.
	cfg, err := NewBuilder().
		Env("APP_", "_").
		Add(NewSource("a", FormatJSON, `{"port": 1}`)).
		Add(NewSource("b", FormatJSON, `{"port": 2}`)).
		WithEnvironment(map[string]string{"APP_PORT": "3"}).
		Build()
	require.NoError(t, err)

	port, err := cfg.Int64("port")
	require.NoError(t, err)
	assert.Equal(t, int64(3), port)
}

func TestEnvCreatesMissingTables(t *testing.T) {
	cfg, err := NewBuilder().
		Add(NewSource("file", FormatJSON, `{}`)).
		Env("APP_", "_").
		WithEnvironment(map[string]string{"APP_CACHE_REDIS_HOST": "r1"}).
		Build()
	require.NoError(t, err)

	host, err := cfg.String("cache.redis.host")
	require.NoError(t, err)
	assert.Equal(t, "r1", host)
}

func TestEnvCoercion(t *testing.T) {
	cfg, err := NewBuilder().
		Env("APP_", "_").
		WithEnvironment(map[string]string{
			"APP_FLAG":  "true",
			"APP_OFF":   "FALSE",
			"APP_COUNT": "42",
			"APP_RATIO": "2.5",
			"APP_NAME":  "widget",
			"APP_BIT":   "1",
		}).
		Build()
	require.NoError(t, err)

	flag, err := cfg.Get("flag")
	require.NoError(t, err)
	assert.True(t, flag.Equal(Bool(true)))

	// Only the words "true"/"false" make bools; "1" stays an integer.
	bit, err := cfg.Get("bit")
	require.NoError(t, err)
	assert.True(t, bit.Equal(Int(1)))
	_, err = cfg.Bool("bit")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	off, err := cfg.Get("off")
	require.NoError(t, err)
	assert.True(t, off.Equal(Bool(false)))

	count, err := cfg.Get("count")
	require.NoError(t, err)
	assert.True(t, count.Equal(Int(42)))

	ratio, err := cfg.Get("ratio")
	require.NoError(t, err)
	assert.True(t, ratio.Equal(Float(2.5)))

	name, err := cfg.Get("name")
	require.NoError(t, err)
	assert.True(t, name.Equal(String("widget")))
}

func TestEnvPath(t *testing.T) {
	assert.Equal(t, "server.port", envPath("SERVER_PORT", "_"))
	assert.Equal(t, "a.b.c", envPath("A__B_C", "_"))
	assert.Equal(t, "flat", envPath("FLAT", "_"))
	assert.Equal(t, "server.port", envPath("SERVER__PORT", "__"))
	assert.Equal(t, "", envPath("", "_"))
}

func TestEnvScalarReplacesTable(t *testing.T) {
	cfg, err := NewBuilder().
		Add(NewSource("file", FormatJSON, `{"db": {"host": "a", "port": 1}}`)).
		Env("APP_", "_").
		WithEnvironment(map[string]string{"APP_DB": "dsn-string"}).
		Build()
	require.NoError(t, err)

	db, err := cfg.String("db")
	require.NoError(t, err)
	assert.Equal(t, "dsn-string", db)

	_, err = cfg.Get("db.host")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEnvFromProcess(t *testing.T) {
	t.Setenv("STRATATEST_TOP_LEVEL", "from-process")

	cfg, err := NewBuilder().
		Env("STRATATEST_", "_").
		Build()
	require.NoError(t, err)

	v, err := cfg.String("top.level")
	require.NoError(t, err)
	assert.Equal(t, "from-process", v)
}
