// File: strataconf/strata/env.go
package strata

import (
	"os"
	"sort"
	"strconv"
	"strings"
)

// EnvOptions maps environment variable names onto dotted config
// paths: variables carrying Prefix are split on Separator, the
// segments lowercased, and the raw string value coerced to a scalar.
// The resulting synthetic table is merged last, so the environment
// always wins. The pass is path-creating: intermediate tables are
// built for paths no file source defined.
//
// Value coercion is narrower than the typed getters: only the words
// "true" and "false" (any case) become bools, so FLAG=1 stores Int(1)
// and does not satisfy Bool at that path.
type EnvOptions struct {
	Prefix    string
	Separator string
}

// environMap snapshots the process environment as a plain mapping.
// The core only ever consumes the mapping, never the process state.
func environMap() map[string]string {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		if name, value, ok := strings.Cut(kv, "="); ok {
			vars[name] = value
		}
	}
	return vars
}

// envTable expands the variable mapping into a synthetic table under
// the override rule. Names are visited in sorted order so the result
// is deterministic.
func envTable(vars map[string]string, opts EnvOptions, ordered bool) *Table {
	names := make([]string, 0, len(vars))
	for name := range vars {
		if strings.HasPrefix(name, opts.Prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	t := newTableMode(ordered)
	for _, name := range names {
		path := envPath(strings.TrimPrefix(name, opts.Prefix), opts.Separator)
		if path == "" {
			continue
		}
		setPath(t, path, coerceEnvValue(vars[name]))
	}
	return t
}

// envPath converts a stripped variable name into a dotted path:
// separator-delimited segments, lowercased, empties dropped.
func envPath(name, separator string) string {
	if separator == "" {
		return strings.ToLower(name)
	}
	raw := strings.Split(name, separator)
	segments := raw[:0]
	for _, segment := range raw {
		if segment != "" {
			segments = append(segments, strings.ToLower(segment))
		}
	}
	return strings.Join(segments, ".")
}

// coerceEnvValue attempts bool, int, then float parses on the raw
// string, falling back to a string value. Bool recognizes only the
// words "true" and "false"; numeric forms like "1" must stay integers
// so counters read through Int64 are not misparsed.
func coerceEnvValue(raw string) Value {
	switch strings.ToLower(raw) {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return Int(i)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return Float(f)
	}
	return String(raw)
}
