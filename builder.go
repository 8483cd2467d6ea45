// File: strataconf/strata/builder.go
package strata

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Builder accumulates an ordered list of sources and produces a
// Config. Registration order is the precedence order: later sources
// override earlier ones, and the environment pass, when enabled,
// always runs last.
type Builder struct {
	registry *Registry
	sources  []*Source
	env      *EnvOptions
	envVars  map[string]string
	ordered  bool
	err      error
}

// NewBuilder creates a builder with the built-in formats registered.
func NewBuilder() *Builder {
	return &Builder{registry: NewRegistry()}
}

// Add appends a source to the ordered list.
func (b *Builder) Add(src *Source) *Builder {
	if src != nil {
		b.sources = append(b.sources, src)
	}
	return b
}

// AddFile appends a file-backed source, detecting the format from the
// extension. Constructor errors are deferred to Build.
func (b *Builder) AddFile(path string) *Builder {
	src, err := NewFileSource(path)
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return b
	}
	return b.Add(src)
}

// Defaults registers a struct or map of default values as the
// lowest-priority source. Struct fields map through `strata` tags at
// every nesting level.
func (b *Builder) Defaults(defaults any) *Builder {
	flat, err := flattenDefaults(defaults)
	var v Value
	if err == nil {
		v, err = FromAny(flat)
	}
	if err != nil {
		if b.err == nil {
			b.err = fmt.Errorf("strata: invalid defaults: %w", err)
		}
		return b
	}
	src := &Source{name: "defaults", format: formatValues, value: v}
	b.sources = append([]*Source{src}, b.sources...)
	return b
}

// flattenDefaults rewrites every struct in the defaults tree into a
// plain map. mapstructure only converts the value it is pointed at, so
// structs nested inside maps or slices would otherwise reach FromAny
// as raw Go structs it cannot represent.
func flattenDefaults(data any) (any, error) {
	switch data.(type) {
	case nil, Value, *Table, time.Time:
		return data, nil
	}
	rv := reflect.ValueOf(data)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		raw := make(map[string]any)
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:  &raw,
			TagName: tagName,
		})
		if err == nil {
			err = dec.Decode(rv.Interface())
		}
		if err != nil {
			return nil, err
		}
		return flattenDefaults(raw)
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key, ok := iter.Key().Interface().(string)
			if !ok {
				return nil, fmt.Errorf("map key %v is not a string", iter.Key().Interface())
			}
			item, err := flattenDefaults(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			out[key] = item
		}
		return out, nil
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item, err := flattenDefaults(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = item
		}
		return out, nil
	default:
		return rv.Interface(), nil
	}
}

// Env enables the environment override pass. Variables starting with
// prefix map to dotted paths by splitting the remainder on separator;
// they override every other source regardless of registration order.
func (b *Builder) Env(prefix, separator string) *Builder {
	b.env = &EnvOptions{Prefix: prefix, Separator: separator}
	return b
}

// WithEnvironment supplies the variable mapping consumed by the env
// pass instead of the process environment.
func (b *Builder) WithEnvironment(vars map[string]string) *Builder {
	b.envVars = vars
	return b
}

// Ordered makes the built tree preserve table key insertion order.
func (b *Builder) Ordered() *Builder {
	b.ordered = true
	return b
}

// WithRegistry replaces the format registry, allowing custom codecs.
func (b *Builder) WithRegistry(reg *Registry) *Builder {
	if reg != nil {
		b.registry = reg
	}
	return b
}

// Build parses every source in registration order, merges the trees
// left to right, applies the environment pass, and wraps the result.
// The first parse failure aborts the build; no partial merge is ever
// returned. Ownership of the source list passes to the Config.
func (b *Builder) Build() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}
	root, err := buildTree(b.registry, b.sources, b.env, b.envVars, b.ordered)
	if err != nil {
		return nil, err
	}
	return &Config{
		root:     root,
		registry: b.registry,
		sources:  b.sources,
		env:      b.env,
		envVars:  b.envVars,
		ordered:  b.ordered,
	}, nil
}

// MustBuild is Build but panics on error.
func (b *Builder) MustBuild() *Config {
	cfg, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("strata: build failed: %v", err))
	}
	return cfg
}

// buildTree runs the parse+merge pipeline. Shared by Build and
// Config.Reload so both see identical semantics.
func buildTree(reg *Registry, sources []*Source, env *EnvOptions, envVars map[string]string, ordered bool) (*Table, error) {
	root := newTableMode(ordered)
	for _, src := range sources {
		v, err := src.parse(reg)
		if err != nil {
			return nil, err
		}
		if v.Kind() != KindTable {
			return nil, fmt.Errorf("%w: source %q parsed to %s", ErrRootNotTable, src.Name(), v.Kind())
		}
		v = v.withTableMode(ordered)
		root = mergeTables(root, v.t)
	}
	if env != nil {
		vars := envVars
		if vars == nil {
			vars = environMap()
		}
		root = mergeTables(root, envTable(vars, *env, ordered))
	}
	return root, nil
}
