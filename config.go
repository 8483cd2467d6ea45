// File: strataconf/strata/config.go
package strata

import (
	"fmt"
	"sync"
)

// Config holds the merged value tree together with the source list
// that produced it. Reads are served from the tree without further
// I/O; Reload re-runs the parse+merge pipeline and swaps the root;
// Save serializes the tree through one of the registered sources.
//
// A read-write mutex guards the root swap so concurrent getters see a
// consistent tree, but the library does not arbitrate higher-level
// read/reload ordering across goroutines.
type Config struct {
	mu       sync.RWMutex
	root     *Table
	registry *Registry
	sources  []*Source
	env      *EnvOptions
	envVars  map[string]string
	ordered  bool
}

// Get navigates a dot-separated path and returns the value there.
// Numeric segments index arrays ("servers.0.host"). Absent or
// type-incompatible segments return ErrNotFound.
func (c *Config) Get(path string) (Value, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return lookupPath(TableValue(c.root), path)
}

// String returns the string at path. Only a stored string satisfies
// the request; other scalars do not stringify implicitly.
func (c *Config) String(path string) (string, error) {
	v, err := c.Get(path)
	if err != nil {
		return "", err
	}
	s, err := v.AsString()
	if err != nil {
		return "", fmt.Errorf("%w (path %q)", err, path)
	}
	return s, nil
}

// Int64 returns the integer at path. Stored floats convert only when
// their fractional part is zero; stored strings are parsed.
func (c *Config) Int64(path string) (int64, error) {
	v, err := c.Get(path)
	if err != nil {
		return 0, err
	}
	i, err := v.AsInt64()
	if err != nil {
		return 0, fmt.Errorf("%w (path %q)", err, path)
	}
	return i, nil
}

// Float64 returns the float at path. Stored ints widen; stored
// strings are parsed.
func (c *Config) Float64(path string) (float64, error) {
	v, err := c.Get(path)
	if err != nil {
		return 0, err
	}
	f, err := v.AsFloat64()
	if err != nil {
		return 0, fmt.Errorf("%w (path %q)", err, path)
	}
	return f, nil
}

// Bool returns the bool at path. Stored strings are parsed with
// strconv semantics.
func (c *Config) Bool(path string) (bool, error) {
	v, err := c.Get(path)
	if err != nil {
		return false, err
	}
	b, err := v.AsBool()
	if err != nil {
		return false, fmt.Errorf("%w (path %q)", err, path)
	}
	return b, nil
}

// StringSlice returns the array at path with every element coerced
// through the string rule.
func (c *Config) StringSlice(path string) ([]string, error) {
	v, err := c.Get(path)
	if err != nil {
		return nil, err
	}
	items, err := v.AsArray()
	if err != nil {
		return nil, fmt.Errorf("%w (path %q)", err, path)
	}
	out := make([]string, len(items))
	for i := range items {
		s, err := items[i].AsString()
		if err != nil {
			return nil, fmt.Errorf("%w (path %q index %d)", err, path, i)
		}
		out[i] = s
	}
	return out, nil
}

// Keys lists the top-level keys of the merged tree in iteration
// order.
func (c *Config) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.root.Keys()
}

// Root returns a deep copy of the merged tree. Mutating the copy
// does not affect the config.
func (c *Config) Root() Value {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return TableValue(c.root.Clone())
}

// Set stores a value at a dot-separated path in the merged tree,
// creating intermediate tables as needed. The change is in-memory
// only until Save, and a later Reload recomputes the tree from the
// sources without it.
func (c *Config) Set(path string, v Value) {
	c.mu.Lock()
	defer c.mu.Unlock()
	setPath(c.root, path, v.Clone())
}

// Reload re-parses every source in registration order, re-reading
// path-backed sources from disk, and atomically replaces the merged
// tree. On any failure the previous tree is kept unchanged.
func (c *Config) Reload() error {
	root, err := buildTree(c.registry, c.sources, c.env, c.envVars, c.ordered)
	if err != nil {
		return fmt.Errorf("strata: reload failed, previous state kept: %w", err)
	}
	c.mu.Lock()
	c.root = root
	c.mu.Unlock()
	return nil
}

// Save serializes the current tree with the codec of the source
// registered under name and returns the bytes. File-backed sources
// are also written to their path atomically. Fails with
// ErrUnknownSource when no source matches and ErrSaveUnsupported when
// the source's codec cannot marshal.
func (c *Config) Save(name string) ([]byte, error) {
	var target *Source
	for _, src := range c.sources {
		if src.Name() == name {
			target = src
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}

	codec, ok := c.registry.Lookup(target.Format())
	if !ok {
		return nil, fmt.Errorf("%w: source %q has format %q", ErrSaveUnsupported, name, target.Format())
	}
	marshaler, ok := codec.(Marshaler)
	if !ok {
		return nil, fmt.Errorf("%w: source %q has format %q", ErrSaveUnsupported, name, target.Format())
	}

	data, err := marshaler.Marshal(c.Root())
	if err != nil {
		return nil, fmt.Errorf("strata: save to %q: %w", name, err)
	}
	if target.FileBacked() {
		if err := atomicWriteFile(target.path, data); err != nil {
			return nil, fmt.Errorf("strata: save to %q: %w", name, err)
		}
	}
	return data, nil
}
