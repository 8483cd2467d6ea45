// File: strataconf/strata/format.go
package strata

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Built-in format tags.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatINI  = "ini"

	// formatValues tags synthetic in-memory sources (Defaults, env).
	// It has no codec and cannot be a save target.
	formatValues = "values"
)

// Format converts raw source bytes into a value tree. Implementations
// must produce tables whose key order matches the document where the
// underlying parser exposes it.
type Format interface {
	Name() string
	Parse(data []byte) (Value, error)
}

// Marshaler is the optional serialize capability of a Format. Codecs
// without it can be parsed from but not saved to.
type Marshaler interface {
	Marshal(v Value) ([]byte, error)
}

// Registry maps format tags to codecs. The zero value is not usable;
// create one with NewRegistry.
type Registry struct {
	formats map[string]Format
}

// NewRegistry returns a registry with the built-in codecs registered.
func NewRegistry() *Registry {
	r := &Registry{formats: make(map[string]Format)}
	r.Register(jsonFormat{})
	r.Register(yamlFormat{})
	r.Register(tomlFormat{})
	r.Register(iniFormat{})
	return r
}

// Register adds or replaces a codec under its own name. Custom
// formats registered here become valid tags for sources.
func (r *Registry) Register(f Format) {
	r.formats[f.Name()] = f
}

// Lookup returns the codec registered under name.
func (r *Registry) Lookup(name string) (Format, bool) {
	f, ok := r.formats[name]
	return f, ok
}

// detectFormat maps a file extension to a format tag.
func detectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml", ".tml":
		return FormatTOML, nil
	case ".ini":
		return FormatINI, nil
	default:
		return "", fmt.Errorf("%w: cannot detect format of %q", ErrUnknownFormat, path)
	}
}
