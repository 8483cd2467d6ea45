// File: strataconf/strata/source.go
package strata

import (
	"fmt"
	"os"
)

// Source is one registered input to the Builder: a format-tagged
// literal, a file, or a synthetic value tree. Sources are immutable
// after construction; path-backed sources re-read their file every
// time they are parsed, which is what makes Reload see disk changes.
type Source struct {
	name    string
	format  string
	content []byte
	path    string // non-empty for file-backed sources
	value   Value  // pre-built tree for synthetic sources
}

// NewSource wraps literal content with an explicit format tag. The
// name identifies the source in diagnostics and as a save target.
func NewSource(name, format string, content string) *Source {
	return &Source{name: name, format: format, content: []byte(content)}
}

// NewBytesSource is NewSource for raw bytes.
func NewBytesSource(name, format string, content []byte) *Source {
	return &Source{name: name, format: format, content: content}
}

// NewFileSource creates a file-backed source whose format is detected
// from the path's extension. The file itself is read at build time.
func NewFileSource(path string) (*Source, error) {
	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}
	return &Source{name: path, format: format, path: path}, nil
}

// NewFileSourceWithFormat creates a file-backed source with an
// explicit format tag, for files whose extension lies.
func NewFileSourceWithFormat(path, format string) *Source {
	return &Source{name: path, format: format, path: path}
}

// NewValuesSource wraps an in-memory table, bypassing parsing
// entirely. Used for programmatic defaults.
func NewValuesSource(name string, t *Table) *Source {
	return &Source{name: name, format: formatValues, value: TableValue(t)}
}

// Name returns the source's identifier.
func (s *Source) Name() string { return s.name }

// Format returns the source's format tag.
func (s *Source) Format() string { return s.format }

// FileBacked reports whether the source reads from and saves to disk.
func (s *Source) FileBacked() bool { return s.path != "" }

// parse loads the source's content and converts it into a value tree.
// Failures carry the source name.
func (s *Source) parse(reg *Registry) (Value, error) {
	if s.format == formatValues {
		return s.value.Clone(), nil
	}
	codec, ok := reg.Lookup(s.format)
	if !ok {
		return Null(), &ParseError{Source: s.name, Err: fmt.Errorf("%w: %q", ErrUnknownFormat, s.format)}
	}
	content := s.content
	if s.FileBacked() {
		data, err := os.ReadFile(s.path)
		if err != nil {
			return Null(), &ParseError{Source: s.name, Err: err}
		}
		content = data
	}
	v, err := codec.Parse(content)
	if err != nil {
		return Null(), &ParseError{Source: s.name, Err: err}
	}
	return v, nil
}
