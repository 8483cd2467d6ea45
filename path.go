// File: strataconf/strata/path.go
package strata

import (
	"fmt"
	"strconv"
	"strings"
)

// lookupPath resolves a dot-separated path against a root value.
// Each segment must navigate through a table, or through an array
// when the segment is a numeric index ("servers.0.host").
func lookupPath(root Value, path string) (Value, error) {
	if path == "" {
		return root, nil
	}
	current := root
	segments := strings.Split(path, ".")
	for _, segment := range segments {
		switch current.kind {
		case KindTable:
			next, ok := current.t.Get(segment)
			if !ok {
				return Null(), fmt.Errorf("%w: %q (missing segment %q)", ErrNotFound, path, segment)
			}
			current = next
		case KindArray:
			idx, err := strconv.Atoi(segment)
			if err != nil {
				return Null(), fmt.Errorf("%w: %q (segment %q indexes an array)", ErrNotFound, path, segment)
			}
			if idx < 0 || idx >= len(current.a) {
				return Null(), fmt.Errorf("%w: %q (index %d out of range)", ErrNotFound, path, idx)
			}
			current = current.a[idx]
		default:
			return Null(), fmt.Errorf("%w: %q (segment %q navigates into a %s)",
				ErrNotFound, path, segment, current.kind)
		}
	}
	return current, nil
}

// setPath stores a value under a dot-separated path, creating
// intermediate tables as needed. A segment holding a non-table value
// is overwritten by a fresh table. New tables inherit the root's
// iteration mode.
func setPath(root *Table, path string, v Value) {
	segments := strings.Split(path, ".")
	current := root
	for _, segment := range segments[:len(segments)-1] {
		next, exists := current.Get(segment)
		if !exists || next.kind != KindTable {
			child := newTableMode(root.ordered)
			current.Set(segment, TableValue(child))
			current = child
			continue
		}
		current = next.t
	}
	current.Set(segments[len(segments)-1], v)
}
