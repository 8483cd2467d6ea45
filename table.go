// File: strataconf/strata/table.go
package strata

import "sort"

// Table is a string-keyed mapping of values with unique keys.
// Insertion order is always recorded; the ordered flag, fixed at
// construction, decides whether Keys iterates in insertion order or
// sorted order. Re-inserting an existing key replaces its value and
// keeps the original position.
type Table struct {
	ordered bool
	keys    []string
	items   map[string]Value
}

// NewTable creates an empty table that iterates in sorted-key order.
func NewTable() *Table {
	return &Table{items: make(map[string]Value)}
}

// NewOrderedTable creates an empty table that preserves insertion
// order during iteration and serialization.
func NewOrderedTable() *Table {
	return &Table{ordered: true, items: make(map[string]Value)}
}

func newTableMode(ordered bool) *Table {
	if ordered {
		return NewOrderedTable()
	}
	return NewTable()
}

// Ordered reports whether the table preserves insertion order.
func (t *Table) Ordered() bool { return t.ordered }

// Len returns the number of keys.
func (t *Table) Len() int { return len(t.items) }

// Get returns the value stored under key.
func (t *Table) Get(key string) (Value, bool) {
	v, ok := t.items[key]
	return v, ok
}

// Set stores a value under key, replacing any previous value.
func (t *Table) Set(key string, v Value) {
	if _, exists := t.items[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.items[key] = v
}

// Delete removes a key. Missing keys are a no-op.
func (t *Table) Delete(key string) {
	if _, exists := t.items[key]; !exists {
		return
	}
	delete(t.items, key)
	for i, k := range t.keys {
		if k == key {
			t.keys = append(t.keys[:i], t.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in iteration order: insertion order for
// ordered tables, sorted otherwise. The slice is a copy.
func (t *Table) Keys() []string {
	keys := make([]string, len(t.keys))
	copy(keys, t.keys)
	if !t.ordered {
		sort.Strings(keys)
	}
	return keys
}

// Clone returns a deep copy, preserving mode and insertion order.
func (t *Table) Clone() *Table {
	out := &Table{
		ordered: t.ordered,
		keys:    make([]string, len(t.keys)),
		items:   make(map[string]Value, len(t.items)),
	}
	copy(out.keys, t.keys)
	for key, v := range t.items {
		out.items[key] = v.Clone()
	}
	return out
}

// Equal reports content equality: same key set with structurally
// equal values. Order and mode do not participate.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if len(t.items) != len(o.items) {
		return false
	}
	for key, v := range t.items {
		ov, ok := o.items[key]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
