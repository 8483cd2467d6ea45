// File: strataconf/strata/merge.go
package strata

// Merge rules, applied recursively over a left accumulator and the
// next source's value:
//
//   - table + table: merge key by key. Keys only on the right are
//     inserted after the left's keys; keys on both sides recurse;
//     keys only on the left are kept.
//   - array + array: the right array replaces the left wholesale.
//     Arrays are atomic units, not mergeable collections.
//   - anything else, including an explicit null on the right: the
//     right replaces the left at that position.
//
// The fold is deterministic and associative but not commutative:
// source registration order is the conflict-resolution mechanism.

// mergeValues combines two values under the merge rules. The result
// shares no state with either input.
func mergeValues(left, right Value) Value {
	if left.kind == KindTable && right.kind == KindTable {
		return TableValue(mergeTables(left.t, right.t))
	}
	return right.Clone()
}

// mergeTables merges right into a copy of left. The result keeps
// left's iteration mode; in ordered mode, left's keys come first and
// right-only keys follow in right's order.
func mergeTables(left, right *Table) *Table {
	out := left.Clone()
	for _, key := range right.Keys() {
		rv, _ := right.Get(key)
		if lv, exists := out.Get(key); exists {
			out.Set(key, mergeValues(lv, rv))
			continue
		}
		out.Set(key, rv.Clone())
	}
	return out
}
