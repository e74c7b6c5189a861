// Package navigate holds the primitive operations for moving through a
// jvalue.Value tree by key, index, slice or recursive descent. Both the
// path-tracking evaluator (for full Step application) and the filter
// sub-language (for @/$ sub-path resolution) are built on these same
// primitives, so a sub-path inside a filter predicate walks the document
// exactly the way the top-level evaluator does instead of forking into a
// second, parallel implementation.
package navigate

import (
	"strconv"

	"github.com/cybergodev/jsonpath/internal/jvalue"
)

// PathElem is one segment of a tracked path: either an object key or an
// array index, never both.
type PathElem struct {
	Key     string
	Index   int
	IsIndex bool
}

func KeyElem(key string) PathElem   { return PathElem{Key: key} }
func IndexElem(idx int) PathElem    { return PathElem{Index: idx, IsIndex: true} }

// Child resolves a single object key. If v is a Seq and key is an integer
// literal, it is treated as an index into v instead (so `$.arr.0` and
// `$.arr['0']` reach the same element `$.arr[0]` would). Present is false
// if neither applies — navigation misses are never an error at this
// layer, callers decide whether that's a silent skip or a filter "absent"
// result.
func Child(v jvalue.Value, key string) (jvalue.Value, bool) {
	if v.Kind == jvalue.KindArray {
		idx, err := strconv.Atoi(key)
		if err != nil {
			return jvalue.Null(), false
		}
		return Index(v, idx)
	}
	if v.Kind != jvalue.KindObject {
		return jvalue.Null(), false
	}
	return v.Obj.Get(key)
}

// Index resolves a single array index, supporting Python-style negative
// indices (-1 is the last element).
func Index(v jvalue.Value, idx int) (jvalue.Value, bool) {
	if v.Kind != jvalue.KindArray {
		return jvalue.Null(), false
	}
	n := len(v.Arr)
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		return jvalue.Null(), false
	}
	return v.Arr[idx], true
}

// Children enumerates every direct child of v for the wildcard step, in
// document order (array index order, or object insertion order).
func Children(v jvalue.Value) []struct {
	Elem  PathElem
	Value jvalue.Value
} {
	switch v.Kind {
	case jvalue.KindArray:
		out := make([]struct {
			Elem  PathElem
			Value jvalue.Value
		}, len(v.Arr))
		for i, e := range v.Arr {
			out[i] = struct {
				Elem  PathElem
				Value jvalue.Value
			}{IndexElem(i), e}
		}
		return out
	case jvalue.KindObject:
		keys := v.Obj.Keys()
		out := make([]struct {
			Elem  PathElem
			Value jvalue.Value
		}, len(keys))
		for i, k := range keys {
			val, _ := v.Obj.Get(k)
			out[i] = struct {
				Elem  PathElem
				Value jvalue.Value
			}{KeyElem(k), val}
		}
		return out
	default:
		return nil
	}
}

// SliceIndices computes the list of array indices a slice step selects,
// following Python's slice semantics (dynamic-language behavior, per the
// spec's explicit choice over RFC 9535's clamping rules): start/end/step
// may each be nil (meaning "default for this step's sign"), negative
// indices count from the end, and a negative step walks backward.
func SliceIndices(length int, start, end, step *int) []int {
	st := 1
	if step != nil {
		st = *step
	}
	if st == 0 {
		return nil
	}

	var lo, hi int
	if st > 0 {
		lo, hi = 0, length
	} else {
		lo, hi = length-1, -1
	}

	normalize := func(i int) int {
		if i < 0 {
			i += length
		}
		return i
	}

	var startIdx, endIdx int
	if start == nil {
		startIdx = lo
	} else {
		startIdx = normalize(*start)
		if st > 0 {
			startIdx = clamp(startIdx, 0, length)
		} else {
			startIdx = clamp(startIdx, -1, length-1)
		}
	}
	if end == nil {
		endIdx = hi
	} else {
		endIdx = normalize(*end)
		if st > 0 {
			endIdx = clamp(endIdx, 0, length)
		} else {
			endIdx = clamp(endIdx, -1, length-1)
		}
	}

	var out []int
	if st > 0 {
		for i := startIdx; i < endIdx; i += st {
			out = append(out, i)
		}
	} else {
		for i := startIdx; i > endIdx; i += st {
			out = append(out, i)
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Descend walks the subtree rooted at v in pre-order, invoking visit for
// every node including v itself (the recursive descent `..` step's
// traversal order). The path passed to visit is base followed by the
// elements leading from v to the visited node.
func Descend(v jvalue.Value, base []PathElem, visit func(path []PathElem, val jvalue.Value)) {
	visit(base, v)
	for _, c := range Children(v) {
		Descend(c.Value, append(append([]PathElem{}, base...), c.Elem), visit)
	}
}
