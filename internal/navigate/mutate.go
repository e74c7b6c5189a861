package navigate

import "github.com/cybergodev/jsonpath/internal/jvalue"

// Get walks path from root and returns the value found there. Present is
// false the moment any element of path fails to resolve.
func Get(root jvalue.Value, path []PathElem) (jvalue.Value, bool) {
	cur := root
	for _, e := range path {
		var ok bool
		if e.IsIndex {
			cur, ok = Index(cur, e.Index)
		} else {
			cur, ok = Child(cur, e.Key)
		}
		if !ok {
			return jvalue.Null(), false
		}
	}
	return cur, true
}

// Set walks to the parent of the final path element and assigns val
// there, mutating root in place. It reports false (a silent skip, never
// an error) if any element up to the parent fails to resolve, matching
// the updater's "navigation misses are skipped" contract. An empty path
// means "replace the root itself", which Set cannot do in place — callers
// handle that case themselves before calling Set.
func Set(root jvalue.Value, path []PathElem, val jvalue.Value) bool {
	if len(path) == 0 {
		return false
	}
	parent, ok := Get(root, path[:len(path)-1])
	if !ok {
		return false
	}
	last := path[len(path)-1]
	if last.IsIndex {
		if parent.Kind != jvalue.KindArray {
			return false
		}
		n := len(parent.Arr)
		idx := last.Index
		if idx < 0 {
			idx += n
		}
		if idx < 0 || idx >= n {
			return false
		}
		parent.Arr[idx] = val
		return true
	}
	if parent.Kind != jvalue.KindObject {
		return false
	}
	if _, exists := parent.Obj.Get(last.Key); !exists {
		return false
	}
	parent.Obj.Set(last.Key, val)
	return true
}
