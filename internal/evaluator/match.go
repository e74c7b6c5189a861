// Package evaluator applies a compiled Step sequence to a document,
// maintaining a working set of path-tracked matches as described by the
// engine's path-tracking evaluator design: every Step transforms the
// current working set into the next one.
package evaluator

import (
	"github.com/cybergodev/jsonpath/internal/jvalue"
	"github.com/cybergodev/jsonpath/internal/navigate"
)

// Match pairs a value with the path that reached it.
type Match struct {
	Value jvalue.Value
	Path  []navigate.PathElem
}

func appendPath(base []navigate.PathElem, e navigate.PathElem) []navigate.PathElem {
	out := make([]navigate.PathElem, len(base)+1)
	copy(out, base)
	out[len(base)] = e
	return out
}
