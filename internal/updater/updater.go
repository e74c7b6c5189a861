// Package updater mutates a document at the locations a path-tracking
// evaluation already found, reusing the tracked structured path rather
// than re-parsing a canonical path string.
package updater

import (
	"github.com/cybergodev/jsonpath/internal/evaluator"
	"github.com/cybergodev/jsonpath/internal/jvalue"
	"github.com/cybergodev/jsonpath/internal/navigate"
)

// Transform computes a replacement value given the value currently at a
// match's location.
type Transform func(jvalue.Value) jvalue.Value

// Apply updates root in place at every match's path, either to a literal
// value (transform == nil) or to the result of applying transform to the
// value found there. A match whose path no longer resolves against root
// (e.g. a prior update in the same batch removed it) is silently skipped,
// never an error — matching the engine's update contract. It returns the
// number of locations actually updated.
func Apply(root jvalue.Value, matches []evaluator.Match, literal jvalue.Value, transform Transform) int {
	updated := 0
	for _, m := range matches {
		if len(m.Path) == 0 {
			// Updating the root itself can't be expressed as an in-place
			// mutation through navigate.Set; the caller owns root and must
			// handle that case before calling Apply.
			continue
		}
		newVal := literal
		if transform != nil {
			cur, ok := navigate.Get(root, m.Path)
			if !ok {
				continue
			}
			newVal = transform(cur)
		}
		if navigate.Set(root, m.Path, newVal) {
			updated++
		}
	}
	return updated
}
