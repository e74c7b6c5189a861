package jsonpath

import "context"

// Search compiles expr (using the package's shared default engine's
// cache) and evaluates it against doc, returning matched values.
func Search(expr string, doc Value) ([]Value, error) {
	return defaultEngine.Search(context.Background(), expr, doc)
}

// SearchPaths is like Search but returns each match's canonical path
// instead of its value.
func SearchPaths(expr string, doc Value) ([]string, error) {
	return defaultEngine.SearchPaths(context.Background(), expr, doc)
}

// SearchAll evaluates every compiled expression against doc.
func SearchAll(compiled []*CompiledExpression, doc Value) ([][]Value, error) {
	return defaultEngine.SearchAll(context.Background(), compiled, doc)
}

// Update replaces every location expr matches in doc with value, mutating
// doc in place, and returns the number of locations updated.
func Update(expr string, doc Value, value Value) (int, error) {
	return defaultEngine.Update(context.Background(), expr, doc, value)
}

// UpdateFunc replaces every location expr matches in doc with fn applied
// to the value currently there.
func UpdateFunc(expr string, doc Value, fn func(Value) Value) (int, error) {
	return defaultEngine.UpdateFunc(context.Background(), expr, doc, fn)
}

// Parse is an alias for Compile, matching the vocabulary some callers
// expect from a "parse this expression" entry point.
func Parse(expr string) (*CompiledExpression, error) {
	return Compile(expr)
}
