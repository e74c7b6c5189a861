// Package segment classifies the raw segments produced by internal/lexer
// into typed Steps the path-tracking evaluator can apply directly.
package segment

import "github.com/cybergodev/jsonpath/internal/filter"

type Kind int

const (
	KindRoot Kind = iota
	KindChild
	KindKeyList
	KindWildcard
	KindDescent
	KindSlice
	KindIndexList
	KindFilter
	KindSort
	KindExtract
)

// SortKey is one key of a Sort step, e.g. "~price" for descending.
type SortKey struct {
	Key  string
	Desc bool
}

// Step is one compiled unit of a JSONPath expression.
type Step struct {
	Kind Kind

	Key  string   // KindChild
	Keys []string // KindKeyList

	Indices []int // KindIndexList

	Start *int // KindSlice
	End   *int
	Step  *int

	DescentKey string // KindDescent: "" means descend everything, else filter by this key at every level

	Filter filter.Expr // KindFilter

	SortKeys []SortKey // KindSort

	ExtractKeys []string // KindExtract

	Offset int // byte offset in the source expression, for error messages
}
