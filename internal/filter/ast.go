package filter

import (
	"regexp"

	"github.com/cybergodev/jsonpath/internal/jvalue"
	"github.com/cybergodev/jsonpath/internal/navigate"
)

// Expr is a boolean filter predicate, evaluated once per candidate element
// (the `@` context) with access to the document root (for `$` sub-paths).
type Expr interface {
	Eval(cur, root jvalue.Value) bool
}

type andNode struct{ left, right Expr }

func (n *andNode) Eval(cur, root jvalue.Value) bool {
	return n.left.Eval(cur, root) && n.right.Eval(cur, root)
}

type orNode struct{ left, right Expr }

func (n *orNode) Eval(cur, root jvalue.Value) bool {
	return n.left.Eval(cur, root) || n.right.Eval(cur, root)
}

type notNode struct{ inner Expr }

func (n *notNode) Eval(cur, root jvalue.Value) bool { return !n.inner.Eval(cur, root) }

// existsNode is a bare sub-path atom used as a predicate on its own,
// e.g. [?(@.discount)] — true if the path resolves to a truthy value.
type existsNode struct{ path *subPath }

func (n *existsNode) Eval(cur, root jvalue.Value) bool {
	vals, ok := n.path.resolve(cur, root)
	if !ok || len(vals) == 0 {
		return false
	}
	for _, v := range vals {
		if v.Truthy() {
			return true
		}
	}
	return false
}

type compareOp int

const (
	opEq compareOp = iota
	opNe
	opLt
	opLe
	opGt
	opGe
	opMatch
	opIn
	opNotIn
)

type compareNode struct {
	lhs, rhs atom
	op       compareOp
	re       *regexp.Regexp
}

func (n *compareNode) Eval(cur, root jvalue.Value) bool {
	lvals, lok := n.lhs.resolve(cur, root)

	if n.op == opMatch {
		if !lok {
			return false
		}
		for _, lv := range lvals {
			if lv.Kind == jvalue.KindString && n.re != nil && n.re.MatchString(lv.S) {
				return true
			}
		}
		return false
	}

	rvals, rok := n.rhs.resolve(cur, root)

	if !lok || !rok {
		// A comparison against an absent operand is false, except != is
		// true when exactly one side is present.
		return n.op == opNe && lok != rok
	}
	// "predicate is true if any element satisfies" — a multi-value
	// sub-path (from a slice or index list) matches if any pairing does.
	for _, lv := range lvals {
		switch n.op {
		case opIn:
			for _, rv := range rvals {
				if jvalue.Equal(lv, rv) {
					return true
				}
			}
		case opNotIn:
			found := false
			for _, rv := range rvals {
				if jvalue.Equal(lv, rv) {
					found = true
					break
				}
			}
			if !found {
				return true
			}
		default:
			for _, rv := range rvals {
				if compareSatisfies(n.op, lv, rv) {
					return true
				}
			}
		}
	}
	return false
}

func compareSatisfies(op compareOp, lv, rv jvalue.Value) bool {
	switch op {
	case opEq:
		return jvalue.Equal(lv, rv)
	case opNe:
		return !jvalue.Equal(lv, rv)
	case opLt, opLe, opGt, opGe:
		cmp, err := jvalue.Compare(lv, rv)
		if err != nil {
			return false
		}
		switch op {
		case opLt:
			return cmp < 0
		case opLe:
			return cmp <= 0
		case opGt:
			return cmp > 0
		case opGe:
			return cmp >= 0
		}
	}
	return false
}

// atom is anything a comparison can have on either side: a literal value,
// an array literal (for in/not in), or a @/$ sub-path.
type atom interface {
	resolve(cur, root jvalue.Value) ([]jvalue.Value, bool)
}

type literalAtom struct{ v jvalue.Value }

func (a literalAtom) resolve(cur, root jvalue.Value) ([]jvalue.Value, bool) {
	return []jvalue.Value{a.v}, true
}

type arrayAtom struct{ items []atom }

func (a arrayAtom) resolve(cur, root jvalue.Value) ([]jvalue.Value, bool) {
	var out []jvalue.Value
	for _, it := range a.items {
		vs, ok := it.resolve(cur, root)
		if !ok {
			continue
		}
		out = append(out, vs...)
	}
	return out, true
}

// subPath is a restricted JSONPath fragment rooted at @ or $, used inside
// filter predicates. Per the engine's conservative resolution of an
// otherwise-unspecified case, a bare wildcard or a nested filter inside a
// sub-path is rejected at parse time — only Child/Index/Slice/IndexList
// steps are allowed, walked with the exact same internal/navigate
// primitives the top-level evaluator uses.
type subPath struct {
	fromRoot bool
	steps    []subPathStep
}

type subPathStepKind int

const (
	stepChild subPathStepKind = iota
	stepIndex
	stepSlice
	stepIndexList
)

type subPathStep struct {
	kind    subPathStepKind
	key     string
	index   int
	indices []int
	start   *int
	end     *int
	strd    *int
}

func (p *subPath) resolve(cur, root jvalue.Value) ([]jvalue.Value, bool) {
	base := cur
	if p.fromRoot {
		base = root
	}
	values := []jvalue.Value{base}
	for _, st := range p.steps {
		var next []jvalue.Value
		for _, v := range values {
			switch st.kind {
			case stepChild:
				if cv, ok := navigate.Child(v, st.key); ok {
					next = append(next, cv)
				}
			case stepIndex:
				if iv, ok := navigate.Index(v, st.index); ok {
					next = append(next, iv)
				}
			case stepIndexList:
				for _, idx := range st.indices {
					if iv, ok := navigate.Index(v, idx); ok {
						next = append(next, iv)
					}
				}
			case stepSlice:
				if v.Kind != jvalue.KindArray {
					continue
				}
				for _, idx := range navigate.SliceIndices(len(v.Arr), st.start, st.end, st.strd) {
					if iv, ok := navigate.Index(v, idx); ok {
						next = append(next, iv)
					}
				}
			}
		}
		values = next
		if len(values) == 0 {
			return nil, false
		}
	}
	return values, true
}
