// Package jvalue implements the tagged-union JSON value model shared by
// every stage of the engine: the lexer never sees it, but the segment
// classifier, filter evaluator, path-tracking evaluator and updater all
// operate on jvalue.Value rather than on Go's native any/map[string]any.
package jvalue

import "fmt"

// Kind identifies which field of Value is populated.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a tagged union over the JSON data model. Objects preserve
// insertion order via OrderedMap; Go's native map[string]any cannot make
// that guarantee, which is why the engine carries its own value type
// instead of operating directly on encoding/json's output.
type Value struct {
	Kind Kind
	B    bool
	I    int64
	F    float64
	S    string
	Arr  []Value
	Obj  *OrderedMap
}

func Null() Value           { return Value{Kind: KindNull} }
func Bool(b bool) Value     { return Value{Kind: KindBool, B: b} }
func Int(i int64) Value     { return Value{Kind: KindInt, I: i} }
func Float(f float64) Value { return Value{Kind: KindFloat, F: f} }
func String(s string) Value { return Value{Kind: KindString, S: s} }
func Array(items ...Value) Value {
	return Value{Kind: KindArray, Arr: items}
}
func Object(m *OrderedMap) Value {
	if m == nil {
		m = NewOrderedMap()
	}
	return Value{Kind: KindObject, Obj: m}
}

func (v Value) IsNull() bool   { return v.Kind == KindNull }
func (v Value) IsArray() bool  { return v.Kind == KindArray }
func (v Value) IsObject() bool { return v.Kind == KindObject }
func (v Value) IsNumber() bool { return v.Kind == KindInt || v.Kind == KindFloat }

// Number returns the numeric value of an Int or Float kind as a float64.
func (v Value) Number() (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.I), true
	case KindFloat:
		return v.F, true
	default:
		return 0, false
	}
}

// Len returns the number of elements for Array/Object kinds, or -1.
func (v Value) Len() int {
	switch v.Kind {
	case KindArray:
		return len(v.Arr)
	case KindObject:
		return v.Obj.Len()
	default:
		return -1
	}
}

// Truthy follows the filter sub-language's existence semantics: anything
// other than the Go zero-ish falsy set is true. Booleans use their own
// value; numbers are truthy unless zero; strings are truthy unless empty;
// containers are truthy unless empty; null is always falsy.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNull:
		return false
	case KindBool:
		return v.B
	case KindInt:
		return v.I != 0
	case KindFloat:
		return v.F != 0
	case KindString:
		return v.S != ""
	case KindArray:
		return len(v.Arr) > 0
	case KindObject:
		return v.Obj.Len() > 0
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprintf("%t", v.B)
	case KindInt:
		return fmt.Sprintf("%d", v.I)
	case KindFloat:
		return fmt.Sprintf("%g", v.F)
	case KindString:
		return v.S
	case KindArray:
		return fmt.Sprintf("array[%d]", len(v.Arr))
	case KindObject:
		return fmt.Sprintf("object[%d]", v.Obj.Len())
	default:
		return "?"
	}
}

// Equal implements the filter sub-language's == semantics: cross-kind
// numeric comparison (Int vs Float) is allowed, everything else requires
// matching kinds.
func Equal(a, b Value) bool {
	if a.IsNumber() && b.IsNumber() {
		af, _ := a.Number()
		bf, _ := b.Number()
		return af == bf
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNull:
		return true
	case KindBool:
		return a.B == b.B
	case KindString:
		return a.S == b.S
	case KindArray:
		if len(a.Arr) != len(b.Arr) {
			return false
		}
		for i := range a.Arr {
			if !Equal(a.Arr[i], b.Arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if a.Obj.Len() != b.Obj.Len() {
			return false
		}
		for _, k := range a.Obj.Keys() {
			av, _ := a.Obj.Get(k)
			bv, ok := b.Obj.Get(k)
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Compare orders two values for the sort step and for ordering comparison
// operators (<, <=, >, >=) in the filter sub-language. It returns an error
// (mapped to the engine's TypeError) when the two values are not
// order-comparable, matching the "mixed-type sort" and "order comparison
// between incompatible kinds" edge cases.
func Compare(a, b Value) (int, error) {
	if a.IsNumber() && b.IsNumber() {
		af, _ := a.Number()
		bf, _ := b.Number()
		switch {
		case af < bf:
			return -1, nil
		case af > bf:
			return 1, nil
		default:
			return 0, nil
		}
	}
	if a.Kind == KindString && b.Kind == KindString {
		switch {
		case a.S < b.S:
			return -1, nil
		case a.S > b.S:
			return 1, nil
		default:
			return 0, nil
		}
	}
	return 0, fmt.Errorf("cannot compare %s with %s", a.Kind, b.Kind)
}
