package evaluator

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/cybergodev/jsonpath/internal/jvalue"
	"github.com/cybergodev/jsonpath/internal/navigate"
	"github.com/cybergodev/jsonpath/internal/segment"
)

// TypeError is returned when a Sort step compares values of incompatible
// kinds (e.g. a string against a number).
type TypeError struct {
	Message string
}

func (e *TypeError) Error() string { return e.Message }

// Evaluate applies steps in sequence against root, returning the final
// working set of matches. Each step consumes the previous working set and
// produces the next one; a step that matches nothing collapses the
// working set to empty for every subsequent step, which is what gives
// navigation misses their "silent skip" behavior.
func Evaluate(steps []segment.Step, root jvalue.Value) ([]Match, error) {
	working := []Match{{Value: root, Path: nil}}

	for _, step := range steps {
		var err error
		working, err = applyStep(step, working, root)
		if err != nil {
			return nil, err
		}
	}
	return working, nil
}

func applyStep(step segment.Step, in []Match, root jvalue.Value) ([]Match, error) {
	switch step.Kind {
	case segment.KindRoot:
		return in, nil

	case segment.KindChild:
		var out []Match
		for _, m := range in {
			if v, ok := navigate.Child(m.Value, step.Key); ok {
				out = append(out, Match{Value: v, Path: appendPath(m.Path, childPathElem(m.Value, step.Key))})
			}
		}
		return out, nil

	case segment.KindKeyList:
		var out []Match
		for _, m := range in {
			for _, k := range step.Keys {
				if v, ok := navigate.Child(m.Value, k); ok {
					out = append(out, Match{Value: v, Path: appendPath(m.Path, childPathElem(m.Value, k))})
				}
			}
		}
		return out, nil

	case segment.KindWildcard:
		var out []Match
		for _, m := range in {
			for _, c := range navigate.Children(m.Value) {
				out = append(out, Match{Value: c.Value, Path: appendPath(m.Path, c.Elem)})
			}
		}
		return out, nil

	case segment.KindIndexList:
		var out []Match
		for _, m := range in {
			for _, idx := range step.Indices {
				if v, ok := navigate.Index(m.Value, idx); ok {
					out = append(out, Match{Value: v, Path: appendPath(m.Path, navigate.IndexElem(normalizeIndex(m.Value, idx)))})
				}
			}
		}
		return out, nil

	case segment.KindSlice:
		var out []Match
		for _, m := range in {
			if m.Value.Kind != jvalue.KindArray {
				continue
			}
			for _, idx := range navigate.SliceIndices(len(m.Value.Arr), step.Start, step.End, step.Step) {
				if v, ok := navigate.Index(m.Value, idx); ok {
					out = append(out, Match{Value: v, Path: appendPath(m.Path, navigate.IndexElem(idx))})
				}
			}
		}
		return out, nil

	case segment.KindDescent:
		var out []Match
		for _, m := range in {
			navigate.Descend(m.Value, m.Path, func(path []navigate.PathElem, val jvalue.Value) {
				if step.DescentKey == "" {
					out = append(out, Match{Value: val, Path: path})
					return
				}
				if v, ok := navigate.Child(val, step.DescentKey); ok {
					out = append(out, Match{Value: v, Path: appendPath(path, navigate.KeyElem(step.DescentKey))})
				}
			})
		}
		return out, nil

	case segment.KindFilter:
		var out []Match
		for _, m := range in {
			for _, c := range navigate.Children(m.Value) {
				if step.Filter.Eval(c.Value, root) {
					out = append(out, Match{Value: c.Value, Path: appendPath(m.Path, c.Elem)})
				}
			}
		}
		return out, nil

	case segment.KindSort:
		return applySort(step, expandArrays(in))

	case segment.KindExtract:
		return applyExtract(step, expandArrays(in)), nil
	}

	return in, nil
}

// expandArrays turns any array-valued match into one match per element
// (the implicit expansion a Sort or Extract step applies to an array it
// immediately follows, e.g. "$.book[/(~price)]" sorting book's elements
// rather than comparing the book array to itself). Non-array matches pass
// through unchanged.
func expandArrays(in []Match) []Match {
	var out []Match
	for _, m := range in {
		if m.Value.Kind != jvalue.KindArray {
			out = append(out, m)
			continue
		}
		for i, e := range m.Value.Arr {
			out = append(out, Match{Value: e, Path: appendPath(m.Path, navigate.IndexElem(i))})
		}
	}
	return out
}

// childPathElem reports which access a Child step actually used to reach
// key in container: an index, when container is a Seq and key parses as a
// plain integer literal (the `$.arr.0` / `$.arr['0']` special case), or a
// key lookup otherwise. This mirrors navigate.Child's own branching so the
// tracked path stays round-trippable through FormatPath/segment.Parse.
func childPathElem(container jvalue.Value, key string) navigate.PathElem {
	if container.Kind == jvalue.KindArray {
		if idx, err := strconv.Atoi(key); err == nil {
			if idx < 0 {
				idx += len(container.Arr)
			}
			return navigate.IndexElem(idx)
		}
	}
	return navigate.KeyElem(key)
}

func normalizeIndex(v jvalue.Value, idx int) int {
	if v.Kind != jvalue.KindArray {
		return idx
	}
	if idx < 0 {
		return idx + len(v.Arr)
	}
	return idx
}

func applySort(step segment.Step, in []Match) ([]Match, error) {
	out := append([]Match(nil), in...)
	var sortErr error
	sort.SliceStable(out, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		for _, key := range step.SortKeys {
			av, aok := navigate.Child(out[i].Value, key.Key)
			bv, bok := navigate.Child(out[j].Value, key.Key)
			if !aok && !bok {
				continue
			}
			if aok != bok {
				// A missing key sorts before a present one, regardless of
				// this key's direction.
				return !aok
			}
			cmp, err := jvalue.Compare(av, bv)
			if err != nil {
				sortErr = &TypeError{Message: fmt.Sprintf("cannot sort by %q: %v", key.Key, err)}
				return false
			}
			if cmp == 0 {
				continue
			}
			if key.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return out, nil
}

func applyExtract(step segment.Step, in []Match) []Match {
	out := make([]Match, len(in))
	for i, m := range in {
		obj := jvalue.NewOrderedMap()
		for _, k := range step.ExtractKeys {
			if v, ok := navigate.Child(m.Value, k); ok {
				obj.Set(k, v)
			}
		}
		out[i] = Match{Value: jvalue.Object(obj), Path: m.Path}
	}
	return out
}
