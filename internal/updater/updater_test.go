package updater

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cybergodev/jsonpath/internal/evaluator"
	"github.com/cybergodev/jsonpath/internal/jvalue"
	"github.com/cybergodev/jsonpath/internal/navigate"
	"github.com/cybergodev/jsonpath/internal/segment"
)

func doc() jvalue.Value {
	m := jvalue.NewOrderedMap()
	m.Set("price", jvalue.Float(10))
	m.Set("tags", jvalue.Array(jvalue.String("a"), jvalue.String("b")))
	return jvalue.Object(m)
}

func evalSteps(t *testing.T, expr string, root jvalue.Value) []evaluator.Match {
	t.Helper()
	steps, err := segment.Parse(expr)
	require.NoError(t, err)
	matches, err := evaluator.Evaluate(steps, root)
	require.NoError(t, err)
	return matches
}

func TestApplyLiteral(t *testing.T) {
	root := doc()
	matches := evalSteps(t, "$.price", root)
	n := Apply(root, matches, jvalue.Float(20), nil)
	require.Equal(t, 1, n)

	v, ok := navigate.Get(root, matches[0].Path)
	require.True(t, ok)
	require.Equal(t, 20.0, v.F)
}

func TestApplyTransform(t *testing.T) {
	root := doc()
	matches := evalSteps(t, "$.price", root)
	n := Apply(root, matches, jvalue.Value{}, func(cur jvalue.Value) jvalue.Value {
		return jvalue.Float(cur.F * 0.9)
	})
	require.Equal(t, 1, n)

	v, _ := navigate.Get(root, matches[0].Path)
	require.InDelta(t, 9.0, v.F, 1e-9)
}

func TestApplySkipsEmptyPath(t *testing.T) {
	root := doc()
	matches := []evaluator.Match{{Value: root, Path: nil}}
	n := Apply(root, matches, jvalue.Float(1), nil)
	require.Equal(t, 0, n)
}

func TestApplyMultipleMatches(t *testing.T) {
	root := doc()
	matches := evalSteps(t, "$.tags[*]", root)
	require.Len(t, matches, 2)
	n := Apply(root, matches, jvalue.String("x"), nil)
	require.Equal(t, 2, n)

	for _, m := range matches {
		v, ok := navigate.Get(root, m.Path)
		require.True(t, ok)
		require.Equal(t, "x", v.S)
	}
}

func TestApplySilentlySkipsMissingPath(t *testing.T) {
	root := doc()
	matches := []evaluator.Match{
		{Value: jvalue.Int(1), Path: []navigate.PathElem{navigate.KeyElem("missing"), navigate.KeyElem("x")}},
	}
	n := Apply(root, matches, jvalue.Int(1), nil)
	require.Equal(t, 0, n)
}
