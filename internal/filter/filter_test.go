package filter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cybergodev/jsonpath/internal/jvalue"
)

func object(pairs ...any) jvalue.Value {
	m := jvalue.NewOrderedMap()
	for i := 0; i < len(pairs); i += 2 {
		m.Set(pairs[i].(string), pairs[i+1].(jvalue.Value))
	}
	return jvalue.Object(m)
}

func TestSimpleComparison(t *testing.T) {
	expr, err := Parse("@.price > 10")
	require.NoError(t, err)

	cur := object("price", jvalue.Int(15))
	require.True(t, expr.Eval(cur, cur))

	cur2 := object("price", jvalue.Int(5))
	require.False(t, expr.Eval(cur2, cur2))
}

func TestAndOr(t *testing.T) {
	expr, err := Parse("@.price > 8 and @.price < 9")
	require.NoError(t, err)

	require.True(t, expr.Eval(object("price", jvalue.Float(8.95)), jvalue.Null()))
	require.False(t, expr.Eval(object("price", jvalue.Float(22.99)), jvalue.Null()))
}

func TestExistence(t *testing.T) {
	expr, err := Parse("@.discount")
	require.NoError(t, err)

	require.True(t, expr.Eval(object("discount", jvalue.Bool(true)), jvalue.Null()))
	require.False(t, expr.Eval(object("other", jvalue.Int(1)), jvalue.Null()))
}

func TestRegexMatch(t *testing.T) {
	expr, err := Parse(`@.title =~ /.*Century/`)
	require.NoError(t, err)

	require.True(t, expr.Eval(object("title", jvalue.String("Sayings of the Century")), jvalue.Null()))
	require.False(t, expr.Eval(object("title", jvalue.String("Moby Dick")), jvalue.Null()))
}

func TestInOperator(t *testing.T) {
	expr, err := Parse(`@.category in ['fiction', 'reference']`)
	require.NoError(t, err)

	require.True(t, expr.Eval(object("category", jvalue.String("fiction")), jvalue.Null()))
	require.False(t, expr.Eval(object("category", jvalue.String("biography")), jvalue.Null()))
}

func TestNot(t *testing.T) {
	expr, err := Parse("not @.price > 10")
	require.NoError(t, err)

	require.True(t, expr.Eval(object("price", jvalue.Int(5)), jvalue.Null()))
	require.False(t, expr.Eval(object("price", jvalue.Int(15)), jvalue.Null()))
}

func TestWildcardInSubPathRejected(t *testing.T) {
	_, err := Parse("@.list[*] > 1")
	require.Error(t, err)
}

func TestNotEqualAgainstAbsentOperandIsTrue(t *testing.T) {
	expr, err := Parse("@.missing != 5")
	require.NoError(t, err)
	require.True(t, expr.Eval(object("price", jvalue.Int(5)), jvalue.Null()))
}

func TestEqualAgainstAbsentOperandIsFalse(t *testing.T) {
	expr, err := Parse("@.missing == 5")
	require.NoError(t, err)
	require.False(t, expr.Eval(object("price", jvalue.Int(5)), jvalue.Null()))
}

func TestLessThanAgainstAbsentOperandIsFalse(t *testing.T) {
	expr, err := Parse("@.missing < 5")
	require.NoError(t, err)
	require.False(t, expr.Eval(object("price", jvalue.Int(5)), jvalue.Null()))
}

func TestRootSubPathComparison(t *testing.T) {
	expr, err := Parse("@.price == $.threshold")
	require.NoError(t, err)

	root := object("threshold", jvalue.Int(10))
	cur := object("price", jvalue.Int(10))
	require.True(t, expr.Eval(cur, root))
}
