package evaluator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cybergodev/jsonpath/internal/jvalue"
	"github.com/cybergodev/jsonpath/internal/segment"
)

func bookStoreDoc() jvalue.Value {
	book := func(category, author, title string, price float64) jvalue.Value {
		m := jvalue.NewOrderedMap()
		m.Set("category", jvalue.String(category))
		m.Set("author", jvalue.String(author))
		m.Set("title", jvalue.String(title))
		m.Set("price", jvalue.Float(price))
		return jvalue.Object(m)
	}
	books := jvalue.Array(
		book("reference", "Nigel Rees", "Sayings of the Century", 8.95),
		book("fiction", "Evelyn Waugh", "Sword of Honour", 12.99),
		book("fiction", "Herman Melville", "Moby Dick", 8.99),
		book("fiction", "J. R. R. Tolkien", "The Lord of the Rings", 22.99),
	)
	store := jvalue.NewOrderedMap()
	store.Set("book", books)
	root := jvalue.NewOrderedMap()
	root.Set("store", jvalue.Object(store))
	return jvalue.Object(root)
}

func values(t *testing.T, expr string, doc jvalue.Value) []jvalue.Value {
	t.Helper()
	steps, err := segment.Parse(expr)
	require.NoError(t, err)
	matches, err := Evaluate(steps, doc)
	require.NoError(t, err)
	out := make([]jvalue.Value, len(matches))
	for i, m := range matches {
		out[i] = m.Value
	}
	return out
}

func TestRecursiveDescentPrice(t *testing.T) {
	vals := values(t, "$..price", bookStoreDoc())
	require.Len(t, vals, 4)
	got := make([]float64, len(vals))
	for i, v := range vals {
		got[i], _ = v.Number()
	}
	require.Equal(t, []float64{8.95, 12.99, 8.99, 22.99}, got)
}

func TestFilterPriceRange(t *testing.T) {
	vals := values(t, "$.store.book[?(@.price>8 and @.price<9)].price", bookStoreDoc())
	require.Len(t, vals, 2)
	p0, _ := vals[0].Number()
	p1, _ := vals[1].Number()
	require.Equal(t, 8.95, p0)
	require.Equal(t, 8.99, p1)
}

func TestSliceStep(t *testing.T) {
	vals := values(t, "$.store.book[0:-1:2].title", bookStoreDoc())
	require.Len(t, vals, 2)
	require.Equal(t, "Sayings of the Century", vals[0].S)
	require.Equal(t, "Moby Dick", vals[1].S)
}

func TestRegexFilter(t *testing.T) {
	vals := values(t, `$.store.book[?(@.title =~ /.*Century/)].title`, bookStoreDoc())
	require.Len(t, vals, 1)
	require.Equal(t, "Sayings of the Century", vals[0].S)
}

func TestSortDescendingByPrice(t *testing.T) {
	vals := values(t, "$.store.book[/(~price)].price", bookStoreDoc())
	require.Len(t, vals, 4)
	got := make([]float64, len(vals))
	for i, v := range vals {
		got[i], _ = v.Number()
	}
	require.Equal(t, []float64{22.99, 12.99, 8.99, 8.95}, got)
}

func TestWildcardChildren(t *testing.T) {
	vals := values(t, "$.store.book[*].author", bookStoreDoc())
	require.Len(t, vals, 4)
}

func TestChildStepIndexesArrayByIntegerLiteral(t *testing.T) {
	for _, expr := range []string{"$.store.book.0.title", "$.store.book['0'].title"} {
		vals := values(t, expr, bookStoreDoc())
		require.Len(t, vals, 1, expr)
		require.Equal(t, "Sayings of the Century", vals[0].S, expr)
	}
}

func TestSortMissingKeySortsBeforePresent(t *testing.T) {
	withV := func(v int64) jvalue.Value {
		m := jvalue.NewOrderedMap()
		m.Set("v", jvalue.Int(v))
		return jvalue.Object(m)
	}
	withoutV := jvalue.Object(jvalue.NewOrderedMap())

	arr := jvalue.Array(withV(3), withoutV, withV(1))
	root := jvalue.NewOrderedMap()
	root.Set("items", arr)

	vals := values(t, "$.items[/(v)]", jvalue.Object(root))
	require.Len(t, vals, 3)

	_, ok := vals[0].Obj.Get("v")
	require.False(t, ok, "element missing the sort key should sort first")
	v1, _ := vals[1].Obj.Get("v")
	require.Equal(t, int64(1), v1.I)
	v2, _ := vals[2].Obj.Get("v")
	require.Equal(t, int64(3), v2.I)
}

func TestBareDescentIncludesSelfBeforeNextStep(t *testing.T) {
	vals := values(t, "$.store..*", bookStoreDoc())

	var sawWholeBookArray bool
	for _, v := range vals {
		if v.Kind == jvalue.KindArray && len(v.Arr) == 4 {
			sawWholeBookArray = true
		}
	}
	require.True(t, sawWholeBookArray, "wildcard applied after a bare '..' must also run on the descent root itself")
}

func TestMixedTypeSortErrors(t *testing.T) {
	m1 := jvalue.NewOrderedMap()
	m1.Set("k", jvalue.String("a"))
	m2 := jvalue.NewOrderedMap()
	m2.Set("k", jvalue.Int(1))
	arr := jvalue.Array(jvalue.Object(m1), jvalue.Object(m2))
	root := jvalue.NewOrderedMap()
	root.Set("items", arr)
	doc := jvalue.Object(root)

	steps, err := segment.Parse("$.items[/(k)]")
	require.NoError(t, err)
	_, err = Evaluate(steps, doc)
	require.Error(t, err)
	_, ok := err.(*TypeError)
	require.True(t, ok)
}
