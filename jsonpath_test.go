package jsonpath

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cybergodev/jsonpath/internal/jvalue"
)

// loadDoc builds the bookstore document directly with Value constructors
// rather than round-tripping through encoding/json + FromAny: decoding
// into map[string]any already discards key order, and building the
// fixture that way would make order-sensitive assertions (recursive
// descent, object key order) depend on Go's randomized map iteration.
func loadDoc(t *testing.T) Value {
	t.Helper()

	newBook := func(category, author, title string, price float64) Value {
		m := jvalue.NewOrderedMap()
		m.Set("category", StringValue(category))
		m.Set("author", StringValue(author))
		m.Set("title", StringValue(title))
		m.Set("price", FloatValue(price))
		return jvalue.Object(m)
	}
	books := jvalue.Array(
		newBook("reference", "Nigel Rees", "Sayings of the Century", 8.95),
		newBook("fiction", "Evelyn Waugh", "Sword of Honour", 12.99),
		newBook("fiction", "Herman Melville", "Moby Dick", 8.99),
		newBook("fiction", "J. R. R. Tolkien", "The Lord of the Rings", 22.99),
	)
	bicycle := jvalue.NewOrderedMap()
	bicycle.Set("color", StringValue("red"))
	bicycle.Set("price", FloatValue(19.95))

	store := jvalue.NewOrderedMap()
	store.Set("book", books)
	store.Set("bicycle", jvalue.Object(bicycle))

	root := jvalue.NewOrderedMap()
	root.Set("store", jvalue.Object(store))
	root.Set("a.b c", StringValue("a.b c"))
	return jvalue.Object(root)
}

func TestSearchBracketQuotedOddKey(t *testing.T) {
	doc := loadDoc(t)
	vals, err := Search("$['a.b c']", doc)
	require.NoError(t, err)
	require.Len(t, vals, 1)
	require.Equal(t, "a.b c", vals[0].S)
}

func TestSearchRecursiveDescentPrices(t *testing.T) {
	doc := loadDoc(t)
	vals, err := Search("$..price", doc)
	require.NoError(t, err)
	got := make([]float64, len(vals))
	for i, v := range vals {
		got[i], _ = v.Number()
	}
	require.Equal(t, []float64{8.95, 12.99, 8.99, 22.99, 19.95}, got)
}

func TestSearchFilterRange(t *testing.T) {
	doc := loadDoc(t)
	vals, err := Search("$.store.book[?(@.price>8 and @.price<9)].price", doc)
	require.NoError(t, err)
	got := make([]float64, len(vals))
	for i, v := range vals {
		got[i], _ = v.Number()
	}
	require.Equal(t, []float64{8.95, 8.99}, got)
}

func TestSearchRegexFilter(t *testing.T) {
	doc := loadDoc(t)
	vals, err := Search(`$.store.book[?(@.title =~ /.*Century/)].title`, doc)
	require.NoError(t, err)
	require.Len(t, vals, 1)
	require.Equal(t, "Sayings of the Century", vals[0].S)
}

func TestSearchSortDescending(t *testing.T) {
	doc := loadDoc(t)
	vals, err := Search("$.store.book[/(~price)].price", doc)
	require.NoError(t, err)
	got := make([]float64, len(vals))
	for i, v := range vals {
		got[i], _ = v.Number()
	}
	require.Equal(t, []float64{22.99, 12.99, 8.99, 8.95}, got)
}

func TestSearchSliceWithStep(t *testing.T) {
	doc := loadDoc(t)
	vals, err := Search("$.store.book[0:-1:2].title", doc)
	require.NoError(t, err)
	require.Equal(t, []string{"Sayings of the Century", "Moby Dick"}, []string{vals[0].S, vals[1].S})
}

func TestSearchPathsRoundTrip(t *testing.T) {
	doc := loadDoc(t)
	paths, err := SearchPaths("$.store.book[0].title", doc)
	require.NoError(t, err)
	require.Equal(t, []string{"$['store']['book'][0]['title']"}, paths)
}

func TestUpdateScalesPrices(t *testing.T) {
	doc := loadDoc(t)
	n, err := UpdateFunc("$.store.book[*].price", doc, func(v Value) Value {
		f, _ := v.Number()
		return FloatValue(f * 0.9)
	})
	require.NoError(t, err)
	require.Equal(t, 4, n)

	vals, err := Search("$.store.book[0].price", doc)
	require.NoError(t, err)
	require.InDelta(t, 8.055, vals[0].F, 1e-9)
}

func TestUpdateLiteralSilentlySkipsMissingPath(t *testing.T) {
	doc := loadDoc(t)
	n, err := Update("$.store.book[10].price", doc, FloatValue(1))
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestValidateRejectsWildcardInFilterSubPath(t *testing.T) {
	err := Validate("$.store.book[?(@.tags[*] == 'x')]")
	require.Error(t, err)
}

func TestValidateRejectsTrailingDescent(t *testing.T) {
	err := Validate("$.store..")
	require.Error(t, err)
}

func TestCompileCachesAcrossCalls(t *testing.T) {
	e := New()
	defer e.Close()

	c1, err := e.Compile("$.store.book[*].title")
	require.NoError(t, err)
	c2, err := e.Compile("$.store.book[*].title")
	require.NoError(t, err)
	require.Same(t, c1, c2)
}

func TestSearchAllPreservesOrder(t *testing.T) {
	doc := loadDoc(t)
	c1 := MustCompile("$.store.bicycle.color")
	c2 := MustCompile("$.store.bicycle.price")

	results, err := SearchAll([]*CompiledExpression{c1, c2}, doc)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "red", results[0][0].S)
	require.InDelta(t, 19.95, results[1][0].F, 1e-9)
}

func TestPathErrorUnwrapsToSentinel(t *testing.T) {
	_, err := Compile("$.store[?(@.price > 1")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrSyntax))
}

func TestCompileRejectsMalformedFilterExpression(t *testing.T) {
	_, err := Compile("$.store[?(@.price >)]")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrSyntax))
}

func TestEngineCloseRejectsFurtherCompiles(t *testing.T) {
	e := New()
	require.NoError(t, e.Close())
	require.NoError(t, e.Close())

	_, err := e.Compile("$.store")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrClosed))
}

func TestSearchDotQuotedKeyMatchesBracketForm(t *testing.T) {
	doc := loadDoc(t)
	vals, err := Search("$.'a.b c'", doc)
	require.NoError(t, err)
	require.Len(t, vals, 1)
	require.Equal(t, "a.b c", vals[0].S)
}

func TestSearchArrayIndexAsChildStep(t *testing.T) {
	doc := loadDoc(t)
	cases := []string{"$.store.book.0.title", "$.store.book['0'].title"}
	for _, expr := range cases {
		vals, err := Search(expr, doc)
		require.NoError(t, err, expr)
		require.Len(t, vals, 1, expr)
		require.Equal(t, "Sayings of the Century", vals[0].S, expr)
	}
}

func TestSearchQuotedKeyContainingColon(t *testing.T) {
	m := jvalue.NewOrderedMap()
	m.Set("a:b", StringValue("colon"))
	doc := jvalue.Object(m)

	vals, err := Search("$['a:b']", doc)
	require.NoError(t, err)
	require.Len(t, vals, 1)
	require.Equal(t, "colon", vals[0].S)
}

func TestSearchFilterNotEqualIsTrueAgainstAbsent(t *testing.T) {
	doc := loadDoc(t)
	vals, err := Search("$.store.book[?(@.discount != 5)].title", doc)
	require.NoError(t, err)
	require.Len(t, vals, 4)
}

func TestSearchSortMissingKeySortsFirst(t *testing.T) {
	withV := func(v int64) Value {
		m := jvalue.NewOrderedMap()
		m.Set("v", IntValue(v))
		return jvalue.Object(m)
	}
	withoutV := func(label string) Value {
		m := jvalue.NewOrderedMap()
		m.Set("label", StringValue(label))
		return jvalue.Object(m)
	}
	items := jvalue.Array(withV(3), withoutV("missing"), withV(1))
	root := jvalue.NewOrderedMap()
	root.Set("items", items)
	doc := jvalue.Object(root)

	vals, err := Search("$.items[/(v)]", doc)
	require.NoError(t, err)
	require.Len(t, vals, 3)

	first, ok := vals[0].Obj.Get("label")
	require.True(t, ok)
	require.Equal(t, "missing", first.S)
}

func TestSearchBareDescentThenSeparateStepIncludesSelf(t *testing.T) {
	doc := loadDoc(t)
	vals, err := Search("$.store..*", doc)
	require.NoError(t, err)

	var sawWholeBookArray, sawWholeBicycle bool
	for _, v := range vals {
		if v.Kind == jvalue.KindArray && len(v.Arr) == 4 {
			sawWholeBookArray = true
		}
		if v.Kind == jvalue.KindObject {
			if color, ok := v.Obj.Get("color"); ok && color.S == "red" {
				sawWholeBicycle = true
			}
		}
	}
	require.True(t, sawWholeBookArray, "wildcard applied to store itself should surface the whole book array")
	require.True(t, sawWholeBicycle, "wildcard applied to store itself should surface the whole bicycle object")
}

func TestMixedKindSortReturnsTypeError(t *testing.T) {
	m1 := jvalue.NewOrderedMap()
	m1.Set("k", StringValue("a"))
	m2 := jvalue.NewOrderedMap()
	m2.Set("k", IntValue(1))
	items := jvalue.Array(jvalue.Object(m1), jvalue.Object(m2))

	root := jvalue.NewOrderedMap()
	root.Set("items", items)
	doc := jvalue.Object(root)

	_, err := Search("$.items[/(k)]", doc)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrType))
}
