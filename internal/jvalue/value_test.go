package jvalue

import "testing"

func TestFromAnyToAnyRoundTrip(t *testing.T) {
	doc := map[string]any{
		"title": "Sayings of the Century",
		"price": 8.95,
		"tags":  []any{"classic", "poetry"},
	}
	v := FromAny(doc)
	if v.Kind != KindObject {
		t.Fatalf("expected object, got %v", v.Kind)
	}
	back := ToAny(v).(map[string]any)
	if back["title"] != "Sayings of the Century" {
		t.Errorf("title round-trip mismatch: %v", back["title"])
	}
	if back["price"] != 8.95 {
		t.Errorf("price round-trip mismatch: %v", back["price"])
	}
}

func TestOrderedMapPreservesInsertionOrder(t *testing.T) {
	m := NewOrderedMap()
	m.Set("z", Int(1))
	m.Set("a", Int(2))
	m.Set("m", Int(3))

	got := m.Keys()
	want := []string{"z", "a", "m"}
	for i, k := range want {
		if got[i] != k {
			t.Fatalf("key order mismatch at %d: got %q want %q", i, got[i], k)
		}
	}
}

func TestOrderedMapOverwritePreservesPosition(t *testing.T) {
	m := NewOrderedMap()
	m.Set("a", Int(1))
	m.Set("b", Int(2))
	m.Set("a", Int(99))

	got := m.Keys()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected order [a b], got %v", got)
	}
	v, _ := m.Get("a")
	if v.I != 99 {
		t.Fatalf("expected overwritten value 99, got %v", v.I)
	}
}

func TestEqualCrossKindNumeric(t *testing.T) {
	if !Equal(Int(4), Float(4.0)) {
		t.Errorf("expected Int(4) == Float(4.0)")
	}
}

func TestCompareIncompatibleKindsErrors(t *testing.T) {
	_, err := Compare(String("a"), Int(1))
	if err == nil {
		t.Fatalf("expected error comparing string to int")
	}
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Null(), false},
		{Bool(false), false},
		{Bool(true), true},
		{Int(0), false},
		{Int(1), true},
		{String(""), false},
		{String("x"), true},
		{Array(), false},
		{Array(Int(1)), true},
	}
	for _, c := range cases {
		if got := c.v.Truthy(); got != c.want {
			t.Errorf("Truthy(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}
