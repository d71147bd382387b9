package value

import (
	"encoding/json"
	"testing"
)

func TestSetUniqueness(t *testing.T) {
	s := NewSet("a", "b", "a")
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	if !s.Has("a") || !s.Has("b") {
		t.Error("missing expected members")
	}

	s.Add("c")
	s.Remove("a")
	if s.Has("a") {
		t.Error("removed element still present")
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d after add/remove, want 2", s.Len())
	}
}

func TestSetElemsDeterministic(t *testing.T) {
	s := NewSet(3, 1, 2)
	first := s.Elems()
	for i := 0; i < 10; i++ {
		again := s.Elems()
		if len(again) != len(first) {
			t.Fatalf("Elems length changed: %d vs %d", len(again), len(first))
		}
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("Elems order not stable: %v vs %v", first, again)
			}
		}
	}
}

func TestDictPreservesOrder(t *testing.T) {
	d := NewDict()
	d.Set("zebra", 1)
	d.Set("apple", 2)
	d.Set("mango", 3)

	want := []string{"zebra", "apple", "mango"}
	got := d.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Keys = %v, want %v", got, want)
		}
	}

	// Overwriting must not duplicate the key.
	d.Set("apple", 20)
	if d.Len() != 3 {
		t.Errorf("Len = %d after overwrite, want 3", d.Len())
	}
	if v, _ := d.Get("apple"); v != 20 {
		t.Errorf("Get(apple) = %v, want 20", v)
	}
}

func TestDictMarshalJSON(t *testing.T) {
	d := NewDict()
	d.Set("b", 1)
	d.Set("a", []any{"x", "y"})

	got, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	want := `{"b":1,"a":["x","y"]}`
	if string(got) != want {
		t.Errorf("Marshal = %s, want %s", got, want)
	}
}

func TestDictMap(t *testing.T) {
	d := NewDict()
	d.Set("k", "v")
	m := d.Map()
	if m["k"] != "v" {
		t.Fatalf("Map() = %v", m)
	}
	// Mutating the copy must not affect the Dict.
	m["k"] = "other"
	if v, _ := d.Get("k"); v != "v" {
		t.Error("Map() shares top-level storage with Dict")
	}
}
