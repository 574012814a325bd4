package selection

import (
	"reflect"
	"testing"
)

func TestToggleTwiceRestores(t *testing.T) {
	s := New()
	s.Toggle("😀")
	s.Toggle("😢")
	before := s.Tokens()

	if !s.Toggle("🥳") {
		t.Fatal("first toggle should select")
	}
	if s.Toggle("🥳") {
		t.Fatal("second toggle should deselect")
	}

	if got := s.Tokens(); !reflect.DeepEqual(got, before) {
		t.Fatalf("selection changed: got %v want %v", got, before)
	}
}

func TestToggleKeepsInsertionOrder(t *testing.T) {
	s := New()
	for _, tok := range []string{"😀", "😢", "😡"} {
		s.Toggle(tok)
	}
	s.Toggle("😢")
	s.Toggle("😢")

	want := []string{"😀", "😡", "😢"}
	if got := s.Tokens(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected order: got %v want %v", got, want)
	}
	if s.Len() != 3 {
		t.Fatalf("unexpected len %d", s.Len())
	}
}

func TestRemoveDoesNotAliasReturnedSlice(t *testing.T) {
	s := New()
	s.Toggle("a")
	s.Toggle("b")
	s.Toggle("c")
	snapshot := s.Tokens()

	s.Toggle("a")
	if !reflect.DeepEqual(snapshot, []string{"a", "b", "c"}) {
		t.Fatalf("snapshot mutated: %v", snapshot)
	}
}

func TestClear(t *testing.T) {
	s := New()
	s.Toggle("😀")
	s.Clear()

	if !s.Empty() || s.Contains("😀") {
		t.Fatal("selection should be empty after Clear")
	}
}
