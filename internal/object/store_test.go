package object

import (
	"slices"
	"testing"
)

func newIntStore(values ...int) *Store[*int] {
	s := &Store[*int]{}
	for _, v := range values {
		s.Append(&v)
	}
	return s
}

func values(s *Store[*int]) []int {
	var out []int
	for _, v := range s.All() {
		out = append(out, *v)
	}
	return out
}

func TestStoreAppendKeepsInsertionOrder(t *testing.T) {
	s := newIntStore(3, 1, 2)
	if got := values(s); !slices.Equal(got, []int{3, 1, 2}) {
		t.Fatalf("values = %v", got)
	}
	if s.Len() != 3 || *s.At(1) != 1 {
		t.Fatalf("Len/At mismatch: len=%d at1=%d", s.Len(), *s.At(1))
	}
}

func TestStoreRemoveFunc(t *testing.T) {
	s := newIntStore(1, 2, 3, 4, 5, 6)

	calls := 0
	removed := s.RemoveFunc(func(v *int) bool {
		calls++
		return *v%2 == 0
	})

	if removed != 3 {
		t.Fatalf("removed = %d, want 3", removed)
	}
	if calls != 6 {
		t.Fatalf("predicate called %d times, want 6", calls)
	}
	if got := values(s); !slices.Equal(got, []int{1, 3, 5}) {
		t.Fatalf("values = %v", got)
	}
}

func TestStoreRemoveIndicesRemovesExactInstances(t *testing.T) {
	s := newIntStore(7, 7, 7, 8)
	second := s.At(1)

	removed := s.RemoveIndices([]int{1, 3, 1, 42, -1})
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}
	for _, v := range s.All() {
		if v == second {
			t.Fatal("the instance at index 1 is still present")
		}
	}
}

func TestStoreRemoveIndicesEmpty(t *testing.T) {
	s := newIntStore(1, 2)
	if removed := s.RemoveIndices(nil); removed != 0 || s.Len() != 2 {
		t.Fatalf("removed=%d len=%d", removed, s.Len())
	}
}

func TestStoreClear(t *testing.T) {
	s := newIntStore(1, 2, 3)
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("len after Clear = %d", s.Len())
	}
	s.Append(nil)
	if s.Len() != 1 {
		t.Fatalf("store unusable after Clear")
	}
}

func TestStoreAllStopsEarly(t *testing.T) {
	s := newIntStore(1, 2, 3)
	seen := 0
	for range s.All() {
		seen++
		break
	}
	if seen != 1 {
		t.Fatalf("seen = %d, want 1", seen)
	}
}
