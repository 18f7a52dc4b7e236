package object

import "iter"

// Store is an insertion-ordered collection of entities.
// Entities are identified by pointer; there is no uniqueness constraint.
type Store[T any] struct {
	items []T
}

// Append adds entities to the end of the store.
func (s *Store[T]) Append(items ...T) {
	s.items = append(s.items, items...)
}

// Len returns the number of entities in the store.
func (s *Store[T]) Len() int {
	return len(s.items)
}

// At returns the entity at index i.
func (s *Store[T]) At(i int) T {
	return s.items[i]
}

// All iterates over the store in insertion order.
func (s *Store[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, item := range s.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// Items returns the backing slice. Callers must not retain it across mutations.
func (s *Store[T]) Items() []T {
	return s.items
}

// RemoveFunc removes every entity for which remove returns true, keeping order.
// remove is called exactly once per entity, in order. Returns the number removed.
func (s *Store[T]) RemoveFunc(remove func(T) bool) int {
	kept := s.items[:0] // reuse backing array
	for _, item := range s.items {
		if !remove(item) {
			kept = append(kept, item)
		}
	}
	removed := len(s.items) - len(kept)
	clear(s.items[len(kept):]) // drop references for the GC
	s.items = kept
	return removed
}

// RemoveIndices removes the entities at the given indices in a single compaction pass.
// Indices refer to positions before the call; duplicates and out-of-range values are ignored.
func (s *Store[T]) RemoveIndices(indices []int) int {
	if len(indices) == 0 {
		return 0
	}
	marked := make([]bool, len(s.items))
	for _, i := range indices {
		if i >= 0 && i < len(marked) {
			marked[i] = true
		}
	}

	kept := s.items[:0]
	for i, item := range s.items {
		if !marked[i] {
			kept = append(kept, item)
		}
	}
	removed := len(s.items) - len(kept)
	clear(s.items[len(kept):])
	s.items = kept
	return removed
}

// Clear removes all entities.
func (s *Store[T]) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}
