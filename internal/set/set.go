// Package set provides a generic set that remembers insertion order, so
// results built from archive entries come back in enumeration order.
package set

// Set stores unique values of type T in the order they were first added.
type Set[T comparable] struct {
	items map[T]struct{}
	order []T
}

// New creates an empty set.
func New[T comparable]() *Set[T] {
	return &Set[T]{items: make(map[T]struct{})}
}

// FromSlice creates a set holding values, first occurrence wins.
func FromSlice[T comparable](values []T) *Set[T] {
	s := New[T]()
	s.AddValues(values)
	return s
}

// Add inserts value if absent.
func (s *Set[T]) Add(value T) {
	if _, ok := s.items[value]; ok {
		return
	}
	s.items[value] = struct{}{}
	s.order = append(s.order, value)
}

// AddValues inserts every value.
func (s *Set[T]) AddValues(values []T) {
	for _, v := range values {
		s.Add(v)
	}
}

// Contains reports membership.
func (s *Set[T]) Contains(value T) bool {
	_, ok := s.items[value]
	return ok
}

// Len returns the number of elements.
func (s *Set[T]) Len() int {
	return len(s.order)
}

// Values returns the elements in insertion order.
func (s *Set[T]) Values() []T {
	out := make([]T, len(s.order))
	copy(out, s.order)
	return out
}

// Difference returns the elements of s not in other, in s's order.
func (s *Set[T]) Difference(other *Set[T]) *Set[T] {
	out := New[T]()
	for _, v := range s.order {
		if !other.Contains(v) {
			out.Add(v)
		}
	}
	return out
}

// Union returns the elements of s followed by the new elements of other.
func (s *Set[T]) Union(other *Set[T]) *Set[T] {
	out := FromSlice(s.order)
	out.AddValues(other.order)
	return out
}
