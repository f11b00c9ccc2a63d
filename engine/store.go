package engine

import (
	"sort"

	"github.com/lixenwraith/gridnav/core"
)

// Store is a dense typed component store. Entities are kept sorted by ID,
// so iteration order is ascending and identical across runs. Single-owner:
// the simulation tick is the only writer
type Store[T any] struct {
	entities []core.Entity
	data     []T
}

// NewStore creates an empty component store
func NewStore[T any]() *Store[T] {
	return &Store[T]{}
}

func (s *Store[T]) find(e core.Entity) (int, bool) {
	i := sort.Search(len(s.entities), func(i int) bool {
		return s.entities[i] >= e
	})
	return i, i < len(s.entities) && s.entities[i] == e
}

// Set adds or replaces the component of an entity
func (s *Store[T]) Set(e core.Entity, c T) {
	i, ok := s.find(e)
	if ok {
		s.data[i] = c
		return
	}
	s.entities = append(s.entities, 0)
	s.data = append(s.data, c)
	copy(s.entities[i+1:], s.entities[i:])
	copy(s.data[i+1:], s.data[i:])
	s.entities[i] = e
	s.data[i] = c
}

// Get returns a pointer into the store, valid until the next Set or Remove
func (s *Store[T]) Get(e core.Entity) (*T, bool) {
	i, ok := s.find(e)
	if !ok {
		return nil, false
	}
	return &s.data[i], true
}

// Has reports whether the entity carries this component
func (s *Store[T]) Has(e core.Entity) bool {
	_, ok := s.find(e)
	return ok
}

// Remove drops the component, preserving the sorted layout
func (s *Store[T]) Remove(e core.Entity) {
	i, ok := s.find(e)
	if !ok {
		return
	}
	s.entities = append(s.entities[:i], s.entities[i+1:]...)
	s.data = append(s.data[:i], s.data[i+1:]...)
}

// ForEach visits every component in ascending entity order. The callback
// may mutate through the pointer but must not add or remove entries
func (s *Store[T]) ForEach(fn func(e core.Entity, c *T)) {
	for i := range s.entities {
		fn(s.entities[i], &s.data[i])
	}
}

// Len returns the number of stored components
func (s *Store[T]) Len() int {
	return len(s.entities)
}

// Clear removes all components, keeping capacity
func (s *Store[T]) Clear() {
	s.entities = s.entities[:0]
	s.data = s.data[:0]
}
