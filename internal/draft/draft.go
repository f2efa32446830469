// Package draft holds local edit buffers for entities, separate from the
// authoritative copies kept by the store.
package draft

import (
	"maps"
	"slices"

	"github.com/alexanderramin/ejournal/internal/domain"
)

// Entity is anything that can be drafted.
type Entity[T any] interface {
	GetID() int
	Clone() T
}

// Draft is a deep copy of an entity plus whether it differs from the
// authoritative copy.
type Draft[T any] struct {
	Value  T
	Edited bool

	// authoritative copy Edited was last computed against
	base T
}

// Base returns the authoritative copy the draft was last compared with, or
// the seed for a new draft.
func (d *Draft[T]) Base() T {
	return d.base
}

// Set keeps at most one draft per entity id and at most one draft for a new,
// unsaved entity. It is not safe for concurrent use.
type Set[T Entity[T]] struct {
	drafts map[int]*Draft[T]
	fresh  *Draft[T]
	seed   T
}

func NewSet[T Entity[T]]() *Set[T] {
	return &Set[T]{drafts: make(map[int]*Draft[T])}
}

// Ensure returns the draft for original.GetID(), creating it from a clone of
// original when absent. Edited is recomputed against original either way.
func (s *Set[T]) Ensure(original T) *Draft[T] {
	id := original.GetID()
	d, ok := s.drafts[id]
	if !ok {
		d = &Draft[T]{Value: original.Clone()}
		s.drafts[id] = d
	}
	d.base = original.Clone()
	d.Edited = !domain.Equal(d.Value, original)
	return d
}

func (s *Set[T]) Get(id int) (*Draft[T], bool) {
	d, ok := s.drafts[id]
	return d, ok
}

// Remove drops the draft for id and reports whether one existed.
func (s *Set[T]) Remove(id int) bool {
	_, ok := s.drafts[id]
	delete(s.drafts, id)
	return ok
}

// Refresh recomputes Edited of the draft for authoritative's id.
func (s *Set[T]) Refresh(authoritative T) {
	if d, ok := s.drafts[authoritative.GetID()]; ok {
		d.base = authoritative.Clone()
		d.Edited = !domain.Equal(d.Value, authoritative)
	}
}

// IDs returns the drafted ids in ascending order.
func (s *Set[T]) IDs() []int {
	return slices.Sorted(maps.Keys(s.drafts))
}

func (s *Set[T]) Len() int {
	return len(s.drafts)
}

// New returns the new-entity draft, if any.
func (s *Set[T]) New() (*Draft[T], bool) {
	return s.fresh, s.fresh != nil
}

// StartNew creates the new-entity draft from seed. An existing new draft is
// returned unchanged.
func (s *Set[T]) StartNew(seed T) (*Draft[T], bool) {
	if s.fresh != nil {
		return s.fresh, false
	}
	s.seed = seed.Clone()
	s.fresh = &Draft[T]{Value: seed.Clone(), base: seed.Clone()}
	return s.fresh, true
}

// RefreshNew recomputes Edited of the new draft against its seed.
func (s *Set[T]) RefreshNew() {
	if s.fresh != nil {
		s.fresh.Edited = !domain.Equal(s.fresh.Value, s.seed)
	}
}

func (s *Set[T]) ClearNew() {
	var zero T
	s.fresh = nil
	s.seed = zero
}

// Map rewrites the value of every draft, the new draft included, keeping
// edited flags untouched.
func (s *Set[T]) Map(fn func(T) T) {
	for _, d := range s.drafts {
		d.Value = fn(d.Value)
	}
	if s.fresh != nil {
		s.fresh.Value = fn(s.fresh.Value)
	}
}

// Each calls fn for every draft, the new draft last with domain.NewID.
func (s *Set[T]) Each(fn func(id int, d *Draft[T])) {
	for _, id := range s.IDs() {
		fn(id, s.drafts[id])
	}
	if s.fresh != nil {
		fn(domain.NewID, s.fresh)
	}
}

func (s *Set[T]) Clear() {
	s.drafts = make(map[int]*Draft[T])
	s.ClearNew()
}
