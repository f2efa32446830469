package store

import (
	"context"
	"fmt"

	"github.com/alexanderramin/ejournal/internal/cache"
	"github.com/alexanderramin/ejournal/internal/domain"
)

type Assignments struct {
	s             *Store
	retrieveCache *cache.Store[int, domain.Assignment]
}

func newAssignments(s *Store) *Assignments {
	return &Assignments{s: s, retrieveCache: cache.New[int, domain.Assignment]("assignment.retrieve")}
}

// Retrieve returns the assignment, fetching it once per id unless forced.
func (a *Assignments) Retrieve(ctx context.Context, id int, courseID *int, force bool) (domain.Assignment, error) {
	got, err := a.retrieveCache.Get(ctx, id, force, func(ctx context.Context) (domain.Assignment, error) {
		assignment, err := a.s.api.Assignments.Retrieve(ctx, id, courseID)
		if err != nil {
			return domain.Assignment{}, err
		}
		a.set(assignment)
		return assignment, nil
	})
	if err != nil {
		return domain.Assignment{}, err
	}
	return got.Clone(), nil
}

func (a *Assignments) Update(ctx context.Context, assignment domain.Assignment, courseID *int) (domain.Assignment, error) {
	updated, err := a.s.api.Assignments.Update(ctx, assignment, courseID)
	if err != nil {
		return domain.Assignment{}, err
	}
	a.set(updated)
	a.retrieveCache.Set(updated.ID, updated)
	return updated.Clone(), nil
}

// Get returns the loaded assignment without fetching.
func (a *Assignments) Get(id int) (domain.Assignment, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	assignment, ok := a.s.assignments[id]
	if !ok {
		return domain.Assignment{}, fmt.Errorf("assignment %d: %w", id, ErrNotLoaded)
	}
	return assignment.Clone(), nil
}

func (a *Assignments) set(assignment domain.Assignment) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	a.s.assignments[assignment.ID] = assignment.Clone()
}
