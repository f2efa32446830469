package store

import (
	"context"

	"github.com/alexanderramin/ejournal/internal/cache"
	"github.com/alexanderramin/ejournal/internal/domain"
)

type Rubrics struct {
	s           *Store
	listCache   *cache.Store[int, []domain.Rubric]
	deleteCache *cache.Store[int, string]
}

func newRubrics(s *Store) *Rubrics {
	return &Rubrics{
		s:           s,
		listCache:   cache.New[int, []domain.Rubric]("rubric.list"),
		deleteCache: cache.New[int, string]("rubric.delete"),
	}
}

func (r *Rubrics) List(ctx context.Context, aID int, force bool) ([]domain.Rubric, error) {
	_, err := r.listCache.Get(ctx, aID, force, func(ctx context.Context) ([]domain.Rubric, error) {
		rubrics, err := r.s.api.Rubrics.List(ctx, aID)
		if err != nil {
			return nil, err
		}
		r.s.mu.Lock()
		r.s.rubrics.set(aID, rubrics)
		r.s.mu.Unlock()
		return rubrics, nil
	})
	if err != nil {
		return nil, err
	}
	return r.Collection(aID), nil
}

func (r *Rubrics) Create(ctx context.Context, aID int, rubric domain.Rubric) (domain.Rubric, error) {
	created, err := r.s.api.Rubrics.Create(ctx, aID, rubric)
	if err != nil {
		return domain.Rubric{}, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.rubrics.add(aID, created) {
		r.s.skipped(domain.KindRubric, aID)
	}
	return created.Clone(), nil
}

func (r *Rubrics) Update(ctx context.Context, aID, oldID int, rubric domain.Rubric) (domain.Rubric, error) {
	updated, err := r.s.api.Rubrics.Update(ctx, aID, oldID, rubric)
	if err != nil {
		return domain.Rubric{}, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.rubrics.replace(aID, oldID, updated) {
		r.s.skipped(domain.KindRubric, aID)
	}
	return updated.Clone(), nil
}

func (r *Rubrics) Delete(ctx context.Context, aID, id int, force bool) (string, error) {
	return r.deleteCache.Get(ctx, id, force, func(ctx context.Context) (string, error) {
		desc, err := r.s.api.Rubrics.Delete(ctx, id)
		if err != nil {
			return "", err
		}

		r.s.mu.Lock()
		defer r.s.mu.Unlock()
		if !r.s.rubrics.remove(aID, id) {
			r.s.skipped(domain.KindRubric, aID)
		}
		return desc, nil
	})
}

func (r *Rubrics) Collection(aID int) []domain.Rubric {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.rubrics.snapshot(aID)
}
