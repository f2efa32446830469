package store

import (
	"context"

	"github.com/alexanderramin/ejournal/internal/cache"
	"github.com/alexanderramin/ejournal/internal/domain"
)

type Templates struct {
	s           *Store
	listCache   *cache.Store[int, []domain.Template]
	deleteCache *cache.Store[int, string]
}

func newTemplates(s *Store) *Templates {
	return &Templates{
		s:           s,
		listCache:   cache.New[int, []domain.Template]("template.list"),
		deleteCache: cache.New[int, string]("template.delete"),
	}
}

func (t *Templates) List(ctx context.Context, aID int, force bool) ([]domain.Template, error) {
	_, err := t.listCache.Get(ctx, aID, force, func(ctx context.Context) ([]domain.Template, error) {
		templates, err := t.s.api.Templates.List(ctx, aID)
		if err != nil {
			return nil, err
		}
		t.s.mu.Lock()
		t.s.templates.set(aID, templates)
		t.s.mu.Unlock()
		return templates, nil
	})
	if err != nil {
		return nil, err
	}
	return t.Collection(aID), nil
}

// Create stores a new template and links it into its categories.
// templateImport marks a template copied from another assignment.
func (t *Templates) Create(ctx context.Context, aID int, tmpl domain.Template, templateImport bool) (domain.Template, error) {
	created, err := t.s.api.Templates.Create(ctx, aID, tmpl, templateImport)
	if err != nil {
		return domain.Template{}, err
	}

	t.s.mu.Lock()
	if !t.s.templates.add(aID, created) {
		t.s.skipped(domain.KindTemplate, aID)
	}
	t.s.propagateTemplateLocked(aID, created, tmpl.ID)
	t.s.mu.Unlock()

	t.s.Timeline.SyncNodes()
	return created.Clone(), nil
}

// Update saves the template stored under oldID and refreshes the category
// references and the deadline snapshots that point at it.
func (t *Templates) Update(ctx context.Context, aID, oldID int, tmpl domain.Template) (domain.Template, error) {
	updated, err := t.s.api.Templates.Update(ctx, aID, oldID, tmpl)
	if err != nil {
		return domain.Template{}, err
	}

	t.s.mu.Lock()
	if !t.s.templates.replace(aID, oldID, updated) {
		t.s.skipped(domain.KindTemplate, aID)
	}
	t.s.propagateTemplateLocked(aID, updated, oldID)
	t.s.mu.Unlock()

	t.s.Timeline.SyncNodes()
	return updated.Clone(), nil
}

func (t *Templates) Delete(ctx context.Context, aID, id int, force bool) (string, error) {
	return t.deleteCache.Get(ctx, id, force, func(ctx context.Context) (string, error) {
		desc, err := t.s.api.Templates.Delete(ctx, id)
		if err != nil {
			return "", err
		}

		t.s.mu.Lock()
		if !t.s.templates.remove(aID, id) {
			t.s.skipped(domain.KindTemplate, aID)
		}
		t.s.propagateTemplateDeleteLocked(aID, id)
		t.s.mu.Unlock()

		t.s.Timeline.SyncNodes()
		return desc, nil
	})
}

func (t *Templates) Collection(aID int) []domain.Template {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return t.s.templates.snapshot(aID)
}

func (t *Templates) Find(aID, id int) (domain.Template, bool) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return t.s.templates.find(aID, id)
}
