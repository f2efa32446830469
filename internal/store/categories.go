package store

import (
	"context"

	"github.com/alexanderramin/ejournal/internal/api"
	"github.com/alexanderramin/ejournal/internal/cache"
	"github.com/alexanderramin/ejournal/internal/domain"
)

type Categories struct {
	s           *Store
	listCache   *cache.Store[int, []domain.Category]
	deleteCache *cache.Store[int, string]
}

func newCategories(s *Store) *Categories {
	return &Categories{
		s:           s,
		listCache:   cache.New[int, []domain.Category]("category.list"),
		deleteCache: cache.New[int, string]("category.delete"),
	}
}

// List returns the assignment's categories, fetching them once unless forced.
func (c *Categories) List(ctx context.Context, aID int, force bool) ([]domain.Category, error) {
	_, err := c.listCache.Get(ctx, aID, force, func(ctx context.Context) ([]domain.Category, error) {
		categories, err := c.s.api.Categories.List(ctx, aID)
		if err != nil {
			return nil, err
		}
		c.s.mu.Lock()
		c.s.categories.set(aID, categories)
		c.s.mu.Unlock()
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return c.Collection(aID), nil
}

// Get fetches one category without touching the collection.
func (c *Categories) Get(ctx context.Context, id int) (domain.Category, error) {
	return c.s.api.Categories.Get(ctx, id)
}

// Create stores a new category and links it into the templates it lists.
// category.ID is the draft id the templates may still reference.
func (c *Categories) Create(ctx context.Context, aID int, category domain.Category) (domain.Category, error) {
	created, err := c.s.api.Categories.Create(ctx, aID, category)
	if err != nil {
		return domain.Category{}, err
	}

	c.s.mu.Lock()
	if !c.s.categories.add(aID, created) {
		c.s.skipped(domain.KindCategory, aID)
	}
	c.s.propagateCategoryLocked(aID, created, category.ID)
	c.s.mu.Unlock()

	c.s.Timeline.SyncNodes()
	return created.Clone(), nil
}

// Update saves the category stored under oldID.
func (c *Categories) Update(ctx context.Context, aID, oldID int, category domain.Category) (domain.Category, error) {
	updated, err := c.s.api.Categories.Update(ctx, aID, oldID, category)
	if err != nil {
		return domain.Category{}, err
	}

	c.s.mu.Lock()
	if !c.s.categories.replace(aID, oldID, updated) {
		c.s.skipped(domain.KindCategory, aID)
	}
	c.s.propagateCategoryLocked(aID, updated, oldID)
	c.s.mu.Unlock()

	c.s.Timeline.SyncNodes()
	return updated.Clone(), nil
}

// Delete removes the category, its template references and its timeline
// filter entry. Unforced repeats return the cached server description.
func (c *Categories) Delete(ctx context.Context, aID, id int, force bool) (string, error) {
	return c.deleteCache.Get(ctx, id, force, func(ctx context.Context) (string, error) {
		desc, err := c.s.api.Categories.Delete(ctx, id)
		if err != nil {
			return "", err
		}

		c.s.Timeline.RemoveCategoryFromFilter(id)
		c.s.mu.Lock()
		if !c.s.categories.remove(aID, id) {
			c.s.skipped(domain.KindCategory, aID)
		}
		c.s.propagateCategoryDeleteLocked(aID, id)
		c.s.mu.Unlock()

		c.s.Timeline.SyncNodes()
		return desc, nil
	})
}

func (c *Categories) EditEntry(ctx context.Context, id int, req api.EditEntryRequest) error {
	return c.s.api.Categories.EditEntry(ctx, id, req)
}

// Collection returns a copy of the assignment's categories, empty when not
// loaded.
func (c *Categories) Collection(aID int) []domain.Category {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	return c.s.categories.snapshot(aID)
}

func (c *Categories) Find(aID, id int) (domain.Category, bool) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	return c.s.categories.find(aID, id)
}

// HasCategories reports whether the assignment has at least one saved
// category.
func (c *Categories) HasCategories(aID int) bool {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	for _, category := range c.s.categories.items[aID] {
		if category.ID >= 0 {
			return true
		}
	}
	return false
}
