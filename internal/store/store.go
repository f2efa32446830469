// Package store keeps the last known server copy of every assignment's
// categories, templates, preset nodes and rubrics, and keeps the references
// between them consistent after each mutation.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alexanderramin/ejournal/internal/api"
	"github.com/alexanderramin/ejournal/internal/domain"
	"github.com/alexanderramin/ejournal/internal/propagate"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNotLoaded is returned by lookups for an assignment whose data has not
// been fetched yet.
var ErrNotLoaded = errors.New("assignment not loaded")

// Store is the client-side cache for assignment content. All collection
// writes happen inside its methods under one lock; network calls run outside
// the lock.
type Store struct {
	api *api.Client
	log *zap.Logger

	mu          sync.Mutex
	assignments map[int]domain.Assignment
	categories  *collection[domain.Category]
	templates   *collection[domain.Template]
	presetNodes *collection[domain.PresetNode]
	rubrics     *collection[domain.Rubric]

	Assignments *Assignments
	Categories  *Categories
	Templates   *Templates
	PresetNodes *PresetNodes
	Rubrics     *Rubrics
	Timeline    *Timeline
}

type Option func(*Store)

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

func New(client *api.Client, opts ...Option) *Store {
	s := &Store{
		api:         client,
		log:         zap.NewNop(),
		assignments: make(map[int]domain.Assignment),
		categories:  newCollection(byName[domain.Category]),
		templates:   newCollection(byName[domain.Template]),
		presetNodes: newCollection(byDueDate),
		rubrics:     newCollection(byName[domain.Rubric]),
		Timeline:    &Timeline{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Assignments = newAssignments(s)
	s.Categories = newCategories(s)
	s.Templates = newTemplates(s)
	s.PresetNodes = newPresetNodes(s)
	s.Rubrics = newRubrics(s)
	return s
}

// LoadAssignment fetches the assignment and all of its collections
// concurrently. The first failure cancels the remaining fetches.
func (s *Store) LoadAssignment(ctx context.Context, aID int, courseID *int, force bool) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.Assignments.Retrieve(gctx, aID, courseID, force)
		return err
	})
	g.Go(func() error {
		_, err := s.Categories.List(gctx, aID, force)
		return err
	})
	g.Go(func() error {
		_, err := s.Templates.List(gctx, aID, force)
		return err
	})
	g.Go(func() error {
		_, err := s.PresetNodes.List(gctx, aID, force)
		return err
	})
	g.Go(func() error {
		_, err := s.Rubrics.List(gctx, aID, force)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("loading assignment %d: %w", aID, err)
	}
	return nil
}

// Loaded reports whether categories and templates of the assignment are in
// memory.
func (s *Store) Loaded(aID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categories.loaded(aID) && s.templates.loaded(aID)
}

// RequireLoaded returns ErrNotLoaded when the assignment's collections have
// not been fetched.
func (s *Store) RequireLoaded(aID int) error {
	if !s.Loaded(aID) {
		return fmt.Errorf("assignment %d: %w", aID, ErrNotLoaded)
	}
	return nil
}

func (s *Store) skipped(kind domain.EntityKind, aID int) {
	s.log.Debug("propagation skipped, collection not loaded",
		zap.String("kind", string(kind)),
		zap.Int("assignment_id", aID),
	)
}

// The propagate* helpers must be called with s.mu held.

func (s *Store) propagateCategoryLocked(aID int, updated domain.Category, oldID int) {
	ok := s.templates.apply(aID, func(ts []domain.Template) []domain.Template {
		return propagate.CategoryIntoTemplates(ts, updated, oldID)
	})
	if !ok {
		s.skipped(domain.KindTemplate, aID)
	}
}

func (s *Store) propagateCategoryDeleteLocked(aID, id int) {
	ok := s.templates.apply(aID, func(ts []domain.Template) []domain.Template {
		return propagate.CategoryDelete(ts, id)
	})
	if !ok {
		s.skipped(domain.KindTemplate, aID)
	}
}

func (s *Store) propagateTemplateLocked(aID int, updated domain.Template, oldID int) {
	ok := s.categories.apply(aID, func(cs []domain.Category) []domain.Category {
		return propagate.TemplateIntoCategories(cs, updated, oldID)
	})
	if !ok {
		s.skipped(domain.KindCategory, aID)
	}

	snapshot := updated.Clone()
	ok = s.presetNodes.apply(aID, func(ns []domain.PresetNode) []domain.PresetNode {
		return propagate.TemplateIntoPresetNodes(ns, &snapshot, oldID)
	})
	if !ok {
		s.skipped(domain.KindPresetNode, aID)
	}
}

func (s *Store) propagateTemplateDeleteLocked(aID, id int) {
	ok := s.categories.apply(aID, func(cs []domain.Category) []domain.Category {
		return propagate.TemplateDelete(cs, id)
	})
	if !ok {
		s.skipped(domain.KindCategory, aID)
	}
}

// Content is the persisted subset of the store.
type Content struct {
	Assignments map[int]domain.Assignment   `json:"assignments"`
	Categories  map[int][]domain.Category   `json:"categories"`
	Templates   map[int][]domain.Template   `json:"templates"`
	PresetNodes map[int][]domain.PresetNode `json:"preset_nodes"`
	Rubrics     map[int][]domain.Rubric     `json:"rubrics"`
}

// Snapshot copies the loaded content. In-flight and delete caches are not
// part of it.
func (s *Store) Snapshot() Content {
	s.mu.Lock()
	defer s.mu.Unlock()

	assignments := make(map[int]domain.Assignment, len(s.assignments))
	for id, a := range s.assignments {
		assignments[id] = a.Clone()
	}
	return Content{
		Assignments: assignments,
		Categories:  s.categories.all(),
		Templates:   s.templates.all(),
		PresetNodes: s.presetNodes.all(),
		Rubrics:     s.rubrics.all(),
	}
}

// Restore replaces the loaded content. Caches stay empty, so the next
// non-forced list call still reaches the server.
func (s *Store) Restore(c Content) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.assignments = make(map[int]domain.Assignment, len(c.Assignments))
	for id, a := range c.Assignments {
		s.assignments[id] = a.Clone()
	}
	s.categories.clear()
	for aID, items := range c.Categories {
		s.categories.set(aID, items)
	}
	s.templates.clear()
	for aID, items := range c.Templates {
		s.templates.set(aID, items)
	}
	s.presetNodes.clear()
	for aID, items := range c.PresetNodes {
		s.presetNodes.set(aID, items)
	}
	s.rubrics.clear()
	for aID, items := range c.Rubrics {
		s.rubrics.set(aID, items)
	}
}
