// Package editor implements the assignment editor state: which entity has
// focus and in which mode, the drafts of every entity kind, and the check for
// unsaved changes before leaving the editor.
package editor

import (
	"context"
	"sync"

	"github.com/alexanderramin/ejournal/internal/domain"
	"github.com/alexanderramin/ejournal/internal/propagate"
	"github.com/alexanderramin/ejournal/internal/store"
	"go.uber.org/zap"
)

// Editor owns the selection and the drafts for one assignment at a time.
type Editor struct {
	store     *store.Store
	log       *zap.Logger
	confirmer Confirmer

	mu        sync.Mutex
	aID       int
	selection Selection

	Details     *DetailsEditor
	Categories  *EntityEditor[domain.Category]
	Templates   *EntityEditor[domain.Template]
	PresetNodes *EntityEditor[domain.PresetNode]
}

type Option func(*Editor)

func WithLogger(l *zap.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

func WithConfirmer(c Confirmer) Option {
	return func(e *Editor) {
		if c != nil {
			e.confirmer = c
		}
	}
}

func New(s *store.Store, opts ...Option) *Editor {
	e := &Editor{
		store:     s,
		log:       zap.NewNop(),
		confirmer: AlwaysConfirm{},
		selection: timelineSelection(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.Details = &DetailsEditor{e: e}
	e.Categories = newEntityEditor(e, domain.KindCategory, ComponentCategory, backend[domain.Category]{
		find: s.Categories.Find,
		create: func(ctx context.Context, aID int, c domain.Category, _ bool) (domain.Category, error) {
			return s.Categories.Create(ctx, aID, c)
		},
		update: s.Categories.Update,
		remove: func(ctx context.Context, aID, id int) (string, error) {
			return s.Categories.Delete(ctx, aID, id, true)
		},
		seed: NewCategorySeed,
	})
	e.Templates = newEntityEditor(e, domain.KindTemplate, ComponentTemplate, backend[domain.Template]{
		find:   s.Templates.Find,
		create: s.Templates.Create,
		update: s.Templates.Update,
		remove: func(ctx context.Context, aID, id int) (string, error) {
			return s.Templates.Delete(ctx, aID, id, true)
		},
		seed: NewTemplateSeed,
	})
	e.PresetNodes = newEntityEditor(e, domain.KindPresetNode, ComponentPresetNode, backend[domain.PresetNode]{
		find: s.PresetNodes.Find,
		create: func(ctx context.Context, aID int, n domain.PresetNode, _ bool) (domain.PresetNode, error) {
			return s.PresetNodes.Create(ctx, aID, n)
		},
		update: s.PresetNodes.Update,
		remove: func(ctx context.Context, aID, id int) (string, error) {
			return s.PresetNodes.Delete(ctx, aID, id, true)
		},
		seed: NewPresetNodeSeed,
	})
	e.wirePropagation()
	return e
}

func (e *Editor) wirePropagation() {
	e.Categories.afterCommit = func(updated domain.Category, oldID int) {
		e.Templates.syncDraftsLocked(func(t, base domain.Template) domain.Template {
			return propagate.CategoryIntoTemplateDraft(t, base, updated, oldID)
		})
	}
	e.Categories.afterDelete = func(id int) {
		e.Templates.syncDraftsLocked(func(t, _ domain.Template) domain.Template {
			return propagate.CategoryDelete([]domain.Template{t}, id)[0]
		})
	}
	e.Templates.afterCommit = func(updated domain.Template, oldID int) {
		e.Categories.syncDraftsLocked(func(c, base domain.Category) domain.Category {
			return propagate.TemplateIntoCategoryDraft(c, base, updated, oldID)
		})
		snapshot := updated.Clone()
		e.PresetNodes.syncDraftsLocked(func(n, _ domain.PresetNode) domain.PresetNode {
			return propagate.TemplateIntoPresetNodes([]domain.PresetNode{n}, &snapshot, oldID)[0]
		})
	}
	e.Templates.afterDelete = func(id int) {
		e.Categories.syncDraftsLocked(func(c, _ domain.Category) domain.Category {
			return propagate.TemplateDelete([]domain.Category{c}, id)[0]
		})
	}
}

// SetAssignment switches the editor to aID. Drafts of the previous
// assignment are dropped; callers confirm that first with ConfirmDiscardAll.
func (e *Editor) SetAssignment(aID int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.aID == aID {
		return
	}
	e.log.Debug("editor assignment switched", zap.Int("from", e.aID), zap.Int("to", aID))
	e.aID = aID
	e.resetLocked()
}

func (e *Editor) AssignmentID() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.aID
}

func (e *Editor) Selection() Selection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selection
}

func (e *Editor) ActiveComponent() Component {
	return e.Selection().Component
}

func (e *Editor) ActiveMode() Mode {
	return e.Selection().Mode
}

// SelectTimeline returns focus to the timeline in read mode. Drafts stay.
func (e *Editor) SelectTimeline() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clearSelectionLocked()
}

// SelectTemplateImport focuses the panel for importing templates from other
// assignments.
func (e *Editor) SelectTemplateImport() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selection = Selection{Component: ComponentTemplateImport, Mode: ModeRead}
}

func (e *Editor) clearSelectionLocked() {
	e.selection = timelineSelection()
}

func (e *Editor) resetLocked() {
	e.Details.resetLocked()
	e.Categories.resetLocked()
	e.Templates.resetLocked()
	e.PresetNodes.resetLocked()
	e.clearSelectionLocked()
}

// NewCategorySeed returns the defaults of a new category.
func NewCategorySeed() domain.Category {
	return domain.Category{
		ID:        domain.NewID,
		Color:     "#ff0000",
		Templates: []domain.TemplateSummary{},
	}
}

// NewTemplateSeed returns the defaults of a new template: one required rich
// text field.
func NewTemplateSeed() domain.Template {
	return domain.Template{
		ID: domain.NewID,
		FieldSet: []domain.Field{
			{ID: domain.NewID, Type: domain.FieldRichText, Title: "Content", Location: 0, Required: true},
		},
		Categories: []domain.CategorySummary{},
	}
}

// NewPresetNodeSeed returns the defaults of a new preset node, a deadline.
func NewPresetNodeSeed() domain.PresetNode {
	return domain.PresetNode{
		ID:   domain.NewID,
		Type: domain.PresetDeadline,
	}
}
