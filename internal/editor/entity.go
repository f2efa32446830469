package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/ejournal/internal/domain"
	"github.com/alexanderramin/ejournal/internal/draft"
)

// ErrNoDraft is returned when an action needs a draft that does not exist.
var ErrNoDraft = errors.New("no draft")

// ErrUnknownEntity is returned when an id is not in the loaded collection.
var ErrUnknownEntity = errors.New("unknown entity")

type entity[T any] interface {
	draft.Entity[T]
	DisplayName() string
	SortName() string
}

// backend connects an EntityEditor to the store collection of its kind.
type backend[T any] struct {
	find   func(aID, id int) (T, bool)
	create func(ctx context.Context, aID int, v T, imported bool) (T, error)
	update func(ctx context.Context, aID, oldID int, v T) (T, error)
	remove func(ctx context.Context, aID, id int) (string, error)
	seed   func() T
}

// EntityEditor tracks the drafts of one entity kind and moves the shared
// selection between them. All methods lock the owning Editor.
type EntityEditor[T entity[T]] struct {
	e         *Editor
	kind      domain.EntityKind
	component Component
	backend   backend[T]
	drafts    *draft.Set[T]
	imported  bool

	// Set by the Editor; called with e.mu held.
	afterCommit func(updated T, oldID int)
	afterDelete func(id int)
}

func newEntityEditor[T entity[T]](e *Editor, kind domain.EntityKind, c Component, b backend[T]) *EntityEditor[T] {
	return &EntityEditor[T]{
		e:           e,
		kind:        kind,
		component:   c,
		backend:     b,
		drafts:      draft.NewSet[T](),
		afterCommit: func(T, int) {},
		afterDelete: func(int) {},
	}
}

func (x *EntityEditor[T]) Kind() domain.EntityKind { return x.kind }

// Select focuses the entity with id, creating its draft from the
// authoritative copy on first selection. An edited draft opens in edit mode.
// domain.NewID selects the new draft.
func (x *EntityEditor[T]) Select(id int) (draft.Draft[T], error) {
	x.e.mu.Lock()
	defer x.e.mu.Unlock()
	return x.selectLocked(id)
}

func (x *EntityEditor[T]) selectLocked(id int) (draft.Draft[T], error) {
	if id == domain.NewID {
		d, ok := x.drafts.New()
		if !ok {
			return draft.Draft[T]{}, fmt.Errorf("new %s: %w", x.kind.Label(), ErrNoDraft)
		}
		x.drafts.RefreshNew()
		x.e.selection = Selection{Component: x.component, Mode: ModeEdit, ID: id}
		return copyDraft(d), nil
	}

	original, ok := x.backend.find(x.e.aID, id)
	if !ok {
		return draft.Draft[T]{}, fmt.Errorf("%s %d: %w", x.kind.Label(), id, ErrUnknownEntity)
	}
	d := x.drafts.Ensure(original)
	mode := ModeRead
	if d.Edited {
		mode = ModeEdit
	}
	x.e.selection = Selection{Component: x.component, Mode: mode, ID: id}
	return copyDraft(d), nil
}

// CreateNew starts the new draft from the kind's defaults, or re-selects the
// existing one.
func (x *EntityEditor[T]) CreateNew() draft.Draft[T] {
	return x.CreateNewFrom(x.backend.seed())
}

// CreateNewFrom starts the new draft from seed, or re-selects the existing
// one.
func (x *EntityEditor[T]) CreateNewFrom(seed T) draft.Draft[T] {
	x.e.mu.Lock()
	defer x.e.mu.Unlock()

	d, created := x.drafts.StartNew(seed)
	if created {
		x.imported = false
	}
	x.drafts.RefreshNew()
	x.e.selection = Selection{Component: x.component, Mode: ModeEdit, ID: domain.NewID}
	return copyDraft(d)
}

// CreateImported replaces any new draft with a copy of an entity taken from
// another assignment. The draft counts as edited against the defaults, and
// saving it marks the create as an import.
func (x *EntityEditor[T]) CreateImported(seed T) draft.Draft[T] {
	x.e.mu.Lock()
	defer x.e.mu.Unlock()

	x.drafts.ClearNew()
	d, _ := x.drafts.StartNew(x.backend.seed())
	d.Value = seed.Clone()
	x.drafts.RefreshNew()
	x.imported = true
	x.e.selection = Selection{Component: x.component, Mode: ModeEdit, ID: domain.NewID}
	return copyDraft(d)
}

// Edit applies fn to the draft of id, creating the draft first if needed.
func (x *EntityEditor[T]) Edit(id int, fn func(*T)) (draft.Draft[T], error) {
	x.e.mu.Lock()
	defer x.e.mu.Unlock()

	var d *draft.Draft[T]
	if id == domain.NewID {
		fresh, ok := x.drafts.New()
		if !ok {
			return draft.Draft[T]{}, fmt.Errorf("new %s: %w", x.kind.Label(), ErrNoDraft)
		}
		fn(&fresh.Value)
		x.drafts.RefreshNew()
		d = fresh
	} else {
		original, ok := x.backend.find(x.e.aID, id)
		if !ok {
			return draft.Draft[T]{}, fmt.Errorf("%s %d: %w", x.kind.Label(), id, ErrUnknownEntity)
		}
		d = x.drafts.Ensure(original)
		fn(&d.Value)
		x.drafts.Refresh(original)
	}

	if x.e.selection.Is(x.component, id) {
		x.e.selection.Mode = ModeEdit
	}
	return copyDraft(d), nil
}

// SetMode switches the mode of the selection when it focuses id.
func (x *EntityEditor[T]) SetMode(id int, m Mode) {
	x.e.mu.Lock()
	defer x.e.mu.Unlock()
	if x.e.selection.Is(x.component, id) {
		x.e.selection.Mode = m
	}
}

// Draft returns a copy of the draft for id.
func (x *EntityEditor[T]) Draft(id int) (draft.Draft[T], bool) {
	x.e.mu.Lock()
	defer x.e.mu.Unlock()
	d, ok := x.lookupLocked(id)
	if !ok {
		return draft.Draft[T]{}, false
	}
	return copyDraft(d), true
}

// IsDirty reports whether the draft for id differs from the authoritative
// copy, or from the defaults for the new draft.
func (x *EntityEditor[T]) IsDirty(id int) bool {
	x.e.mu.Lock()
	defer x.e.mu.Unlock()
	d, ok := x.lookupLocked(id)
	return ok && d.Edited
}

func (x *EntityEditor[T]) lookupLocked(id int) (*draft.Draft[T], bool) {
	if id == domain.NewID {
		return x.drafts.New()
	}
	return x.drafts.Get(id)
}

// CommitCreated replaces the new draft with the created entity, selected in
// read mode.
func (x *EntityEditor[T]) CommitCreated(created T) {
	x.e.mu.Lock()
	defer x.e.mu.Unlock()
	x.commitCreatedLocked(created)
}

func (x *EntityEditor[T]) commitCreatedLocked(created T) {
	x.drafts.ClearNew()
	x.imported = false
	x.afterCommit(created, domain.NewID)
	x.drafts.Remove(created.GetID())
	x.drafts.Ensure(created)
	x.e.selection = Selection{Component: x.component, Mode: ModeRead, ID: created.GetID()}
}

// CommitUpdated drops the draft kept under oldID and re-selects the updated
// entity when it was focused.
func (x *EntityEditor[T]) CommitUpdated(updated T, oldID int) {
	x.e.mu.Lock()
	defer x.e.mu.Unlock()
	x.commitUpdatedLocked(updated, oldID)
}

func (x *EntityEditor[T]) commitUpdatedLocked(updated T, oldID int) {
	focused := x.e.selection.Is(x.component, oldID)
	x.drafts.Remove(oldID)
	x.afterCommit(updated, oldID)
	if focused {
		x.drafts.Ensure(updated)
		x.e.selection = Selection{Component: x.component, Mode: ModeRead, ID: updated.GetID()}
	}
}

// Discard drops the draft for id without saving. The editor returns to the
// timeline when the draft was focused.
func (x *EntityEditor[T]) Discard(id int) {
	x.e.mu.Lock()
	defer x.e.mu.Unlock()
	x.discardLocked(id)
}

func (x *EntityEditor[T]) discardLocked(id int) {
	if id == domain.NewID {
		x.drafts.ClearNew()
		x.imported = false
	} else {
		x.drafts.Remove(id)
	}
	if x.e.selection.Is(x.component, id) {
		x.e.clearSelectionLocked()
	}
}

// OnDeleted forgets the entity: its draft, references to it in other
// drafts and the selection when it was focused.
func (x *EntityEditor[T]) OnDeleted(id int) {
	x.e.mu.Lock()
	defer x.e.mu.Unlock()
	x.drafts.Remove(id)
	x.afterDelete(id)
	if x.e.selection.Is(x.component, id) {
		x.e.clearSelectionLocked()
	}
}

// Save sends the draft for id to the server. A failed save keeps the draft.
func (x *EntityEditor[T]) Save(ctx context.Context, id int) (T, error) {
	var zero T

	x.e.mu.Lock()
	d, ok := x.lookupLocked(id)
	if !ok {
		x.e.mu.Unlock()
		return zero, fmt.Errorf("saving %s %d: %w", x.kind.Label(), id, ErrNoDraft)
	}
	value := d.Value.Clone()
	aID := x.e.aID
	imported := x.imported
	x.e.mu.Unlock()

	if id == domain.NewID {
		created, err := x.backend.create(ctx, aID, value, imported)
		if err != nil {
			return zero, err
		}
		x.CommitCreated(created)
		return created, nil
	}

	updated, err := x.backend.update(ctx, aID, id, value)
	if err != nil {
		return zero, err
	}
	x.CommitUpdated(updated, id)
	return updated, nil
}

// CancelEdit drops the edits on id. A focused existing entity stays
// selected in read mode with a fresh draft; a new draft is discarded.
func (x *EntityEditor[T]) CancelEdit(id int) {
	x.e.mu.Lock()
	defer x.e.mu.Unlock()

	if id == domain.NewID {
		x.discardLocked(id)
		return
	}

	x.drafts.Remove(id)
	if !x.e.selection.Is(x.component, id) {
		return
	}
	if original, ok := x.backend.find(x.e.aID, id); ok {
		x.drafts.Ensure(original)
		x.e.selection.Mode = ModeRead
		return
	}
	x.e.clearSelectionLocked()
}

// Delete removes the entity on the server and then from the editor. The new
// draft is only discarded.
func (x *EntityEditor[T]) Delete(ctx context.Context, id int) (string, error) {
	if id == domain.NewID {
		x.Discard(id)
		return "", nil
	}

	x.e.mu.Lock()
	aID := x.e.aID
	x.e.mu.Unlock()

	desc, err := x.backend.remove(ctx, aID, id)
	if err != nil {
		return "", err
	}
	x.OnDeleted(id)
	return desc, nil
}

// syncDraftsLocked brings open drafts in line with the store after another
// kind changed. Clean drafts are re-cloned from the store; edited drafts and
// the new draft are rewritten with fn, which gets the draft and the stored
// copy it was last compared with, so unsaved choices survive.
func (x *EntityEditor[T]) syncDraftsLocked(fn func(value, base T) T) {
	x.drafts.Each(func(id int, d *draft.Draft[T]) {
		if id != domain.NewID && !d.Edited {
			if original, ok := x.backend.find(x.e.aID, id); ok {
				d.Value = original.Clone()
				return
			}
		}
		d.Value = fn(d.Value, d.Base())
	})
	x.refreshLocked()
}

func (x *EntityEditor[T]) refreshLocked() {
	for _, id := range x.drafts.IDs() {
		if original, ok := x.backend.find(x.e.aID, id); ok {
			x.drafts.Refresh(original)
		}
	}
	x.drafts.RefreshNew()
}

// pendingLocked returns one line per edited draft: existing drafts by name,
// the new draft last.
func (x *EntityEditor[T]) pendingLocked() []string {
	var items []pendingLine
	for _, id := range x.drafts.IDs() {
		d, _ := x.drafts.Get(id)
		if original, ok := x.backend.find(x.e.aID, id); ok {
			x.drafts.Refresh(original)
		}
		if !d.Edited {
			continue
		}
		items = append(items, pendingLine{
			sortKey: d.Value.SortName(),
			text:    fmt.Sprintf("%s %q has unsaved changes", x.kind.Label(), d.Value.DisplayName()),
		})
	}

	lines := sortedLines(items)
	x.drafts.RefreshNew()
	if d, ok := x.drafts.New(); ok && d.Edited {
		lines = append(lines, fmt.Sprintf("new %s %q has unsaved changes", x.kind.Label(), d.Value.DisplayName()))
	}
	return lines
}

func (x *EntityEditor[T]) dirtyIDsLocked() []int {
	var ids []int
	for _, id := range x.drafts.IDs() {
		if d, _ := x.drafts.Get(id); d.Edited {
			ids = append(ids, id)
		}
	}
	if d, ok := x.drafts.New(); ok && d.Edited {
		ids = append(ids, domain.NewID)
	}
	return ids
}

func (x *EntityEditor[T]) resetLocked() {
	x.drafts.Clear()
	x.imported = false
}

func copyDraft[T draft.Entity[T]](d *draft.Draft[T]) draft.Draft[T] {
	return draft.Draft[T]{Value: d.Value.Clone(), Edited: d.Edited}
}
