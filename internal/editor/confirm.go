package editor

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/alexanderramin/ejournal/internal/domain"
)

// Confirmer asks the user a blocking yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, title string, lines []string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, title string, lines []string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, title string, lines []string) (bool, error) {
	return f(ctx, title, lines)
}

// AlwaysConfirm accepts every question without asking.
type AlwaysConfirm struct{}

func (AlwaysConfirm) Confirm(context.Context, string, []string) (bool, error) { return true, nil }

const discardTitle = "Discard unsaved changes?"

type pendingLine struct {
	sortKey string
	text    string
}

func sortedLines(items []pendingLine) []string {
	slices.SortStableFunc(items, func(a, b pendingLine) int {
		return strings.Compare(strings.ToLower(a.sortKey), strings.ToLower(b.sortKey))
	})
	lines := make([]string, 0, len(items)+1)
	for _, it := range items {
		lines = append(lines, it.text)
	}
	return lines
}

// PendingChanges lists every draft that differs from the stored entity:
// assignment details first, then categories, templates and preset nodes.
func (e *Editor) PendingChanges() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pendingLocked()
}

func (e *Editor) pendingLocked() []string {
	var lines []string
	lines = append(lines, e.Details.pendingLocked()...)
	lines = append(lines, e.Categories.pendingLocked()...)
	lines = append(lines, e.Templates.pendingLocked()...)
	lines = append(lines, e.PresetNodes.pendingLocked()...)
	return lines
}

// ConfirmDiscardAll returns true at once when nothing is dirty. Otherwise it
// blocks on the confirmer with one line per dirty draft; on confirmation all
// drafts are discarded and the timeline gets focus.
func (e *Editor) ConfirmDiscardAll(ctx context.Context) (bool, error) {
	lines := e.PendingChanges()
	if len(lines) == 0 {
		return true, nil
	}

	ok, err := e.confirmer.Confirm(ctx, discardTitle, lines)
	if err != nil || !ok {
		return false, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
	return true, nil
}

// SaveAll saves every dirty draft and returns the joined failures. Drafts
// that fail to save stay open.
func (e *Editor) SaveAll(ctx context.Context) error {
	e.mu.Lock()
	detailsDirty := e.Details.d != nil && len(e.Details.pendingLocked()) > 0
	e.Categories.refreshLocked()
	e.Templates.refreshLocked()
	e.PresetNodes.refreshLocked()
	categories := e.Categories.dirtyIDsLocked()
	templates := e.Templates.dirtyIDsLocked()
	nodes := e.PresetNodes.dirtyIDsLocked()
	e.mu.Unlock()

	var errs []error
	if detailsDirty {
		if _, err := e.Details.Save(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	// Templates go first so categories linking a new template see its id.
	for _, id := range templates {
		if _, err := e.Templates.Save(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	for _, id := range categories {
		if _, err := e.Categories.Save(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	for _, id := range nodes {
		if _, err := e.PresetNodes.Save(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Dirty reports whether any draft has unsaved changes.
func (e *Editor) Dirty() bool {
	return len(e.PendingChanges()) > 0
}

// DirtyKinds lists the kinds with unsaved drafts.
func (e *Editor) DirtyKinds() []domain.EntityKind {
	e.mu.Lock()
	defer e.mu.Unlock()
	var kinds []domain.EntityKind
	if len(e.Details.pendingLocked()) > 0 {
		kinds = append(kinds, domain.KindAssignment)
	}
	if len(e.Categories.pendingLocked()) > 0 {
		kinds = append(kinds, domain.KindCategory)
	}
	if len(e.Templates.pendingLocked()) > 0 {
		kinds = append(kinds, domain.KindTemplate)
	}
	if len(e.PresetNodes.pendingLocked()) > 0 {
		kinds = append(kinds, domain.KindPresetNode)
	}
	return kinds
}
