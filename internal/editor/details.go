package editor

import (
	"context"
	"fmt"

	"github.com/alexanderramin/ejournal/internal/domain"
	"github.com/alexanderramin/ejournal/internal/draft"
)

// DetailsEditor drafts the settings of the current assignment.
type DetailsEditor struct {
	e        *Editor
	d        *draft.Draft[domain.Assignment]
	courseID *int
}

// SetCourse scopes saves to the course the assignment is opened from.
func (x *DetailsEditor) SetCourse(courseID *int) {
	x.e.mu.Lock()
	defer x.e.mu.Unlock()
	x.courseID = courseID
}

// Select focuses the assignment details, drafting the loaded assignment.
func (x *DetailsEditor) Select() (draft.Draft[domain.Assignment], error) {
	x.e.mu.Lock()
	defer x.e.mu.Unlock()

	d, err := x.ensureLocked()
	if err != nil {
		return draft.Draft[domain.Assignment]{}, err
	}
	mode := ModeRead
	if d.Edited {
		mode = ModeEdit
	}
	x.e.selection = Selection{Component: ComponentAssignmentDetails, Mode: mode, ID: x.e.aID}
	return copyDraft(d), nil
}

func (x *DetailsEditor) ensureLocked() (*draft.Draft[domain.Assignment], error) {
	original, err := x.e.store.Assignments.Get(x.e.aID)
	if err != nil {
		return nil, err
	}
	if x.d == nil {
		x.d = &draft.Draft[domain.Assignment]{Value: original.Clone()}
	}
	x.d.Edited = !domain.Equal(x.d.Value, original)
	return x.d, nil
}

func (x *DetailsEditor) Edit(fn func(*domain.Assignment)) (draft.Draft[domain.Assignment], error) {
	x.e.mu.Lock()
	defer x.e.mu.Unlock()

	d, err := x.ensureLocked()
	if err != nil {
		return draft.Draft[domain.Assignment]{}, err
	}
	fn(&d.Value)
	if _, err := x.ensureLocked(); err != nil {
		return draft.Draft[domain.Assignment]{}, err
	}
	if x.e.selection.Component == ComponentAssignmentDetails {
		x.e.selection.Mode = ModeEdit
	}
	return copyDraft(d), nil
}

func (x *DetailsEditor) Draft() (draft.Draft[domain.Assignment], bool) {
	x.e.mu.Lock()
	defer x.e.mu.Unlock()
	if x.d == nil {
		return draft.Draft[domain.Assignment]{}, false
	}
	return copyDraft(x.d), true
}

func (x *DetailsEditor) IsDirty() bool {
	x.e.mu.Lock()
	defer x.e.mu.Unlock()
	if x.d == nil {
		return false
	}
	if _, err := x.ensureLocked(); err != nil {
		return false
	}
	return x.d.Edited
}

// Save sends the draft to the server. A failed save keeps the draft.
func (x *DetailsEditor) Save(ctx context.Context) (domain.Assignment, error) {
	x.e.mu.Lock()
	if x.d == nil {
		x.e.mu.Unlock()
		return domain.Assignment{}, fmt.Errorf("saving assignment details: %w", ErrNoDraft)
	}
	value := x.d.Value.Clone()
	courseID := x.courseID
	x.e.mu.Unlock()

	updated, err := x.e.store.Assignments.Update(ctx, value, courseID)
	if err != nil {
		return domain.Assignment{}, err
	}

	x.e.mu.Lock()
	defer x.e.mu.Unlock()
	x.d = &draft.Draft[domain.Assignment]{Value: updated.Clone()}
	if x.e.selection.Component == ComponentAssignmentDetails {
		x.e.selection.Mode = ModeRead
	}
	return updated, nil
}

// CancelEdit drops the edits and shows the stored assignment in read mode.
func (x *DetailsEditor) CancelEdit() {
	x.e.mu.Lock()
	defer x.e.mu.Unlock()
	x.d = nil
	if x.e.selection.Component == ComponentAssignmentDetails {
		x.e.selection.Mode = ModeRead
	}
}

func (x *DetailsEditor) pendingLocked() []string {
	if x.d == nil {
		return nil
	}
	if _, err := x.ensureLocked(); err != nil || !x.d.Edited {
		return nil
	}
	return []string{fmt.Sprintf("assignment details of %q have unsaved changes", x.d.Value.DisplayName())}
}

func (x *DetailsEditor) resetLocked() {
	x.d = nil
}
