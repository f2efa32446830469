package store

import (
	"slices"
	"sync"
)

// Timeline holds the category filter of the assignment timeline and the hook
// that re-syncs the timeline after category or template changes.
type Timeline struct {
	mu       sync.Mutex
	filtered []int
	sync     func()
}

// OnSync registers fn to run after every category or template mutation.
func (t *Timeline) OnSync(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sync = fn
}

// SyncNodes runs the registered hook, if any.
func (t *Timeline) SyncNodes() {
	t.mu.Lock()
	fn := t.sync
	t.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (t *Timeline) FilteredCategories() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.filtered)
}

func (t *Timeline) SetFilteredCategories(ids ...int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.filtered = slices.Clone(ids)
}

func (t *Timeline) RemoveCategoryFromFilter(id int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.filtered = slices.DeleteFunc(t.filtered, func(c int) bool { return c == id })
}

func (t *Timeline) ClearFilteredCategories() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.filtered = nil
}
