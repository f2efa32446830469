package store

import (
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/ejournal/internal/domain"
)

type entity[T any] interface {
	GetID() int
	Clone() T
}

// collection holds one entity kind grouped by assignment id. It is not safe
// for concurrent use; Store.mu guards every collection.
type collection[T entity[T]] struct {
	items   map[int][]T
	compare func(a, b T) int
}

func newCollection[T entity[T]](compare func(a, b T) int) *collection[T] {
	return &collection[T]{items: make(map[int][]T), compare: compare}
}

func (c *collection[T]) loaded(aID int) bool {
	_, ok := c.items[aID]
	return ok
}

// snapshot returns deep copies so callers can never reach stored values.
func (c *collection[T]) snapshot(aID int) []T {
	items := c.items[aID]
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

func (c *collection[T]) set(aID int, items []T) {
	stored := make([]T, len(items))
	copy(stored, items)
	slices.SortStableFunc(stored, c.compare)
	c.items[aID] = stored
}

func (c *collection[T]) find(aID, id int) (T, bool) {
	for _, item := range c.items[aID] {
		if item.GetID() == id {
			return item.Clone(), true
		}
	}
	var zero T
	return zero, false
}

func (c *collection[T]) add(aID int, item T) bool {
	items, ok := c.items[aID]
	if !ok {
		return false
	}
	c.set(aID, append(slices.Clip(items), item))
	return true
}

// replace swaps the entity stored under oldID for item, appending it when
// oldID is unknown.
func (c *collection[T]) replace(aID, oldID int, item T) bool {
	items, ok := c.items[aID]
	if !ok {
		return false
	}
	next := slices.Clone(items)
	idx := slices.IndexFunc(next, func(e T) bool { return e.GetID() == oldID })
	if idx < 0 {
		next = append(next, item)
	} else {
		next[idx] = item
	}
	c.set(aID, next)
	return true
}

func (c *collection[T]) remove(aID, id int) bool {
	items, ok := c.items[aID]
	if !ok {
		return false
	}
	c.items[aID] = slices.DeleteFunc(slices.Clone(items), func(e T) bool { return e.GetID() == id })
	return true
}

// apply replaces the assignment's collection with fn's result.
func (c *collection[T]) apply(aID int, fn func([]T) []T) bool {
	items, ok := c.items[aID]
	if !ok {
		return false
	}
	c.set(aID, fn(items))
	return true
}

func (c *collection[T]) all() map[int][]T {
	out := make(map[int][]T, len(c.items))
	for aID := range c.items {
		out[aID] = c.snapshot(aID)
	}
	return out
}

func (c *collection[T]) clear() {
	c.items = make(map[int][]T)
}

type named interface {
	SortName() string
}

func byName[T named](a, b T) int {
	if n := strings.Compare(strings.ToLower(a.SortName()), strings.ToLower(b.SortName())); n != 0 {
		return n
	}
	return strings.Compare(a.SortName(), b.SortName())
}

var dueDateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"}

func parseDueDate(s string) (time.Time, bool) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func byDueDate(a, b domain.PresetNode) int {
	ta, okA := parseDueDate(a.DueDate)
	tb, okB := parseDueDate(b.DueDate)
	if okA && okB {
		return ta.Compare(tb)
	}
	return strings.Compare(a.DueDate, b.DueDate)
}
