// Package preferences holds the sort, filter and search settings of each
// list view and the user's saved preferences.
package preferences

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"sync"

	"github.com/alexanderramin/ejournal/internal/domain"
	"go.uber.org/zap"
)

// Updater sends a preferences patch for user uID.
type Updater interface {
	Update(ctx context.Context, uID int, patch map[string]any) error
}

type TodoView struct {
	SortBy          string `json:"sort_by"`
	FilterOwnGroups bool   `json:"filter_own_groups"`
}

type JournalView struct {
	AID                *int   `json:"aid"`
	SortAscending      bool   `json:"sort_ascending"`
	GroupFilter        *int   `json:"group_filter"`
	SelfSetGroupFilter bool   `json:"self_set_group_filter"`
	SearchValue        string `json:"search_value"`
	SortBy             string `json:"sort_by"`
}

type CourseMembersView struct {
	SortAscending bool   `json:"sort_ascending"`
	ViewEnrolled  bool   `json:"view_enrolled"`
	GroupFilter   *int   `json:"group_filter"`
	SearchValue   string `json:"search_value"`
	SortBy        string `json:"sort_by"`
}

type AssignmentOverviewView struct {
	SortAscending   bool   `json:"sort_ascending"`
	SearchValue     string `json:"search_value"`
	SortBy          string `json:"sort_by"`
	FilterOwnGroups bool   `json:"filter_own_groups"`
}

// State is the persisted form of the preferences.
type State struct {
	Saved                             map[string]any         `json:"saved"`
	Todo                              TodoView               `json:"todo"`
	Journal                           JournalView            `json:"journal"`
	CourseMembers                     CourseMembersView      `json:"course_members"`
	AssignmentOverview                AssignmentOverviewView `json:"assignment_overview"`
	JournalImportRequestButtonSetting string                 `json:"journal_import_request_button_setting"`
	DismissedJIRs                     []int                  `json:"dismissed_jirs"`
}

func defaultJournal() JournalView {
	return JournalView{SortAscending: true, SortBy: "markingNeeded"}
}

// DefaultState returns the settings of a fresh session.
func DefaultState() State {
	return State{
		Saved:                             map[string]any{},
		Todo:                              TodoView{SortBy: "date", FilterOwnGroups: true},
		Journal:                           defaultJournal(),
		CourseMembers:                     CourseMembersView{SortAscending: true, ViewEnrolled: true, SortBy: "name"},
		AssignmentOverview:                AssignmentOverviewView{SortAscending: true, SortBy: "name", FilterOwnGroups: true},
		JournalImportRequestButtonSetting: "AIG",
		DismissedJIRs:                     []int{},
	}
}

// Preferences guards State. Saved preference changes are sent in the
// background; Flush waits for them.
type Preferences struct {
	api Updater
	log *zap.Logger

	mu    sync.Mutex
	uID   int
	state State

	inflight sync.WaitGroup
}

type Option func(*Preferences)

func WithLogger(l *zap.Logger) Option {
	return func(p *Preferences) {
		if l != nil {
			p.log = l
		}
	}
}

func New(api Updater, opts ...Option) *Preferences {
	p := &Preferences{api: api, log: zap.NewNop(), state: DefaultState()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetUser sets the user whose saved preferences are updated.
func (p *Preferences) SetUser(uID int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.uID = uID
}

// Snapshot returns a deep copy of the state.
func (p *Preferences) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return cloneState(p.state)
}

// Restore replaces the state, e.g. with the persisted copy at startup.
func (p *Preferences) Restore(s State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = cloneState(s)
	if p.state.Saved == nil {
		p.state.Saved = map[string]any{}
	}
}

func cloneState(s State) State {
	out := s
	out.Saved = cloneSaved(s.Saved)
	out.DismissedJIRs = slices.Clone(s.DismissedJIRs)
	out.Journal.AID = cloneInt(s.Journal.AID)
	out.Journal.GroupFilter = cloneInt(s.Journal.GroupFilter)
	out.CourseMembers.GroupFilter = cloneInt(s.CourseMembers.GroupFilter)
	return out
}

func cloneSaved(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		if ids, ok := v.([]any); ok {
			v = slices.Clone(ids)
		}
		out[k] = v
	}
	return out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Hydrate replaces the saved preferences with the server copy.
func (p *Preferences) Hydrate(saved domain.Preferences) error {
	m, err := toMap(saved)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Saved = m
	return nil
}

func toMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding preferences: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding preferences: %w", err)
	}
	return m, nil
}

// Saved decodes the saved preferences.
func (p *Preferences) Saved() (domain.Preferences, error) {
	p.mu.Lock()
	data, err := json.Marshal(p.state.Saved)
	p.mu.Unlock()
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("encoding preferences: %w", err)
	}
	var out domain.Preferences
	if err := json.Unmarshal(data, &out); err != nil {
		return domain.Preferences{}, fmt.Errorf("decoding preferences: %w", err)
	}
	return out, nil
}

// Change sends patch to the server without waiting for the answer, then
// applies the keys already present in the saved preferences. Failures are
// reported by the transport observer and logged.
func (p *Preferences) Change(ctx context.Context, patch map[string]any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dispatchLocked(ctx, maps.Clone(patch))
	for k, v := range patch {
		if _, ok := p.state.Saved[k]; ok {
			p.state.Saved[k] = v
		}
	}
}

// SetHidePastDeadlines toggles hiding past deadlines on assignment aID and
// sends the saved preferences.
func (p *Preferences) SetHidePastDeadlines(ctx context.Context, aID int, hide bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ids := hiddenIDs(p.state.Saved["hide_past_deadlines_of_assignments"])
	ids = slices.DeleteFunc(ids, func(id int) bool { return id == aID })
	if hide {
		ids = append(ids, aID)
	}
	list := make([]any, len(ids))
	for i, id := range ids {
		list[i] = float64(id)
	}
	p.state.Saved["hide_past_deadlines_of_assignments"] = list
	p.dispatchLocked(ctx, cloneSaved(p.state.Saved))
}

// HidePastDeadlines reports whether past deadlines of aID are hidden.
func (p *Preferences) HidePastDeadlines(aID int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Contains(hiddenIDs(p.state.Saved["hide_past_deadlines_of_assignments"]), aID)
}

func hiddenIDs(v any) []int {
	var ids []int
	switch list := v.(type) {
	case []any:
		for _, item := range list {
			switch n := item.(type) {
			case float64:
				ids = append(ids, int(n))
			case int:
				ids = append(ids, n)
			case string:
				if id, err := strconv.Atoi(n); err == nil {
					ids = append(ids, id)
				}
			}
		}
	case []int:
		ids = slices.Clone(list)
	}
	return ids
}

func (p *Preferences) dispatchLocked(ctx context.Context, patch map[string]any) {
	uID := p.uID
	ctx = context.WithoutCancel(ctx)
	p.inflight.Add(1)
	go func() {
		defer p.inflight.Done()
		if err := p.api.Update(ctx, uID, patch); err != nil {
			p.log.Warn("preferences update failed", zap.Int("user_id", uID), zap.Error(err))
		}
	}()
}

// Flush waits for background preference updates.
func (p *Preferences) Flush() {
	p.inflight.Wait()
}

// Reset restores every view and clears the saved preferences.
func (p *Preferences) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = DefaultState()
}
