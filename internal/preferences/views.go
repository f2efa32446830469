package preferences

import (
	"fmt"
	"slices"
	"strconv"
)

func (p *Preferences) Todo() TodoView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Todo
}

func (p *Preferences) Journal() JournalView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return cloneState(p.state).Journal
}

func (p *Preferences) CourseMembers() CourseMembersView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return cloneState(p.state).CourseMembers
}

func (p *Preferences) AssignmentOverview() AssignmentOverviewView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.AssignmentOverview
}

func (p *Preferences) SetTodoSortBy(v string) error {
	if err := validate("todo sort option", v, TodoSortOptions); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Todo.SortBy = v
	return nil
}

func (p *Preferences) SetTodoFilterOwnGroups(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Todo.FilterOwnGroups = v
}

func (p *Preferences) SetJournalSortAscending(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Journal.SortAscending = v
}

func (p *Preferences) SetJournalGroupFilter(groupID *int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Journal.GroupFilter = cloneInt(groupID)
}

func (p *Preferences) SetJournalSelfSetGroupFilter(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Journal.SelfSetGroupFilter = v
}

func (p *Preferences) SetJournalSearchValue(v string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Journal.SearchValue = v
}

func (p *Preferences) SetJournalSortBy(v string) error {
	if err := validate("journal sort option", v, JournalSortOptions); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Journal.SortBy = v
	return nil
}

// SwitchJournalAssignment resets every journal filter when aID differs from
// the current assignment.
func (p *Preferences) SwitchJournalAssignment(aID int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if cur := p.state.Journal.AID; cur != nil && *cur == aID {
		return
	}
	j := defaultJournal()
	j.AID = &aID
	p.state.Journal = j
}

func (p *Preferences) SetCourseMembersSortAscending(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.CourseMembers.SortAscending = v
}

func (p *Preferences) SetCourseMembersViewEnrolled(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.CourseMembers.ViewEnrolled = v
}

func (p *Preferences) SetCourseMembersGroupFilter(groupID *int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.CourseMembers.GroupFilter = cloneInt(groupID)
}

func (p *Preferences) SetCourseMembersSearchValue(v string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.CourseMembers.SearchValue = v
}

func (p *Preferences) SetCourseMembersSortBy(v string) error {
	if err := validate("course member sort option", v, CourseMemberSortOptions); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.CourseMembers.SortBy = v
	return nil
}

func (p *Preferences) SetAssignmentOverviewSortAscending(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.AssignmentOverview.SortAscending = v
}

func (p *Preferences) SetAssignmentOverviewSearchValue(v string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.AssignmentOverview.SearchValue = v
}

func (p *Preferences) SetAssignmentOverviewSortBy(v string) error {
	if err := validate("assignment overview sort option", v, AssignmentOverviewSortOptions); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.AssignmentOverview.SortBy = v
	return nil
}

func (p *Preferences) SetAssignmentOverviewFilterOwnGroups(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.AssignmentOverview.FilterOwnGroups = v
}

func (p *Preferences) JournalImportRequestButtonSetting() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.JournalImportRequestButtonSetting
}

func (p *Preferences) SetJournalImportRequestButtonSetting(v string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.JournalImportRequestButtonSetting = v
}

func (p *Preferences) DismissedJIRs() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.state.DismissedJIRs)
}

func (p *Preferences) AddDismissedJIRs(ids ...int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.DismissedJIRs = append(slices.Clone(p.state.DismissedJIRs), ids...)
}

// FilterKeys lists the settings accepted by SetFilter.
var FilterKeys = []string{
	"todo.sort_by", "todo.filter_own_groups",
	"journal.sort_by", "journal.sort_ascending", "journal.search", "journal.group",
	"course_members.sort_by", "course_members.sort_ascending", "course_members.view_enrolled",
	"course_members.search", "course_members.group",
	"assignment_overview.sort_by", "assignment_overview.sort_ascending",
	"assignment_overview.search", "assignment_overview.filter_own_groups",
}

// SetFilter sets one view setting from its textual form. An empty group
// value clears the group filter.
func (p *Preferences) SetFilter(key, value string) error {
	switch key {
	case "todo.sort_by":
		return p.SetTodoSortBy(value)
	case "journal.sort_by":
		return p.SetJournalSortBy(value)
	case "course_members.sort_by":
		return p.SetCourseMembersSortBy(value)
	case "assignment_overview.sort_by":
		return p.SetAssignmentOverviewSortBy(value)
	case "journal.search":
		p.SetJournalSearchValue(value)
	case "course_members.search":
		p.SetCourseMembersSearchValue(value)
	case "assignment_overview.search":
		p.SetAssignmentOverviewSearchValue(value)
	case "journal.group", "course_members.group":
		group, err := parseGroup(key, value)
		if err != nil {
			return err
		}
		if key == "journal.group" {
			p.SetJournalGroupFilter(group)
			p.SetJournalSelfSetGroupFilter(true)
		} else {
			p.SetCourseMembersGroupFilter(group)
		}
	case "todo.filter_own_groups", "journal.sort_ascending", "course_members.sort_ascending",
		"course_members.view_enrolled", "assignment_overview.sort_ascending", "assignment_overview.filter_own_groups":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return &ValidationError{Field: key, Value: value, Allowed: []string{"true", "false"}}
		}
		p.setBool(key, b)
	default:
		return &ValidationError{Field: "setting", Value: key, Allowed: FilterKeys}
	}
	return nil
}

func (p *Preferences) setBool(key string, b bool) {
	switch key {
	case "todo.filter_own_groups":
		p.SetTodoFilterOwnGroups(b)
	case "journal.sort_ascending":
		p.SetJournalSortAscending(b)
	case "course_members.sort_ascending":
		p.SetCourseMembersSortAscending(b)
	case "course_members.view_enrolled":
		p.SetCourseMembersViewEnrolled(b)
	case "assignment_overview.sort_ascending":
		p.SetAssignmentOverviewSortAscending(b)
	case "assignment_overview.filter_own_groups":
		p.SetAssignmentOverviewFilterOwnGroups(b)
	}
}

func parseGroup(key, value string) (*int, error) {
	if value == "" {
		return nil, nil
	}
	id, err := strconv.Atoi(value)
	if err != nil {
		return nil, &ValidationError{Field: key, Value: value, Allowed: []string{"group id", "empty"}}
	}
	return &id, nil
}

func (v JournalView) String() string {
	aid := "none"
	if v.AID != nil {
		aid = strconv.Itoa(*v.AID)
	}
	return fmt.Sprintf("assignment=%s sort=%s ascending=%t search=%q", aid, v.SortBy, v.SortAscending, v.SearchValue)
}
