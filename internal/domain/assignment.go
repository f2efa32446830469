package domain

import "strings"

type Assignment struct {
	ID                 int      `json:"id" yaml:"id"`
	Name               string   `json:"name" yaml:"name"`
	Description        *string  `json:"description" yaml:"description,omitempty"`
	IsPublished        bool     `json:"is_published" yaml:"is_published"`
	PointsPossible     *float64 `json:"points_possible" yaml:"points_possible,omitempty"`
	UnlockDate         *string  `json:"unlock_date" yaml:"unlock_date,omitempty"`
	DueDate            *string  `json:"due_date" yaml:"due_date,omitempty"`
	LockDate           *string  `json:"lock_date" yaml:"lock_date,omitempty"`
	IsGroupAssignment  bool     `json:"is_group_assignment" yaml:"is_group_assignment"`
	CanSetJournalName  bool     `json:"can_set_journal_name" yaml:"can_set_journal_name"`
	CanSetJournalImage bool     `json:"can_set_journal_image" yaml:"can_set_journal_image"`
	CanLockJournal     bool     `json:"can_lock_journal" yaml:"can_lock_journal"`
}

func (a Assignment) GetID() int { return a.ID }

func (a Assignment) Clone() Assignment {
	c := a
	c.Description = cloneStrPtr(a.Description)
	c.PointsPossible = cloneFloatPtr(a.PointsPossible)
	c.UnlockDate = cloneStrPtr(a.UnlockDate)
	c.DueDate = cloneStrPtr(a.DueDate)
	c.LockDate = cloneStrPtr(a.LockDate)
	return c
}

func (a Assignment) DisplayName() string {
	return CoalesceStr(strings.TrimSpace(a.Name), "unnamed assignment")
}

// DisplayWithDates renders the assignment name followed by the years it
// runs, e.g. "Portfolio (2020 - 2021)". The end year is taken from the due
// date, falling back to the lock date.
func (a Assignment) DisplayWithDates() string {
	unlock := yearOf(a.UnlockDate)
	end := CoalesceStr(yearOf(a.DueDate), yearOf(a.LockDate))
	if unlock == "" && end == "" {
		return a.Name
	}

	var b strings.Builder
	b.WriteString(a.Name)
	b.WriteString(" (")
	b.WriteString(unlock)
	if unlock != "" && end != "" {
		b.WriteString(" - ")
	}
	b.WriteString(end)
	b.WriteString(")")
	return b.String()
}

func yearOf(date *string) string {
	if date == nil || len(*date) < 4 {
		return ""
	}
	return (*date)[:4]
}
