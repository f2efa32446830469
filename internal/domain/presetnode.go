package domain

import (
	"fmt"
	"strings"
)

// PresetNode is a timeline node set up by course staff: a deadline bound to a
// template or a progress goal.
type PresetNode struct {
	ID          int            `json:"id" yaml:"id"`
	Type        PresetNodeType `json:"type" yaml:"type"`
	Description *string        `json:"description" yaml:"description,omitempty"`
	UnlockDate  *string        `json:"unlock_date" yaml:"unlock_date,omitempty"`
	DueDate     string         `json:"due_date" yaml:"due_date"`
	LockDate    *string        `json:"lock_date" yaml:"lock_date,omitempty"`
	Target      *float64       `json:"target" yaml:"target,omitempty"`
	// Template is shared with the template collection and never modified
	// through the node.
	Template *Template `json:"template" yaml:"template,omitempty"`
}

func (n PresetNode) GetID() int { return n.ID }

// Clone copies the node. The template snapshot pointer is shared.
func (n PresetNode) Clone() PresetNode {
	out := n
	out.Description = cloneStrPtr(n.Description)
	out.UnlockDate = cloneStrPtr(n.UnlockDate)
	out.LockDate = cloneStrPtr(n.LockDate)
	out.Target = cloneFloatPtr(n.Target)
	return out
}

func (n PresetNode) IsDeadline() bool {
	return n.Type == PresetDeadline
}

// SortName orders nodes by due date; dates are ISO 8601 so they sort as text.
func (n PresetNode) SortName() string {
	return CoalesceStr(n.DueDate, n.DisplayName())
}

func (n PresetNode) DisplayName() string {
	if d := strings.TrimSpace(StrValue(n.Description)); d != "" {
		return d
	}
	if n.IsDeadline() && n.Template != nil {
		return fmt.Sprintf("%s deadline", n.Template.DisplayName())
	}
	if n.DueDate != "" {
		return fmt.Sprintf("preset node due %s", n.DueDate)
	}
	return "unnamed preset node"
}
