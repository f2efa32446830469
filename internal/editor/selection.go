package editor

import (
	"fmt"

	"github.com/alexanderramin/ejournal/internal/domain"
)

// Component is the editor panel that has focus.
type Component int

const (
	ComponentTimeline Component = iota
	ComponentAssignmentDetails
	ComponentCategory
	ComponentTemplate
	ComponentTemplateImport
	ComponentPresetNode
)

func (c Component) String() string {
	switch c {
	case ComponentTimeline:
		return "timeline"
	case ComponentAssignmentDetails:
		return "assignment details"
	case ComponentCategory:
		return "category"
	case ComponentTemplate:
		return "template"
	case ComponentTemplateImport:
		return "template import"
	case ComponentPresetNode:
		return "preset node"
	default:
		return fmt.Sprintf("component(%d)", int(c))
	}
}

// Kind returns the entity kind edited by the component. ok is false for
// components that do not edit a single entity.
func (c Component) Kind() (domain.EntityKind, bool) {
	switch c {
	case ComponentAssignmentDetails:
		return domain.KindAssignment, true
	case ComponentCategory:
		return domain.KindCategory, true
	case ComponentTemplate:
		return domain.KindTemplate, true
	case ComponentPresetNode:
		return domain.KindPresetNode, true
	case ComponentTimeline, ComponentTemplateImport:
		return "", false
	default:
		return "", false
	}
}

type Mode int

const (
	ModeRead Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeEdit:
		return "edit"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Selection is the single active focus of the editor. ID is the selected
// entity, domain.NewID for the new draft, and unused for the timeline and
// template import components.
type Selection struct {
	Component Component
	Mode      Mode
	ID        int
}

func timelineSelection() Selection {
	return Selection{Component: ComponentTimeline, Mode: ModeRead}
}

// Is reports whether the selection focuses the entity id of component c.
func (s Selection) Is(c Component, id int) bool {
	switch s.Component {
	case ComponentCategory, ComponentTemplate, ComponentPresetNode:
		return s.Component == c && s.ID == id
	case ComponentAssignmentDetails:
		return s.Component == c
	case ComponentTimeline, ComponentTemplateImport:
		return false
	default:
		return false
	}
}

func (s Selection) String() string {
	switch s.Component {
	case ComponentCategory, ComponentTemplate, ComponentPresetNode:
		if s.ID == domain.NewID {
			return fmt.Sprintf("new %s (%s)", s.Component, s.Mode)
		}
		return fmt.Sprintf("%s %d (%s)", s.Component, s.ID, s.Mode)
	case ComponentTimeline, ComponentAssignmentDetails, ComponentTemplateImport:
		return fmt.Sprintf("%s (%s)", s.Component, s.Mode)
	default:
		return s.Component.String()
	}
}
