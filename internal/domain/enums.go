package domain

// NewID is the id carried by entities that have not been created on the
// server yet.
const NewID = -1

type EntityKind string

const (
	KindAssignment EntityKind = "assignment"
	KindCategory   EntityKind = "category"
	KindTemplate   EntityKind = "template"
	KindPresetNode EntityKind = "preset_node"
	KindRubric     EntityKind = "rubric"
)

// Label returns the human-readable name of the kind.
func (k EntityKind) Label() string {
	switch k {
	case KindAssignment:
		return "assignment"
	case KindCategory:
		return "category"
	case KindTemplate:
		return "template"
	case KindPresetNode:
		return "preset node"
	case KindRubric:
		return "rubric"
	default:
		return string(k)
	}
}

type PresetNodeType string

const (
	PresetDeadline PresetNodeType = "d"
	PresetProgress PresetNodeType = "p"
)

// ValidPresetNodeTypes is the canonical set of accepted preset node types.
var ValidPresetNodeTypes = map[PresetNodeType]bool{
	PresetDeadline: true,
	PresetProgress: true,
}

type FieldType string

const (
	FieldText      FieldType = "t"
	FieldRichText  FieldType = "rt"
	FieldFile      FieldType = "f"
	FieldVideo     FieldType = "v"
	FieldURL       FieldType = "u"
	FieldDate      FieldType = "d"
	FieldDateTime  FieldType = "dt"
	FieldSelection FieldType = "s"
	FieldNoSubmit  FieldType = "n"
)
