package domain

import "strings"

// Template describes the fields of a journal entry. Its link to categories is
// mirrored by Category.Templates.
type Template struct {
	ID                    int               `json:"id" yaml:"id"`
	Name                  string            `json:"name" yaml:"name"`
	PresetOnly            bool              `json:"preset_only" yaml:"preset_only"`
	Archived              bool              `json:"archived" yaml:"archived"`
	AllowCustomCategories bool              `json:"allow_custom_categories" yaml:"allow_custom_categories"`
	DefaultGrade          *float64          `json:"default_grade" yaml:"default_grade,omitempty"`
	FieldSet              []Field           `json:"field_set" yaml:"field_set"`
	Categories            []CategorySummary `json:"categories" yaml:"categories"`
}

// TemplateSummary holds the concrete fields of a template as embedded in a
// category.
type TemplateSummary struct {
	ID         int    `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	PresetOnly bool   `json:"preset_only" yaml:"preset_only"`
	Archived   bool   `json:"archived" yaml:"archived"`
}

type Field struct {
	ID          int       `json:"id" yaml:"id"`
	Type        FieldType `json:"type" yaml:"type"`
	Title       string    `json:"title" yaml:"title"`
	Description *string   `json:"description" yaml:"description,omitempty"`
	Options     *string   `json:"options" yaml:"options,omitempty"`
	Location    int       `json:"location" yaml:"location"`
	Required    bool      `json:"required" yaml:"required"`
}

func (f Field) Clone() Field {
	out := f
	out.Description = cloneStrPtr(f.Description)
	out.Options = cloneStrPtr(f.Options)
	return out
}

func (t Template) GetID() int { return t.ID }

func (t Template) Clone() Template {
	out := t
	out.DefaultGrade = cloneFloatPtr(t.DefaultGrade)
	if t.FieldSet != nil {
		out.FieldSet = make([]Field, len(t.FieldSet))
		for i, f := range t.FieldSet {
			out.FieldSet[i] = f.Clone()
		}
	}
	if t.Categories != nil {
		out.Categories = make([]CategorySummary, len(t.Categories))
		for i, c := range t.Categories {
			out.Categories[i] = CategorySummary{
				ID:          c.ID,
				Name:        cloneStrPtr(c.Name),
				Description: cloneStrPtr(c.Description),
				Color:       c.Color,
			}
		}
	}
	return out
}

// Summary returns the concrete (non-relational) fields of the template.
func (t Template) Summary() TemplateSummary {
	return TemplateSummary{
		ID:         t.ID,
		Name:       t.Name,
		PresetOnly: t.PresetOnly,
		Archived:   t.Archived,
	}
}

// LinksCategory reports whether the template lists the category id.
func (t Template) LinksCategory(id int) bool {
	for _, c := range t.Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

// CategoryIDs returns the ids of the linked categories in order.
func (t Template) CategoryIDs() []int {
	ids := make([]int, 0, len(t.Categories))
	for _, c := range t.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

func (t Template) SortName() string {
	return t.Name
}

func (t Template) DisplayName() string {
	return CoalesceStr(strings.TrimSpace(t.Name), "unnamed template")
}
