package domain

import "strings"

// Category groups templates that contribute to the same skill. Its link to
// templates is mirrored by Template.Categories.
type Category struct {
	ID          int               `json:"id" yaml:"id"`
	Name        *string           `json:"name" yaml:"name"`
	Description *string           `json:"description" yaml:"description,omitempty"`
	Color       string            `json:"color" yaml:"color"`
	Templates   []TemplateSummary `json:"templates" yaml:"templates"`
}

// CategorySummary holds the concrete fields of a category as embedded in a
// template.
type CategorySummary struct {
	ID          int     `json:"id" yaml:"id"`
	Name        *string `json:"name" yaml:"name"`
	Description *string `json:"description" yaml:"description,omitempty"`
	Color       string  `json:"color" yaml:"color"`
}

func (c Category) GetID() int { return c.ID }

func (c Category) Clone() Category {
	out := c
	out.Name = cloneStrPtr(c.Name)
	out.Description = cloneStrPtr(c.Description)
	if c.Templates != nil {
		out.Templates = make([]TemplateSummary, len(c.Templates))
		copy(out.Templates, c.Templates)
	}
	return out
}

// Summary returns the concrete (non-relational) fields of the category.
func (c Category) Summary() CategorySummary {
	return CategorySummary{
		ID:          c.ID,
		Name:        cloneStrPtr(c.Name),
		Description: cloneStrPtr(c.Description),
		Color:       c.Color,
	}
}

// LinksTemplate reports whether the category lists the template id.
func (c Category) LinksTemplate(id int) bool {
	for _, t := range c.Templates {
		if t.ID == id {
			return true
		}
	}
	return false
}

// TemplateIDs returns the ids of the linked templates in order.
func (c Category) TemplateIDs() []int {
	ids := make([]int, 0, len(c.Templates))
	for _, t := range c.Templates {
		ids = append(ids, t.ID)
	}
	return ids
}

func (c Category) SortName() string {
	return StrValue(c.Name)
}

func (c Category) DisplayName() string {
	return CoalesceStr(strings.TrimSpace(StrValue(c.Name)), "unnamed category")
}
