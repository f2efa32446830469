package testutil

import (
	"github.com/alexanderramin/ejournal/internal/domain"
)

// Category options
type CategoryOption func(*domain.Category)

func WithCategoryColor(color string) CategoryOption {
	return func(c *domain.Category) {
		c.Color = color
	}
}

func WithCategoryDescription(d string) CategoryOption {
	return func(c *domain.Category) {
		c.Description = &d
	}
}

// WithLinkedTemplates links the category to the summaries of templates.
func WithLinkedTemplates(templates ...domain.Template) CategoryOption {
	return func(c *domain.Category) {
		for _, t := range templates {
			c.Templates = append(c.Templates, t.Summary())
		}
	}
}

func NewTestCategory(id int, name string, opts ...CategoryOption) domain.Category {
	c := domain.Category{
		ID:        id,
		Name:      domain.StrPtr(name),
		Color:     "#ff0000",
		Templates: []domain.TemplateSummary{},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Template options
type TemplateOption func(*domain.Template)

// WithLinkedCategories links the template to the summaries of categories.
func WithLinkedCategories(categories ...domain.Category) TemplateOption {
	return func(t *domain.Template) {
		for _, c := range categories {
			t.Categories = append(t.Categories, c.Summary())
		}
	}
}

func WithPresetOnly() TemplateOption {
	return func(t *domain.Template) {
		t.PresetOnly = true
	}
}

func WithFields(fields ...domain.Field) TemplateOption {
	return func(t *domain.Template) {
		t.FieldSet = append(t.FieldSet, fields...)
	}
}

func NewTestTemplate(id int, name string, opts ...TemplateOption) domain.Template {
	t := domain.Template{
		ID:   id,
		Name: name,
		FieldSet: []domain.Field{
			{ID: id * 10, Type: domain.FieldRichText, Title: "Content", Location: 0, Required: true},
		},
		Categories: []domain.CategorySummary{},
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// PresetNode options
type PresetNodeOption func(*domain.PresetNode)

func WithNodeDescription(d string) PresetNodeOption {
	return func(n *domain.PresetNode) {
		n.Description = &d
	}
}

func NewTestDeadline(id int, due string, tmpl *domain.Template, opts ...PresetNodeOption) domain.PresetNode {
	n := domain.PresetNode{
		ID:       id,
		Type:     domain.PresetDeadline,
		DueDate:  due,
		Template: tmpl,
	}
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

func NewTestProgressNode(id int, due string, target float64, opts ...PresetNodeOption) domain.PresetNode {
	n := domain.PresetNode{
		ID:      id,
		Type:    domain.PresetProgress,
		DueDate: due,
		Target:  &target,
	}
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

func NewTestRubric(id int, name string) domain.Rubric {
	return domain.Rubric{
		ID:   id,
		Name: name,
		Criteria: []domain.Criterion{
			{ID: id * 10, Name: "Depth", Levels: []domain.Level{{ID: 1, Name: "Low", Points: 1}, {ID: 2, Name: "High", Points: 3}}},
		},
	}
}

func NewTestAssignment(id int, name string) domain.Assignment {
	return domain.Assignment{
		ID:         id,
		Name:       name,
		UnlockDate: domain.StrPtr("2021-09-01T00:00"),
		DueDate:    domain.StrPtr("2022-06-30T23:59:00"),
	}
}
