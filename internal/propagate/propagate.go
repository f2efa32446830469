// Package propagate rewrites the denormalized references between categories,
// templates and preset nodes after one of them changes. Every function is
// pure: inputs are never modified and untouched elements are returned as is.
package propagate

import "github.com/alexanderramin/ejournal/internal/domain"

func matches(id, newID, oldID int) bool {
	return id == newID || id == oldID
}

// CategoryIntoTemplates mirrors an updated category into the category
// references of templates. A reference matching the category's id or oldID
// takes the category's concrete fields; it is added when the category lists
// the template and removed when the category no longer does.
func CategoryIntoTemplates(templates []domain.Template, updated domain.Category, oldID int) []domain.Template {
	if templates == nil {
		return nil
	}
	summary := updated.Summary()
	out := make([]domain.Template, len(templates))

	for i, t := range templates {
		out[i] = t
		idx := -1
		for j, c := range t.Categories {
			if matches(c.ID, updated.ID, oldID) {
				idx = j
				break
			}
		}
		linked := updated.LinksTemplate(t.ID)

		switch {
		case idx >= 0 && linked:
			refs := cloneCategoryRefs(t.Categories)
			refs[idx] = summary
			out[i].Categories = refs
		case idx >= 0 && !linked:
			out[i].Categories = removeCategoryRef(t.Categories, idx)
		case idx < 0 && linked:
			refs := cloneCategoryRefs(t.Categories)
			out[i].Categories = append(refs, summary)
		}
	}
	return out
}

// TemplateIntoCategories is the reverse of CategoryIntoTemplates.
func TemplateIntoCategories(categories []domain.Category, updated domain.Template, oldID int) []domain.Category {
	if categories == nil {
		return nil
	}
	summary := updated.Summary()
	out := make([]domain.Category, len(categories))

	for i, c := range categories {
		out[i] = c
		idx := -1
		for j, t := range c.Templates {
			if matches(t.ID, updated.ID, oldID) {
				idx = j
				break
			}
		}
		linked := updated.LinksCategory(c.ID)

		switch {
		case idx >= 0 && linked:
			refs := cloneTemplateRefs(c.Templates)
			refs[idx] = summary
			out[i].Templates = refs
		case idx >= 0 && !linked:
			out[i].Templates = removeTemplateRef(c.Templates, idx)
		case idx < 0 && linked:
			refs := cloneTemplateRefs(c.Templates)
			out[i].Templates = append(refs, summary)
		}
	}
	return out
}

// RefreshCategoryRefs updates the concrete fields of references to the
// category without adding or removing links. It suits drafts whose links
// carry unsaved choices.
func RefreshCategoryRefs(templates []domain.Template, updated domain.Category, oldID int) []domain.Template {
	if templates == nil {
		return nil
	}
	summary := updated.Summary()
	out := make([]domain.Template, len(templates))
	for i, t := range templates {
		out[i] = t
		for j, c := range t.Categories {
			if matches(c.ID, updated.ID, oldID) {
				refs := cloneCategoryRefs(t.Categories)
				refs[j] = summary
				out[i].Categories = refs
				break
			}
		}
	}
	return out
}

// RefreshTemplateRefs is the reverse of RefreshCategoryRefs.
func RefreshTemplateRefs(categories []domain.Category, updated domain.Template, oldID int) []domain.Category {
	if categories == nil {
		return nil
	}
	summary := updated.Summary()
	out := make([]domain.Category, len(categories))
	for i, c := range categories {
		out[i] = c
		for j, t := range c.Templates {
			if matches(t.ID, updated.ID, oldID) {
				refs := cloneTemplateRefs(c.Templates)
				refs[j] = summary
				out[i].Templates = refs
				break
			}
		}
	}
	return out
}

// CategoryIntoTemplateDraft mirrors an updated category into an edited
// template draft. base is the stored template the draft was last compared
// with. While the draft's link to the category still equals base's, the link
// follows the category as in CategoryIntoTemplates. A link the user changed
// in the draft is kept and only its fields are refreshed.
func CategoryIntoTemplateDraft(draft, base domain.Template, updated domain.Category, oldID int) domain.Template {
	if refersToCategory(draft, updated.ID, oldID) != refersToCategory(base, updated.ID, oldID) {
		return RefreshCategoryRefs([]domain.Template{draft}, updated, oldID)[0]
	}
	return CategoryIntoTemplates([]domain.Template{draft}, updated, oldID)[0]
}

// TemplateIntoCategoryDraft is the reverse of CategoryIntoTemplateDraft.
func TemplateIntoCategoryDraft(draft, base domain.Category, updated domain.Template, oldID int) domain.Category {
	if refersToTemplate(draft, updated.ID, oldID) != refersToTemplate(base, updated.ID, oldID) {
		return RefreshTemplateRefs([]domain.Category{draft}, updated, oldID)[0]
	}
	return TemplateIntoCategories([]domain.Category{draft}, updated, oldID)[0]
}

func refersToCategory(t domain.Template, newID, oldID int) bool {
	for _, c := range t.Categories {
		if matches(c.ID, newID, oldID) {
			return true
		}
	}
	return false
}

func refersToTemplate(c domain.Category, newID, oldID int) bool {
	for _, t := range c.Templates {
		if matches(t.ID, newID, oldID) {
			return true
		}
	}
	return false
}

// CategoryDelete drops every reference to the category from templates.
func CategoryDelete(templates []domain.Template, id int) []domain.Template {
	if templates == nil {
		return nil
	}
	out := make([]domain.Template, len(templates))
	for i, t := range templates {
		out[i] = t
		for j, c := range t.Categories {
			if c.ID == id {
				out[i].Categories = removeCategoryRef(t.Categories, j)
				break
			}
		}
	}
	return out
}

// TemplateDelete drops every reference to the template from categories.
func TemplateDelete(categories []domain.Category, id int) []domain.Category {
	if categories == nil {
		return nil
	}
	out := make([]domain.Category, len(categories))
	for i, c := range categories {
		out[i] = c
		for j, t := range c.Templates {
			if t.ID == id {
				out[i].Templates = removeTemplateRef(c.Templates, j)
				break
			}
		}
	}
	return out
}

// TemplateIntoPresetNodes points deadline nodes whose template matches the
// updated template's id or oldID at updated. The pointer is shared: nodes only
// read their template.
func TemplateIntoPresetNodes(nodes []domain.PresetNode, updated *domain.Template, oldID int) []domain.PresetNode {
	if nodes == nil {
		return nil
	}
	out := make([]domain.PresetNode, len(nodes))
	for i, n := range nodes {
		out[i] = n
		if !n.IsDeadline() || n.Template == nil || updated == nil {
			continue
		}
		if matches(n.Template.ID, updated.ID, oldID) {
			out[i].Template = updated
		}
	}
	return out
}

func cloneCategoryRefs(refs []domain.CategorySummary) []domain.CategorySummary {
	out := make([]domain.CategorySummary, len(refs), len(refs)+1)
	copy(out, refs)
	return out
}

func removeCategoryRef(refs []domain.CategorySummary, idx int) []domain.CategorySummary {
	out := make([]domain.CategorySummary, 0, len(refs)-1)
	out = append(out, refs[:idx]...)
	return append(out, refs[idx+1:]...)
}

func cloneTemplateRefs(refs []domain.TemplateSummary) []domain.TemplateSummary {
	out := make([]domain.TemplateSummary, len(refs), len(refs)+1)
	copy(out, refs)
	return out
}

func removeTemplateRef(refs []domain.TemplateSummary, idx int) []domain.TemplateSummary {
	out := make([]domain.TemplateSummary, 0, len(refs)-1)
	out = append(out, refs[:idx]...)
	return append(out, refs[idx+1:]...)
}
