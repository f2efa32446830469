package propagate

import (
	"testing"

	"github.com/alexanderramin/ejournal/internal/domain"
	"github.com/alexanderramin/ejournal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categoryRefIDs(t domain.Template) []int { return t.CategoryIDs() }

func TestCategoryIntoTemplates_AddsReferenceForNewLink(t *testing.T) {
	tmpl3 := testutil.NewTestTemplate(3, "Log")
	tmpl4 := testutil.NewTestTemplate(4, "Reflection")
	created := testutil.NewTestCategory(42, "", testutil.WithLinkedTemplates(tmpl3))
	created.Name = nil

	got := CategoryIntoTemplates([]domain.Template{tmpl3, tmpl4}, created, domain.NewID)

	require.Len(t, got[0].Categories, 1)
	assert.Equal(t, 42, got[0].Categories[0].ID)
	assert.Equal(t, "#ff0000", got[0].Categories[0].Color)
	assert.Empty(t, got[1].Categories)
	assert.Empty(t, tmpl3.Categories, "input must not be modified")
}

func TestCategoryIntoTemplates_ReplacesConcreteFields(t *testing.T) {
	cat := testutil.NewTestCategory(5, "Skill")
	tmpl := testutil.NewTestTemplate(3, "Log", testutil.WithLinkedCategories(cat))
	updated := testutil.NewTestCategory(5, "Renamed", testutil.WithCategoryColor("#00ff00"), testutil.WithLinkedTemplates(tmpl))

	got := CategoryIntoTemplates([]domain.Template{tmpl}, updated, 5)

	require.Len(t, got[0].Categories, 1)
	assert.Equal(t, "Renamed", domain.StrValue(got[0].Categories[0].Name))
	assert.Equal(t, "#00ff00", got[0].Categories[0].Color)
	assert.Equal(t, "Skill", domain.StrValue(tmpl.Categories[0].Name))
}

func TestCategoryIntoTemplates_RemovesUnlinkedReference(t *testing.T) {
	cat := testutil.NewTestCategory(5, "Skill")
	other := testutil.NewTestCategory(6, "Other")
	tmpl := testutil.NewTestTemplate(3, "Log", testutil.WithLinkedCategories(cat, other))
	updated := testutil.NewTestCategory(5, "Skill")

	got := CategoryIntoTemplates([]domain.Template{tmpl}, updated, 5)

	assert.Equal(t, []int{6}, categoryRefIDs(got[0]))
	assert.Equal(t, []int{5, 6}, categoryRefIDs(tmpl))
}

func TestCategoryIntoTemplates_MatchesOldID(t *testing.T) {
	draft := testutil.NewTestCategory(domain.NewID, "Draft")
	tmpl := testutil.NewTestTemplate(3, "Log", testutil.WithLinkedCategories(draft))
	created := testutil.NewTestCategory(42, "Draft", testutil.WithLinkedTemplates(testutil.NewTestTemplate(3, "Log")))

	got := CategoryIntoTemplates([]domain.Template{tmpl}, created, domain.NewID)

	assert.Equal(t, []int{42}, categoryRefIDs(got[0]))
}

func TestTemplateIntoCategories_Symmetry(t *testing.T) {
	cat := testutil.NewTestCategory(42, "Skill")
	tmpl := testutil.NewTestTemplate(3, "Log", testutil.WithLinkedCategories(cat))

	got := TemplateIntoCategories([]domain.Category{cat}, tmpl, 3)
	require.Len(t, got[0].Templates, 1)
	assert.Equal(t, 3, got[0].Templates[0].ID)
	assert.Equal(t, "Log", got[0].Templates[0].Name)

	back := CategoryIntoTemplates([]domain.Template{tmpl}, got[0], 42)
	assert.Equal(t, []int{42}, categoryRefIDs(back[0]))
}

func TestTemplateIntoCategories_UnlinkRemovesTemplate(t *testing.T) {
	linked := testutil.NewTestCategory(42, "Skill")
	tmpl := testutil.NewTestTemplate(3, "Log", testutil.WithLinkedCategories(linked))
	cat := testutil.NewTestCategory(42, "Skill", testutil.WithLinkedTemplates(tmpl))

	tmpl.Categories = []domain.CategorySummary{}
	got := TemplateIntoCategories([]domain.Category{cat}, tmpl, 3)

	assert.False(t, got[0].LinksTemplate(3))
	assert.True(t, cat.LinksTemplate(3))
}

func TestCategoryDelete(t *testing.T) {
	c5 := testutil.NewTestCategory(5, "Skill")
	c6 := testutil.NewTestCategory(6, "Other")
	templates := []domain.Template{
		testutil.NewTestTemplate(1, "A", testutil.WithLinkedCategories(c5, c6)),
		testutil.NewTestTemplate(2, "B", testutil.WithLinkedCategories(c5)),
		testutil.NewTestTemplate(3, "C"),
	}

	got := CategoryDelete(templates, 5)

	for _, tmpl := range got {
		assert.False(t, tmpl.LinksCategory(5), "template %d still references category 5", tmpl.ID)
	}
	assert.Equal(t, []int{6}, categoryRefIDs(got[0]))
	assert.True(t, templates[1].LinksCategory(5))
}

func TestTemplateDelete(t *testing.T) {
	t1 := testutil.NewTestTemplate(1, "A")
	t2 := testutil.NewTestTemplate(2, "B")
	categories := []domain.Category{
		testutil.NewTestCategory(5, "Skill", testutil.WithLinkedTemplates(t1, t2)),
		testutil.NewTestCategory(6, "Other", testutil.WithLinkedTemplates(t1)),
	}

	got := TemplateDelete(categories, 1)

	assert.Equal(t, []int{2}, got[0].TemplateIDs())
	assert.Empty(t, got[1].TemplateIDs())
}

func TestTemplateIntoPresetNodes(t *testing.T) {
	old := testutil.NewTestTemplate(3, "Log")
	other := testutil.NewTestTemplate(4, "Other")
	nodes := []domain.PresetNode{
		testutil.NewTestDeadline(1, "2021-10-01T00:00:00", &old),
		testutil.NewTestDeadline(2, "2021-11-01T00:00:00", &other),
		testutil.NewTestProgressNode(3, "2021-12-01T00:00:00", 10),
	}
	updated := testutil.NewTestTemplate(3, "Log v2")

	got := TemplateIntoPresetNodes(nodes, &updated, 3)

	assert.Same(t, &updated, got[0].Template)
	assert.Same(t, &other, got[1].Template)
	assert.Nil(t, got[2].Template)
	assert.Same(t, &old, nodes[0].Template)
}

func TestNilCollectionsStayNil(t *testing.T) {
	assert.Nil(t, CategoryIntoTemplates(nil, domain.Category{}, 0))
	assert.Nil(t, TemplateIntoCategories(nil, domain.Template{}, 0))
	assert.Nil(t, CategoryDelete(nil, 1))
	assert.Nil(t, TemplateDelete(nil, 1))
	assert.Nil(t, TemplateIntoPresetNodes(nil, &domain.Template{}, 1))
}

func TestRefreshCategoryRefs_KeepsLinks(t *testing.T) {
	draftCat := testutil.NewTestCategory(domain.NewID, "Draft")
	linked := testutil.NewTestTemplate(3, "Log", testutil.WithLinkedCategories(draftCat))
	unlinked := testutil.NewTestTemplate(4, "Other")
	created := testutil.NewTestCategory(42, "Saved", testutil.WithCategoryColor("#123456"))

	got := RefreshCategoryRefs([]domain.Template{linked, unlinked}, created, domain.NewID)

	require.Len(t, got[0].Categories, 1)
	assert.Equal(t, 42, got[0].Categories[0].ID)
	assert.Equal(t, "#123456", got[0].Categories[0].Color)
	assert.Empty(t, got[1].Categories, "refresh must not add links")
}

func TestRefreshTemplateRefs_KeepsLinks(t *testing.T) {
	tmpl := testutil.NewTestTemplate(3, "Log")
	cat := testutil.NewTestCategory(5, "Skill", testutil.WithLinkedTemplates(tmpl))
	renamed := testutil.NewTestTemplate(3, "Weekly log")

	got := RefreshTemplateRefs([]domain.Category{cat}, renamed, 3)

	require.Len(t, got[0].Templates, 1)
	assert.Equal(t, "Weekly log", got[0].Templates[0].Name)
	assert.Equal(t, "Log", cat.Templates[0].Name)
}

func TestTemplateIntoCategoryDraft(t *testing.T) {
	cat := testutil.NewTestCategory(5, "Skill")
	linking := testutil.NewTestTemplate(3, "Log", testutil.WithLinkedCategories(cat))

	t.Run("untouched link follows the template", func(t *testing.T) {
		draft := cat.Clone()
		draft.Color = "#00ff00"

		got := TemplateIntoCategoryDraft(draft, cat, linking, 3)
		assert.True(t, got.LinksTemplate(3))
		assert.Equal(t, "#00ff00", got.Color)
		assert.False(t, draft.LinksTemplate(3))
	})

	t.Run("unlink follows the template", func(t *testing.T) {
		base := testutil.NewTestCategory(5, "Skill", testutil.WithLinkedTemplates(linking))
		draft := base.Clone()
		draft.Color = "#00ff00"
		unlinking := testutil.NewTestTemplate(3, "Log")

		got := TemplateIntoCategoryDraft(draft, base, unlinking, 3)
		assert.False(t, got.LinksTemplate(3))
	})

	t.Run("local link change wins", func(t *testing.T) {
		base := testutil.NewTestCategory(5, "Skill", testutil.WithLinkedTemplates(linking))
		draft := base.Clone()
		draft.Templates = nil
		renamed := testutil.NewTestTemplate(3, "Weekly log", testutil.WithLinkedCategories(cat))

		got := TemplateIntoCategoryDraft(draft, base, renamed, 3)
		assert.False(t, got.LinksTemplate(3))
	})
}

func TestCategoryIntoTemplateDraft(t *testing.T) {
	tmpl := testutil.NewTestTemplate(3, "Log")
	linking := testutil.NewTestCategory(42, "Skill", testutil.WithLinkedTemplates(tmpl))

	draft := tmpl.Clone()
	draft.PresetOnly = true
	got := CategoryIntoTemplateDraft(draft, tmpl, linking, domain.NewID)
	assert.Equal(t, []int{42}, categoryRefIDs(got))
	assert.True(t, got.PresetOnly)

	linkedLocally := tmpl.Clone()
	linkedLocally.Categories = []domain.CategorySummary{{ID: 42, Name: domain.StrPtr("Old name")}}
	renamed := testutil.NewTestCategory(42, "Renamed")
	got = CategoryIntoTemplateDraft(linkedLocally, tmpl, renamed, 42)
	require.Len(t, got.Categories, 1)
	assert.Equal(t, "Renamed", domain.StrValue(got.Categories[0].Name))
}
