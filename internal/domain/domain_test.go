package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual_NilAndEmptyDescriptionAreEqual(t *testing.T) {
	orig := Category{ID: 1, Name: StrPtr("Reflection"), Description: nil, Color: "#ff0000"}
	edited := orig.Clone()
	edited.Description = StrPtr("")

	assert.True(t, Equal(orig, edited))
}

func TestEqual_NilAndEmptySlicesAreEqual(t *testing.T) {
	a := Template{ID: 3, Name: "Log", Categories: nil}
	b := Template{ID: 3, Name: "Log", Categories: []CategorySummary{}}

	assert.True(t, Equal(a, b))
}

func TestEqual_DetectsChangedField(t *testing.T) {
	orig := Category{ID: 1, Name: StrPtr("Reflection"), Color: "#ff0000"}
	edited := orig.Clone()
	edited.Color = "#00ff00"

	assert.False(t, Equal(orig, edited))
	assert.Contains(t, Diff(orig, edited), "Color")
}

func TestCategoryClone_IsIndependent(t *testing.T) {
	orig := Category{
		ID:        1,
		Name:      StrPtr("Reflection"),
		Templates: []TemplateSummary{{ID: 3, Name: "Log"}},
	}
	c := orig.Clone()
	*c.Name = "Changed"
	c.Templates[0].Name = "Changed"
	c.Templates = append(c.Templates, TemplateSummary{ID: 4})

	assert.Equal(t, "Reflection", *orig.Name)
	assert.Equal(t, "Log", orig.Templates[0].Name)
	assert.Len(t, orig.Templates, 1)
}

func TestTemplateClone_IsIndependent(t *testing.T) {
	grade := 5.0
	orig := Template{
		ID:           3,
		Name:         "Log",
		DefaultGrade: &grade,
		FieldSet:     []Field{{ID: 1, Title: "Body", Description: StrPtr("desc")}},
		Categories:   []CategorySummary{{ID: 42, Color: "#ff0000"}},
	}
	c := orig.Clone()
	*c.DefaultGrade = 7
	*c.FieldSet[0].Description = "other"
	c.Categories[0].Color = "#000000"

	assert.Equal(t, 5.0, *orig.DefaultGrade)
	assert.Equal(t, "desc", *orig.FieldSet[0].Description)
	assert.Equal(t, "#ff0000", orig.Categories[0].Color)
	assert.True(t, Equal(orig, orig.Clone()))
}

func TestPresetNodeClone_SharesTemplateSnapshot(t *testing.T) {
	tmpl := &Template{ID: 3, Name: "Log"}
	orig := PresetNode{ID: 9, Type: PresetDeadline, Template: tmpl, Description: StrPtr("Week 1")}
	c := orig.Clone()

	assert.Same(t, tmpl, c.Template)
	*c.Description = "Week 2"
	assert.Equal(t, "Week 1", *orig.Description)
}

func TestRubricClone_IsIndependent(t *testing.T) {
	orig := Rubric{ID: 1, Name: "R", Criteria: []Criterion{{ID: 1, Levels: []Level{{ID: 1, Points: 2}}}}}
	c := orig.Clone()
	c.Criteria[0].Levels[0].Points = 10

	assert.Equal(t, 2.0, orig.Criteria[0].Levels[0].Points)
}

func TestRubricMaxPoints(t *testing.T) {
	r := Rubric{Criteria: []Criterion{
		{Levels: []Level{{Points: 1}, {Points: 3}}},
		{Levels: []Level{{Points: 2}}},
		{},
	}}
	assert.Equal(t, 5.0, r.MaxPoints())
}

func TestSummaries_DropRelationalFields(t *testing.T) {
	cat := Category{ID: 42, Name: StrPtr("Skill"), Color: "#ff0000", Templates: []TemplateSummary{{ID: 3}}}
	assert.Equal(t, CategorySummary{ID: 42, Name: StrPtr("Skill"), Color: "#ff0000"}, cat.Summary())

	tmpl := Template{ID: 3, Name: "Log", AllowCustomCategories: true, FieldSet: []Field{{ID: 1}}}
	assert.Equal(t, TemplateSummary{ID: 3, Name: "Log"}, tmpl.Summary())
}

func TestDisplayName_Placeholders(t *testing.T) {
	assert.Equal(t, "unnamed category", Category{}.DisplayName())
	assert.Equal(t, "unnamed category", Category{Name: StrPtr("  ")}.DisplayName())
	assert.Equal(t, "Skill", Category{Name: StrPtr("Skill")}.DisplayName())
	assert.Equal(t, "unnamed template", Template{}.DisplayName())
	assert.Equal(t, "Log deadline", PresetNode{Type: PresetDeadline, Template: &Template{Name: "Log"}}.DisplayName())
	assert.Equal(t, "preset node due 2021-01-01", PresetNode{Type: PresetProgress, DueDate: "2021-01-01"}.DisplayName())
}

func TestAssignmentDisplayWithDates(t *testing.T) {
	cases := []struct {
		name string
		a    Assignment
		want string
	}{
		{"no dates", Assignment{Name: "Portfolio"}, "Portfolio"},
		{"unlock only", Assignment{Name: "Portfolio", UnlockDate: StrPtr("2020-09-01T00:00")}, "Portfolio (2020)"},
		{"unlock and due", Assignment{Name: "Portfolio", UnlockDate: StrPtr("2020-09-01"), DueDate: StrPtr("2021-06-01")}, "Portfolio (2020 - 2021)"},
		{"lock fallback", Assignment{Name: "Portfolio", LockDate: StrPtr("2022-01-01")}, "Portfolio (2022)"},
		{"due beats lock", Assignment{Name: "Portfolio", UnlockDate: StrPtr("2020"), DueDate: StrPtr("2021"), LockDate: StrPtr("2022")}, "Portfolio (2020 - 2021)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.DisplayWithDates())
		})
	}
}

func TestLinkHelpers(t *testing.T) {
	cat := Category{Templates: []TemplateSummary{{ID: 3}, {ID: 5}}}
	require.True(t, cat.LinksTemplate(5))
	assert.False(t, cat.LinksTemplate(4))
	assert.Equal(t, []int{3, 5}, cat.TemplateIDs())

	tmpl := Template{Categories: []CategorySummary{{ID: 42}}}
	assert.True(t, tmpl.LinksCategory(42))
	assert.Equal(t, []int{42}, tmpl.CategoryIDs())
}

func TestUserLoggedIn(t *testing.T) {
	assert.False(t, User{}.LoggedIn())
	assert.False(t, User{ID: 1}.LoggedIn())
	assert.True(t, User{ID: 1, Token: "abc"}.LoggedIn())
}

func TestPresetNodeSortName(t *testing.T) {
	node := PresetNode{ID: 1, Type: PresetProgress, DueDate: "2021-10-01T00:00:00", Description: StrPtr("Zulu")}
	assert.Equal(t, "2021-10-01T00:00:00", node.SortName())

	node.DueDate = ""
	assert.Equal(t, "Zulu", node.SortName())
}
