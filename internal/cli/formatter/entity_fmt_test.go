package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/ejournal/internal/domain"
	"github.com/alexanderramin/ejournal/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "Today"},
		{"tomorrow", now.Add(24 * time.Hour), "Tomorrow"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days future", now.Add(3 * 24 * time.Hour), "In 3d"},
		{"3 weeks future", now.Add(21 * 24 * time.Hour), "In 3w"},
		{"3 months past", now.Add(-90 * 24 * time.Hour), "3mo ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2021-10-01T12:00:00", "2021-10-01T12:00", "2021-10-01", "2021-10-01T12:00:00Z"} {
		got, ok := ParseDate(s)
		assert.True(t, ok, s)
		assert.Equal(t, 2021, got.Year())
	}
	_, ok := ParseDate("next week")
	assert.False(t, ok)
}

func TestSwatch_InvalidColor(t *testing.T) {
	assert.True(t, validHex("#ff0000"))
	assert.True(t, validHex("#f00"))
	assert.False(t, validHex("red"))
	assert.False(t, validHex("#gg0000"))
}

func TestFormatCategoryList(t *testing.T) {
	tmpl := testutil.NewTestTemplate(3, "Log")
	out := FormatCategoryList([]domain.Category{
		testutil.NewTestCategory(1, "Skill", testutil.WithLinkedTemplates(tmpl)),
		testutil.NewTestCategory(2, ""),
	}, map[int]bool{1: true})

	assert.Contains(t, out, "CATEGORIES")
	assert.Contains(t, out, "Skill")
	assert.Contains(t, out, "Log")
	assert.Contains(t, out, "unnamed category")
}

func TestFormatTemplateList(t *testing.T) {
	skill := testutil.NewTestCategory(1, "Skill")
	out := FormatTemplateList([]domain.Template{
		testutil.NewTestTemplate(3, "Log", testutil.WithLinkedCategories(skill)),
		testutil.NewTestTemplate(4, "Reflection", testutil.WithPresetOnly()),
	}, nil)

	assert.Contains(t, out, "TEMPLATES")
	assert.Contains(t, out, "Reflection")
	assert.Contains(t, out, "preset only")
	assert.Contains(t, out, "Skill")
}

func TestFormatPresetList(t *testing.T) {
	now := time.Date(2021, 9, 28, 12, 0, 0, 0, time.UTC)
	tmpl := testutil.NewTestTemplate(3, "Log")
	out := FormatPresetList([]domain.PresetNode{
		testutil.NewTestDeadline(9, "2021-10-01T12:00:00", &tmpl),
		testutil.NewTestProgressNode(10, "2021-12-01", 5),
	}, now)

	assert.Contains(t, out, "deadline")
	assert.Contains(t, out, "Log deadline")
	assert.Contains(t, out, "In 3d")
	assert.Contains(t, out, "5 points")
}

func TestFormatAssignment(t *testing.T) {
	now := time.Date(2021, 9, 28, 12, 0, 0, 0, time.UTC)
	out := FormatAssignment(testutil.NewTestAssignment(7, "Portfolio"), 2, 3, 1, 0, now)

	assert.Contains(t, out, "Portfolio (2021 - 2022)")
	assert.Contains(t, out, "Unpublished")
	assert.Contains(t, out, "2 categories, 3 templates, 1 preset nodes, 0 rubrics")
}

func TestFormatPendingChanges(t *testing.T) {
	assert.Contains(t, FormatPendingChanges(nil), "No unsaved changes")

	out := FormatPendingChanges([]string{`category "Skill" has unsaved changes`})
	assert.Contains(t, out, `category "Skill" has unsaved changes`)
}
