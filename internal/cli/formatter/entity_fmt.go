package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/ejournal/internal/domain"
)

// FormatAssignment renders the assignment header with counts of its
// loaded collections.
func FormatAssignment(a domain.Assignment, categories, templates, presets, rubrics int, now time.Time) string {
	var b strings.Builder
	b.WriteString(Bold(a.DisplayWithDates()))
	b.WriteString("  ")
	b.WriteString(Published(a.IsPublished))
	b.WriteString("\n")
	if d := strings.TrimSpace(domain.StrValue(a.Description)); d != "" {
		b.WriteString(Dim(d))
		b.WriteString("\n")
	}
	if a.PointsPossible != nil {
		fmt.Fprintf(&b, "Points: %s\n", strconv.FormatFloat(*a.PointsPossible, 'f', -1, 64))
	}
	if a.UnlockDate != nil {
		fmt.Fprintf(&b, "Unlock: %s\n", DueLabel(*a.UnlockDate, now))
	}
	if a.DueDate != nil {
		fmt.Fprintf(&b, "Due:    %s\n", DueLabel(*a.DueDate, now))
	}
	if a.LockDate != nil {
		fmt.Fprintf(&b, "Lock:   %s\n", DueLabel(*a.LockDate, now))
	}
	fmt.Fprintf(&b, "%d categories, %d templates, %d preset nodes, %d rubrics",
		categories, templates, presets, rubrics)
	return RenderBox(fmt.Sprintf("assignment %d", a.ID), b.String())
}

// FormatCategoryList renders categories with their linked templates.
// dirty marks ids with unsaved drafts.
func FormatCategoryList(categories []domain.Category, dirty map[int]bool) string {
	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		names := make([]string, 0, len(c.Templates))
		for _, t := range c.Templates {
			names = append(names, t.Name)
		}
		rows = append(rows, []string{
			DirtyMarker(dirty[c.ID]) + strconv.Itoa(c.ID),
			Swatch(c.Color) + " " + c.DisplayName(),
			Dim(strings.Join(names, ", ")),
		})
	}
	return Header("Categories") + "\n" + RenderTable([]string{"ID", "NAME", "TEMPLATES"}, rows)
}

// FormatTemplateList renders templates with their field count and
// categories.
func FormatTemplateList(templates []domain.Template, dirty map[int]bool) string {
	rows := make([][]string, 0, len(templates))
	for _, t := range templates {
		names := make([]string, 0, len(t.Categories))
		for _, c := range t.Categories {
			names = append(names, domain.StrValue(c.Name))
		}
		flags := ""
		if t.PresetOnly {
			flags = StylePurple.Render("preset only")
		}
		if t.Archived {
			flags = StyleDim.Render("archived")
		}
		rows = append(rows, []string{
			DirtyMarker(dirty[t.ID]) + strconv.Itoa(t.ID),
			t.DisplayName(),
			strconv.Itoa(len(t.FieldSet)),
			flags,
			Dim(strings.Join(names, ", ")),
		})
	}
	return Header("Templates") + "\n" + RenderTable([]string{"ID", "NAME", "FIELDS", "FLAGS", "CATEGORIES"}, rows)
}

// FormatPresetList renders the preset nodes of the timeline.
func FormatPresetList(nodes []domain.PresetNode, now time.Time) string {
	rows := make([][]string, 0, len(nodes))
	for _, n := range nodes {
		kind := "progress"
		detail := ""
		if n.IsDeadline() {
			kind = "deadline"
			if n.Template != nil {
				detail = n.Template.DisplayName()
			}
		} else if n.Target != nil {
			detail = strconv.FormatFloat(*n.Target, 'f', -1, 64) + " points"
		}
		rows = append(rows, []string{
			strconv.Itoa(n.ID),
			kind,
			n.DisplayName(),
			DueLabel(n.DueDate, now),
			Dim(detail),
		})
	}
	return Header("Timeline") + "\n" + RenderTable([]string{"ID", "TYPE", "NAME", "DUE", "DETAIL"}, rows)
}

// FormatRubricList renders rubrics with their criteria count and maximum.
func FormatRubricList(rubrics []domain.Rubric) string {
	rows := make([][]string, 0, len(rubrics))
	for _, r := range rubrics {
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			r.DisplayName(),
			strconv.Itoa(len(r.Criteria)),
			strconv.FormatFloat(r.MaxPoints(), 'f', -1, 64),
		})
	}
	return Header("Rubrics") + "\n" + RenderTable([]string{"ID", "NAME", "CRITERIA", "MAX"}, rows)
}

// FormatPendingChanges renders the unsaved drafts as a bullet list.
func FormatPendingChanges(lines []string) string {
	if len(lines) == 0 {
		return Dim("No unsaved changes.")
	}
	var b strings.Builder
	b.WriteString(StyleYellow.Render("Unsaved changes:"))
	for _, l := range lines {
		b.WriteString("\n  • ")
		b.WriteString(l)
	}
	return b.String()
}
