package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = "  "

// Column is one table column. Right aligns its cells to the right edge.
type Column struct {
	Title string
	Right bool
}

// RenderTable renders rows under headers. ID and count columns are right
// aligned.
func RenderTable(headers []string, rows [][]string) string {
	cols := make([]Column, len(headers))
	for i, h := range headers {
		cols[i] = Column{Title: h, Right: numericHeader(h)}
	}
	return RenderColumns(cols, rows)
}

func numericHeader(h string) bool {
	switch h {
	case "ID", "FIELDS", "CRITERIA", "MAX":
		return true
	}
	return false
}

// RenderColumns renders rows under cols with a rule below the header.
// Missing cells render blank and surplus cells are dropped. Widths are
// measured on the visible text, so styled cells line up.
func RenderColumns(cols []Column, rows [][]string) string {
	if len(cols) == 0 {
		return ""
	}

	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = lipgloss.Width(c.Title)
	}
	for _, row := range rows {
		for i := range cols {
			if i < len(row) {
				widths[i] = max(widths[i], lipgloss.Width(row[i]))
			}
		}
	}

	var b strings.Builder
	writeLine := func(cells []string) {
		for i, c := range cols {
			pos := lipgloss.Left
			if c.Right {
				pos = lipgloss.Right
			}
			if i > 0 {
				b.WriteString(colGap)
			}
			b.WriteString(lipgloss.PlaceHorizontal(widths[i], pos, cells[i]))
		}
		b.WriteString("\n")
	}

	header := make([]string, len(cols))
	rule := make([]string, len(cols))
	for i, c := range cols {
		header[i] = StyleHeader.Render(c.Title)
		rule[i] = StyleDim.Render(strings.Repeat("─", widths[i]))
	}
	writeLine(header)
	writeLine(rule)

	for _, row := range rows {
		cells := make([]string, len(cols))
		copy(cells, row)
		writeLine(cells)
	}
	return b.String()
}
