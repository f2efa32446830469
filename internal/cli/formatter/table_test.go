package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"ID", "NAME"}, [][]string{
		{"5", "Skill"},
		{"12", "Reflection", "dropped"},
		{"7"},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)

	assert.True(t, strings.HasPrefix(lines[2], " 5  Skill"), lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "12  Reflection"), lines[3])
	assert.NotContains(t, out, "dropped")
	assert.Equal(t, len([]rune(lines[2])), len([]rune(lines[4])), "short rows are padded")
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}
