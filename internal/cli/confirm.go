package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/ejournal/internal/cli/formatter"
	"github.com/alexanderramin/ejournal/internal/editor"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// huhTheme returns a huh theme using the formatter palette.
func huhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorYellow)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	return t
}

// confirmForm creates a huh form for a yes/no confirmation.
func confirmForm(title string, lines []string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(strings.Join(lines, "\n")).
				Affirmative("Discard").
				Negative("Keep").
				Value(result),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)
}

// NewConfirmer asks through a huh prompt on a terminal. Elsewhere it
// prints the pending changes to out and keeps them.
func NewConfirmer(interactive func() bool, out io.Writer) editor.Confirmer {
	return editor.ConfirmFunc(func(ctx context.Context, title string, lines []string) (bool, error) {
		if interactive == nil || !interactive() {
			fmt.Fprintln(out, formatter.FormatPendingChanges(lines))
			return false, nil
		}
		var discard bool
		if err := confirmForm(title, lines, &discard).RunWithContext(ctx); err != nil {
			return false, fmt.Errorf("asking to discard changes: %w", err)
		}
		return discard, nil
	})
}
