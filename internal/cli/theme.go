package cli

import (
	"github.com/alexanderramin/mapty/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// maptyHuhTheme matches huh prompts to the formatter palette.
func maptyHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorRed).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	return t
}

// confirmPrompt asks a yes/no question on the terminal.
func confirmPrompt(title, description string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Delete").
		Negative("Keep").
		Value(&ok).
		WithTheme(maptyHuhTheme()).
		Run()
	return ok, err
}
