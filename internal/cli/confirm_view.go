package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// confirmDoneMsg carries the answer of a confirmView back to the app model.
type confirmDoneMsg struct {
	ok bool
}

// confirmView wraps a huh confirm field shown as an overlay. Escape
// answers no.
type confirmView struct {
	form   *huh.Form
	answer *bool
}

func newConfirmView(title, description string) *confirmView {
	answer := new(bool)
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Description(description).
			Affirmative("Delete").
			Negative("Keep").
			Value(answer),
	)).WithTheme(maptyHuhTheme()).WithShowHelp(false)
	return &confirmView{form: form, answer: answer}
}

func (v *confirmView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *confirmView) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return v.done(false)
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	switch v.form.State {
	case huh.StateCompleted:
		return tea.Batch(cmd, v.done(*v.answer))
	case huh.StateAborted:
		return v.done(false)
	}
	return cmd
}

func (v *confirmView) done(ok bool) tea.Cmd {
	return func() tea.Msg { return confirmDoneMsg{ok: ok} }
}

func (v *confirmView) View() string {
	return v.form.View()
}

func (v *confirmView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←→", "choose")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}
