package cli

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Click   key.Binding
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Focus   key.Binding
	Select  key.Binding
	Reset   key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓←→", "move")),
		Down:    key.NewBinding(key.WithKeys("down", "j")),
		Left:    key.NewBinding(key.WithKeys("left", "h")),
		Right:   key.NewBinding(key.WithKeys("right", "l")),
		Click:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "log here")),
		ZoomIn:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		ZoomOut: key.NewBinding(key.WithKeys("-", "_")),
		Focus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "map/list")),
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "show on map")),
		Reset:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// mapHelp lists the hints shown while the map has focus.
func (k keyMap) mapHelp() []key.Binding {
	return []key.Binding{k.Up, k.Click, k.ZoomIn, k.Focus, k.Reset, k.Quit}
}

func (k keyMap) listHelp() []key.Binding {
	listUp := key.NewBinding(key.WithKeys("up"), key.WithHelp("↑↓", "browse"))
	return []key.Binding{listUp, k.Select, k.Focus, k.Reset, k.Quit}
}

func formHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←→", "type")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "log workout")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}
