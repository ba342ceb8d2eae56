package mapview

import "github.com/charmbracelet/lipgloss"

// Styles control how the pane is drawn. Marker and popup colors are keyed by
// popup class name; unknown classes fall back to Marker and Popup.
type Styles struct {
	Grid        lipgloss.Style
	Cursor      lipgloss.Style
	Marker      lipgloss.Style
	Popup       lipgloss.Style
	Status      lipgloss.Style
	Attribution lipgloss.Style

	ClassMarkers map[string]lipgloss.Style
	ClassPopups  map[string]lipgloss.Style
}

// DefaultStyles uses the same muted palette as the rest of the interface.
func DefaultStyles() Styles {
	green := lipgloss.Color("#8ec07c")
	orange := lipgloss.Color("#fe8019")
	dark := lipgloss.Color("#282828")
	return Styles{
		Grid:        lipgloss.NewStyle().Foreground(lipgloss.Color("#3c3836")),
		Cursor:      lipgloss.NewStyle().Foreground(lipgloss.Color("#fabd2f")).Bold(true),
		Marker:      lipgloss.NewStyle().Foreground(lipgloss.Color("#83a598")),
		Popup:       lipgloss.NewStyle().Foreground(dark).Background(lipgloss.Color("#ebdbb2")),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("#928374")),
		Attribution: lipgloss.NewStyle().Foreground(lipgloss.Color("#665c54")).Italic(true),
		ClassMarkers: map[string]lipgloss.Style{
			"running-popup": lipgloss.NewStyle().Foreground(green),
			"cycling-popup": lipgloss.NewStyle().Foreground(orange),
		},
		ClassPopups: map[string]lipgloss.Style{
			"running-popup": lipgloss.NewStyle().Foreground(dark).Background(green),
			"cycling-popup": lipgloss.NewStyle().Foreground(dark).Background(orange),
		},
	}
}

func (s Styles) marker(class string) lipgloss.Style {
	if st, ok := s.ClassMarkers[class]; ok {
		return st
	}
	return s.Marker
}

func (s Styles) popup(class string) lipgloss.Style {
	if st, ok := s.ClassPopups[class]; ok {
		return st
	}
	return s.Popup
}
