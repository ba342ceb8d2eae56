package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/mapty/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// DetailItems returns the icon/value/unit groups shown under a workout
// title: distance, duration, then pace and cadence for running or speed and
// elevation gain for cycling.
func DetailItems(w *domain.Workout) []string {
	items := []string{
		fmt.Sprintf("%s %s km", w.Kind.Emoji(), FormatNumber(w.Distance)),
		fmt.Sprintf("⏱ %s min", FormatNumber(w.Duration)),
	}
	switch w.Kind {
	case domain.KindRunning:
		items = append(items,
			fmt.Sprintf("⚡️ %s min/km", FormatFixed1(w.Pace)),
			fmt.Sprintf("🦶🏼 %s spm", FormatNumber(w.Cadence)),
		)
	case domain.KindCycling:
		items = append(items,
			fmt.Sprintf("⚡️ %s km/h", FormatFixed1(w.Speed)),
			fmt.Sprintf("⛰ %s m", FormatNumber(w.ElevationGain)),
		)
	}
	return items
}

// FormatWorkoutEntry renders one sidebar list entry: a colored bar on the
// left, the description as title and the detail groups underneath. Width
// is the total width including the bar; 0 means unconstrained.
func FormatWorkoutEntry(w *domain.Workout, width int, selected bool) string {
	title := StyleBold.Render(w.Description)
	if selected {
		title = KindStyle(w.Kind).Bold(true).Render("▸ " + w.Description)
	}
	items := DetailItems(w)
	body := title + "\n" + strings.Join(items[:2], "  ")
	if len(items) > 2 {
		body += "\n" + strings.Join(items[2:], "  ")
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(KindColor(w.Kind)).
		PaddingLeft(1)
	if selected {
		style = style.Background(ColorPanel)
	}
	if width > 2 {
		style = style.Width(width - 1)
	}
	return style.Render(body)
}

// FormatWorkoutTable renders workouts newest first for the list command.
func FormatWorkoutTable(ws []*domain.Workout, now time.Time) string {
	if len(ws) == 0 {
		return Dim("No workouts yet. Open mapty and click the map to log one.") + "\n"
	}

	cols := []Column{
		{Title: "ID"},
		{Title: "WHEN"},
		{Title: "TYPE"},
		{Title: "DISTANCE", Right: true},
		{Title: "DURATION", Right: true},
		{Title: "PACE/SPEED", Right: true},
		{Title: "CADENCE/ELEV", Right: true},
		{Title: "WHERE"},
	}
	rows := make([][]string, 0, len(ws))
	for i := len(ws) - 1; i >= 0; i-- {
		w := ws[i]
		var metric, extra string
		if w.Kind == domain.KindRunning {
			metric = FormatFixed1(w.Pace) + " min/km"
			extra = FormatNumber(w.Cadence) + " spm"
		} else {
			metric = FormatFixed1(w.Speed) + " km/h"
			extra = FormatNumber(w.ElevationGain) + " m"
		}
		rows = append(rows, []string{
			Dim(w.ID),
			RelativeDateFrom(w.Date, now),
			KindBadge(w.Kind),
			FormatNumber(w.Distance) + " km",
			FormatNumber(w.Duration) + " min",
			metric,
			extra,
			Dim(w.Coords.String()),
		})
	}

	return Header(fmt.Sprintf("Workouts (%d)", len(ws))) + "\n" + RenderTable(cols, rows)
}

// FormatLogged is the confirmation printed after a workout is logged from
// the command line.
func FormatLogged(w *domain.Workout) string {
	return fmt.Sprintf("%s Logged %s %s\n  %s\n",
		StyleGreen.Render("✔"),
		Bold(w.Description),
		Dim("("+w.ID+")"),
		strings.Join(DetailItems(w), "  "))
}
