package cli

import (
	"strings"

	"github.com/alexanderramin/mapty/internal/cli/formatter"
	"github.com/alexanderramin/mapty/internal/domain"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// workoutList is the sidebar list. It implements tracker.WorkoutList and
// shows the newest workout on top.
type workoutList struct {
	entries   []*domain.Workout
	cursor    int
	focused   bool
	vp        viewport.Model
	width     int
	selectFns []func(id string)
}

func newWorkoutList() *workoutList {
	vp := viewport.New(36, 10)
	vp.MouseWheelEnabled = true
	return &workoutList{vp: vp, width: 36}
}

// ── tracker.WorkoutList ──────────────────────────────────────────────────────

func (l *workoutList) Render(w *domain.Workout) {
	l.entries = append([]*domain.Workout{w}, l.entries...)
	l.cursor = 0
}

func (l *workoutList) Clear() {
	l.entries = nil
	l.cursor = 0
}

func (l *workoutList) OnSelect(fn func(id string)) {
	l.selectFns = append(l.selectFns, fn)
}

// ── navigation ───────────────────────────────────────────────────────────────

func (l *workoutList) move(delta int) {
	if len(l.entries) == 0 {
		return
	}
	l.cursor = max(0, min(len(l.entries)-1, l.cursor+delta))
}

// selectCurrent fires the select handlers for the entry under the cursor.
func (l *workoutList) selectCurrent() {
	if l.cursor < 0 || l.cursor >= len(l.entries) {
		return
	}
	id := l.entries[l.cursor].ID
	for _, fn := range l.selectFns {
		fn(id)
	}
}

// selectAt selects the entry drawn at the given line of the list pane.
func (l *workoutList) selectAt(line int) bool {
	line += l.vp.YOffset
	top := 0
	for i, w := range l.entries {
		h := lipgloss.Height(l.renderEntry(w, false)) + 1
		if line >= top && line < top+h {
			l.cursor = i
			l.selectCurrent()
			return true
		}
		top += h
	}
	return false
}

func (l *workoutList) setSize(width, height int) {
	l.width = width
	l.vp.Width = width
	l.vp.Height = max(height, 1)
}

// ── rendering ────────────────────────────────────────────────────────────────

func (l *workoutList) renderEntry(w *domain.Workout, selected bool) string {
	return formatter.FormatWorkoutEntry(w, l.width, selected)
}

func (l *workoutList) View() string {
	if len(l.entries) == 0 {
		l.vp.SetContent(formatter.Dim("No workouts yet.\nPick a spot on the map and\npress enter to log one."))
		return l.vp.View()
	}

	var b strings.Builder
	cursorTop, cursorBottom := 0, 0
	line := 0
	for i, w := range l.entries {
		entry := l.renderEntry(w, l.focused && i == l.cursor)
		h := lipgloss.Height(entry)
		if i == l.cursor {
			cursorTop, cursorBottom = line, line+h
		}
		b.WriteString(entry)
		b.WriteString("\n\n")
		line += h + 1
	}
	l.vp.SetContent(strings.TrimRight(b.String(), "\n"))

	if cursorTop < l.vp.YOffset {
		l.vp.SetYOffset(cursorTop)
	} else if cursorBottom > l.vp.YOffset+l.vp.Height {
		l.vp.SetYOffset(cursorBottom - l.vp.Height)
	}
	return l.vp.View()
}
