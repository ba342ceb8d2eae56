package cli

import (
	"strings"

	"github.com/alexanderramin/mapty/internal/cli/formatter"
	"github.com/alexanderramin/mapty/internal/domain"
	"github.com/alexanderramin/mapty/internal/tracker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type formField int

const (
	fieldType formField = iota
	fieldDistance
	fieldDuration
	fieldMetric
	fieldCount
)

// Indices into entryForm.inputs.
const (
	inputDistance = iota
	inputDuration
	inputCadence
	inputElevation
	inputCount
)

// entryForm is the workout entry panel in the sidebar. It implements
// tracker.EntryForm. The metric row shows cadence or elevation gain
// depending on the last ToggleMetricField, independently of the selected
// type, the same way the two rows are toggled on every type change.
type entryForm struct {
	visible       bool
	kind          domain.WorkoutKind
	showElevation bool
	focus         formField
	inputs        [inputCount]textinput.Model
	width         int

	submitFns []func()
	typeFns   []func()
}

func newEntryForm() *entryForm {
	f := &entryForm{kind: domain.KindRunning, width: 36}
	placeholders := [inputCount]string{"km", "min", "step/min", "meters"}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 12
		ti.Width = 12
		f.inputs[i] = ti
	}
	return f
}

// ── tracker.EntryForm ────────────────────────────────────────────────────────

func (f *entryForm) Show() { f.visible = true }

func (f *entryForm) Hide() {
	f.visible = false
	f.blurAll()
}

func (f *entryForm) FocusDistance() { f.setFocus(fieldDistance) }

func (f *entryForm) ToggleMetricField() {
	f.showElevation = !f.showElevation
}

func (f *entryForm) Values() tracker.FormValues {
	return tracker.FormValues{
		Kind:          f.kind,
		Distance:      f.inputs[inputDistance].Value(),
		Duration:      f.inputs[inputDuration].Value(),
		Cadence:       f.inputs[inputCadence].Value(),
		ElevationGain: f.inputs[inputElevation].Value(),
	}
}

// Reset clears the numeric inputs. The selected type is kept.
func (f *entryForm) Reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
}

func (f *entryForm) OnSubmit(fn func())     { f.submitFns = append(f.submitFns, fn) }
func (f *entryForm) OnTypeChange(fn func()) { f.typeFns = append(f.typeFns, fn) }

// ── input handling ───────────────────────────────────────────────────────────

// metricInput is the input behind the metric row.
func (f *entryForm) metricInput() int {
	if f.showElevation {
		return inputElevation
	}
	return inputCadence
}

func (f *entryForm) inputFor(field formField) int {
	switch field {
	case fieldDistance:
		return inputDistance
	case fieldDuration:
		return inputDuration
	case fieldMetric:
		return f.metricInput()
	}
	return -1
}

func (f *entryForm) blurAll() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

func (f *entryForm) setFocus(field formField) {
	f.blurAll()
	f.focus = field
	if i := f.inputFor(field); i >= 0 {
		f.inputs[i].Focus()
	}
}

func (f *entryForm) selectKind(kind domain.WorkoutKind) {
	if kind == f.kind {
		return
	}
	f.kind = kind
	for _, fn := range f.typeFns {
		fn()
	}
}

func (f *entryForm) submit() {
	for _, fn := range f.submitFns {
		fn()
	}
}

// Update handles a key while the form has focus. Escape is left to the
// caller, which cancels through the controller.
func (f *entryForm) Update(msg tea.KeyMsg) tea.Cmd {
	if !f.visible {
		return nil
	}
	switch msg.String() {
	case "enter":
		f.submit()
		return nil
	case "tab", "down":
		f.setFocus((f.focus + 1) % fieldCount)
		return nil
	case "shift+tab", "up":
		f.setFocus((f.focus + fieldCount - 1) % fieldCount)
		return nil
	}

	if f.focus == fieldType {
		switch msg.String() {
		case "left", "right", " ", "h", "l":
			f.selectKind(f.kind.Other())
		case "r":
			f.selectKind(domain.KindRunning)
		case "c":
			f.selectKind(domain.KindCycling)
		}
		return nil
	}

	i := f.inputFor(f.focus)
	var cmd tea.Cmd
	f.inputs[i], cmd = f.inputs[i].Update(msg)
	return cmd
}

// ── rendering ────────────────────────────────────────────────────────────────

var (
	formLabelStyle = lipgloss.NewStyle().Width(10).Foreground(formatter.ColorDim)
	formFocusStyle = lipgloss.NewStyle().Width(10).Foreground(formatter.ColorYellow).Bold(true)
)

func (f *entryForm) label(field formField, text string) string {
	if f.focus == field {
		return formFocusStyle.Render(text)
	}
	return formLabelStyle.Render(text)
}

func (f *entryForm) typeSelector() string {
	var opts []string
	for _, k := range []domain.WorkoutKind{domain.KindRunning, domain.KindCycling} {
		if k == f.kind {
			opts = append(opts, formatter.KindStyle(k).Bold(true).Render("◉ "+k.Title()))
		} else {
			opts = append(opts, formatter.Dim("○ "+k.Title()))
		}
	}
	return strings.Join(opts, "  ")
}

func (f *entryForm) View() string {
	if !f.visible {
		return ""
	}
	metricLabel := "Cadence"
	if f.showElevation {
		metricLabel = "Elev Gain"
	}
	rows := []string{
		f.label(fieldType, "Type") + f.typeSelector(),
		f.label(fieldDistance, "Distance") + f.inputs[inputDistance].View(),
		f.label(fieldDuration, "Duration") + f.inputs[inputDuration].View(),
		f.label(fieldMetric, metricLabel) + f.inputs[f.metricInput()].View(),
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(formatter.ColorDim).
		Background(formatter.ColorPanel).
		Padding(0, 1)
	if f.width > 4 {
		box = box.Width(f.width - 2)
	}
	return box.Render(strings.Join(rows, "\n"))
}
