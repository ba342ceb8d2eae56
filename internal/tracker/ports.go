package tracker

import (
	"time"

	"github.com/alexanderramin/mapty/internal/domain"
)

// MapFactory creates the map once a position is known.
type MapFactory interface {
	NewMap(center domain.Coords, zoom int) MapDisplay
}

// ViewOptions control how MapDisplay.SetView moves the viewport.
type ViewOptions struct {
	Animate     bool
	PanDuration time.Duration
}

// Popup describes the label bound to a workout marker. Widths are in pixels.
type Popup struct {
	Content      string
	ClassName    string
	MaxWidth     int
	MinWidth     int
	AutoClose    bool
	CloseOnClick bool
}

// MapDisplay is the map surface the controller drives.
type MapDisplay interface {
	SetView(center domain.Coords, zoom int, opts ViewOptions)
	OnClick(fn func(domain.Coords))
	AddTileLayer(urlTemplate, attribution string)
	// AddMarker places a marker and opens its popup immediately.
	AddMarker(at domain.Coords, popup Popup)
}

// FormValues are the raw contents of the entry form. Numeric fields are
// left as typed; the controller parses them.
type FormValues struct {
	Kind          domain.WorkoutKind
	Distance      string
	Duration      string
	Cadence       string
	ElevationGain string
}

// EntryForm is the workout entry form.
type EntryForm interface {
	Show()
	Hide()
	FocusDistance()
	// ToggleMetricField swaps the visible metric input between cadence
	// and elevation gain.
	ToggleMetricField()
	Values() FormValues
	// Reset clears the inputs.
	Reset()
	OnSubmit(fn func())
	OnTypeChange(fn func())
}

// WorkoutList is the sidebar list of logged workouts.
type WorkoutList interface {
	// Render adds one entry directly below the form.
	Render(w *domain.Workout)
	Clear()
	OnSelect(fn func(id string))
}

// Alerter shows a blocking message to the user.
type Alerter interface {
	Alert(msg string)
}

// ErrorReporter shows failures that are not the user's fault, such as a
// workout that could not be saved.
type ErrorReporter interface {
	ReportError(err error)
}

// Reloader restarts the interface in its initial empty state.
type Reloader interface {
	Reload()
}
