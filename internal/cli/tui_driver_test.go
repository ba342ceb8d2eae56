package cli

import (
	"testing"

	"github.com/alexanderramin/mapty/internal/domain"
	"github.com/alexanderramin/mapty/internal/mapview"
	"github.com/alexanderramin/mapty/internal/teatest"
)

// TestDriver wraps teatest.Driver with access to appModel internals that
// the generic driver cannot see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the app model, sizes the terminal and drains Init,
// which runs the position lookup against the app's locator.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(app)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// LogWorkout opens the form at the map cursor and fills it in. An empty
// metric leaves the third field blank.
func (d *TestDriver) LogWorkout(distance, duration, metric string) {
	d.T.Helper()
	d.PressEnter()
	d.Type(distance)
	d.PressTab()
	d.Type(duration)
	d.PressTab()
	d.Type(metric)
	d.PressEnter()
}

// ── inspection ───────────────────────────────────────────────────────────────

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

func (d *TestDriver) Map() *mapview.Map {
	p := d.appModel().ws.mapPane
	if p == nil {
		return nil
	}
	return p.m
}

func (d *TestDriver) Focus() focusArea {
	return d.appModel().focus
}

func (d *TestDriver) FormVisible() bool {
	return d.appModel().ws.form.visible
}

func (d *TestDriver) Form() *entryForm {
	return d.appModel().ws.form
}

func (d *TestDriver) List() *workoutList {
	return d.appModel().ws.list
}

func (d *TestDriver) Alert() string {
	return d.appModel().ws.alert
}

func (d *TestDriver) Confirming() bool {
	return d.appModel().confirm != nil
}

func (d *TestDriver) Workouts() []*domain.Workout {
	return d.appModel().ctrl.Workouts()
}

func (d *TestDriver) Pending() (domain.Coords, bool) {
	return d.appModel().ctrl.PendingCoords()
}
