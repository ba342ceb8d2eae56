package cli

import (
	"fmt"
	"io"

	"github.com/alexanderramin/mapty/internal/cli/formatter"
	"github.com/alexanderramin/mapty/internal/tracker"
)

// flagForm is the entry form behind `mapty log`: the values come from
// flags and there is nothing to show or hide.
type flagForm struct {
	values tracker.FormValues
}

func (f *flagForm) Show()                      {}
func (f *flagForm) Hide()                      {}
func (f *flagForm) FocusDistance()             {}
func (f *flagForm) ToggleMetricField()         {}
func (f *flagForm) Values() tracker.FormValues { return f.values }
func (f *flagForm) Reset()                     {}
func (f *flagForm) OnSubmit(func())            {}
func (f *flagForm) OnTypeChange(func())        {}

// writerAlerter prints alerts as error lines.
type writerAlerter struct {
	w io.Writer
}

func (a writerAlerter) Alert(msg string) {
	fmt.Fprintln(a.w, formatter.StyleRed.Render("✖ "+msg))
}

// newHeadlessController builds a controller with no map and no list, for
// commands that run outside the interface.
func newHeadlessController(app *App, form tracker.EntryForm, alerter tracker.Alerter) *tracker.Controller {
	return tracker.New(tracker.Deps{
		Form:    form,
		Alerter: alerter,
		Locator: app.Locator,
		Store:   app.Store,
		Logger:  app.logger(),
	}, app.controllerOptions()...)
}
