// Package tracker holds the workout controller: it validates form input,
// keeps the in-memory workout list, mirrors it onto the map and the sidebar
// list, and persists it to key-value storage.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/mapty/internal/config"
	"github.com/alexanderramin/mapty/internal/domain"
	"github.com/alexanderramin/mapty/internal/geo"
	"github.com/alexanderramin/mapty/internal/storage"
)

var (
	// ErrInvalidInput is returned by Submit when a numeric field is not a
	// finite number or is out of range for the workout type.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoLocation is returned by Submit when no map position has been
	// picked, i.e. the form was never opened by a map click.
	ErrNoLocation = errors.New("no location selected")
)

// InvalidInputMessage is the alert text shown for rejected submissions.
const InvalidInputMessage = "Invalid input"

// Popup geometry for workout markers, in pixels.
const (
	popupMaxWidth = 250
	popupMinWidth = 100
)

// moveToDuration is the pan duration when a list entry is selected.
const moveToDuration = time.Second

// Deps are the collaborators of a Controller. Maps, Form, List and Alerter
// are required for the interactive surface; Errors, Reloader and Locator
// may be nil.
type Deps struct {
	Maps     MapFactory
	Form     EntryForm
	List     WorkoutList
	Alerter  Alerter
	Errors   ErrorReporter
	Reloader Reloader
	Locator  geo.Locator
	Store    storage.KeyValueStore
	Logger   *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces time.Now for workout creation.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithZoom sets the zoom used for the initial view and for MoveTo.
func WithZoom(zoom int) Option {
	return func(c *Controller) { c.zoom = zoom }
}

// WithTileLayer sets the tile URL template and its attribution.
func WithTileLayer(urlTemplate, attribution string) Option {
	return func(c *Controller) {
		c.tileURL = urlTemplate
		c.attribution = attribution
	}
}

// WithObserver replaces the default log observer.
func WithObserver(obs UseCaseObserver) Option {
	return func(c *Controller) { c.observer = obs }
}

// Controller is the application core. All methods must be called from the
// same goroutine (the UI update loop).
type Controller struct {
	maps     MapFactory
	form     EntryForm
	list     WorkoutList
	alerter  Alerter
	reporter ErrorReporter
	reloader Reloader
	locator  geo.Locator
	store    storage.KeyValueStore
	logger   *slog.Logger
	observer UseCaseObserver

	now         func() time.Time
	zoom        int
	tileURL     string
	attribution string

	ctx      context.Context
	started  bool
	view     MapDisplay
	pending  *domain.Coords
	workouts []*domain.Workout
}

// New builds a controller. Nothing happens until Start.
func New(deps Deps, opts ...Option) *Controller {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &Controller{
		maps:        deps.Maps,
		form:        deps.Form,
		list:        deps.List,
		alerter:     deps.Alerter,
		reporter:    deps.Errors,
		reloader:    deps.Reloader,
		locator:     deps.Locator,
		store:       deps.Store,
		logger:      logger,
		now:         time.Now,
		zoom:        config.DefaultZoom,
		tileURL:     config.DefaultTileURL,
		attribution: config.DefaultAttribution,
		ctx:         context.Background(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.observer == nil {
		c.observer = NewLogUseCaseObserver(logger)
	}
	return c
}

// Start subscribes the form and list handlers and loads persisted workouts.
// Handlers are registered on the first call only. The position lookup is
// separate (RequestPosition) because it blocks.
func (c *Controller) Start(ctx context.Context) error {
	if c.started {
		return nil
	}
	c.started = true
	c.ctx = ctx

	if c.form != nil {
		c.form.OnSubmit(c.submitFromForm)
		c.form.OnTypeChange(c.ToggleMetricField)
	}
	if c.list != nil {
		c.list.OnSelect(c.MoveTo)
	}
	return c.Load(ctx)
}

// RequestPosition performs the one-shot position lookup. It may block and
// is meant to run off the update loop; feed the result to HandlePosition.
func (c *Controller) RequestPosition(ctx context.Context) (geo.Position, error) {
	if c.locator == nil {
		return geo.Position{}, geo.ErrUnavailable
	}
	return c.locator.CurrentPosition(ctx)
}

// HandlePosition applies a lookup result. A failed lookup leaves the map
// uninitialized.
func (c *Controller) HandlePosition(pos geo.Position, err error) {
	if err != nil {
		c.logger.Warn("could not get your position", "error", err)
		return
	}
	c.LoadMap(pos.Coords())
}

// MapLoaded reports whether LoadMap has run.
func (c *Controller) MapLoaded() bool { return c.view != nil }

// LoadMap creates the map centered on coords, subscribes map clicks and
// draws markers for every workout already in memory. Later calls are
// ignored.
func (c *Controller) LoadMap(coords domain.Coords) {
	if c.view != nil || c.maps == nil {
		return
	}
	startedAt := time.Now()
	fields := map[string]any{"center": coords.String(), "zoom": c.zoom}
	defer c.observe(c.ctx, "load_map", startedAt, fields, nil)

	c.view = c.maps.NewMap(coords, c.zoom)
	c.view.AddTileLayer(c.tileURL, c.attribution)
	c.view.OnClick(c.ShowForm)
	for _, w := range c.workouts {
		c.renderMarker(w)
	}
	fields["markers"] = len(c.workouts)
}

// ShowForm remembers the clicked position and opens the form.
func (c *Controller) ShowForm(at domain.Coords) {
	c.pending = &at
	if c.form != nil {
		c.form.Show()
		c.form.FocusDistance()
	}
}

// PendingCoords returns the position picked by the last map click.
func (c *Controller) PendingCoords() (domain.Coords, bool) {
	if c.pending == nil {
		return domain.Coords{}, false
	}
	return *c.pending, true
}

// ToggleMetricField swaps cadence and elevation gain on the form.
func (c *Controller) ToggleMetricField() {
	if c.form != nil {
		c.form.ToggleMetricField()
	}
}

// CancelForm closes the form without logging anything.
func (c *Controller) CancelForm() {
	c.hideForm()
}

func (c *Controller) hideForm() {
	c.pending = nil
	if c.form != nil {
		c.form.Hide()
		c.form.Reset()
	}
}

// Submit validates the form and logs a new workout. On invalid input the
// user is alerted, ErrInvalidInput is returned and nothing changes. A
// storage failure is returned after the workout has been added to memory
// and drawn.
func (c *Controller) Submit(ctx context.Context) (w *domain.Workout, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { c.observe(ctx, "submit_workout", startedAt, fields, &err) }()

	if c.pending == nil {
		return nil, ErrNoLocation
	}
	coords := *c.pending

	v := c.form.Values()
	fields["type"] = string(v.Kind)
	distance := parseNumber(v.Distance)
	duration := parseNumber(v.Duration)

	switch v.Kind {
	case domain.KindRunning:
		cadence := parseNumber(v.Cadence)
		if !allFinite(distance, duration, cadence) || !allPositive(distance, duration, cadence) {
			return nil, c.rejectInput(v.Kind)
		}
		w = domain.NewRunning(coords, distance, duration, cadence, c.now())
	case domain.KindCycling:
		elevation := parseNumber(v.ElevationGain)
		if !allFinite(distance, duration, elevation) || !allPositive(distance, duration) {
			return nil, c.rejectInput(v.Kind)
		}
		w = domain.NewCycling(coords, distance, duration, elevation, c.now())
	default:
		return nil, c.rejectInput(v.Kind)
	}

	c.workouts = append(c.workouts, w)
	recordLogged(w.Kind)
	recordCount(len(c.workouts))
	fields["id"] = w.ID

	c.renderMarker(w)
	if c.list != nil {
		c.list.Render(w)
	}
	c.hideForm()

	if err := c.Persist(ctx); err != nil {
		return w, err
	}
	return w, nil
}

// submitFromForm is the form's submit handler. Invalid input has already
// been alerted; any other failure goes to the error reporter.
func (c *Controller) submitFromForm() {
	_, err := c.Submit(c.ctx)
	if err == nil || errors.Is(err, ErrInvalidInput) {
		return
	}
	if c.reporter != nil {
		c.reporter.ReportError(err)
	}
}

func (c *Controller) rejectInput(kind domain.WorkoutKind) error {
	recordInvalid(kind)
	if c.alerter != nil {
		c.alerter.Alert(InvalidInputMessage)
	}
	return ErrInvalidInput
}

func (c *Controller) renderMarker(w *domain.Workout) {
	if c.view == nil {
		return
	}
	c.view.AddMarker(w.Coords, PopupFor(w))
}

// PopupFor returns the marker popup shown for w.
func PopupFor(w *domain.Workout) Popup {
	return Popup{
		Content:   fmt.Sprintf("%s %s", w.Kind.Emoji(), w.Description),
		ClassName: string(w.Kind) + "-popup",
		MaxWidth:  popupMaxWidth,
		MinWidth:  popupMinWidth,
	}
}

// MoveTo pans the map to the workout with the given id. Unknown ids and a
// missing map are ignored.
func (c *Controller) MoveTo(id string) {
	if c.view == nil {
		return
	}
	w := c.find(id)
	if w == nil {
		return
	}
	c.view.SetView(w.Coords, c.zoom, ViewOptions{Animate: true, PanDuration: moveToDuration})
}

func (c *Controller) find(id string) *domain.Workout {
	for _, w := range c.workouts {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// Persist writes the whole workout list to storage.
func (c *Controller) Persist(ctx context.Context) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"count": len(c.workouts)}
	defer func() { c.observe(ctx, "persist_workouts", startedAt, fields, &err) }()

	if c.store == nil {
		return nil
	}
	raw, err := encodeWorkouts(c.workouts)
	if err != nil {
		recordPersistError()
		return fmt.Errorf("persisting workouts: %w", err)
	}
	if err := c.store.Set(ctx, storageKey, raw); err != nil {
		recordPersistError()
		return fmt.Errorf("persisting workouts: %w", err)
	}
	return nil
}

// Load replaces the in-memory list with the stored one and renders list
// entries. Markers are drawn later by LoadMap. Absent or malformed data is
// treated as no data.
func (c *Controller) Load(ctx context.Context) (err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { c.observe(ctx, "load_workouts", startedAt, fields, &err) }()

	if c.store == nil {
		return nil
	}
	raw, err := c.store.Get(ctx, storageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading workouts: %w", err)
	}

	ws, derr := decodeWorkouts(raw, c.logger)
	if derr != nil {
		c.logger.Warn("ignoring stored workouts", "error", derr)
		return nil
	}
	if len(ws) == 0 {
		return nil
	}

	c.workouts = ws
	recordCount(len(ws))
	fields["count"] = len(ws)
	if c.list != nil {
		for _, w := range ws {
			c.list.Render(w)
		}
	}
	return nil
}

// Reset deletes all stored workouts and restarts the interface empty.
func (c *Controller) Reset(ctx context.Context) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"count": len(c.workouts)}
	defer func() { c.observe(ctx, "reset", startedAt, fields, &err) }()

	if c.store != nil {
		if err := c.store.Remove(ctx, storageKey); err != nil {
			return fmt.Errorf("removing workouts: %w", err)
		}
	}
	c.workouts = nil
	recordCount(0)
	if c.reloader != nil {
		c.reloader.Reload()
	}
	return nil
}

// Workouts returns a copy of the in-memory list in creation order.
func (c *Controller) Workouts() []*domain.Workout {
	out := make([]*domain.Workout, len(c.workouts))
	copy(out, c.workouts)
	return out
}
