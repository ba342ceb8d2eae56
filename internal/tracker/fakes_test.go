package tracker

import (
	"context"
	"errors"

	"github.com/alexanderramin/mapty/internal/domain"
	"github.com/alexanderramin/mapty/internal/storage"
)

type fakeMarker struct {
	at    domain.Coords
	popup Popup
}

type fakeView struct {
	center  domain.Coords
	zoom    int
	tileURL string
	attrib  string
	onClick []func(domain.Coords)
	markers []fakeMarker
	views   []ViewOptions
}

func (v *fakeView) SetView(center domain.Coords, zoom int, opts ViewOptions) {
	v.center, v.zoom = center, zoom
	v.views = append(v.views, opts)
}

func (v *fakeView) OnClick(fn func(domain.Coords)) { v.onClick = append(v.onClick, fn) }

func (v *fakeView) AddTileLayer(url, attribution string) {
	v.tileURL, v.attrib = url, attribution
}

func (v *fakeView) AddMarker(at domain.Coords, popup Popup) {
	v.markers = append(v.markers, fakeMarker{at: at, popup: popup})
}

func (v *fakeView) click(at domain.Coords) {
	for _, fn := range v.onClick {
		fn(at)
	}
}

type fakeMaps struct {
	created []*fakeView
}

func (f *fakeMaps) NewMap(center domain.Coords, zoom int) MapDisplay {
	v := &fakeView{center: center, zoom: zoom}
	f.created = append(f.created, v)
	return v
}

func (f *fakeMaps) last() *fakeView {
	if len(f.created) == 0 {
		return nil
	}
	return f.created[len(f.created)-1]
}

type fakeForm struct {
	values    FormValues
	visible   bool
	focused   bool
	toggles   int
	resets    int
	submitFns []func()
	typeFns   []func()
}

func (f *fakeForm) Show()                  { f.visible = true }
func (f *fakeForm) FocusDistance()         { f.focused = true }
func (f *fakeForm) ToggleMetricField()     { f.toggles++ }
func (f *fakeForm) Values() FormValues     { return f.values }
func (f *fakeForm) OnSubmit(fn func())     { f.submitFns = append(f.submitFns, fn) }
func (f *fakeForm) OnTypeChange(fn func()) { f.typeFns = append(f.typeFns, fn) }

func (f *fakeForm) Hide() {
	f.visible = false
	f.focused = false
}

func (f *fakeForm) Reset() {
	f.resets++
	f.values = FormValues{Kind: f.values.Kind}
}

func (f *fakeForm) submit() {
	for _, fn := range f.submitFns {
		fn()
	}
}

func (f *fakeForm) changeType() {
	for _, fn := range f.typeFns {
		fn()
	}
}

type fakeList struct {
	// entries is in display order: newest first.
	entries   []*domain.Workout
	selectFns []func(string)
	clears    int
}

func (l *fakeList) Render(w *domain.Workout) {
	l.entries = append([]*domain.Workout{w}, l.entries...)
}

func (l *fakeList) OnSelect(fn func(id string)) { l.selectFns = append(l.selectFns, fn) }

func (l *fakeList) Clear() {
	l.clears++
	l.entries = nil
}

func (l *fakeList) selectID(id string) {
	for _, fn := range l.selectFns {
		fn(id)
	}
}

type fakeAlerter struct {
	messages []string
}

func (a *fakeAlerter) Alert(msg string) { a.messages = append(a.messages, msg) }

type fakeReporter struct {
	errs []error
}

func (r *fakeReporter) ReportError(err error) { r.errs = append(r.errs, err) }

type fakeReloader struct {
	reloads int
}

func (r *fakeReloader) Reload() { r.reloads++ }

// countingStore wraps a MemoryStore and counts writes. setErr makes every
// Set fail.
type countingStore struct {
	*storage.MemoryStore
	sets   int
	setErr error
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryStore: storage.NewMemoryStore()}
}

func (s *countingStore) Set(ctx context.Context, key, value string) error {
	s.sets++
	if s.setErr != nil {
		return s.setErr
	}
	return s.MemoryStore.Set(ctx, key, value)
}

var errDiskFull = errors.New("disk full")

type harness struct {
	ctrl     *Controller
	maps     *fakeMaps
	form     *fakeForm
	list     *fakeList
	alerter  *fakeAlerter
	reporter *fakeReporter
	reloader *fakeReloader
	store    *countingStore
}

func newHarness(opts ...Option) *harness {
	h := &harness{
		maps:     &fakeMaps{},
		form:     &fakeForm{values: FormValues{Kind: domain.KindRunning}},
		list:     &fakeList{},
		alerter:  &fakeAlerter{},
		reporter: &fakeReporter{},
		reloader: &fakeReloader{},
		store:    newCountingStore(),
	}
	h.ctrl = h.build(opts...)
	return h
}

// build creates a controller sharing the harness store, as a restart would.
func (h *harness) build(opts ...Option) *Controller {
	return New(Deps{
		Maps:     h.maps,
		Form:     h.form,
		List:     h.list,
		Alerter:  h.alerter,
		Errors:   h.reporter,
		Reloader: h.reloader,
		Store:    h.store,
	}, opts...)
}
