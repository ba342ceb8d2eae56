package cli

import (
	"github.com/alexanderramin/mapty/internal/domain"
	"github.com/alexanderramin/mapty/internal/mapview"
	"github.com/alexanderramin/mapty/internal/tracker"
	tea "github.com/charmbracelet/bubbletea"
)

// workspace is the interactive surface the controller drives. It owns the
// map pane (once created), the entry form and the sidebar list, and
// collects alerts, reported errors and reload requests for the app model
// to act on.
type workspace struct {
	mapPane *mapPane
	form    *entryForm
	list    *workoutList

	alert  string
	err    error
	reload bool

	mapWidth, mapHeight int
}

func newWorkspace() *workspace {
	return &workspace{
		form: newEntryForm(),
		list: newWorkoutList(),
	}
}

func (w *workspace) NewMap(center domain.Coords, zoom int) tracker.MapDisplay {
	w.mapPane = newMapPane(center, zoom)
	if w.mapWidth > 0 && w.mapHeight > 0 {
		w.mapPane.m.SetSize(w.mapWidth, w.mapHeight)
	}
	return w.mapPane
}

func (w *workspace) Alert(msg string)       { w.alert = msg }
func (w *workspace) ReportError(err error) { w.err = err }
func (w *workspace) Reload()                { w.reload = true }

func (w *workspace) resizeMap(width, height int) {
	w.mapWidth, w.mapHeight = width, height
	if w.mapPane != nil {
		w.mapPane.m.SetSize(width, height)
	}
}

// mapPane adapts a mapview.Map to the controller's MapDisplay port.
type mapPane struct {
	m *mapview.Map

	// kick is set when a pan animation starts and no frame is in flight.
	kick bool
}

func newMapPane(center domain.Coords, zoom int) *mapPane {
	return &mapPane{m: mapview.New(toLatLng(center), zoom)}
}

func toLatLng(c domain.Coords) mapview.LatLng {
	return mapview.LatLng{Lat: c.Lat(), Lng: c.Lng()}
}

func fromLatLng(ll mapview.LatLng) domain.Coords {
	return domain.Coords{ll.Lat, ll.Lng}
}

func (p *mapPane) SetView(center domain.Coords, zoom int, opts tracker.ViewOptions) {
	p.m.SetView(toLatLng(center), zoom, mapview.ViewOptions{
		Animate:     opts.Animate,
		PanDuration: opts.PanDuration,
	})
	p.kick = p.m.Animating()
}

func (p *mapPane) OnClick(fn func(domain.Coords)) {
	p.m.OnClick(func(ll mapview.LatLng) { fn(fromLatLng(ll)) })
}

func (p *mapPane) AddTileLayer(urlTemplate, attribution string) {
	p.m.AddTileLayer(mapview.TileLayer{URLTemplate: urlTemplate, Attribution: attribution})
}

func (p *mapPane) AddMarker(at domain.Coords, popup tracker.Popup) {
	p.m.AddMarker(toLatLng(at)).
		BindPopup(mapview.NewPopup(mapview.PopupOptions{
			MaxWidth:     popup.MaxWidth,
			MinWidth:     popup.MinWidth,
			AutoClose:    popup.AutoClose,
			CloseOnClick: popup.CloseOnClick,
			ClassName:    popup.ClassName,
		})).
		SetPopupContent(popup.Content).
		OpenPopup()
}

// animationCmd starts the frame ticks for a freshly started pan. Later
// frames are chained by the map's own Update.
func (p *mapPane) animationCmd() tea.Cmd {
	if p == nil || !p.kick {
		return nil
	}
	p.kick = false
	return p.m.AnimationCmd()
}
