// Package mapview is a terminal map pane: a Web Mercator viewport drawn in
// character cells, with markers, popups, a movable cursor standing in for
// the mouse pointer, click subscriptions and animated panning.
package mapview

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultWidth  = 60
	defaultHeight = 18

	// frameInterval paces pan animations.
	frameInterval = 50 * time.Millisecond
)

var mapIDs atomic.Int64

// ViewOptions control SetView.
type ViewOptions struct {
	Animate     bool
	PanDuration time.Duration // defaults to 250ms when animating
}

// FrameMsg advances a running pan animation.
type FrameMsg struct {
	mapID int64
	seq   int
}

type panAnimation struct {
	from, to point
	zoom     int
	frame    int
	frames   int
	seq      int
}

// Map is the map pane. It is not safe for concurrent use; like every
// bubbletea component it lives on the update loop.
type Map struct {
	id     int64
	width  int
	height int

	center LatLng
	zoom   int

	cursorCol int
	cursorRow int

	layers        []TileLayer
	markers       []*Marker
	clickHandlers []func(LatLng)

	anim    *panAnimation
	animSeq int

	Styles Styles
}

// New creates a map centered on center at zoom.
func New(center LatLng, zoom int) *Map {
	m := &Map{
		id:     mapIDs.Add(1),
		width:  defaultWidth,
		height: defaultHeight,
		center: center,
		zoom:   zoom,
		Styles: DefaultStyles(),
	}
	m.resetCursor()
	return m
}

// SetSize resizes the pane in cells. The cursor returns to the middle.
func (m *Map) SetSize(width, height int) {
	if width < 10 {
		width = 10
	}
	if height < 4 {
		height = 4
	}
	m.width, m.height = width, height
	m.resetCursor()
}

func (m *Map) Size() (width, height int) { return m.width, m.height }

func (m *Map) resetCursor() {
	m.cursorCol = m.width / 2
	m.cursorRow = m.height / 2
}

func (m *Map) Center() LatLng { return m.center }
func (m *Map) Zoom() int      { return m.zoom }

// SetView moves the viewport. With Animate set, the zoom changes at once and
// the center glides to the target over PanDuration; the caller must run
// AnimationCmd to drive it.
func (m *Map) SetView(center LatLng, zoom int, opts ViewOptions) {
	m.animSeq++
	m.zoom = zoom
	if !opts.Animate {
		m.anim = nil
		m.center = center
		return
	}

	d := opts.PanDuration
	if d <= 0 {
		d = 250 * time.Millisecond
	}
	frames := int(d / frameInterval)
	if frames < 1 {
		frames = 1
	}
	m.anim = &panAnimation{
		from:   project(m.center, zoom),
		to:     project(center, zoom),
		zoom:   zoom,
		frames: frames,
		seq:    m.animSeq,
	}
}

// Animating reports whether a pan is in progress.
func (m *Map) Animating() bool { return m.anim != nil }

// AnimationCmd schedules the next animation frame, or returns nil when the
// map is at rest.
func (m *Map) AnimationCmd() tea.Cmd {
	if m.anim == nil {
		return nil
	}
	msg := FrameMsg{mapID: m.id, seq: m.anim.seq}
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return msg })
}

// Update consumes FrameMsg values addressed to this map. Other messages are
// ignored.
func (m *Map) Update(msg tea.Msg) tea.Cmd {
	f, ok := msg.(FrameMsg)
	if !ok || f.mapID != m.id || m.anim == nil || f.seq != m.anim.seq {
		return nil
	}
	m.step()
	return m.AnimationCmd()
}

// step advances the animation by one frame, easing out.
func (m *Map) step() {
	a := m.anim
	a.frame++
	t := float64(a.frame) / float64(a.frames)
	if t >= 1 {
		m.center = unproject(a.to, a.zoom)
		m.anim = nil
		return
	}
	ease := 1 - math.Pow(1-t, 2)
	m.center = unproject(point{
		X: a.from.X + (a.to.X-a.from.X)*ease,
		Y: a.from.Y + (a.to.Y-a.from.Y)*ease,
	}, a.zoom)
}

// FinishAnimation jumps to the end of a running pan.
func (m *Map) FinishAnimation() {
	if m.anim != nil {
		m.center = unproject(m.anim.to, m.anim.zoom)
		m.anim = nil
	}
}

func (m *Map) ZoomIn() {
	if m.zoom < 19 {
		m.SetView(m.center, m.zoom+1, ViewOptions{})
	}
}

func (m *Map) ZoomOut() {
	if m.zoom > 0 {
		m.SetView(m.center, m.zoom-1, ViewOptions{})
	}
}

// ── layers and markers ───────────────────────────────────────────────────────

func (m *Map) AddTileLayer(l TileLayer) {
	m.layers = append(m.layers, l)
}

func (m *Map) TileLayers() []TileLayer { return m.layers }

// AddMarker places a marker at ll and returns it for chaining.
func (m *Map) AddMarker(ll LatLng) *Marker {
	mk := &Marker{Position: ll, owner: m}
	m.markers = append(m.markers, mk)
	return mk
}

func (m *Map) RemoveMarker(mk *Marker) {
	for i, other := range m.markers {
		if other == mk {
			m.markers = append(m.markers[:i], m.markers[i+1:]...)
			mk.owner = nil
			return
		}
	}
}

func (m *Map) Markers() []*Marker { return m.markers }

// ── pointer ──────────────────────────────────────────────────────────────────

// OnClick subscribes fn to map clicks. Handlers run in registration order.
func (m *Map) OnClick(fn func(LatLng)) {
	m.clickHandlers = append(m.clickHandlers, fn)
}

// MoveCursor moves the pointer by whole cells. Moving past an edge pans the
// map instead.
func (m *Map) MoveCursor(dCol, dRow int) {
	col, row := m.cursorCol+dCol, m.cursorRow+dRow
	var panX, panY float64
	if col < 0 {
		panX = float64(col) * cellPxW
		col = 0
	} else if col >= m.width {
		panX = float64(col-m.width+1) * cellPxW
		col = m.width - 1
	}
	if row < 0 {
		panY = float64(row) * cellPxH
		row = 0
	} else if row >= m.height {
		panY = float64(row-m.height+1) * cellPxH
		row = m.height - 1
	}
	m.cursorCol, m.cursorRow = col, row
	if panX != 0 || panY != 0 {
		c := project(m.center, m.zoom)
		m.SetView(unproject(point{X: c.X + panX, Y: c.Y + panY}, m.zoom), m.zoom, ViewOptions{})
	}
}

// SetCursor places the pointer on a cell, clamped to the pane.
func (m *Map) SetCursor(col, row int) {
	m.cursorCol = max(0, min(col, m.width-1))
	m.cursorRow = max(0, min(row, m.height-1))
}

// Cursor returns the pointer cell.
func (m *Map) Cursor() (col, row int) { return m.cursorCol, m.cursorRow }

// CursorLatLng returns the position under the pointer.
func (m *Map) CursorLatLng() LatLng {
	return m.CellToLatLng(m.cursorCol, m.cursorRow)
}

// Click simulates a click at the pointer: popups that close on click are
// closed, then every handler receives the clicked position.
func (m *Map) Click() LatLng {
	ll := m.CursorLatLng()
	for _, mk := range m.markers {
		if mk.popup != nil && mk.popup.open && mk.popup.Options.CloseOnClick {
			mk.popup.open = false
		}
	}
	for _, fn := range m.clickHandlers {
		fn(ll)
	}
	return ll
}

// ── projection helpers ───────────────────────────────────────────────────────

func (m *Map) origin() point {
	c := project(m.center, m.zoom)
	return point{
		X: c.X - float64(m.width)/2*cellPxW,
		Y: c.Y - float64(m.height)/2*cellPxH,
	}
}

// CellToLatLng returns the position at the middle of a cell.
func (m *Map) CellToLatLng(col, row int) LatLng {
	o := m.origin()
	return unproject(point{
		X: o.X + (float64(col)+0.5)*cellPxW,
		Y: o.Y + (float64(row)+0.5)*cellPxH,
	}, m.zoom)
}

// LatLngToCell returns the cell containing ll and whether it is on screen.
func (m *Map) LatLngToCell(ll LatLng) (col, row int, visible bool) {
	o := m.origin()
	p := project(ll, m.zoom)
	col = int(math.Floor((p.X - o.X) / cellPxW))
	row = int(math.Floor((p.Y - o.Y) / cellPxH))
	visible = col >= 0 && col < m.width && row >= 0 && row < m.height
	return col, row, visible
}

// CenterTileURL expands the first tile layer for the tile under the center.
func (m *Map) CenterTileURL() string {
	if len(m.layers) == 0 {
		return ""
	}
	x, y := TileAt(m.center, m.zoom)
	return m.layers[0].URL(m.zoom, x, y)
}

// ── rendering ────────────────────────────────────────────────────────────────

// View renders the pane followed by a status line and the attribution.
func (m *Map) View() string {
	grid := m.renderGrid()

	var b strings.Builder
	for i, row := range grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, c := range row {
			b.WriteString(c)
		}
	}

	cur := m.CursorLatLng()
	b.WriteString("\n")
	b.WriteString(m.Styles.Status.Render(fmt.Sprintf("z%d  %.5f, %.5f", m.zoom, cur.Lat, cur.Lng)))
	if url := m.CenterTileURL(); url != "" {
		b.WriteString("\n")
		b.WriteString(m.Styles.Status.Render(url))
	}
	for _, l := range m.layers {
		if a := l.PlainAttribution(); a != "" {
			b.WriteString("\n")
			b.WriteString(m.Styles.Attribution.Render(a))
		}
	}
	return b.String()
}

// renderGrid returns one string per cell. A popup label is stored in its
// first cell and the cells it covers are left empty.
func (m *Map) renderGrid() [][]string {
	grid := make([][]string, m.height)
	covered := make([][]bool, m.height)
	o := m.origin()
	for r := range grid {
		grid[r] = make([]string, m.width)
		covered[r] = make([]bool, m.width)
		for c := range grid[r] {
			grid[r][c] = m.backgroundCell(o, c, r)
		}
	}

	for _, mk := range m.markers {
		col, row, ok := m.LatLngToCell(mk.Position)
		if !ok {
			continue
		}
		class := ""
		if mk.popup != nil {
			class = mk.popup.Options.ClassName
		}
		grid[row][col] = m.Styles.marker(class).Render("●")
	}

	for _, mk := range m.markers {
		if mk.popup == nil || !mk.popup.open {
			continue
		}
		col, row, ok := m.LatLngToCell(mk.Position)
		if !ok {
			continue
		}
		m.drawPopup(grid, covered, mk.popup, col+2, row-1)
	}

	if !covered[m.cursorRow][m.cursorCol] {
		if strings.Contains(grid[m.cursorRow][m.cursorCol], "●") {
			grid[m.cursorRow][m.cursorCol] = m.Styles.Cursor.Render("◉")
		} else {
			grid[m.cursorRow][m.cursorCol] = m.Styles.Cursor.Render("+")
		}
	}
	return grid
}

// backgroundCell draws tile boundaries so panning is visible.
func (m *Map) backgroundCell(o point, col, row int) string {
	x0 := o.X + float64(col)*cellPxW
	y0 := o.Y + float64(row)*cellPxH
	vertical := math.Floor(x0/TileSize) != math.Floor((x0+cellPxW)/TileSize)
	horizontal := math.Floor(y0/TileSize) != math.Floor((y0+cellPxH)/TileSize)
	switch {
	case vertical && horizontal:
		return m.Styles.Grid.Render("┼")
	case vertical:
		return m.Styles.Grid.Render("│")
	case horizontal:
		return m.Styles.Grid.Render("─")
	default:
		return " "
	}
}

func (m *Map) drawPopup(grid [][]string, covered [][]bool, p *Popup, col, row int) {
	if row < 0 {
		row = 0
	}
	if col >= m.width {
		return
	}
	maxCells := int(float64(p.Options.MaxWidth) / cellPxW)
	if avail := m.width - col; maxCells <= 0 || maxCells > avail {
		maxCells = avail
	}
	minCells := int(float64(p.Options.MinWidth) / cellPxW)

	label := " " + p.Content + " "
	label = truncate(label, maxCells)
	if w := lipgloss.Width(label); w < minCells && minCells <= maxCells {
		label += strings.Repeat(" ", minCells-w)
	}
	w := lipgloss.Width(label)
	if w == 0 {
		return
	}
	for c := col; c < col+w && c < m.width; c++ {
		if covered[row][c] {
			// Earlier labels win.
			return
		}
	}

	grid[row][col] = m.Styles.popup(p.Options.ClassName).Render(label)
	covered[row][col] = true
	for i := 1; i < w && col+i < m.width; i++ {
		grid[row][col+i] = ""
		covered[row][col+i] = true
	}
}

// truncate cuts s to at most limit display cells, ending in "…" when cut.
func truncate(s string, limit int) string {
	if lipgloss.Width(s) <= limit {
		return s
	}
	if limit <= 0 {
		return ""
	}
	if limit == 1 {
		return "…"
	}
	var b strings.Builder
	for _, r := range s {
		next := b.String() + string(r)
		if lipgloss.Width(next)+1 > limit {
			break
		}
		b.WriteRune(r)
	}
	return b.String() + "…"
}
