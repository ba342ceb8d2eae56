package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/mapty/internal/cli/formatter"
	"github.com/alexanderramin/mapty/internal/config"
	"github.com/alexanderramin/mapty/internal/geo"
	"github.com/alexanderramin/mapty/internal/mapview"
	"github.com/alexanderramin/mapty/internal/tracker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	headerLines    = 2
	statusLines    = 2
	mapFooterLines = 3
)

type focusArea int

const (
	focusMap focusArea = iota
	focusForm
	focusList
)

// positionMsg delivers the result of the position lookup to the loop.
type positionMsg struct {
	pos geo.Position
	err error
}

// reloadMsg rebuilds the interface from storage, as after a reset.
type reloadMsg struct{}

// appModel is the root bubbletea Model for the interface.
type appModel struct {
	app  *App
	ctx  context.Context
	ws   *workspace
	ctrl *tracker.Controller
	keys keyMap

	focus    focusArea
	width    int
	height   int
	locating bool
	status   string
	confirm  *confirmView
	quitting bool
}

func newAppModel(app *App) appModel {
	ws := newWorkspace()
	ctrl := tracker.New(tracker.Deps{
		Maps:     ws,
		Form:     ws.form,
		List:     ws.list,
		Alerter:  ws,
		Errors:   ws,
		Reloader: ws,
		Locator:  app.Locator,
		Store:    app.Store,
		Logger:   app.logger(),
	}, app.controllerOptions()...)

	m := appModel{
		app:      app,
		ctx:      context.Background(),
		ws:       ws,
		ctrl:     ctrl,
		keys:     defaultKeyMap(),
		locating: true,
	}
	if err := ctrl.Start(m.ctx); err != nil {
		app.logger().Error("starting tracker", "error", err)
		m.status = formatter.StyleRed.Render("✖ " + err.Error())
	}
	return m
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	return m.locateCmd()
}

// locateCmd runs the position lookup off the update loop.
func (m appModel) locateCmd() tea.Cmd {
	ctrl := m.ctrl
	timeout := time.Duration(m.app.Config.GeoTimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = config.DefaultGeoTimeout * time.Millisecond
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		pos, err := ctrl.RequestPosition(ctx)
		return positionMsg{pos: pos, err: err}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()

	case positionMsg:
		m.locating = false
		m.ctrl.HandlePosition(msg.pos, msg.err)
		m.layout()

	case mapview.FrameMsg:
		if p := m.ws.mapPane; p != nil {
			cmd = p.m.Update(msg)
		}

	case confirmDoneMsg:
		m.confirm = nil
		if msg.ok {
			if err := m.ctrl.Reset(m.ctx); err != nil {
				m.status = formatter.StyleRed.Render("✖ " + err.Error())
			}
		}

	case reloadMsg:
		return m.reloaded()

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		cmd = m.handleMouse(msg)

	default:
		if m.confirm != nil {
			cmd = m.confirm.Update(msg)
		}
	}

	return m, m.after(cmd)
}

// after runs once per event: it moves focus to follow the form, surfaces
// reported errors, starts any new pan animation and turns a reload request
// into a message.
func (m *appModel) after(cmd tea.Cmd) tea.Cmd {
	m.syncFocus()
	if m.ws.err != nil {
		m.status = formatter.StyleRed.Render("✖ " + m.ws.err.Error())
		m.ws.err = nil
	}
	cmds := []tea.Cmd{cmd, m.ws.mapPane.animationCmd()}
	if m.ws.reload {
		m.ws.reload = false
		cmds = append(cmds, func() tea.Msg { return reloadMsg{} })
	}
	return tea.Batch(cmds...)
}

func (m *appModel) syncFocus() {
	switch {
	case m.ws.form.visible && m.focus != focusForm:
		m.focus = focusForm
	case !m.ws.form.visible && m.focus == focusForm:
		m.focus = focusMap
	}
	m.ws.list.focused = m.focus == focusList
}

func (m appModel) reloaded() (tea.Model, tea.Cmd) {
	fresh := newAppModel(m.app)
	fresh.width, fresh.height = m.width, m.height
	fresh.layout()
	return fresh, fresh.Init()
}

func (m *appModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return tea.Quit
	}

	// Any key dismisses an alert.
	if m.ws.alert != "" {
		m.ws.alert = ""
		return nil
	}

	if m.confirm != nil {
		return m.confirm.Update(msg)
	}

	if m.focus == focusForm {
		if msg.Type == tea.KeyEsc {
			m.ctrl.CancelForm()
			return nil
		}
		return m.ws.form.Update(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit

	case key.Matches(msg, m.keys.Reset):
		m.confirm = newConfirmView("Delete all workouts?", "Every logged workout is removed. This cannot be undone.")
		return m.confirm.Init()

	case key.Matches(msg, m.keys.Focus):
		if m.focus == focusList {
			m.focus = focusMap
		} else {
			m.focus = focusList
		}
		return nil
	}

	if m.focus == focusList {
		m.handleListKey(msg)
		return nil
	}
	m.handleMapKey(msg)
	return nil
}

func (m *appModel) handleMapKey(msg tea.KeyMsg) {
	p := m.ws.mapPane
	if p == nil {
		return
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		p.m.MoveCursor(0, -1)
	case key.Matches(msg, m.keys.Down):
		p.m.MoveCursor(0, 1)
	case key.Matches(msg, m.keys.Left):
		p.m.MoveCursor(-1, 0)
	case key.Matches(msg, m.keys.Right):
		p.m.MoveCursor(1, 0)
	case key.Matches(msg, m.keys.ZoomIn):
		p.m.ZoomIn()
	case key.Matches(msg, m.keys.ZoomOut):
		p.m.ZoomOut()
	case key.Matches(msg, m.keys.Click):
		p.m.Click()
	}
}

func (m *appModel) handleListKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.ws.list.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.ws.list.move(1)
	case key.Matches(msg, m.keys.Select):
		m.ws.list.selectCurrent()
	}
}

func (m *appModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.confirm != nil || m.ws.alert != "" {
		return nil
	}

	if p := m.ws.mapPane; p != nil {
		col, row := msg.X-m.mapLeft(), msg.Y-headerLines
		w, h := p.m.Size()
		if col >= 0 && row >= 0 && col < w && row < h {
			switch {
			case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
				p.m.SetCursor(col, row)
				p.m.Click()
			case msg.Button == tea.MouseButtonWheelUp:
				p.m.ZoomIn()
			case msg.Button == tea.MouseButtonWheelDown:
				p.m.ZoomOut()
			}
			return nil
		}
	}

	if msg.X < m.sidebarWidth() && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		line := msg.Y - headerLines - m.formHeight()
		if line >= 0 && m.ws.list.selectAt(line) && m.focus != focusForm {
			m.focus = focusList
		}
	}
	return nil
}

// ── layout ───────────────────────────────────────────────────────────────────

func (m *appModel) sidebarWidth() int {
	if m.width == 0 {
		return 36
	}
	return min(44, max(28, m.width/3))
}

func (m *appModel) mapLeft() int { return m.sidebarWidth() + 1 }

func (m *appModel) bodyHeight() int {
	if m.height == 0 {
		return 24
	}
	return max(m.height-headerLines-statusLines, mapFooterLines+4)
}

func (m *appModel) formHeight() int {
	if !m.ws.form.visible {
		return 0
	}
	return lipgloss.Height(m.ws.form.View())
}

// layout sizes the panes for the current terminal.
func (m *appModel) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	sw := m.sidebarWidth()
	m.ws.form.width = sw
	m.ws.resizeMap(m.width-sw-1, m.bodyHeight()-mapFooterLines)
}

// ── rendering ────────────────────────────────────────────────────────────────

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader(), m.renderBody(), m.renderStatusBar()}
	result := strings.Join(sections, "\n")

	// Pad to terminal height so the alt-screen renderer leaves no stale lines.
	if m.height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.height {
			result += strings.Repeat("\n", m.height-lines)
		}
	}
	return result
}

func (m *appModel) renderHeader() string {
	title := formatter.StyleGreen.Bold(true).Render("mapty")
	n := len(m.ctrl.Workouts())
	header := title + " " + formatter.Dim(fmt.Sprintf("› %d workout(s)", n))
	if p := m.ws.mapPane; p != nil {
		c := p.m.Center()
		header += "  " + formatter.Dim(fmt.Sprintf("[%.4f, %.4f]", c.Lat, c.Lng))
	}
	sep := formatter.Dim(strings.Repeat("─", max(m.width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderBody() string {
	bodyH := m.bodyHeight()

	if m.confirm != nil {
		return lipgloss.Place(m.width, bodyH, lipgloss.Center, lipgloss.Center,
			formatter.RenderBox("Reset", m.confirm.View()))
	}
	if m.ws.alert != "" {
		content := formatter.StyleRed.Render("✖ "+m.ws.alert) + "\n\n" + formatter.Dim("Press any key to continue.")
		return lipgloss.Place(m.width, bodyH, lipgloss.Center, lipgloss.Center,
			formatter.RenderBox("", content))
	}

	sw := m.sidebarWidth()
	form := m.ws.form.View()
	formH := 0
	if form != "" {
		formH = lipgloss.Height(form)
	}
	m.ws.list.setSize(sw, bodyH-formH)
	sidebar := m.ws.list.View()
	if form != "" {
		sidebar = form + "\n" + sidebar
	}
	sidebar = lipgloss.NewStyle().Width(sw).MaxHeight(bodyH).Render(sidebar)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", m.renderMap())
}

func (m *appModel) renderMap() string {
	if p := m.ws.mapPane; p != nil {
		return p.m.View()
	}
	if m.locating {
		return formatter.Dim("Locating you…")
	}
	return formatter.Dim("Could not get your position, so there is no map.\n" +
		"Workouts you logged before are listed on the left.")
}

func (m *appModel) renderStatusBar() string {
	var bindings []key.Binding
	switch {
	case m.confirm != nil:
		bindings = m.confirm.ShortHelp()
	case m.focus == focusForm:
		bindings = formHelp()
	case m.focus == focusList:
		bindings = m.keys.listHelp()
	default:
		bindings = m.keys.mapHelp()
	}

	var hints []string
	if m.status != "" {
		hints = append(hints, m.status)
	}
	for _, b := range bindings {
		hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.width, 20)))
	return sep + "\n" + strings.Join(hints, "  ")
}
