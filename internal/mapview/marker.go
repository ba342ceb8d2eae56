package mapview

// PopupOptions mirror the usual web-map popup settings. Widths are in
// pixels and converted to cells when drawn.
type PopupOptions struct {
	MaxWidth     int
	MinWidth     int
	AutoClose    bool // close when another popup opens
	CloseOnClick bool // close when the map is clicked
	ClassName    string
}

// DefaultPopupOptions returns the options a popup gets when none are set.
func DefaultPopupOptions() PopupOptions {
	return PopupOptions{
		MaxWidth:     300,
		MinWidth:     50,
		AutoClose:    true,
		CloseOnClick: true,
	}
}

// Popup is a label attached to a marker.
type Popup struct {
	Options PopupOptions
	Content string
	open    bool
}

func NewPopup(opts PopupOptions) *Popup {
	return &Popup{Options: opts}
}

func (p *Popup) IsOpen() bool { return p.open }

// Marker is a point on the map, optionally carrying a popup.
type Marker struct {
	Position LatLng
	popup    *Popup
	owner    *Map
}

// BindPopup attaches p to the marker, replacing any previous popup.
func (m *Marker) BindPopup(p *Popup) *Marker {
	m.popup = p
	return m
}

// SetPopupContent sets the text of the bound popup, creating a default one
// if needed.
func (m *Marker) SetPopupContent(content string) *Marker {
	if m.popup == nil {
		m.popup = NewPopup(DefaultPopupOptions())
	}
	m.popup.Content = content
	return m
}

// OpenPopup shows the bound popup. Other open popups that auto-close are
// closed first.
func (m *Marker) OpenPopup() *Marker {
	if m.popup == nil {
		return m
	}
	if m.owner != nil {
		for _, other := range m.owner.markers {
			if other != m && other.popup != nil && other.popup.open && other.popup.Options.AutoClose {
				other.popup.open = false
			}
		}
	}
	m.popup.open = true
	return m
}

func (m *Marker) ClosePopup() *Marker {
	if m.popup != nil {
		m.popup.open = false
	}
	return m
}

func (m *Marker) Popup() *Popup { return m.popup }
