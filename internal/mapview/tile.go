package mapview

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

// TileLayer describes the raster source the map would draw. The terminal
// pane cannot show imagery, so the layer contributes the URL of the tile
// under the map center and the attribution line.
type TileLayer struct {
	URLTemplate string // placeholders: {s} {z} {x} {y}
	Attribution string // may contain HTML, as tile providers publish it
	Subdomains  string // one character per subdomain; "abc" when empty
}

// URL expands the template for one tile.
func (t TileLayer) URL(z, x, y int) string {
	subs := t.Subdomains
	if subs == "" {
		subs = "abc"
	}
	idx := (x + y) % len(subs)
	if idx < 0 {
		idx += len(subs)
	}
	r := strings.NewReplacer(
		"{s}", subs[idx:idx+1],
		"{z}", strconv.Itoa(z),
		"{x}", strconv.Itoa(x),
		"{y}", strconv.Itoa(y),
	)
	return r.Replace(t.URLTemplate)
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// PlainAttribution strips markup and entities from Attribution.
func (t TileLayer) PlainAttribution() string {
	return strings.TrimSpace(html.UnescapeString(tagPattern.ReplaceAllString(t.Attribution, "")))
}
