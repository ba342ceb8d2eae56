package mapview

import "math"

// TileSize is the edge of a slippy-map tile in world pixels.
const TileSize = 256

// Web Mercator is undefined at the poles; latitudes are clamped here.
const maxLatitude = 85.0511287798

// Each terminal cell covers cellPxW x cellPxH world pixels. Cells are
// roughly twice as tall as they are wide, so the aspect stays close to
// square on screen.
const (
	cellPxW = 8.0
	cellPxH = 16.0
)

// LatLng is a geographic position in degrees.
type LatLng struct {
	Lat float64
	Lng float64
}

type point struct {
	X, Y float64
}

func worldSize(zoom int) float64 {
	return TileSize * math.Exp2(float64(zoom))
}

// project converts a position into world pixel coordinates at zoom.
func project(ll LatLng, zoom int) point {
	scale := worldSize(zoom)
	lat := math.Max(-maxLatitude, math.Min(maxLatitude, ll.Lat))
	sin := math.Sin(lat * math.Pi / 180)
	return point{
		X: (ll.Lng + 180) / 360 * scale,
		Y: (0.5 - math.Log((1+sin)/(1-sin))/(4*math.Pi)) * scale,
	}
}

// unproject is the inverse of project.
func unproject(p point, zoom int) LatLng {
	scale := worldSize(zoom)
	n := math.Pi - 2*math.Pi*p.Y/scale
	return LatLng{
		Lat: 180 / math.Pi * math.Atan(math.Sinh(n)),
		Lng: p.X/scale*360 - 180,
	}
}

// TileAt returns the slippy-map tile indices containing ll at zoom.
func TileAt(ll LatLng, zoom int) (x, y int) {
	p := project(ll, zoom)
	return int(math.Floor(p.X / TileSize)), int(math.Floor(p.Y / TileSize))
}
