package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/mapty/internal/domain"
	"github.com/spf13/pflag"
)

// coordsValue is a pflag.Value accepting "lat,lng".
type coordsValue struct {
	coords *domain.Coords
	set    bool
}

func newCoordsValue(p *domain.Coords) *coordsValue {
	return &coordsValue{coords: p}
}

func (v *coordsValue) String() string {
	if v.coords == nil || !v.set {
		return ""
	}
	return fmt.Sprintf("%g,%g", v.coords.Lat(), v.coords.Lng())
}

func (v *coordsValue) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return fmt.Errorf("expected lat,lng, got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return fmt.Errorf("latitude %q: %w", parts[0], err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return fmt.Errorf("longitude %q: %w", parts[1], err)
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return fmt.Errorf("position %s out of range", s)
	}
	*v.coords = domain.Coords{lat, lng}
	v.set = true
	return nil
}

func (v *coordsValue) Type() string { return "lat,lng" }

// positionFlags binds --at, --lat and --lng on fs. resolve returns the
// position from whichever form was given.
type positionFlags struct {
	at       domain.Coords
	atValue  *coordsValue
	lat, lng float64
	fs       *pflag.FlagSet
}

func addPositionFlags(fs *pflag.FlagSet) *positionFlags {
	p := &positionFlags{fs: fs}
	p.atValue = newCoordsValue(&p.at)
	fs.Var(p.atValue, "at", "Workout position as lat,lng")
	fs.Float64Var(&p.lat, "lat", 0, "Workout latitude")
	fs.Float64Var(&p.lng, "lng", 0, "Workout longitude")
	return p
}

func (p *positionFlags) resolve() (domain.Coords, error) {
	if p.atValue.set {
		return p.at, nil
	}
	if p.fs.Changed("lat") && p.fs.Changed("lng") {
		if p.lat < -90 || p.lat > 90 || p.lng < -180 || p.lng > 180 {
			return domain.Coords{}, fmt.Errorf("position %g,%g out of range", p.lat, p.lng)
		}
		return domain.Coords{p.lat, p.lng}, nil
	}
	return domain.Coords{}, fmt.Errorf("a position is required: use --at lat,lng or --lat and --lng")
}
