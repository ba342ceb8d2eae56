// Package geo provides the position lookup used to center the map on start.
package geo

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/alexanderramin/mapty/internal/domain"
)

// ErrUnavailable means no position source is configured. It is the
// equivalent of a browser without a geolocation API.
var ErrUnavailable = errors.New("geolocation unavailable")

// Position is a one-shot position fix.
type Position struct {
	Latitude  float64
	Longitude float64
}

// Coords converts the position into the [lat, lng] pair used by workouts.
func (p Position) Coords() domain.Coords {
	return domain.Coords{p.Latitude, p.Longitude}
}

// Valid reports whether both coordinates are finite and within range.
func (p Position) Valid() bool {
	if math.IsNaN(p.Latitude) || math.IsNaN(p.Longitude) {
		return false
	}
	return p.Latitude >= -90 && p.Latitude <= 90 && p.Longitude >= -180 && p.Longitude <= 180
}

// Locator answers "where is the user right now". Implementations may block
// (network lookups) and must honour ctx cancellation.
type Locator interface {
	CurrentPosition(ctx context.Context) (Position, error)
}

// StaticLocator always reports the same configured position.
type StaticLocator struct {
	Position Position
}

func (s StaticLocator) CurrentPosition(context.Context) (Position, error) {
	if !s.Position.Valid() {
		return Position{}, fmt.Errorf("static position %v,%v out of range", s.Position.Latitude, s.Position.Longitude)
	}
	return s.Position, nil
}

// Unavailable is the Locator used when nothing is configured.
type Unavailable struct{}

func (Unavailable) CurrentPosition(context.Context) (Position, error) {
	return Position{}, ErrUnavailable
}

// FirstOf tries each locator in order and returns the first fix. The error
// of the last failing locator is returned when all fail.
func FirstOf(locators ...Locator) Locator {
	return chain(locators)
}

type chain []Locator

func (c chain) CurrentPosition(ctx context.Context) (Position, error) {
	err := ErrUnavailable
	for _, l := range c {
		if l == nil {
			continue
		}
		pos, lerr := l.CurrentPosition(ctx)
		if lerr == nil {
			return pos, nil
		}
		err = lerr
		if ctx.Err() != nil {
			break
		}
	}
	return Position{}, err
}
