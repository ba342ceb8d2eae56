package domain

import (
	"fmt"
	"strconv"
	"time"
)

// Coords is a [latitude, longitude] pair in degrees.
type Coords [2]float64

func (c Coords) Lat() float64 { return c[0] }
func (c Coords) Lng() float64 { return c[1] }

func (c Coords) String() string {
	return fmt.Sprintf("%.5f, %.5f", c[0], c[1])
}

// Workout is one logged activity. Kind selects which of the variant fields
// are meaningful: Cadence and Pace for running, ElevationGain and Speed for
// cycling. Derived fields are filled in by the constructors and never
// recomputed afterwards.
type Workout struct {
	ID          string
	Date        time.Time
	Kind        WorkoutKind
	Coords      Coords
	Distance    float64 // km
	Duration    float64 // min
	Description string

	// Running
	Cadence float64 // spm
	Pace    float64 // min/km

	// Cycling
	ElevationGain float64 // m
	Speed         float64 // km/h
}

// NewRunning builds a running workout created at now. No validation happens
// here; callers check their inputs first.
func NewRunning(coords Coords, distance, duration, cadence float64, now time.Time) *Workout {
	w := newWorkout(KindRunning, coords, distance, duration, now)
	w.Cadence = cadence
	w.Pace = duration / distance
	return w
}

// NewCycling builds a cycling workout created at now.
func NewCycling(coords Coords, distance, duration, elevationGain float64, now time.Time) *Workout {
	w := newWorkout(KindCycling, coords, distance, duration, now)
	w.ElevationGain = elevationGain
	w.Speed = distance / (duration / 60)
	return w
}

func newWorkout(kind WorkoutKind, coords Coords, distance, duration float64, now time.Time) *Workout {
	return &Workout{
		ID:          WorkoutID(now),
		Date:        now,
		Kind:        kind,
		Coords:      coords,
		Distance:    distance,
		Duration:    duration,
		Description: Describe(kind, now),
	}
}

// WorkoutID derives an identifier from the last 10 digits of t in Unix
// milliseconds. Two workouts created in the same millisecond collide.
func WorkoutID(t time.Time) string {
	ms := strconv.FormatInt(t.UnixMilli(), 10)
	if len(ms) > 10 {
		ms = ms[len(ms)-10:]
	}
	return ms
}

// Describe returns "<Kind> on <Month> <day>" for the given date, e.g.
// "Running on April 14".
func Describe(kind WorkoutKind, date time.Time) string {
	return fmt.Sprintf("%s on %s %d", kind.Title(), date.Month(), date.Day())
}

// DerivedMetric returns the pace of a running workout or the speed of a
// cycling one.
func DerivedMetric(w *Workout) float64 {
	switch w.Kind {
	case KindRunning:
		return w.Pace
	case KindCycling:
		return w.Speed
	default:
		return 0
	}
}
