package testutil

import (
	"sync/atomic"
	"time"

	"github.com/alexanderramin/mapty/internal/domain"
)

// FixedNow is the reference clock used by fixtures: 14 April 2025, 10:30 local.
var FixedNow = time.Date(2025, 4, 14, 10, 30, 0, 0, time.Local)

var clockTicks atomic.Int64

// Clock returns a func that starts at start and advances one second per
// call, so workouts built in a loop get distinct time-derived IDs.
func Clock(start time.Time) func() time.Time {
	var n atomic.Int64
	return func() time.Time {
		return start.Add(time.Duration(n.Add(1)-1) * time.Second)
	}
}

// nextFixtureTime hands out increasing timestamps for fixtures built without
// an explicit WithDate option.
func nextFixtureTime() time.Time {
	return FixedNow.Add(time.Duration(clockTicks.Add(1)) * time.Millisecond)
}

type workoutSpec struct {
	coords   domain.Coords
	distance float64
	duration float64
	metric   float64
	date     time.Time
}

// WorkoutOption customises a fixture workout.
type WorkoutOption func(*workoutSpec)

func WithCoords(lat, lng float64) WorkoutOption {
	return func(s *workoutSpec) {
		s.coords = domain.Coords{lat, lng}
	}
}

func WithDistance(km float64) WorkoutOption {
	return func(s *workoutSpec) {
		s.distance = km
	}
}

func WithDuration(min float64) WorkoutOption {
	return func(s *workoutSpec) {
		s.duration = min
	}
}

// WithMetric sets cadence for running fixtures and elevation gain for
// cycling fixtures.
func WithMetric(v float64) WorkoutOption {
	return func(s *workoutSpec) {
		s.metric = v
	}
}

func WithDate(t time.Time) WorkoutOption {
	return func(s *workoutSpec) {
		s.date = t
	}
}

func buildSpec(defaultMetric float64, opts []WorkoutOption) workoutSpec {
	s := workoutSpec{
		coords:   domain.Coords{39, -12},
		distance: 10,
		duration: 30,
		metric:   defaultMetric,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.date.IsZero() {
		s.date = nextFixtureTime()
	}
	return s
}

// NewTestRunning returns a 10 km / 30 min / 200 spm run at [39, -12]
// unless overridden.
func NewTestRunning(opts ...WorkoutOption) *domain.Workout {
	s := buildSpec(200, opts)
	return domain.NewRunning(s.coords, s.distance, s.duration, s.metric, s.date)
}

// NewTestCycling returns a 10 km / 30 min / 30 m ride at [39, -12]
// unless overridden.
func NewTestCycling(opts ...WorkoutOption) *domain.Workout {
	s := buildSpec(30, opts)
	return domain.NewCycling(s.coords, s.distance, s.duration, s.metric, s.date)
}
