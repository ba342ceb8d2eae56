package tracker

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/alexanderramin/mapty/internal/domain"
)

// storageKey is the single key holding the whole workout list.
const storageKey = "workouts"

// dateLayout is ISO-8601 in UTC with millisecond precision.
const dateLayout = "2006-01-02T15:04:05.000Z"

// storedWorkout is the persisted shape of a workout. Field order is the
// order written to storage.
type storedWorkout struct {
	Coords      domain.Coords `json:"coords"`
	Distance    float64       `json:"distance"`
	Duration    float64       `json:"duration"`
	Date        string        `json:"date"`
	ID          string        `json:"id"`
	Type        string        `json:"type"`
	Description string        `json:"description"`

	Cadence       *float64 `json:"cadence,omitempty"`
	Pace          *float64 `json:"pace,omitempty"`
	ElevationGain *float64 `json:"elevationGain,omitempty"`
	Speed         *float64 `json:"speed,omitempty"`
}

func toStored(w *domain.Workout) storedWorkout {
	s := storedWorkout{
		Coords:      w.Coords,
		Distance:    w.Distance,
		Duration:    w.Duration,
		Date:        w.Date.UTC().Format(dateLayout),
		ID:          w.ID,
		Type:        string(w.Kind),
		Description: w.Description,
	}
	switch w.Kind {
	case domain.KindRunning:
		cadence := w.Cadence
		s.Cadence, s.Pace = &cadence, finiteOrNil(w.Pace)
	case domain.KindCycling:
		elev := w.ElevationGain
		s.ElevationGain, s.Speed = &elev, finiteOrNil(w.Speed)
	}
	return s
}

// finiteOrNil returns nil for NaN and ±Inf, which JSON cannot carry. A
// derived metric overflows when valid inputs sit at the float64 extremes.
func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func fromStored(s storedWorkout) (*domain.Workout, error) {
	kind, err := domain.ParseKind(s.Type)
	if err != nil {
		return nil, err
	}
	date, err := time.Parse(time.RFC3339Nano, s.Date)
	if err != nil {
		return nil, fmt.Errorf("workout %s: parsing date: %w", s.ID, err)
	}
	w := &domain.Workout{
		ID:          s.ID,
		Date:        date,
		Kind:        kind,
		Coords:      s.Coords,
		Distance:    s.Distance,
		Duration:    s.Duration,
		Description: s.Description,
	}
	w.Cadence = deref(s.Cadence)
	w.Pace = deref(s.Pace)
	w.ElevationGain = deref(s.ElevationGain)
	w.Speed = deref(s.Speed)
	return w, nil
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// encodeWorkouts serializes the whole sequence as a JSON array.
func encodeWorkouts(ws []*domain.Workout) (string, error) {
	out := make([]storedWorkout, 0, len(ws))
	for _, w := range ws {
		out = append(out, toStored(w))
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encoding workouts: %w", err)
	}
	return string(data), nil
}

// decodeWorkouts parses a stored array. Entries that cannot be turned back
// into workouts are skipped and logged; a document that is not an array of
// objects is an error.
func decodeWorkouts(raw string, logger *slog.Logger) ([]*domain.Workout, error) {
	var stored []storedWorkout
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("decoding workouts: %w", err)
	}
	ws := make([]*domain.Workout, 0, len(stored))
	for _, s := range stored {
		w, err := fromStored(s)
		if err != nil {
			logger.Warn("skipping stored workout", "id", s.ID, "error", err)
			continue
		}
		ws = append(ws, w)
	}
	return ws, nil
}
