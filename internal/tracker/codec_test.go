package tracker

import (
	"log/slog"
	"testing"
	"time"

	"github.com/alexanderramin/mapty/internal/domain"
	"github.com/alexanderramin/mapty/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeWorkouts_FieldOrder(t *testing.T) {
	date := time.Date(2025, 4, 14, 8, 30, 0, 123e6, time.UTC)
	w := domain.NewRunning(domain.Coords{39, -12}, 10, 30, 200, date)

	raw, err := encodeWorkouts([]*domain.Workout{w})
	require.NoError(t, err)

	want := `[{"coords":[39,-12],"distance":10,"duration":30,"date":"2025-04-14T08:30:00.123Z",` +
		`"id":"` + w.ID + `","type":"running","description":"Running on April 14","cadence":200,"pace":3}]`
	assert.Equal(t, want, raw)
}

func TestEncodeWorkouts_DropsNonFiniteMetric(t *testing.T) {
	date := time.Date(2025, 4, 14, 8, 30, 0, 0, time.UTC)
	run := domain.NewRunning(domain.Coords{39, -12}, 1e-300, 1e300, 180, date)
	ride := domain.NewCycling(domain.Coords{39, -12}, 1e300, 1e-300, 10, date)

	raw, err := encodeWorkouts([]*domain.Workout{run, ride})
	require.NoError(t, err)
	assert.NotContains(t, raw, `"pace"`)
	assert.NotContains(t, raw, `"speed"`)
	assert.Contains(t, raw, `"cadence":180`)
	assert.Contains(t, raw, `"elevationGain":10`)
}

func TestEncodeWorkouts_Empty(t *testing.T) {
	raw, err := encodeWorkouts(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestDecodeWorkouts_KeepsStoredValues(t *testing.T) {
	raw := `[{"coords":[1,2],"distance":20,"duration":60,"date":"2025-04-14T08:30:00.000Z","id":"42","type":"cycling","description":"Cycling on April 14","elevationGain":-5,"speed":99}]`

	ws, err := decodeWorkouts(raw, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	require.Len(t, ws, 1)
	assert.Equal(t, domain.KindCycling, ws[0].Kind)
	assert.Equal(t, 99.0, ws[0].Speed, "derived values are not recomputed")
	assert.Equal(t, -5.0, ws[0].ElevationGain)
	assert.Equal(t, domain.Coords{1, 2}, ws[0].Coords)
}

func TestDecodeWorkouts_SkipsBadDates(t *testing.T) {
	raw := `[{"coords":[1,2],"distance":1,"duration":1,"date":"yesterday","id":"1","type":"running"}]`
	ws, err := decodeWorkouts(raw, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	assert.Empty(t, ws)
}

func TestDecodeWorkouts_RejectsNonArray(t *testing.T) {
	_, err := decodeWorkouts(`{"workouts":[]}`, slog.New(slog.DiscardHandler))
	assert.Error(t, err)
}

func TestCodec_RoundTripFixtures(t *testing.T) {
	in := []*domain.Workout{
		testutil.NewTestRunning(testutil.WithCoords(51.5, -0.12)),
		testutil.NewTestCycling(testutil.WithDistance(42), testutil.WithMetric(310)),
	}
	raw, err := encodeWorkouts(in)
	require.NoError(t, err)

	out, err := decodeWorkouts(raw, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, in[0].Coords, out[0].Coords)
	assert.Equal(t, in[0].Cadence, out[0].Cadence)
	assert.Equal(t, 42.0, out[1].Distance)
	assert.Equal(t, 310.0, out[1].ElevationGain)
	assert.InDelta(t, in[1].Speed, out[1].Speed, 1e-9)
}
