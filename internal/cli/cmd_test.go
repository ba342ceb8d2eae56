package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/alexanderramin/mapty/internal/config"
	"github.com/alexanderramin/mapty/internal/geo"
	"github.com/alexanderramin/mapty/internal/storage"
	"github.com/alexanderramin/mapty/internal/testutil"
	"github.com/alexanderramin/mapty/internal/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lisbon = geo.Position{Latitude: 38.7223, Longitude: -9.1393}

// testApp wires a full App backed by an in-memory SQLite database.
func testApp(t *testing.T) *App {
	t.Helper()
	return &App{
		Store:   storage.NewSQLiteStore(testutil.NewTestDB(t)),
		Locator: geo.StaticLocator{Position: lisbon},
		Config:  config.DefaultConfig(t.TempDir()),
		Now:     testutil.Clock(testutil.FixedNow),
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// seedRun logs a 10 km / 30 min run through the log command.
func seedRun(t *testing.T, app *App, at string) {
	t.Helper()
	_, err := executeCmd(t, app, "log", "running", "--at", at,
		"--distance", "10", "--duration", "30", "--cadence", "200")
	require.NoError(t, err)
}

func storedWorkouts(t *testing.T, app *App) string {
	t.Helper()
	raw, err := app.Store.Get(context.Background(), "workouts")
	if err != nil {
		return ""
	}
	return raw
}

// --- log ---

func TestLogCmd_Running(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "log", "running", "--at", "39,-12",
		"--distance", "10", "--duration", "30", "--cadence", "200")
	require.NoError(t, err)

	assert.Contains(t, out, "Logged Running on April 14")
	assert.Contains(t, out, "⚡️ 3.0 min/km")
	assert.Contains(t, out, "🦶🏼 200 spm")
	assert.Contains(t, storedWorkouts(t, app), `"coords":[39,-12]`)
}

func TestLogCmd_CyclingWithLatLng(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "log", "cycling", "--lat", "39", "--lng", "-12",
		"--distance", "5", "--duration", "10", "--elevation", "30")
	require.NoError(t, err)

	assert.Contains(t, out, "Logged Cycling on April 14")
	assert.Contains(t, out, "⚡️ 30.0 km/h")
	assert.Contains(t, out, "⛰ 30 m")
}

func TestLogCmd_CyclingAllowsNegativeElevation(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "log", "cycling", "--at", "39,-12",
		"--distance", "5", "--duration", "10", "--elevation", "-20")
	require.NoError(t, err)
	assert.Contains(t, out, "⛰ -20 m")
}

func TestLogCmd_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"negative cadence", []string{"running", "--cadence", "-1", "--distance", "10", "--duration", "30"}},
		{"zero distance", []string{"running", "--cadence", "180", "--distance", "0", "--duration", "30"}},
		{"not a number", []string{"cycling", "--elevation", "10", "--distance", "ten", "--duration", "30"}},
		{"missing cadence", []string{"running", "--distance", "10", "--duration", "30"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApp(t)
			args := append([]string{"log", "--at", "39,-12"}, tt.args...)

			out, err := executeCmd(t, app, args...)
			require.ErrorIs(t, err, tracker.ErrInvalidInput)
			assert.Contains(t, out, "Invalid input")
			assert.Empty(t, storedWorkouts(t, app), "nothing persisted")
		})
	}
}

func TestLogCmd_RejectsMetricOfOtherType(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "log", "running", "--at", "39,-12",
		"--distance", "10", "--duration", "30", "--elevation", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--elevation")

	_, err = executeCmd(t, app, "log", "cycling", "--at", "39,-12",
		"--distance", "10", "--duration", "30", "--cadence", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--cadence")
}

func TestLogCmd_RequiresPosition(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "log", "running", "--distance", "10", "--duration", "30", "--cadence", "180")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a position is required")

	_, err = executeCmd(t, app, "log", "running", "--lat", "39",
		"--distance", "10", "--duration", "30", "--cadence", "180")
	require.Error(t, err, "--lat alone is not enough")
}

func TestLogCmd_RejectsBadPosition(t *testing.T) {
	app := testApp(t)

	for _, at := range []string{"39", "a,b", "91,0", "0,181"} {
		_, err := executeCmd(t, app, "log", "running", "--at", at,
			"--distance", "10", "--duration", "30", "--cadence", "180")
		assert.Error(t, err, at)
	}
}

func TestLogCmd_UnknownType(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "log", "swimming", "--at", "39,-12", "--distance", "1", "--duration", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "swimming")
}

// --- list ---

func TestListCmd_Empty(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No workouts yet")
}

func TestListCmd_NewestFirst(t *testing.T) {
	app := testApp(t)
	seedRun(t, app, "39,-12")
	_, err := executeCmd(t, app, "log", "cycling", "--at", "38,-9",
		"--distance", "42", "--duration", "95", "--elevation", "380")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "list")
	require.NoError(t, err)

	assert.Contains(t, out, "Workouts (2)")
	ride := strings.Index(out, "Cycling")
	run := strings.Index(out, "Running")
	require.NotEqual(t, -1, ride)
	require.NotEqual(t, -1, run)
	assert.Less(t, ride, run)
	assert.Contains(t, out, "26.5 km/h")
	assert.Contains(t, out, "380 m")
}

func TestRootCmd_NonInteractiveListsWorkouts(t *testing.T) {
	app := testApp(t)
	seedRun(t, app, "39,-12")

	out, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, out, "Workouts (1)")
	assert.Contains(t, out, "3.0 min/km")
}

func TestEphemeralFlag_LeavesStorageUntouched(t *testing.T) {
	app := testApp(t)
	persistent := app.Store

	_, err := executeCmd(t, app, "--ephemeral", "log", "running", "--at", "39,-12",
		"--distance", "10", "--duration", "30", "--cadence", "200")
	require.NoError(t, err)

	_, err = persistent.Get(context.Background(), "workouts")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

// --- reset ---

func TestResetCmd_RefusesWithoutYes(t *testing.T) {
	app := testApp(t)
	seedRun(t, app, "39,-12")

	_, err := executeCmd(t, app, "reset")
	require.ErrorIs(t, err, errResetNotConfirmed)
	assert.NotEmpty(t, storedWorkouts(t, app))
}

func TestResetCmd_Yes(t *testing.T) {
	app := testApp(t)
	seedRun(t, app, "39,-12")
	seedRun(t, app, "38,-9")

	out, err := executeCmd(t, app, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 2 workout(s)")

	out, err = executeCmd(t, app, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No workouts yet")
}

func TestResetCmd_Confirmation(t *testing.T) {
	tests := []struct {
		name     string
		answer   bool
		wantOut  string
		wantKept bool
	}{
		{"keep", false, "Kept your workouts.", true},
		{"delete", true, "Deleted 1 workout(s)", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApp(t)
			seedRun(t, app, "39,-12")

			var asked string
			app.IsInteractive = func() bool { return true }
			app.Confirm = func(title, _ string) (bool, error) {
				asked = title
				return tt.answer, nil
			}

			out, err := executeCmd(t, app, "reset")
			require.NoError(t, err)
			assert.Equal(t, "Delete all workouts?", asked)
			assert.Contains(t, out, tt.wantOut)
			assert.Equal(t, tt.wantKept, storedWorkouts(t, app) != "")
		})
	}
}

func TestApplyReset_EmptyStorage(t *testing.T) {
	app := testApp(t)

	msg, err := applyReset(context.Background(), app)
	require.NoError(t, err)
	assert.Contains(t, msg, "Deleted 0 workout(s)")
}
