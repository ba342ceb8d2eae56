package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg := LoadFrom("/home/u/.mapty", envMap(nil))

	assert.Equal(t, filepath.Join("/home/u/.mapty", "mapty.db"), cfg.DBPath)
	assert.Equal(t, 13, cfg.Zoom)
	assert.Equal(t, DefaultTileURL, cfg.TileURL)
	assert.Equal(t, DefaultAttribution, cfg.Attribution)
	assert.Equal(t, 5000, cfg.GeoTimeoutMs)
	assert.Equal(t, filepath.Join("/home/u/.mapty", "mapty.log"), cfg.LogFile)
	assert.Empty(t, cfg.MetricsFile)
	assert.Equal(t, "http://ip-api.com/json/", cfg.GeoEndpoint)
	assert.False(t, cfg.HasStaticPosition())
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg := LoadFrom("/x", envMap(map[string]string{
		"MAPTY_DB":               "/tmp/m.db",
		"MAPTY_ZOOM":             "15",
		"MAPTY_TILE_URL":         "https://tiles.example/{z}/{x}/{y}.png",
		"MAPTY_TILE_ATTRIBUTION": "Example",
		"MAPTY_LAT":              "39.5",
		"MAPTY_LNG":              "-12",
		"MAPTY_GEO_ENDPOINT":     "http://ip-api.com/json",
		"MAPTY_GEO_TIMEOUT_MS":   "250",
		"MAPTY_LOG_FILE":         "/tmp/m.log",
		"MAPTY_METRICS_FILE":     "/tmp/m.prom",
	}))

	assert.Equal(t, "/tmp/m.db", cfg.DBPath)
	assert.Equal(t, 15, cfg.Zoom)
	assert.Equal(t, "https://tiles.example/{z}/{x}/{y}.png", cfg.TileURL)
	assert.Equal(t, "Example", cfg.Attribution)
	require.True(t, cfg.HasStaticPosition())
	assert.Equal(t, 39.5, *cfg.StaticLat)
	assert.Equal(t, -12.0, *cfg.StaticLng)
	assert.Equal(t, "http://ip-api.com/json", cfg.GeoEndpoint)
	assert.Equal(t, 250, cfg.GeoTimeoutMs)
	assert.Equal(t, "/tmp/m.log", cfg.LogFile)
	assert.Equal(t, "/tmp/m.prom", cfg.MetricsFile)
}

func TestLoadFrom_GeoLookupOff(t *testing.T) {
	cfg := LoadFrom("/x", envMap(map[string]string{"MAPTY_GEO_ENDPOINT": "off"}))

	assert.Empty(t, cfg.GeoEndpoint)
}

func TestLoadFrom_IgnoresInvalidValues(t *testing.T) {
	cfg := LoadFrom("/x", envMap(map[string]string{
		"MAPTY_ZOOM":           "42",
		"MAPTY_GEO_TIMEOUT_MS": "-1",
		"MAPTY_LAT":            "north",
		"MAPTY_LNG":            "10",
	}))

	assert.Equal(t, DefaultZoom, cfg.Zoom)
	assert.Equal(t, DefaultGeoTimeout, cfg.GeoTimeoutMs)
	assert.False(t, cfg.HasStaticPosition(), "both coordinates are needed")
}
