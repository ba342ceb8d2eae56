package config

import (
	"os"
	"path/filepath"
	"strconv"
)

const (
	DefaultZoom        = 13
	DefaultTileURL     = "https://{s}.tile.openstreetmap.fr/hot/{z}/{x}/{y}.png"
	DefaultAttribution = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
	DefaultGeoTimeout  = 5000
	DefaultGeoEndpoint = "http://ip-api.com/json/"

	// GeoOff as MAPTY_GEO_ENDPOINT disables the network lookup.
	GeoOff = "off"
)

// Config holds all runtime settings. Every field has a default so a bare
// `mapty` works with no environment at all.
type Config struct {
	DBPath       string
	Zoom         int
	TileURL      string
	Attribution  string
	StaticLat    *float64
	StaticLng    *float64
	GeoEndpoint  string
	GeoTimeoutMs int
	LogFile      string
	MetricsFile  string
}

// DefaultConfig returns a Config rooted at dir (normally ~/.mapty).
func DefaultConfig(dir string) Config {
	return Config{
		DBPath:       filepath.Join(dir, "mapty.db"),
		Zoom:         DefaultZoom,
		TileURL:      DefaultTileURL,
		Attribution:  DefaultAttribution,
		GeoEndpoint:  DefaultGeoEndpoint,
		GeoTimeoutMs: DefaultGeoTimeout,
		LogFile:      filepath.Join(dir, "mapty.log"),
	}
}

// Load reads configuration from environment variables, falling back to
// defaults for any unset or unparseable values.
func Load() Config {
	dir := ".mapty"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".mapty")
	}
	return LoadFrom(dir, os.Getenv)
}

// LoadFrom is Load with an explicit base directory and variable lookup.
func LoadFrom(dir string, getenv func(string) string) Config {
	cfg := DefaultConfig(dir)

	if v := getenv("MAPTY_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := getenv("MAPTY_ZOOM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 19 {
			cfg.Zoom = n
		}
	}
	if v := getenv("MAPTY_TILE_URL"); v != "" {
		cfg.TileURL = v
	}
	if v := getenv("MAPTY_TILE_ATTRIBUTION"); v != "" {
		cfg.Attribution = v
	}

	lat, latOK := parseFloatEnv(getenv, "MAPTY_LAT")
	lng, lngOK := parseFloatEnv(getenv, "MAPTY_LNG")
	if latOK && lngOK {
		cfg.StaticLat = &lat
		cfg.StaticLng = &lng
	}

	switch v := getenv("MAPTY_GEO_ENDPOINT"); v {
	case "":
	case GeoOff:
		cfg.GeoEndpoint = ""
	default:
		cfg.GeoEndpoint = v
	}
	if v := getenv("MAPTY_GEO_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.GeoTimeoutMs = n
		}
	}
	if v := getenv("MAPTY_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := getenv("MAPTY_METRICS_FILE"); v != "" {
		cfg.MetricsFile = v
	}

	return cfg
}

// HasStaticPosition reports whether MAPTY_LAT and MAPTY_LNG were both set.
func (c Config) HasStaticPosition() bool {
	return c.StaticLat != nil && c.StaticLng != nil
}

func parseFloatEnv(getenv func(string) string, name string) (float64, bool) {
	v := getenv(name)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
