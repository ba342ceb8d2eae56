package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/mapty/internal/cli"
	"github.com/alexanderramin/mapty/internal/config"
	"github.com/alexanderramin/mapty/internal/db"
	"github.com/alexanderramin/mapty/internal/geo"
	"github.com/alexanderramin/mapty/internal/storage"
	"github.com/alexanderramin/mapty/internal/tracker"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	logger, closeLog := openLogger(cfg.LogFile)
	defer closeLog()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	app := &cli.App{
		Store:   storage.NewSQLiteStore(database),
		Locator: newLocator(cfg),
		Config:  cfg,
		Logger:  logger,
	}

	// Detect interactive terminal for the map interface.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	err = rootCmd.Execute()

	if cfg.MetricsFile != "" {
		if merr := tracker.WriteMetrics(cfg.MetricsFile); merr != nil {
			logger.Warn("writing metrics", "path", cfg.MetricsFile, "error", merr)
		}
	}
	return err
}

// openLogger writes text logs to path, or discards them if the file cannot
// be opened.
func openLogger(path string) (*slog.Logger, func()) {
	var w io.Writer = io.Discard
	closeFn := func() {}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err == nil {
				w = f
				closeFn = func() { f.Close() }
			}
		}
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler).With("session", uuid.NewString()), closeFn
}

// newLocator tries a configured fixed position first, then the IP lookup
// endpoint (on by default). When both fail or are off, the map is
// unavailable.
func newLocator(cfg config.Config) geo.Locator {
	var chain []geo.Locator
	if cfg.HasStaticPosition() {
		chain = append(chain, geo.StaticLocator{Position: geo.Position{
			Latitude:  *cfg.StaticLat,
			Longitude: *cfg.StaticLng,
		}})
	}
	if cfg.GeoEndpoint != "" {
		timeout := time.Duration(cfg.GeoTimeoutMs) * time.Millisecond
		chain = append(chain, geo.NewHTTPLocator(cfg.GeoEndpoint, timeout))
	}
	chain = append(chain, geo.Unavailable{})
	return geo.FirstOf(chain...)
}
