package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/mapty/internal/config"
	"github.com/alexanderramin/mapty/internal/geo"
	"github.com/alexanderramin/mapty/internal/storage"
	"github.com/alexanderramin/mapty/internal/tracker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds everything the commands need. The entry point fills it in; tests
// build one around a MemoryStore or an in-memory SQLite database.
type App struct {
	Store   storage.KeyValueStore
	Locator geo.Locator
	Config  config.Config
	Logger  *slog.Logger

	// Now overrides the clock used for new workouts.
	Now func() time.Time

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool

	// Confirm asks a yes/no question. Defaults to a huh prompt.
	Confirm func(title, description string) (bool, error)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// controllerOptions applies the configured zoom, tiles and clock.
func (a *App) controllerOptions() []tracker.Option {
	var opts []tracker.Option
	if a.Config.TileURL != "" {
		opts = append(opts,
			tracker.WithZoom(a.Config.Zoom),
			tracker.WithTileLayer(a.Config.TileURL, a.Config.Attribution),
		)
	}
	if a.Now != nil {
		opts = append(opts, tracker.WithClock(a.Now))
	}
	return opts
}

// NewRootCmd creates the top-level "mapty" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var ephemeral bool

	root := &cobra.Command{
		Use:   "mapty",
		Short: "Log runs and rides on a map in your terminal",
		Long: "mapty shows a map centered on your position. Click a spot to log a\n" +
			"running or cycling workout there; workouts are kept across restarts.\n" +
			"Without a terminal on stdin it prints the workout list instead.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if ephemeral {
				app.Store = storage.NewMemoryStore()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return runList(cmd, app)
			}
			p := tea.NewProgram(newAppModel(app), tea.WithAltScreen(), tea.WithMouseCellMotion())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running interface: %w", err)
			}
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep workouts in memory only for this run")

	root.AddCommand(
		newLogCmd(app),
		newListCmd(app),
		newResetCmd(app),
	)

	return root
}
