package cli

import (
	"fmt"

	"github.com/alexanderramin/mapty/internal/cli/formatter"
	"github.com/alexanderramin/mapty/internal/domain"
	"github.com/alexanderramin/mapty/internal/tracker"
	"github.com/spf13/cobra"
)

func newLogCmd(app *App) *cobra.Command {
	var distance, duration, cadence, elevation string
	var pos *positionFlags

	cmd := &cobra.Command{
		Use:       "log running|cycling",
		Short:     "Log a workout without opening the map",
		Example:   "  mapty log running --at 38.72,-9.14 --distance 10 --duration 50 --cadence 175\n  mapty log cycling --lat 38.7 --lng -9.1 --distance 42 --duration 95 --elevation 380",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(domain.KindRunning), string(domain.KindCycling)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.ParseKind(args[0])
			if err != nil {
				return err
			}
			at, err := pos.resolve()
			if err != nil {
				return err
			}
			if kind == domain.KindRunning && cmd.Flags().Changed("elevation") {
				return fmt.Errorf("--elevation applies to cycling workouts")
			}
			if kind == domain.KindCycling && cmd.Flags().Changed("cadence") {
				return fmt.Errorf("--cadence applies to running workouts")
			}

			form := &flagForm{values: tracker.FormValues{
				Kind:          kind,
				Distance:      distance,
				Duration:      duration,
				Cadence:       cadence,
				ElevationGain: elevation,
			}}
			ctrl := newHeadlessController(app, form, writerAlerter{w: cmd.ErrOrStderr()})

			ctx := cmd.Context()
			if err := ctrl.Start(ctx); err != nil {
				return err
			}
			ctrl.ShowForm(at)
			w, err := ctrl.Submit(ctx)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLogged(w))
			return nil
		},
	}

	pos = addPositionFlags(cmd.Flags())
	cmd.Flags().StringVar(&distance, "distance", "", "Distance in km")
	cmd.Flags().StringVar(&duration, "duration", "", "Duration in minutes")
	cmd.Flags().StringVar(&cadence, "cadence", "", "Cadence in steps per minute (running)")
	cmd.Flags().StringVar(&elevation, "elevation", "", "Elevation gain in meters (cycling)")
	_ = cmd.MarkFlagRequired("distance")
	_ = cmd.MarkFlagRequired("duration")

	return cmd
}
