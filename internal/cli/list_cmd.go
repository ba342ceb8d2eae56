package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/mapty/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List logged workouts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, app)
		},
	}
}

func runList(cmd *cobra.Command, app *App) error {
	ctrl := newHeadlessController(app, nil, nil)
	if err := ctrl.Start(cmd.Context()); err != nil {
		return err
	}
	now := time.Now()
	if app.Now != nil {
		now = app.Now()
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWorkoutTable(ctrl.Workouts(), now))
	return nil
}
