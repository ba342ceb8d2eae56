package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/mapty/internal/cli/formatter"
	"github.com/spf13/cobra"
)

var errResetNotConfirmed = errors.New("refusing to delete workouts without confirmation (pass --yes)")

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every logged workout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !app.interactive() {
					return errResetNotConfirmed
				}
				confirm := app.Confirm
				if confirm == nil {
					confirm = confirmPrompt
				}
				ok, err := confirm("Delete all workouts?", "This cannot be undone.")
				if err != nil {
					return fmt.Errorf("confirming reset: %w", err)
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Kept your workouts."))
					return nil
				}
			}

			msg, err := applyReset(cmd.Context(), app)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// applyReset wipes storage and reports how many workouts were removed.
func applyReset(ctx context.Context, app *App) (string, error) {
	ctrl := newHeadlessController(app, nil, nil)
	if err := ctrl.Start(ctx); err != nil {
		return "", err
	}
	n := len(ctrl.Workouts())
	if err := ctrl.Reset(ctx); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s Deleted %d workout(s)", formatter.StyleGreen.Render("✔"), n), nil
}
