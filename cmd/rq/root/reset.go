package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"readquest/internal/model"
	"readquest/internal/ui"
)

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all books, stats and sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			coord, cleanup, err := openCoordinator(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			req := coord.RequestReset()
			if !yes && !confirm(cmd, "This erases every quest and all progress. Continue?") {
				coord.CancelReset(req.Token)
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Reset cancelled."))
				return nil
			}
			if err := coord.ConfirmReset(ctx, req.Token); err != nil {
				return err
			}
			if coord.Degraded() {
				return fmt.Errorf("%w: reset was not saved, your previous progress will be back next run", model.ErrPersistenceUnavailable)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("Progress reset. A new journey begins."))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
