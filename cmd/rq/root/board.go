package root

import (
	"context"

	"github.com/spf13/cobra"

	"readquest/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive reading dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			coord, cleanup, err := openCoordinator(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(ctx, coord, cmd.OutOrStdout())
		},
	}

	return cmd
}
