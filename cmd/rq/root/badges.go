package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"readquest/internal/ui"
)

func newBadgesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "badges",
		Short: "Show earned and locked badges",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			coord, cleanup, err := openCoordinator(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, ui.Heading(ui.IconTrophy, "Badges"))
			for _, b := range coord.Badges() {
				if b.Unlocked {
					fmt.Fprintf(w, "%s %s %s\n", b.Icon, ui.Good.Render(b.Name), ui.Muted.Render(b.Description))
					continue
				}
				fmt.Fprintf(w, "%s %s %s\n", ui.IconLock, ui.Muted.Render(b.Name), ui.Muted.Render("("+b.Condition+")"))
			}
			return nil
		},
	}

	return cmd
}
