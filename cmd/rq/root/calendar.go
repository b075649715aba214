package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"readquest/internal/ui"
)

func newCalendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show this month's reading days",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			coord, cleanup, err := openCoordinator(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			now := time.Now().In(coord.Location())
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, ui.Heading(ui.IconCalendar, now.Format("January 2006")))
			fmt.Fprintln(w, ui.MonthGrid(now, coord.ReadingDays()))
			fmt.Fprintln(w, "")
			fmt.Fprintf(w, "%s %d-day streak\n", ui.IconStreak, coord.Stats().Streak)
			return nil
		},
	}

	return cmd
}
