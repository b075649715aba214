package root

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"readquest/internal/app"
	"readquest/internal/engine"
	"readquest/internal/model"
	"readquest/internal/ui"
)

func newReadCmd() *cobra.Command {
	var pages int
	var minutes int
	var note string

	cmd := &cobra.Command{
		Use:     "read <book-id-or-prefix>",
		Short:   "Log a finished reading session",
		Example: `  rq read 3f2a --pages 25 --minutes 40 --note "the spice must flow"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			coord, cleanup, err := openCoordinator(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if minutes < 0 || minutes > math.MaxInt/60 {
				return model.InputError{Field: "minutes", Reason: fmt.Sprintf("%d is out of range", minutes)}
			}
			out, err := coord.LogSession(ctx, args[0], engine.Report{
				PagesRead:      pages,
				ElapsedSeconds: minutes * 60,
				Note:           note,
			}, time.Now())
			if err != nil {
				return err
			}
			printOutcome(cmd, out)
			return nil
		},
	}

	cmd.Flags().IntVarP(&pages, "pages", "p", 0, "Pages read in this session")
	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "Minutes spent reading")
	cmd.Flags().StringVarP(&note, "note", "n", "", "Reflection note")
	return cmd
}

func printOutcome(cmd *cobra.Command, out *app.Outcome) {
	w := cmd.OutOrStdout()
	b := out.Book
	fmt.Fprintf(w, "%s %s %s %d/%d\n", ui.BookIcon(b.Status), b.Title, ui.Bar(b.CurrentPage, b.TotalPages, 20), b.CurrentPage, b.TotalPages)
	fmt.Fprintf(w, "%s +%d XP  %s\n", ui.IconSparkle, out.Delta.XP, ui.ManaText(out.Delta.Mana))
	if b.Status == model.StatusCompleted {
		fmt.Fprintln(w, ui.Good.Render(ui.IconTrophy+" Quest cleared!"))
	}
	if out.LevelUp {
		fmt.Fprintf(w, "%s reached level %d\n", ui.BadgeLevelUp, out.Stats.Level)
	}
	for _, badge := range out.NewBadges {
		fmt.Fprintf(w, "%s %s %s\n", badge.Icon, ui.Gold.Render(badge.Name), ui.Muted.Render(badge.Description))
	}
	fmt.Fprintf(w, "%s %d-day streak\n", ui.IconStreak, out.Stats.Streak)
}
