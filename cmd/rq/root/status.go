package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"readquest/internal/model"
	"readquest/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show hero stats and attributes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			coord, cleanup, err := openCoordinator(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			w := cmd.OutOrStdout()
			s := coord.Stats()
			fmt.Fprintln(w, ui.Heading(ui.IconSparkle, s.DisplayName))
			fmt.Fprintln(w, ui.LabelValue("Level", s.Level))
			fmt.Fprintln(w, ui.LabelValue("XP", fmt.Sprintf("%s / %s %s", ui.Number(s.XP), ui.Number(s.MaxXP), ui.Bar(s.XP, s.MaxXP, 20))))
			fmt.Fprintln(w, ui.LabelValue("Mana", ui.ManaText(s.Mana)))
			fmt.Fprintln(w, ui.LabelValue("Streak", fmt.Sprintf("%s %d days", ui.IconStreak, s.Streak)))
			fmt.Fprintln(w, ui.LabelValue("Books read", s.BooksRead))
			fmt.Fprintln(w, ui.LabelValue("Reading time", fmt.Sprintf("%.1fh", s.TotalTimeHours)))
			fmt.Fprintln(w, "")

			fmt.Fprintln(w, ui.H2.Render("Attributes"))
			top := 10
			for _, a := range model.AllAttributes {
				if v := s.Attributes.Get(a); v > top {
					top = v
				}
			}
			for _, a := range model.AllAttributes {
				name, source := ui.AttributeLabel(a)
				v := s.Attributes.Get(a)
				fmt.Fprintf(w, "- %-14s %s %3d %s\n", name, ui.Bar(v, top, 16), v, ui.Muted.Render("("+source+")"))
			}

			if coord.Degraded() {
				fmt.Fprintln(w, "")
				fmt.Fprintln(w, ui.Warn.Render(ui.IconWarn+" progress is not being saved this run"))
			}
			return nil
		},
	}

	return cmd
}
