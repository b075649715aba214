package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"readquest/internal/ui"
)

func newBooksCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "books",
		Aliases: []string{"ls", "list"},
		Short:   "List quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			coord, cleanup, err := openCoordinator(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			books := coord.ActiveBooks()
			if all {
				books = coord.Books()
			}
			fmt.Fprintln(out, ui.Heading(ui.IconQuest, "Quests"))
			if len(books) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(none yet; try `rq add \"Title\" --pages 300`)"))
				return nil
			}
			for _, b := range books {
				fmt.Fprintf(out, "%s %s %s %s %d/%d %s\n",
					ui.Muted.Render(shortID(b.ID)),
					ui.BookIcon(b.Status),
					b.Title,
					ui.Bar(b.CurrentPage, b.TotalPages, 16),
					b.CurrentPage, b.TotalPages,
					ui.StatusText(b.Status),
				)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include completed quests")
	return cmd
}
