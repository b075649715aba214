package root

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"readquest/internal/model"
	"readquest/internal/ui"
)

func newAddCmd() *cobra.Command {
	var author string
	var pages int
	var genre string
	var scan string

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a book as a new quest",
		Example: `  rq add "Dune" --author "Frank Herbert" --pages 612 --genre Sci-Fi
  rq add --scan cover.jpg --pages 400`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && scan == "" {
				return errors.New("title is required (or use --scan)")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			coord, cleanup, err := openCoordinator(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			var draft model.BookDraft
			if len(args) > 0 {
				draft.SetTitle(strings.Join(args, " "))
			}
			f := cmd.Flags()
			if f.Changed("author") {
				draft.SetAuthor(author)
			}
			if f.Changed("pages") {
				draft.SetPages(pages)
			}
			if f.Changed("genre") {
				draft.SetGenre(genre)
			}

			if scan != "" {
				image, err := os.ReadFile(scan)
				if err != nil {
					return fmt.Errorf("read cover: %w", err)
				}
				task := coord.StartCoverScan(ctx, image)
				task.Wait(ctx)
				filled, notice := task.MergeInto(&draft)
				if notice != "" {
					warn(cmd, notice)
				}
				for _, field := range filled {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s from cover\n", ui.Muted.Render(ui.IconSparkle), field)
				}
			}

			book, err := coord.AddBook(ctx, draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Good.Render(ui.IconPlus+" Quest added:"),
				book.Title,
				ui.Muted.Render(fmt.Sprintf("(%d pages, %s, id %s)", book.TotalPages, book.Genre, shortID(book.ID))),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&author, "author", "a", "", "Author")
	cmd.Flags().IntVarP(&pages, "pages", "p", 0, "Total pages")
	cmd.Flags().StringVarP(&genre, "genre", "g", "", "Genre (default General)")
	cmd.Flags().StringVar(&scan, "scan", "", "Cover photo to pre-fill title, author and pages")

	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
