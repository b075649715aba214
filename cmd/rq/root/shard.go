package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"readquest/internal/ui"
)

func newShardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shard <book-id-or-prefix>",
		Short: "Summon a memory shard for a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			coord, cleanup, err := openCoordinator(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			book, err := coord.FindBook(args[0])
			if err != nil {
				return err
			}
			text := coord.MemoryShard(ctx, book.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n%s\n", ui.IconShard, book.Title, ui.Quote.Render("“"+text+"”"))
			return nil
		},
	}

	return cmd
}
