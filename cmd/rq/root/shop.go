package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"readquest/internal/ui"
)

func newShopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "List items in the mana shop",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			coord, cleanup, err := openCoordinator(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, ui.Heading(ui.IconShop, "Shop"))
			fmt.Fprintln(w, ui.LabelValue("Balance", ui.ManaText(coord.Stats().Mana)))
			fmt.Fprintln(w, "")
			for _, it := range coord.Shop() {
				price := ui.ManaText(it.Price)
				if it.Locked {
					price = ui.Muted.Render(ui.IconLock + " locked")
				}
				fmt.Fprintf(w, "%s %s %s\n  %s\n", ui.Key.Render(it.ID), it.Name, price, ui.Muted.Render(it.Description))
			}
			return nil
		},
	}

	return cmd
}

func newBuyCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "buy <item-id>",
		Short: "Spend mana on a shop item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			coord, cleanup, err := openCoordinator(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			q, err := coord.QuotePurchase(args[0])
			if err != nil {
				return err
			}
			question := fmt.Sprintf("Buy %s for %s mana? Balance after: %s.", q.Item.Name, ui.Number(q.Item.Price), ui.Number(q.ManaAfter))
			if !yes && !confirm(cmd, question) {
				coord.CancelPurchase(q.Token)
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Purchase cancelled."))
				return nil
			}
			stats, err := coord.ConfirmPurchase(ctx, q.Token)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Bought %s. %s left.\n", ui.IconShop, q.Item.Name, ui.ManaText(stats.Mana))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
