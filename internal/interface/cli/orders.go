package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/am24/brickshop/internal/util/price"
)

func newOrdersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Browse order history",
		RunE:  func(c *cobra.Command, _ []string) error { return c.Help() },
	}
	cmd.AddCommand(newOrdersListCmd())
	cmd.AddCommand(newOrdersShowCmd())
	return cmd
}

func newOrdersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := globalContainer.OrderAPI.ListMine(cmd.Context())
			if err != nil {
				return err
			}
			if page == nil || len(page.Data) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No orders yet.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tTOTAL\tCREATED")
			for _, o := range page.Data {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", o.ID, o.Status, price.Format(o.TotalPrice), o.CreatedAt)
			}
			return w.Flush()
		},
	}
}

func newOrdersShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <order-id>",
		Short: "Show one order with its lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid order id %q", args[0])
			}

			details, err := globalContainer.OrderAPI.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Order %d  %s  %s\n", details.Order.ID, details.Order.Status, price.Format(details.Order.TotalPrice))
			fmt.Fprintf(out, "Created %s\n", details.Order.CreatedAt)

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRODUCT\tQTY\tUNIT PRICE")
			for _, item := range details.Items {
				fmt.Fprintf(w, "%d\t%d\t%s\n", item.ProductID, item.Quantity, price.Format(item.PriceAtPurchase))
			}
			return w.Flush()
		},
	}
}
