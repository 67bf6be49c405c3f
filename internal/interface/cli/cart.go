package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/am24/brickshop/internal/util/price"
)

func newCartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the local cart",
		RunE:  func(c *cobra.Command, _ []string) error { return c.Help() },
	}
	cmd.AddCommand(newCartListCmd())
	cmd.AddCommand(newCartAddCmd())
	cmd.AddCommand(newCartSetCmd())
	cmd.AddCommand(newCartRemoveCmd())
	cmd.AddCommand(newCartClearCmd())
	cmd.AddCommand(newCartCheckoutCmd())
	return cmd
}

func parseProductID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid product id %q", arg)
	}
	return id, nil
}

func newCartListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the cart contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := globalContainer.CartService.Refresh(cmd.Context()); err != nil {
				return err
			}
			state := globalContainer.CartService.Snapshot()
			if len(state.Items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Cart is empty.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRODUCT\tQTY\tPRICE")
			ctx := cmd.Context()
			for productID, qty := range state.Items {
				p, err := globalContainer.CatalogService.GetByID(ctx, productID)
				if err != nil {
					fmt.Fprintf(w, "%d\t%d\t?\n", productID, qty)
					continue
				}
				fmt.Fprintf(w, "%s\t%d\t%s\n", p.Name, qty, price.FormatLine(qty, p.Price))
			}
			return w.Flush()
		},
	}
}

func newCartAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add one unit of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			// Wait for the debounced add to settle before exiting.
			if err := <-globalContainer.CartService.Add(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Added.")
			return nil
		},
	}
}

func newCartSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Set a product's quantity, 0 removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			if err := globalContainer.CartService.UpdateQuantity(cmd.Context(), id, qty); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Updated.")
			return nil
		},
	}
}

func newCartRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product entirely",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			if err := globalContainer.CartService.RemoveCompletely(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Removed.")
			return nil
		},
	}
}

func newCartClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := globalContainer.CartService.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cart cleared.")
			return nil
		},
	}
}

func newCartCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the current cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			placed, err := globalContainer.CartService.Checkout(cmd.Context())
			if err != nil {
				return err
			}
			if placed == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to order.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order %d placed.\n", placed.ID)
			if placed.Message != "" {
				fmt.Fprintln(cmd.OutOrStdout(), placed.Message)
			}
			return nil
		},
	}
}
