package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newWishlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Manage the remote wishlist",
		RunE:  func(c *cobra.Command, _ []string) error { return c.Help() },
	}
	cmd.AddCommand(newWishlistListCmd())
	cmd.AddCommand(newWishlistToggleCmd())
	cmd.AddCommand(newWishlistSetCmd())
	cmd.AddCommand(newWishlistRemoveCmd())
	cmd.AddCommand(newWishlistClearCmd())
	return cmd
}

func newWishlistListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the wishlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := globalContainer.WishlistService.Refresh(cmd.Context()); err != nil {
				return err
			}
			state := globalContainer.WishlistService.Snapshot()
			if len(state.Raw) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Wishlist is empty.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRODUCT\tQTY\tADDED")
			for _, item := range state.Raw {
				fmt.Fprintf(w, "%d\t%d\t%s\n", item.ProductID, item.Quantity, item.AddedAt)
			}
			return w.Flush()
		},
	}
}

func newWishlistToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <product-id>",
		Short: "Add or remove a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			// The toggle settles only after the debounce window and the
			// reconciling refresh.
			if err := <-globalContainer.WishlistService.Toggle(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Toggled.")
			return nil
		},
	}
}

func newWishlistSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "adjust <product-id> <delta>",
		Short: "Change a product's quantity by delta",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			delta, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid delta %q", args[1])
			}

			// The quantity verbs need the remote entry id.
			if err := globalContainer.WishlistService.Refresh(cmd.Context()); err != nil {
				return err
			}
			if err := globalContainer.WishlistService.UpdateQuantity(cmd.Context(), id, delta); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Updated.")
			return nil
		},
	}
}

func newWishlistRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product entirely",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			if err := globalContainer.WishlistService.Refresh(cmd.Context()); err != nil {
				return err
			}
			if err := globalContainer.WishlistService.RemoveCompletely(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Removed.")
			return nil
		},
	}
}

func newWishlistClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the wishlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := globalContainer.WishlistService.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wishlist cleared.")
			return nil
		},
	}
}
