package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/am24/brickshop/internal/domain/model/catalog"
	"github.com/am24/brickshop/internal/util/price"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse and refresh the product catalog",
		RunE:  func(c *cobra.Command, _ []string) error { return c.Help() },
	}
	cmd.AddCommand(newCatalogRefreshCmd())
	cmd.AddCommand(newCatalogListCmd())
	cmd.AddCommand(newCatalogShowCmd())
	cmd.AddCommand(newCatalogSearchCmd())
	return cmd
}

func newCatalogRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Re-fetch every category into the local cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := globalContainer.CatalogService.RefreshAll(cmd.Context()); err != nil {
				return err
			}
			for _, t := range globalContainer.Config.CategoryTypes() {
				state := globalContainer.CatalogService.CategoryState(t)
				if state.Err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%-12s failed: %v\n", t, state.Err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %d products\n", t, len(state.Products))
			}
			return nil
		},
	}
}

func newCatalogListCmd() *cobra.Command {
	var cached bool

	cmd := &cobra.Command{
		Use:   "list <type>",
		Short: "List products of one category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var products []catalog.Product
			var err error
			if cached {
				products, err = globalContainer.CatalogService.CachedByType(cmd.Context(), args[0])
			} else {
				products, err = globalContainer.CatalogService.SyncByType(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			printProducts(cmd, products)
			return nil
		},
	}
	cmd.Flags().BoolVar(&cached, "cached", false, "read the local cache without fetching")
	return cmd
}

func newCatalogShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one product, remote first with cache fallback",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}

			p, err := globalContainer.CatalogService.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (#%d)\n", p.Name, p.ID)
			fmt.Fprintf(out, "  Type:      %s\n", p.Type)
			if p.Category != "" {
				fmt.Fprintf(out, "  Category:  %s\n", p.Category)
			}
			fmt.Fprintf(out, "  Price:     %s\n", price.Format(p.Price))
			fmt.Fprintf(out, "  Available: %t\n", p.IsAvailable)
			if p.Description != "" {
				fmt.Fprintf(out, "  %s\n", p.Description)
			}
			return nil
		},
	}
}

func newCatalogSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search cached products by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := globalContainer.CatalogService.SearchLocal(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printProducts(cmd, products)
			return nil
		},
	}
}

func printProducts(cmd *cobra.Command, products []catalog.Product) {
	if len(products) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No products.")
		return
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tPRICE")
	for _, p := range products {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Name, p.Type, price.Format(p.Price))
	}
	w.Flush()
}
