// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWishlistCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Manage saved products",
		Long:  `The wishlist is kept on this machine only.`,
	}
	cmd.AddCommand(newWishlistListCmd(app), newWishlistToggleCmd(app))
	return cmd
}

func newWishlistListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show saved products",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := app.context(cmd)
			defer cancel()

			if err := app.Wishlist.Load(ctx); err != nil {
				return fmt.Errorf("load wishlist: %w", err)
			}
			ids := app.Wishlist.IDs()
			if len(ids) == 0 {
				if jsonOutput(cmd) {
					return printJSON(cmd, []string{})
				}
				cmd.Println("Your wishlist is empty.")
				return nil
			}

			products, err := app.Catalog.ByIDs(ctx, ids)
			if err != nil {
				// Ids stay useful when the catalog is unreachable.
				if jsonOutput(cmd) {
					return printJSON(cmd, ids)
				}
				cmd.PrintErrf("catalog unavailable: %v\n", err)
				for _, id := range ids {
					cmd.Printf("  %s\n", id)
				}
				return nil
			}
			return printProducts(cmd, products)
		},
	}
}

func newWishlistToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle [product-id]",
		Short: "Save a product, or unsave it if already saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.context(cmd)
			defer cancel()

			if err := app.Wishlist.Load(ctx); err != nil {
				return fmt.Errorf("load wishlist: %w", err)
			}
			saved, err := app.Wishlist.Toggle(ctx, args[0])
			if err != nil {
				return fmt.Errorf("update wishlist: %w", err)
			}
			if jsonOutput(cmd) {
				return printJSON(cmd, map[string]any{"id": args[0], "saved": saved})
			}
			if saved {
				cmd.Printf("Saved %s.\n", args[0])
			} else {
				cmd.Printf("Removed %s.\n", args[0])
			}
			return nil
		},
	}
}
