// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newCartCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
		Long: `Manages the cart of this machine's session. Lines saved under the
logged-in account are included.`,
	}
	cmd.AddCommand(
		newCartListCmd(app),
		newCartAddCmd(app),
		newCartUpdateCmd(app),
		newCartRemoveCmd(app),
		newCartClearCmd(app),
		newCartAdoptCmd(app),
	)
	return cmd
}

func newCartListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the cart",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := app.context(cmd)
			defer cancel()

			if err := app.Cart.Refresh(ctx); err != nil {
				return fmt.Errorf("load cart: %w", err)
			}
			return printCart(cmd, app.Cart)
		},
	}
}

func newCartAddCmd(app *App) *cobra.Command {
	var (
		size     string
		color    string
		quantity int
	)
	cmd := &cobra.Command{
		Use:   "add [product-id]",
		Short: "Add a product to the cart",
		Long: `Adds a product in the given size and color. Adding the same product,
size and color again increases the quantity of the existing line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.context(cmd)
			defer cancel()

			product, err := app.Catalog.Product(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Cart.Add(ctx, product, size, color, quantity); err != nil {
				return fmt.Errorf("add to cart: %w", err)
			}
			if !jsonOutput(cmd) {
				cmd.Printf("Added %d x %s.\n", quantity, product.Name)
			}
			return printCart(cmd, app.Cart)
		},
	}
	cmd.Flags().StringVarP(&size, "size", "s", "", "size, e.g. M")
	cmd.Flags().StringVar(&color, "color", "", "color")
	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "number of units")
	return cmd
}

func newCartUpdateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "update [item-id] [quantity]",
		Short: "Change the quantity of a cart line (0 removes it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}

			ctx, cancel := app.context(cmd)
			defer cancel()

			if err := app.Cart.Update(ctx, args[0], quantity); err != nil {
				return fmt.Errorf("update cart: %w", err)
			}
			return printCart(cmd, app.Cart)
		},
	}
}

func newCartRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove [item-id]",
		Aliases: []string{"rm"},
		Short:   "Remove a line from the cart",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.context(cmd)
			defer cancel()

			if err := app.Cart.Remove(ctx, args[0]); err != nil {
				return fmt.Errorf("remove from cart: %w", err)
			}
			return printCart(cmd, app.Cart)
		},
	}
}

func newCartClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := app.context(cmd)
			defer cancel()

			if err := app.Cart.Clear(ctx); err != nil {
				return fmt.Errorf("clear cart: %w", err)
			}
			if jsonOutput(cmd) {
				return printCart(cmd, app.Cart)
			}
			cmd.Println("Cart cleared.")
			return nil
		},
	}
}

func newCartAdoptCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "adopt",
		Short: "Move this session's anonymous cart lines to your account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := app.context(cmd)
			defer cancel()

			user, err := app.Users.User(ctx)
			if err != nil {
				return fmt.Errorf("resolve user: %w", err)
			}
			if user == nil {
				return errNotLoggedIn
			}

			n, err := app.Cart.Adopt(ctx)
			if err != nil {
				return fmt.Errorf("adopt cart: %w", err)
			}
			if jsonOutput(cmd) {
				return printJSON(cmd, map[string]any{"adopted": n})
			}
			cmd.Printf("Moved %d line(s) to %s.\n", n, user.ID)
			return nil
		},
	}
}
