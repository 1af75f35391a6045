// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

// Package cli implements the kapas command line client.
//
// Commands run against an App. The binary wires it to the remote row API and
// local Badger storage; tests wire it to in-memory stores.
package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/ishubhamdubey/KAPAS/internal/auth"
	"github.com/ishubhamdubey/KAPAS/internal/cart"
	"github.com/ishubhamdubey/KAPAS/internal/catalog"
	"github.com/ishubhamdubey/KAPAS/internal/recommend"
	"github.com/ishubhamdubey/KAPAS/internal/remote"
	"github.com/ishubhamdubey/KAPAS/internal/session"
	"github.com/ishubhamdubey/KAPAS/internal/wishlist"
)

// UserLookup resolves the account behind the stored token. It returns nil for
// anonymous clients.
type UserLookup interface {
	User(ctx context.Context) (*remote.User, error)
}

// App holds the services the commands drive.
type App struct {
	Catalog     *catalog.Catalog
	Recommender *recommend.Recommender
	Cart        *cart.Store
	Wishlist    *wishlist.List
	Session     *session.Identity
	Tokens      *auth.TokenStore
	Users       UserLookup

	// AdoptOnLogin moves the session's anonymous cart lines to the user after login.
	AdoptOnLogin bool

	// Timeout bounds one command. Zero means no bound beyond the client's own.
	Timeout time.Duration

	// Version is printed by --version.
	Version string
}

func (a *App) validate() error {
	switch {
	case a.Catalog == nil:
		return errors.New("catalog is required")
	case a.Recommender == nil:
		return errors.New("recommender is required")
	case a.Cart == nil:
		return errors.New("cart is required")
	case a.Wishlist == nil:
		return errors.New("wishlist is required")
	case a.Session == nil:
		return errors.New("session identity is required")
	case a.Tokens == nil:
		return errors.New("token store is required")
	case a.Users == nil:
		return errors.New("user lookup is required")
	}
	return nil
}

// context returns the command context bounded by the app timeout.
func (a *App) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if a.Timeout > 0 {
		return context.WithTimeout(ctx, a.Timeout)
	}
	return context.WithCancel(ctx)
}

// NewRootCommand builds the kapas command tree over app.
func NewRootCommand(app *App) (*cobra.Command, error) {
	if err := app.validate(); err != nil {
		return nil, err
	}

	version := app.Version
	if version == "" {
		version = "dev"
	}

	root := &cobra.Command{
		Use:   "kapas",
		Short: "Browse the KAPAS storefront from the terminal",
		Long: `kapas browses the catalog, searches by description and manages the
cart and wishlist of this machine's shopping session.

The cart lives on the server and follows the session id kept in local storage.
After "kapas login" it also includes the lines saved under the account.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("json", false, "output as JSON")

	root.AddCommand(
		newProductsCmd(app),
		newSimilarCmd(app),
		newSearchCmd(app),
		newDeliveryCmd(app),
		newCartCmd(app),
		newWishlistCmd(app),
		newSessionCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
	)
	return root, nil
}

func jsonOutput(cmd *cobra.Command) bool {
	on, err := cmd.Flags().GetBool("json")
	return err == nil && on
}
