// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	errNotLoggedIn   = errors.New("not logged in, run \"kapas login <token>\" first")
	errTokenRejected = errors.New("token rejected by the server")
)

// sessionInfo is the JSON shape of "session".
type sessionInfo struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id,omitempty"`
	Email     string `json:"email,omitempty"`
}

func newSessionCmd(app *App) *cobra.Command {
	var reset bool
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Show the cart session and the logged-in account",
		Long: `Shows the session id that owns this machine's anonymous cart lines.
--reset forgets it; the next command starts a new, empty session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := app.context(cmd)
			defer cancel()

			if reset {
				if err := app.Session.Reset(ctx); err != nil {
					return fmt.Errorf("reset session: %w", err)
				}
			}
			id, err := app.Session.SessionID(ctx)
			if err != nil {
				return err
			}
			info := sessionInfo{SessionID: id}

			user, err := app.Users.User(ctx)
			if err != nil {
				// The session is local; a down server only hides the account.
				cmd.PrintErrf("account unavailable: %v\n", err)
			} else if user != nil {
				info.UserID = user.ID
				info.Email = user.Email
			}

			if jsonOutput(cmd) {
				return printJSON(cmd, info)
			}
			cmd.Printf("Session: %s\n", info.SessionID)
			switch {
			case info.UserID == "":
				cmd.Println("Account: not logged in")
			case info.Email != "":
				cmd.Printf("Account: %s (%s)\n", info.UserID, info.Email)
			default:
				cmd.Printf("Account: %s\n", info.UserID)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "start a new session")
	return cmd
}

func newLoginCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login [token]",
		Short: "Store a bearer token for your account",
		Long: `Stores the token and checks it against the server. A rejected token is
not kept. When cart adoption on login is enabled, this session's anonymous
cart lines move to the account.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.context(cmd)
			defer cancel()

			if err := app.Tokens.Save(ctx, args[0]); err != nil {
				return fmt.Errorf("save token: %w", err)
			}
			user, err := app.Users.User(ctx)
			if err == nil && user == nil {
				err = errTokenRejected
			}
			if err != nil {
				if clearErr := app.Tokens.Clear(ctx); clearErr != nil {
					cmd.PrintErrf("failed to discard token: %v\n", clearErr)
				}
				return err
			}
			cmd.Printf("Logged in as %s.\n", user.ID)

			if !app.AdoptOnLogin {
				return nil
			}
			n, err := app.Cart.Adopt(ctx)
			if err != nil {
				return fmt.Errorf("adopt cart: %w", err)
			}
			if n > 0 {
				cmd.Printf("Moved %d cart line(s) to your account.\n", n)
			}
			return nil
		},
	}
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := app.context(cmd)
			defer cancel()

			if err := app.Tokens.Clear(ctx); err != nil {
				return fmt.Errorf("clear token: %w", err)
			}
			cmd.Println("Logged out.")
			return nil
		},
	}
}
