// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package remote

import (
	"context"
	"errors"
	"net/http"
)

// UserPath returns the user behind the bearer token.
const UserPath = "/auth/v1/user"

// User is the authenticated account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// User asks the server who the current token belongs to. It returns nil
// without a request when no token is stored, and nil when the server rejects
// the token.
func (c *Client) User(ctx context.Context) (*User, error) {
	if c.tokens == nil {
		return nil, nil
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}

	var u User
	err = c.do(ctx, http.MethodGet, UserPath, nil, nil, &u)
	var serr *StatusError
	if errors.As(err, &serr) && serr.StatusCode == http.StatusUnauthorized {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if u.ID == "" {
		return nil, nil
	}
	return &u, nil
}

// CurrentUser implements auth.UserSource.
func (c *Client) CurrentUser(ctx context.Context) (string, bool, error) {
	u, err := c.User(ctx)
	if err != nil || u == nil {
		return "", false, err
	}
	return u.ID, true, nil
}
