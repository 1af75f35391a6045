// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/ishubhamdubey/KAPAS/internal/kv"
)

// TokenKey is the client storage key holding the bearer token.
const TokenKey = "auth_token"

// TokenStore keeps the client's bearer token in durable storage.
type TokenStore struct {
	store kv.Store
}

// NewTokenStore creates a TokenStore over store.
func NewTokenStore(store kv.Store) *TokenStore {
	return &TokenStore{store: store}
}

// Token returns the stored token, or "" when logged out.
func (t *TokenStore) Token(ctx context.Context) (string, error) {
	token, err := t.store.Get(ctx, TokenKey)
	if errors.Is(err, kv.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return token, nil
}

// Save stores token.
func (t *TokenStore) Save(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	return t.store.Set(ctx, TokenKey, token)
}

// Clear removes the stored token.
func (t *TokenStore) Clear(ctx context.Context) error {
	return t.store.Delete(ctx, TokenKey)
}

// TokenSource is a UserSource that verifies the stored token locally.
type TokenSource struct {
	Tokens  *TokenStore
	Manager *JWTManager
}

// CurrentUser implements UserSource. A missing token is anonymous; an invalid
// one is an error.
func (s TokenSource) CurrentUser(ctx context.Context) (string, bool, error) {
	token, err := s.Tokens.Token(ctx)
	if err != nil {
		return "", false, err
	}
	if token == "" {
		return "", false, nil
	}
	claims, err := s.Manager.ValidateToken(token)
	if err != nil {
		return "", false, err
	}
	return claims.Subject, true, nil
}
