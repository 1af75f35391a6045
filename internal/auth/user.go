// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package auth

import "context"

// UserSource resolves the authenticated user. ok is false for anonymous callers;
// err is reserved for failures to find out.
type UserSource interface {
	CurrentUser(ctx context.Context) (id string, ok bool, err error)
}

// Anonymous is a UserSource with no user.
type Anonymous struct{}

// CurrentUser implements UserSource.
func (Anonymous) CurrentUser(context.Context) (string, bool, error) {
	return "", false, nil
}

// Static is a UserSource for a fixed user id. The empty id is anonymous.
type Static string

// CurrentUser implements UserSource.
func (s Static) CurrentUser(context.Context) (string, bool, error) {
	return string(s), s != "", nil
}

type userKey struct{}

// ContextWithUser stores the authenticated user id in ctx.
func ContextWithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

// UserFromContext returns the user id stored by ContextWithUser.
func UserFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userKey{}).(string)
	return id, ok && id != ""
}

// ContextSource reads the user id from the call's context.
type ContextSource struct{}

// CurrentUser implements UserSource.
func (ContextSource) CurrentUser(ctx context.Context) (string, bool, error) {
	id, ok := UserFromContext(ctx)
	return id, ok, nil
}
