// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package auth

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishubhamdubey/KAPAS/internal/kv"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newManager(t *testing.T) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(testSecret, time.Hour)
	require.NoError(t, err)
	return m
}

func TestNewJWTManager(t *testing.T) {
	_, err := NewJWTManager("short", time.Hour)
	assert.Error(t, err)

	_, err = NewJWTManager(testSecret, 0)
	assert.Error(t, err)
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := newManager(t)

	token, err := m.GenerateToken("user-1", "a@example.com")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "a@example.com", claims.Email)

	_, err = m.GenerateToken("", "")
	assert.Error(t, err)
}

func TestJWTManager_Rejects(t *testing.T) {
	m := newManager(t)

	other, err := NewJWTManager(strings.Repeat("x", 40), time.Hour)
	require.NoError(t, err)
	foreign, err := other.GenerateToken("user-1", "")
	require.NoError(t, err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    "kapas",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "kapas"},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1", Issuer: "kapas"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"wrong secret": foreign,
		"expired":      expired,
		"no subject":   noSubject,
		"alg none":     unsigned,
		"garbage":      "not-a-token",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := m.ValidateToken(token)
			assert.Error(t, err)
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "Bearer abc.def", want: "abc.def"},
		{header: "bearer  abc", want: "abc"},
		{header: "", wantErr: true},
		{header: "Basic dXNlcg==", wantErr: true},
		{header: "Bearer", wantErr: true},
	}
	for _, tt := range tests {
		r := httptest.NewRequest("GET", "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		got, err := BearerToken(r)
		if tt.wantErr {
			assert.Error(t, err, tt.header)
			continue
		}
		require.NoError(t, err, tt.header)
		assert.Equal(t, tt.want, got)
	}
}

func TestUserSources(t *testing.T) {
	ctx := context.Background()

	_, ok, err := Anonymous{}.CurrentUser(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	id, ok, err := Static("u1").CurrentUser(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "u1", id)

	_, ok, _ = Static("").CurrentUser(ctx)
	assert.False(t, ok)

	_, ok, _ = ContextSource{}.CurrentUser(ctx)
	assert.False(t, ok)
	id, ok, _ = ContextSource{}.CurrentUser(ContextWithUser(ctx, "u2"))
	assert.True(t, ok)
	assert.Equal(t, "u2", id)
}

func TestTokenSource(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	tokens := NewTokenStore(kv.NewMemory())
	src := TokenSource{Tokens: tokens, Manager: m}

	_, ok, err := src.CurrentUser(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "no stored token means anonymous")

	token, err := m.GenerateToken("user-7", "")
	require.NoError(t, err)
	require.NoError(t, tokens.Save(ctx, token))

	id, ok, err := src.CurrentUser(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "user-7", id)

	require.NoError(t, tokens.Save(ctx, "tampered"))
	_, _, err = src.CurrentUser(ctx)
	assert.Error(t, err)

	require.NoError(t, tokens.Clear(ctx))
	got, err := tokens.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	assert.Error(t, tokens.Save(ctx, ""))
}
