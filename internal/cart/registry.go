// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package cart

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/ishubhamdubey/KAPAS/internal/auth"
	"github.com/ishubhamdubey/KAPAS/internal/cache"
	"github.com/ishubhamdubey/KAPAS/internal/metrics"
	"github.com/ishubhamdubey/KAPAS/internal/rowstore"
	"github.com/ishubhamdubey/KAPAS/internal/session"
)

// Registry hands out one Store per (session, user) pair so that requests of the
// same shopper share a serialized cart view. Idle stores expire.
type Registry struct {
	rows   rowstore.Store
	logger zerolog.Logger
	stores *cache.LRU[*Store]
}

// NewRegistry creates a registry holding at most capacity stores, each kept for
// ttl after its last use.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRegistry(rows rowstore.Store, capacity int, ttl time.Duration, logger zerolog.Logger) (*Registry, error) {
	if rows == nil {
		return nil, errors.New("row store is required")
	}
	stores := cache.NewLRU[*Store](capacity, ttl)
	stores.OnEvict(func(string, *Store) {
		metrics.CartStoresCached.Dec()
	})
	return &Registry{rows: rows, logger: logger, stores: stores}, nil
}

// For returns the store for sessionID and userID (empty for anonymous).
func (r *Registry) For(sessionID, userID string) (*Store, error) {
	if sessionID == "" {
		return nil, errors.New("session id is required")
	}
	var buildErr error
	store, existed := r.stores.GetOrAdd(sessionID+"|"+userID, func() *Store {
		s, err := NewStore(r.rows, Identity{
			Session: session.Fixed(sessionID),
			User:    auth.Static(userID),
		}, r.logger)
		buildErr = err
		return s
	})
	if buildErr != nil {
		r.stores.Remove(sessionID + "|" + userID)
		return nil, buildErr
	}
	if !existed {
		metrics.CartStoresCached.Inc()
	}
	return store, nil
}

// Len returns the number of cached stores.
func (r *Registry) Len() int {
	return r.stores.Len()
}

// Sweep drops expired stores and returns how many were dropped.
func (r *Registry) Sweep() int {
	return r.stores.CleanupExpired()
}
