// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

// Package wishlist keeps the client's saved product ids in durable storage.
package wishlist

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/goccy/go-json"

	"github.com/ishubhamdubey/KAPAS/internal/kv"
	"github.com/ishubhamdubey/KAPAS/internal/logging"
)

// StorageKey is the client storage key holding the id list as a JSON array.
const StorageKey = "wishlist_ids"

// List is an ordered set of product ids. It is safe for concurrent use.
type List struct {
	store kv.Store

	mu  sync.RWMutex
	ids []string
}

// New creates an empty list over store. Call Load to read persisted ids.
func New(store kv.Store) *List {
	return &List{store: store}
}

// Load replaces the in-memory ids with the persisted ones. Missing or corrupt data
// loads as an empty list.
func (l *List) Load(ctx context.Context) error {
	raw, err := l.store.Get(ctx, StorageKey)
	if errors.Is(err, kv.ErrNotFound) {
		l.set(nil)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read wishlist: %w", err)
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("discarding corrupt wishlist")
		ids = nil
	}
	l.set(dedupe(ids))
	return nil
}

// IDs returns a copy of the ids in insertion order.
func (l *List) IDs() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.ids)
}

// Len returns the number of saved ids.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.ids)
}

// Has reports whether id is saved.
func (l *List) Has(id string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Contains(l.ids, id)
}

// Add saves id. Adding a saved id is a no-op.
func (l *List) Add(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if slices.Contains(l.ids, id) {
		return nil
	}
	return l.persist(ctx, append(slices.Clone(l.ids), id))
}

// Remove drops id. Removing an unsaved id is a no-op.
func (l *List) Remove(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := slices.Index(l.ids, id)
	if i < 0 {
		return nil
	}
	return l.persist(ctx, slices.Delete(slices.Clone(l.ids), i, i+1))
}

// Toggle adds id when absent and removes it when present. It reports whether id
// is saved afterwards.
func (l *List) Toggle(ctx context.Context, id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	next := slices.Clone(l.ids)
	i := slices.Index(next, id)
	added := i < 0
	if added {
		next = append(next, id)
	} else {
		next = slices.Delete(next, i, i+1)
	}
	if err := l.persist(ctx, next); err != nil {
		return !added, err
	}
	return added, nil
}

// persist writes ids and adopts them only once the write succeeded. Must be
// called with mu held.
func (l *List) persist(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode wishlist: %w", err)
	}
	if err := l.store.Set(ctx, StorageKey, string(data)); err != nil {
		return fmt.Errorf("write wishlist: %w", err)
	}
	l.ids = ids
	return nil
}

func (l *List) set(ids []string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ids = ids
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
