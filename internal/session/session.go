// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

// Package session issues and persists the anonymous cart session identifier.
package session

import (
	"context"
	"encoding/binary"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ishubhamdubey/KAPAS/internal/kv"
	"github.com/ishubhamdubey/KAPAS/internal/logging"
)

// StorageKey is the client storage key holding the session id.
const StorageKey = "cart_session_id"

const (
	prefix       = "session_"
	suffixLength = 9
)

var idPattern = regexp.MustCompile(`^session_[0-9]+_[0-9a-z]{9}$`)

// NewID returns a fresh session id of the form session_<unix-ms>_<9 base-36 chars>.
func NewID(now time.Time) string {
	u := uuid.New()
	suffix := strconv.FormatUint(binary.BigEndian.Uint64(u[:8]), 36)
	if len(suffix) < suffixLength {
		suffix = strings.Repeat("0", suffixLength-len(suffix)) + suffix
	}
	return prefix + strconv.FormatInt(now.UnixMilli(), 10) + "_" + suffix[:suffixLength]
}

// Valid reports whether id has the session id shape.
func Valid(id string) bool {
	return idPattern.MatchString(id)
}

// GetOrCreate returns the session id persisted in store, creating and persisting
// one on first use. It never fails: if storage cannot be read or written the new
// id is still returned and the failure is logged.
func GetOrCreate(ctx context.Context, store kv.Store) string {
	id, err := store.Get(ctx, StorageKey)
	if err == nil && id != "" {
		return id
	}
	if err != nil && !errors.Is(err, kv.ErrNotFound) {
		logging.Ctx(ctx).Warn().Err(err).Msg("session storage unreadable, issuing a new session id")
	}

	id = NewID(time.Now())
	if err := store.Set(ctx, StorageKey, id); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("failed to persist session id")
	}
	return id
}

// Identity resolves the session id once per process and caches it, so a storage
// failure cannot hand out different ids to successive calls.
type Identity struct {
	store kv.Store

	mu sync.Mutex
	id string
}

// NewIdentity creates an Identity over store.
func NewIdentity(store kv.Store) *Identity {
	return &Identity{store: store}
}

// SessionID returns the durable session id.
func (i *Identity) SessionID(ctx context.Context) (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.id == "" {
		i.id = GetOrCreate(ctx, i.store)
	}
	return i.id, nil
}

// Reset forgets the cached id and removes it from storage; the next SessionID
// call issues a new one.
func (i *Identity) Reset(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.id = ""
	return i.store.Delete(ctx, StorageKey)
}

// Fixed is a session source with a known id, used when the id arrives with a
// request.
type Fixed string

// SessionID returns the fixed id.
func (f Fixed) SessionID(context.Context) (string, error) {
	if f == "" {
		return "", errors.New("empty session id")
	}
	return string(f), nil
}
