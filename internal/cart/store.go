// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/ishubhamdubey/KAPAS/internal/auth"
	"github.com/ishubhamdubey/KAPAS/internal/catalog"
	"github.com/ishubhamdubey/KAPAS/internal/metrics"
	"github.com/ishubhamdubey/KAPAS/internal/rowstore"
)

// Sentinel errors.
var (
	ErrSampleProduct   = errors.New("sample products cannot be added to the cart")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrItemNotFound    = errors.New("cart item not found")
)

// SessionSource yields the durable anonymous session id.
type SessionSource interface {
	SessionID(ctx context.Context) (string, error)
}

// Identity resolves the owner of a cart.
type Identity struct {
	Session SessionSource
	User    auth.UserSource
}

type owner struct {
	sessionID string
	userID    string
}

func (o owner) authenticated() bool { return o.userID != "" }

// filter matches rows owned by the session or, when authenticated, the user.
func (o owner) filter() rowstore.Filter {
	if !o.authenticated() {
		return rowstore.Eq("session_id", o.sessionID)
	}
	return rowstore.Or(rowstore.Eq("session_id", o.sessionID), rowstore.Eq("user_id", o.userID))
}

// Store is one client's cart. It is safe for concurrent use; mutations are
// serialized.
type Store struct {
	rows     rowstore.Store
	identity Identity
	logger   zerolog.Logger
	now      func() time.Time

	// mu serializes mutations and refreshes.
	mu     sync.Mutex
	loaded bool

	viewMu sync.RWMutex
	items  []LineItem

	loading atomic.Bool
}

// NewStore creates a cart over rows for identity. A nil user source is anonymous.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStore(rows rowstore.Store, identity Identity, logger zerolog.Logger) (*Store, error) {
	if rows == nil {
		return nil, errors.New("row store is required")
	}
	if identity.Session == nil {
		return nil, errors.New("session source is required")
	}
	if identity.User == nil {
		identity.User = auth.Anonymous{}
	}
	return &Store{
		rows:     rows,
		identity: identity,
		logger:   logger.With().Str("component", "cart").Logger(),
		now:      time.Now,
	}, nil
}

// SetClock overrides the clock used for updated_at.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) owner(ctx context.Context) (owner, error) {
	sid, err := s.identity.Session.SessionID(ctx)
	if err != nil {
		return owner{}, fmt.Errorf("resolve session: %w", err)
	}
	uid, ok, err := s.identity.User.CurrentUser(ctx)
	if err != nil {
		return owner{}, fmt.Errorf("resolve user: %w", err)
	}
	if !ok {
		uid = ""
	}
	return owner{sessionID: sid, userID: uid}, nil
}

// Add puts quantity units of product in the given size and color into the cart.
// An existing line for the same product, size and color in the loaded view is
// incremented; otherwise a new line is inserted. A matching line that no longer
// exists in the store is replaced by a new one. The view is refreshed afterwards.
func (s *Store) Add(ctx context.Context, product catalog.Product, size, color string, quantity int) (err error) {
	defer func() { metrics.RecordCartOperation("add", err) }()

	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if product.ID == "" {
		return fmt.Errorf("%w: empty product id", catalog.ErrNotFound)
	}
	if catalog.IsSample(product.ID) {
		return ErrSampleProduct
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.owner(ctx)
	if err != nil {
		return err
	}
	if !s.loaded {
		if err := s.refreshLocked(ctx, o); err != nil {
			return err
		}
	}

	if existing, ok := s.find(product.ID, size, color); ok {
		err := s.updateLocked(ctx, o, existing.ID, existing.Quantity+int64(quantity))
		if !errors.Is(err, ErrItemNotFound) {
			return err
		}
		// Deleted elsewhere; the refreshed view decides.
		if existing, ok := s.find(product.ID, size, color); ok {
			return s.updateLocked(ctx, o, existing.ID, existing.Quantity+int64(quantity))
		}
	}

	row := rowstore.Row{
		"session_id":     o.sessionID,
		"product_id":     product.ID,
		"quantity":       int64(quantity),
		"selected_size":  size,
		"selected_color": color,
	}
	if o.authenticated() {
		row["user_id"] = o.userID
	}
	if _, err := s.rows.Insert(ctx, rowstore.CartItems.Name, row); err != nil {
		return fmt.Errorf("insert cart item: %w", err)
	}
	s.logger.Debug().
		Str("session_id", o.sessionID).
		Str("product_id", product.ID).
		Int("quantity", quantity).
		Msg("cart item added")
	return s.refreshLocked(ctx, o)
}

// Update sets the quantity of item id. A quantity of zero or less removes it.
func (s *Store) Update(ctx context.Context, id string, quantity int) (err error) {
	defer func() { metrics.RecordCartOperation("update", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.owner(ctx)
	if err != nil {
		return err
	}
	if quantity <= 0 {
		return s.removeLocked(ctx, o, id)
	}
	return s.updateLocked(ctx, o, id, int64(quantity))
}

// Remove deletes item id.
func (s *Store) Remove(ctx context.Context, id string) (err error) {
	defer func() { metrics.RecordCartOperation("remove", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.owner(ctx)
	if err != nil {
		return err
	}
	return s.removeLocked(ctx, o, id)
}

// Clear deletes every item owned by the session or the user and empties the view
// without a refresh.
func (s *Store) Clear(ctx context.Context) (err error) {
	defer func() { metrics.RecordCartOperation("clear", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.owner(ctx)
	if err != nil {
		return err
	}
	n, err := s.rows.Delete(ctx, rowstore.CartItems.Name, o.filter())
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	s.setItems(nil)
	s.loaded = true
	s.logger.Debug().Str("session_id", o.sessionID).Int("removed", n).Msg("cart cleared")
	return nil
}

// Refresh reloads the owner's items with their products. On failure the previous
// view is kept and the error returned.
func (s *Store) Refresh(ctx context.Context) (err error) {
	defer func() { metrics.RecordCartOperation("refresh", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.owner(ctx)
	if err != nil {
		return err
	}
	return s.refreshLocked(ctx, o)
}

// Adopt assigns the current user to the session's items that have no user yet,
// then refreshes. It returns the number of re-owned items; anonymous carts adopt
// nothing.
func (s *Store) Adopt(ctx context.Context) (n int, err error) {
	defer func() { metrics.RecordCartOperation("adopt", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.owner(ctx)
	if err != nil {
		return 0, err
	}
	if !o.authenticated() {
		return 0, nil
	}
	n, err = s.rows.Update(ctx, rowstore.CartItems.Name,
		rowstore.And(rowstore.Eq("session_id", o.sessionID), rowstore.IsNull("user_id")),
		rowstore.Row{"user_id": o.userID, rowstore.ColumnUpdatedAt: s.now().UTC()},
	)
	if err != nil {
		return 0, fmt.Errorf("adopt cart items: %w", err)
	}
	if n > 0 {
		s.logger.Info().Str("session_id", o.sessionID).Str("user_id", o.userID).Int("items", n).Msg("anonymous cart adopted")
	}
	return n, s.refreshLocked(ctx, o)
}

// Items returns a copy of the loaded items, oldest first.
func (s *Store) Items() []LineItem {
	s.viewMu.RLock()
	defer s.viewMu.RUnlock()
	return cloneItems(s.items)
}

// Count returns the sum of quantities of the loaded items.
func (s *Store) Count() int64 {
	s.viewMu.RLock()
	defer s.viewMu.RUnlock()
	var n int64
	for i := range s.items {
		n += s.items[i].Quantity
	}
	return n
}

// Total returns the sum of line subtotals of the loaded items.
func (s *Store) Total() float64 {
	s.viewMu.RLock()
	defer s.viewMu.RUnlock()
	var total float64
	for i := range s.items {
		total += s.items[i].Subtotal()
	}
	return total
}

// IsLoading reports whether a refresh is in flight.
func (s *Store) IsLoading() bool {
	return s.loading.Load()
}

// updateLocked must be called with mu held. When no row matches, the view is
// refreshed before ErrItemNotFound is returned so stale lines drop out.
func (s *Store) updateLocked(ctx context.Context, o owner, id string, quantity int64) error {
	n, err := s.rows.Update(ctx, rowstore.CartItems.Name,
		rowstore.And(rowstore.Eq(rowstore.ColumnID, id), o.filter()),
		rowstore.Row{"quantity": quantity, rowstore.ColumnUpdatedAt: s.now().UTC()},
	)
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	if n == 0 {
		return s.missingLocked(ctx, o, id)
	}
	return s.refreshLocked(ctx, o)
}

// removeLocked must be called with mu held.
func (s *Store) removeLocked(ctx context.Context, o owner, id string) error {
	n, err := s.rows.Delete(ctx, rowstore.CartItems.Name,
		rowstore.And(rowstore.Eq(rowstore.ColumnID, id), o.filter()))
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if n == 0 {
		return s.missingLocked(ctx, o, id)
	}
	return s.refreshLocked(ctx, o)
}

// missingLocked resyncs the view after a write matched no row.
func (s *Store) missingLocked(ctx context.Context, o owner, id string) error {
	if err := s.refreshLocked(ctx, o); err != nil {
		s.logger.Warn().Err(err).Str("item_id", id).Msg("refresh after missing cart item failed")
	}
	return fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

// refreshLocked must be called with mu held.
func (s *Store) refreshLocked(ctx context.Context, o owner) error {
	s.loading.Store(true)
	defer s.loading.Store(false)

	rows, err := s.rows.Select(ctx, rowstore.CartItems.Name, rowstore.Query{
		Where:   o.filter(),
		OrderBy: rowstore.ColumnCreatedAt,
	})
	if err != nil {
		return fmt.Errorf("select cart items: %w", err)
	}
	items, err := rowstore.DecodeAll[LineItem](rows)
	if err != nil {
		return err
	}
	if err := s.join(ctx, items); err != nil {
		return err
	}

	s.setItems(items)
	s.loaded = true
	return nil
}

// join attaches products to items with one select over the distinct product ids.
func (s *Store) join(ctx context.Context, items []LineItem) error {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for i := range items {
		if _, ok := seen[items[i].ProductID]; ok {
			continue
		}
		seen[items[i].ProductID] = struct{}{}
		ids = append(ids, items[i].ProductID)
	}

	rows, err := s.rows.Select(ctx, rowstore.Products.Name, rowstore.Query{
		Where: rowstore.InStrings(rowstore.ColumnID, ids),
	})
	if err != nil {
		return fmt.Errorf("select cart products: %w", err)
	}
	products, err := rowstore.DecodeAll[catalog.Product](rows)
	if err != nil {
		return err
	}
	byID := make(map[string]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for i := range items {
		if p, ok := byID[items[i].ProductID]; ok {
			c := p.Clone()
			items[i].Product = &c
		} else {
			s.logger.Warn().Str("item_id", items[i].ID).Str("product_id", items[i].ProductID).Msg("cart item references a missing product")
		}
	}
	return nil
}

func (s *Store) find(productID, size, color string) (LineItem, bool) {
	s.viewMu.RLock()
	defer s.viewMu.RUnlock()
	for _, it := range s.items {
		if it.Matches(productID, size, color) {
			return it, true
		}
	}
	return LineItem{}, false
}

func (s *Store) setItems(items []LineItem) {
	s.viewMu.Lock()
	defer s.viewMu.Unlock()
	s.items = items
}
