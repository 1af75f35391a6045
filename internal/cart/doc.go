// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

// Package cart owns a shopper's cart line items and keeps an in-memory view of
// them reconciled with a row store.
//
// A line item belongs to a session id, a user id, or both. Reads and clears
// address the union of the two with an OR filter, so items added anonymously stay
// visible after login. Adopt optionally re-owns anonymous items to the user.
//
// Every mutation is confirmed by the row store before the view changes: the view
// is replaced only by a successful Refresh (or emptied by a successful Clear).
// Mutations on one Store are serialized. Two Stores for the same owner (two
// processes, two server replicas) can still race on add and create duplicate
// line items for one product, size and color; merge-on-add is best effort.
package cart
