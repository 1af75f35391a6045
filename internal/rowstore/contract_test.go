// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package rowstore_test

import (
	"testing"

	"github.com/ishubhamdubey/KAPAS/internal/rowstore"
	"github.com/ishubhamdubey/KAPAS/internal/rowstore/rowstoretest"
)

func TestMemory_Contract(t *testing.T) {
	rowstoretest.Run(t, func(*testing.T) rowstore.Store { return rowstore.NewMemory() })
}
