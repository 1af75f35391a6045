// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package api

import (
	"context"
	"errors"
	"time"

	"github.com/ishubhamdubey/KAPAS/internal/auth"
	"github.com/ishubhamdubey/KAPAS/internal/cart"
	"github.com/ishubhamdubey/KAPAS/internal/catalog"
	"github.com/ishubhamdubey/KAPAS/internal/config"
	"github.com/ishubhamdubey/KAPAS/internal/recommend"
	"github.com/ishubhamdubey/KAPAS/internal/rowstore"
)

// Pinger reports backend health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies are the services the handlers call.
type Dependencies struct {
	Catalog     *catalog.Catalog
	Recommender *recommend.Recommender
	Carts       *cart.Registry
	Rows        rowstore.Store
	JWT         *auth.JWTManager // nil disables authentication
	Config      *config.Config
	Pinger      Pinger // optional; the catalog probe is used otherwise
	Version     string
}

// Handler holds the HTTP handlers.
type Handler struct {
	catalog     *catalog.Catalog
	recommender *recommend.Recommender
	carts       *cart.Registry
	rows        rowstore.Store
	jwt         *auth.JWTManager
	config      *config.Config
	pinger      Pinger
	version     string
	startTime   time.Time
}

// NewHandler validates deps and creates the handler set.
func NewHandler(deps Dependencies) (*Handler, error) {
	switch {
	case deps.Catalog == nil:
		return nil, errors.New("catalog is required")
	case deps.Recommender == nil:
		return nil, errors.New("recommender is required")
	case deps.Carts == nil:
		return nil, errors.New("cart registry is required")
	case deps.Rows == nil:
		return nil, errors.New("row store is required")
	case deps.Config == nil:
		return nil, errors.New("config is required")
	}
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	return &Handler{
		catalog:     deps.Catalog,
		recommender: deps.Recommender,
		carts:       deps.Carts,
		rows:        deps.Rows,
		jwt:         deps.JWT,
		config:      deps.Config,
		pinger:      deps.Pinger,
		version:     version,
		startTime:   time.Now(),
	}, nil
}
