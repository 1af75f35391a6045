// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

// Package main is the kapas command line client.
//
// The client keeps its session id, bearer token and wishlist in a Badger store
// under KAPAS_DATA_DIR and reads and writes catalog and cart rows through the
// server's row API at KAPAS_REMOTE_URL.
//
//	kapas products --featured
//	kapas search "red silk saree"
//	kapas cart add kapas-bs-2 --size M --color Red
//	kapas login "$TOKEN"
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ishubhamdubey/KAPAS/internal/auth"
	"github.com/ishubhamdubey/KAPAS/internal/cart"
	"github.com/ishubhamdubey/KAPAS/internal/catalog"
	"github.com/ishubhamdubey/KAPAS/internal/cli"
	"github.com/ishubhamdubey/KAPAS/internal/config"
	"github.com/ishubhamdubey/KAPAS/internal/kv"
	"github.com/ishubhamdubey/KAPAS/internal/logging"
	"github.com/ishubhamdubey/KAPAS/internal/recommend"
	"github.com/ishubhamdubey/KAPAS/internal/remote"
	"github.com/ishubhamdubey/KAPAS/internal/session"
	"github.com/ishubhamdubey/KAPAS/internal/wishlist"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "kapas: %v\n", err)
		return 1
	}

	logCfg := cfg.Logging.LoggingConfig()
	logCfg.Format = "console"
	logCfg.Output = os.Stderr
	logging.Init(logCfg)

	store, err := kv.OpenBadger(cfg.Client.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kapas: %v\n", err)
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Warn().Err(err).Msg("failed to close local storage")
		}
	}()

	app, err := newApp(cfg, store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kapas: %v\n", err)
		return 1
	}

	root, err := cli.NewRootCommand(app)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kapas: %v\n", err)
		return 1
	}
	root.SetOut(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "kapas: %v\n", err)
		return 1
	}
	return 0
}

func newApp(cfg *config.Config, store kv.Store) (*cli.App, error) {
	tokens := auth.NewTokenStore(store)
	identity := session.NewIdentity(store)
	client, err := remote.NewFromConfig(&cfg.Client, tokens, identity)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.New(client, cfg.Recommend.Corpus, logging.WithComponent("catalog"))
	if err != nil {
		return nil, err
	}
	recommender, err := recommend.New(cat, cfg.Recommend.RecommenderConfig(), logging.WithComponent("recommend"))
	if err != nil {
		return nil, err
	}

	carts, err := cart.NewStore(client, cart.Identity{Session: identity, User: client}, logging.WithComponent("cart"))
	if err != nil {
		return nil, err
	}

	return &cli.App{
		Catalog:      cat,
		Recommender:  recommender,
		Cart:         carts,
		Wishlist:     wishlist.New(store),
		Session:      identity,
		Tokens:       tokens,
		Users:        client,
		AdoptOnLogin: cfg.Cart.AdoptOnLogin,
		Timeout:      cfg.Client.Timeout * 3,
		Version:      version,
	}, nil
}
