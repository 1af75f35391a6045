// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

// Package services adapts server components to suture.Service.
//
// Each service blocks in Serve until its context is canceled and returns
// ctx.Err() then, so the supervisor treats the stop as intentional:
//
//	tree.AddAPIService(services.NewHTTPServerService(server, ":8080", 10*time.Second, logger))
//	tree.AddMaintenanceService(services.NewIndexService(recommender, cfg, logger))
//	tree.AddMaintenanceService(services.NewSweepService(carts, time.Minute, logger))
package services
