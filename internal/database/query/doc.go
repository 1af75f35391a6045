// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

// Package query renders row store filters into parameterized DuckDB SQL.
//
// Identifiers are always double-quoted and values are always bound as
// positional "?" parameters, so filter values never reach the SQL text.
package query
