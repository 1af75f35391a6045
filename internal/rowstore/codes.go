// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package rowstore

import "errors"

// Wire error codes for row store failures. The HTTP row API writes them and
// the remote client maps them back to the sentinel errors.
const (
	CodeUnknownTable    = "UNKNOWN_TABLE"
	CodeUnknownColumn   = "UNKNOWN_COLUMN"
	CodeInvalidFilter   = "INVALID_FILTER"
	CodeInvalidValue    = "INVALID_VALUE"
	CodeDuplicateKey    = "DUPLICATE_KEY"
	CodeUnfilteredWrite = "UNFILTERED_WRITE"
)

var codes = []struct {
	code string
	err  error
}{
	{CodeUnknownTable, ErrUnknownTable},
	{CodeUnknownColumn, ErrUnknownColumn},
	{CodeInvalidFilter, ErrInvalidFilter},
	{CodeInvalidValue, ErrInvalidValue},
	{CodeDuplicateKey, ErrDuplicateKey},
	{CodeUnfilteredWrite, ErrUnfilteredWrite},
}

// ErrorCode returns the wire code for err, or "" if err is not a row store
// sentinel.
func ErrorCode(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}

// ErrorForCode returns the sentinel for a wire code, or nil.
func ErrorForCode(code string) error {
	for _, c := range codes {
		if c.code == code {
			return c.err
		}
	}
	return nil
}
