// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package recommend

import (
	"fmt"
	"time"
)

// DefaultTopK is the number of recommendations returned when the caller does not
// ask for a specific count.
const DefaultTopK = 8

// Config contains configuration for the recommender.
type Config struct {
	// TopK is used when a caller passes k <= 0.
	TopK int `json:"top_k"`

	// MaxTopK caps caller-supplied k values.
	MaxTopK int `json:"max_top_k"`

	// BuildTimeout bounds loading the corpus from its source.
	BuildTimeout time.Duration `json:"build_timeout"`
}

// DefaultConfig returns the default recommender configuration.
func DefaultConfig() *Config {
	return &Config{
		TopK:         DefaultTopK,
		MaxTopK:      100,
		BuildTimeout: 30 * time.Second,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.TopK < 1 {
		return fmt.Errorf("top_k must be positive, got %d", c.TopK)
	}
	if c.MaxTopK < c.TopK {
		return fmt.Errorf("max_top_k must be >= top_k (%d), got %d", c.TopK, c.MaxTopK)
	}
	if c.BuildTimeout <= 0 {
		return fmt.Errorf("build_timeout must be positive, got %v", c.BuildTimeout)
	}
	return nil
}

// clampK resolves a caller-supplied k against the configuration.
func (c *Config) clampK(k int) int {
	if k <= 0 {
		return c.TopK
	}
	if k > c.MaxTopK {
		return c.MaxTopK
	}
	return k
}
