// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Sweeper drops expired entries and reports how many remain.
type Sweeper interface {
	Sweep() int
	Len() int
}

// SweepService periodically drops idle carts from the cart registry.
type SweepService struct {
	sweeper  Sweeper
	interval time.Duration
	logger   zerolog.Logger
}

// NewSweepService creates the service. interval defaults to one minute.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSweepService(sweeper Sweeper, interval time.Duration, logger zerolog.Logger) *SweepService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SweepService{
		sweeper:  sweeper,
		interval: interval,
		logger:   logger.With().Str("service", "cart-sweep").Logger(),
	}
}

// Serve implements suture.Service.
func (s *SweepService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := s.sweeper.Sweep(); n > 0 {
				s.logger.Debug().Int("dropped", n).Int("cached", s.sweeper.Len()).Msg("idle carts dropped")
			}
		}
	}
}

// String implements fmt.Stringer for suture's logs.
func (s *SweepService) String() string {
	return "cart-sweep"
}
