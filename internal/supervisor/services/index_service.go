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

// Trainer rebuilds the recommendation index.
type Trainer interface {
	Train(ctx context.Context) error
}

// IndexServiceConfig configures the index service.
type IndexServiceConfig struct {
	// BuildOnStartup builds the index as soon as the service starts instead
	// of on the first recommendation request.
	BuildOnStartup bool

	// RebuildInterval is the period between rebuilds. Zero disables them.
	RebuildInterval time.Duration

	// BuildTimeout bounds one build. Default: 1m
	BuildTimeout time.Duration
}

// IndexService keeps the recommendation index fresh. Build failures are
// logged and retried on the next tick; the previous index keeps serving.
type IndexService struct {
	trainer Trainer
	config  IndexServiceConfig
	logger  zerolog.Logger
	name    string
}

// NewIndexService creates the service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewIndexService(trainer Trainer, cfg IndexServiceConfig, logger zerolog.Logger) *IndexService {
	if cfg.BuildTimeout <= 0 {
		cfg.BuildTimeout = time.Minute
	}
	return &IndexService{
		trainer: trainer,
		config:  cfg,
		logger:  logger.With().Str("service", "recommend-index").Logger(),
		name:    "recommend-index",
	}
}

// Serve implements suture.Service.
func (s *IndexService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("build_on_startup", s.config.BuildOnStartup).
		Dur("rebuild_interval", s.config.RebuildInterval).
		Msg("index service starting")

	if s.config.BuildOnStartup {
		if err := s.build(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("initial index build failed, building on demand")
		}
	}

	if s.config.RebuildInterval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.RebuildInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("index service shutting down")
			return ctx.Err()
		case <-ticker.C:
			if err := s.build(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled index rebuild failed")
			}
		}
	}
}

func (s *IndexService) build(ctx context.Context) error {
	buildCtx, cancel := context.WithTimeout(ctx, s.config.BuildTimeout)
	defer cancel()

	start := time.Now()
	if err := s.trainer.Train(buildCtx); err != nil {
		return err
	}
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("index rebuilt")
	return nil
}

// String implements fmt.Stringer for suture's logs.
func (s *IndexService) String() string {
	return s.name
}
