// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package recommend

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/ishubhamdubey/KAPAS/internal/catalog"
	"github.com/ishubhamdubey/KAPAS/internal/metrics"
)

// Recommender owns the current index snapshot and answers similarity queries
// against it. It is safe for concurrent use.
type Recommender struct {
	source catalog.Source
	config *Config
	logger zerolog.Logger

	current atomic.Pointer[Index]
	buildMu sync.Mutex
	builds  atomic.Int64
}

// New creates a recommender over source. The index is built on first use or by
// an explicit Rebuild.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(source catalog.Source, cfg *Config, logger zerolog.Logger) (*Recommender, error) {
	if source == nil {
		return nil, fmt.Errorf("corpus source is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Recommender{
		source: source,
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Rebuild loads the corpus and atomically replaces the current index. Readers
// holding the previous snapshot keep using it unchanged. On error the current
// index is left in place.
func (r *Recommender) Rebuild(ctx context.Context) (*Index, error) {
	r.buildMu.Lock()
	defer r.buildMu.Unlock()
	return r.build(ctx)
}

// Train rebuilds the index. It lets the recommender run under the periodic
// rebuild service.
func (r *Recommender) Train(ctx context.Context) error {
	_, err := r.Rebuild(ctx)
	return err
}

// Index returns the current snapshot, building it if none exists yet.
func (r *Recommender) Index(ctx context.Context) (*Index, error) {
	if ix := r.current.Load(); ix != nil {
		return ix, nil
	}

	r.buildMu.Lock()
	defer r.buildMu.Unlock()
	if ix := r.current.Load(); ix != nil {
		return ix, nil
	}
	return r.build(ctx)
}

// Current returns the current snapshot without building. It is nil before the
// first build.
func (r *Recommender) Current() *Index {
	return r.current.Load()
}

// Builds returns the number of successful index builds.
func (r *Recommender) Builds() int64 {
	return r.builds.Load()
}

// build must be called with buildMu held.
func (r *Recommender) build(ctx context.Context) (*Index, error) {
	start := time.Now()

	buildCtx, cancel := context.WithTimeout(ctx, r.config.BuildTimeout)
	defer cancel()

	groups, err := r.source.Groups(buildCtx)
	if err != nil {
		metrics.RecordIndexBuild(time.Since(start), 0, 0, err)
		r.logger.Error().Err(err).Msg("failed to load corpus")
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	ix := BuildIndex(catalog.BuildCorpus(groups...))
	r.current.Store(ix)
	r.builds.Add(1)

	duration := time.Since(start)
	metrics.RecordIndexBuild(duration, ix.Len(), len(ix.vocab), nil)
	r.logger.Info().
		Int("documents", ix.Len()).
		Int("vocabulary", len(ix.vocab)).
		Dur("duration", duration).
		Msg("index built")
	return ix, nil
}

// ForProduct returns up to k products most similar to the product with id,
// excluding the product itself. An unknown id yields an empty result.
// k <= 0 means the configured default.
func (r *Recommender) ForProduct(ctx context.Context, id string, k int) ([]Recommendation, error) {
	ix, err := r.Index(ctx)
	if err != nil {
		return nil, err
	}
	metrics.RecordRecommendation("product")
	return ix.Similar(id, r.config.clampK(k)), nil
}

// ForQuery returns up to k products ranked against free text. Terms outside the
// indexed vocabulary are ignored; a query with no known terms ranks every
// product at zero in corpus order.
func (r *Recommender) ForQuery(ctx context.Context, text string, k int) ([]Recommendation, error) {
	ix, err := r.Index(ctx)
	if err != nil {
		return nil, err
	}
	metrics.RecordRecommendation("query")
	return ix.Query(text, r.config.clampK(k)), nil
}

// Products returns a copy of every indexed product in corpus order.
func (r *Recommender) Products(ctx context.Context) ([]catalog.Product, error) {
	ix, err := r.Index(ctx)
	if err != nil {
		return nil, err
	}
	return ix.Documents(), nil
}
