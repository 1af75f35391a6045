// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

// Package recommend implements the "You May Also Like" recommender: a TF-IDF index
// over product text and cosine-similarity ranking against it.
//
// # Index
//
// Each product contributes the text name + " " + description + " " + category.
// The text is tokenized (see Tokenize), term frequencies are normalized by token
// count, and every vocabulary term is weighted by
//
//	idf(term) = ln((N + 1) / (df(term) + 1)) + 1
//
// where N is the corpus size. Document vectors are dense, aligned to the
// vocabulary (first-seen order), and L2-normalized, so a dot product is the cosine
// similarity.
//
// # Snapshots
//
// An Index is immutable. Recommender holds the current Index in an atomic pointer:
// Rebuild builds a complete new Index and swaps it in, so readers always see a
// consistent snapshot and never observe a partially built one. The first read
// builds lazily.
//
// # Usage
//
//	rec, err := recommend.New(catalog.SampleSource{}, recommend.DefaultConfig(), logger)
//	similar, err := rec.ForProduct(ctx, "sample-na-2", 6)
//	matches, err := rec.ForQuery(ctx, "red party frock", 0) // 0 = default top-k
//
// An unknown product id yields an empty result, and a query with no known terms
// yields zero scores in corpus order. Errors only come from loading the corpus.
package recommend
