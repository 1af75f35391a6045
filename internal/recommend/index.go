// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package recommend

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/ishubhamdubey/KAPAS/internal/catalog"
)

// Recommendation is a ranked product.
type Recommendation struct {
	Product catalog.Product `json:"product"`
	Score   float64         `json:"score"`
}

// Index is an immutable TF-IDF snapshot of a corpus. vectors[i] belongs to docs[i].
type Index struct {
	docs      []catalog.Product
	positions map[string]int

	vocab []string
	terms map[string]int
	idf   map[string]float64

	vectors [][]float64
	builtAt time.Time
}

// BuildIndex computes the TF-IDF index of docs. Document ids are expected to be
// unique (see catalog.BuildCorpus); for a repeated id, lookups resolve to the first.
func BuildIndex(docs []catalog.Product) *Index {
	ix := &Index{
		docs:      make([]catalog.Product, len(docs)),
		positions: make(map[string]int, len(docs)),
		terms:     make(map[string]int),
		builtAt:   time.Now(),
	}

	docTF := make([]map[string]float64, len(docs))
	df := make(map[string]int)
	for i := range docs {
		ix.docs[i] = docs[i].Clone()
		if _, dup := ix.positions[docs[i].ID]; !dup {
			ix.positions[docs[i].ID] = i
		}

		tokens := Tokenize(docs[i].Text())
		for _, t := range tokens {
			if _, seen := ix.terms[t]; !seen {
				ix.terms[t] = len(ix.vocab)
				ix.vocab = append(ix.vocab, t)
			}
		}

		tf := termFrequencies(tokens)
		docTF[i] = tf
		for t := range tf {
			df[t]++
		}
	}

	n := float64(len(docs))
	ix.idf = make(map[string]float64, len(ix.vocab))
	for _, t := range ix.vocab {
		ix.idf[t] = math.Log((n+1)/float64(df[t]+1)) + 1
	}

	ix.vectors = make([][]float64, len(docs))
	for i, tf := range docTF {
		ix.vectors[i] = ix.project(tf)
	}
	return ix
}

// project maps term frequencies onto the vocabulary, weights them by idf and
// L2-normalizes. Terms outside the vocabulary are ignored.
func (ix *Index) project(tf map[string]float64) []float64 {
	vec := make([]float64, len(ix.vocab))
	for t, f := range tf {
		if pos, ok := ix.terms[t]; ok {
			vec[pos] = f * ix.idf[t]
		}
	}
	norm := math.Sqrt(dot(vec, vec))
	if norm == 0 {
		norm = 1
	}
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int { return len(ix.docs) }

// BuiltAt returns the build time of the snapshot.
func (ix *Index) BuiltAt() time.Time { return ix.builtAt }

// Documents returns a copy of the indexed documents in corpus order.
func (ix *Index) Documents() []catalog.Product {
	out := make([]catalog.Product, len(ix.docs))
	for i := range ix.docs {
		out[i] = ix.docs[i].Clone()
	}
	return out
}

// Vocabulary returns the vocabulary in vector-position order.
func (ix *Index) Vocabulary() []string {
	return slices.Clone(ix.vocab)
}

// IDF returns the inverse document frequency of term.
func (ix *Index) IDF(term string) (float64, bool) {
	w, ok := ix.idf[term]
	return w, ok
}

// Vector returns a copy of the normalized vector of the document with id.
func (ix *Index) Vector(id string) ([]float64, bool) {
	pos, ok := ix.positions[id]
	if !ok {
		return nil, false
	}
	return slices.Clone(ix.vectors[pos]), true
}

// QueryVector projects free text onto the index vocabulary.
func (ix *Index) QueryVector(text string) []float64 {
	return ix.project(termFrequencies(Tokenize(text)))
}

// Similar ranks every other document by cosine similarity to the document with id.
// An unknown id yields an empty result. k <= 0 means DefaultTopK.
func (ix *Index) Similar(id string, k int) []Recommendation {
	pos, ok := ix.positions[id]
	if !ok {
		return []Recommendation{}
	}
	return ix.rank(ix.vectors[pos], pos, k)
}

// Query ranks every document by cosine similarity to free text. k <= 0 means
// DefaultTopK.
func (ix *Index) Query(text string, k int) []Recommendation {
	return ix.rank(ix.QueryVector(text), -1, k)
}

type scored struct {
	pos   int
	score float64
}

// rank scores all documents except the one at self and any sharing its id, sorts
// by descending score keeping corpus order for ties, and truncates to k. self is
// -1 for free-text queries.
func (ix *Index) rank(q []float64, self int, k int) []Recommendation {
	if k <= 0 {
		k = DefaultTopK
	}

	candidates := make([]scored, 0, len(ix.docs))
	for i, v := range ix.vectors {
		if self >= 0 && (i == self || ix.docs[i].ID == ix.docs[self].ID) {
			continue
		}
		candidates = append(candidates, scored{pos: i, score: dot(q, v)})
	}
	slices.SortStableFunc(candidates, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})
	if len(candidates) > k {
		candidates = candidates[:k]
	}

	out := make([]Recommendation, len(candidates))
	for i, c := range candidates {
		out[i] = Recommendation{Product: ix.docs[c.pos].Clone(), Score: c.score}
	}
	return out
}
