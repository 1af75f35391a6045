// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package recommend

import (
	"strings"
	"unicode"
)

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "a": {}, "an": {}, "of": {}, "in": {},
	"on": {}, "for": {}, "with": {}, "to": {}, "is": {}, "are": {},
	"by": {}, "this": {}, "that": {}, "it": {}, "as": {}, "at": {},
}

// IsStopword reports whether term is dropped by Tokenize.
func IsStopword(term string) bool {
	_, ok := stopwords[term]
	return ok
}

// Tokenize lower-cases text, turns every character other than a-z, 0-9 and
// whitespace into a space, splits on whitespace and drops stopwords. Order and
// duplicates are preserved.
func Tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, strings.ToLower(text))

	fields := strings.Fields(cleaned)
	tokens := fields[:0]
	for _, f := range fields {
		if !IsStopword(f) {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// termFrequencies returns count(term)/len(tokens) for each distinct term.
// An empty token list yields an empty map.
func termFrequencies(tokens []string) map[string]float64 {
	tf := make(map[string]float64, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}
	n := float64(len(tokens))
	if n == 0 {
		n = 1
	}
	for t := range tf {
		tf[t] /= n
	}
	return tf
}
