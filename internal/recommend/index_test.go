// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package recommend

import (
	"math"
	"slices"
	"testing"

	"github.com/ishubhamdubey/KAPAS/internal/catalog"
)

const epsilon = 1e-9

func sampleCorpus() []catalog.Product {
	return catalog.BuildCorpus(catalog.SampleGroups()...)
}

func threeDocCorpus() []catalog.Product {
	return []catalog.Product{
		{ID: "a", Name: "Red Long Kurti"},
		{ID: "b", Name: "Red Short Kurti"},
		{ID: "c", Name: "Blue Frock"},
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases and splits punctuation",
			text: "Floral-Print, Short KURTI!",
			want: []string{"floral", "print", "short", "kurti"},
		},
		{
			name: "drops stopwords",
			text: "The best of the season is in this frock",
			want: []string{"best", "season", "frock"},
		},
		{
			name: "keeps duplicates in order",
			text: "kurti red kurti",
			want: []string{"kurti", "red", "kurti"},
		},
		{
			name: "keeps digits",
			text: "Size XL 2024 edition",
			want: []string{"size", "xl", "2024", "edition"},
		},
		{
			name: "non ascii letters become separators",
			text: "café kurta",
			want: []string{"caf", "kurta"},
		},
		{
			name: "empty text",
			text: "   ",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTermFrequencies(t *testing.T) {
	tf := termFrequencies([]string{"red", "kurti", "red", "frock"})
	if tf["red"] != 0.5 {
		t.Errorf("tf[red] = %v, want 0.5", tf["red"])
	}
	if tf["kurti"] != 0.25 {
		t.Errorf("tf[kurti] = %v, want 0.25", tf["kurti"])
	}
	if len(termFrequencies(nil)) != 0 {
		t.Error("empty token list should yield no frequencies")
	}
}

func TestBuildIndex_IDF(t *testing.T) {
	ix := BuildIndex(threeDocCorpus())

	tests := []struct {
		term string
		df   int
	}{
		{term: "red", df: 2},
		{term: "kurti", df: 2},
		{term: "long", df: 1},
		{term: "frock", df: 1},
	}
	for _, tt := range tests {
		got, ok := ix.IDF(tt.term)
		if !ok {
			t.Fatalf("term %q missing from index", tt.term)
		}
		want := math.Log(4.0/float64(tt.df+1)) + 1
		if math.Abs(got-want) > epsilon {
			t.Errorf("idf(%s) = %v, want %v", tt.term, got, want)
		}
		if got <= 0 {
			t.Errorf("idf(%s) = %v, want positive", tt.term, got)
		}
	}

	wantVocab := []string{"red", "long", "kurti", "short", "blue", "frock"}
	if got := ix.Vocabulary(); !slices.Equal(got, wantVocab) {
		t.Errorf("vocabulary = %v, want %v", got, wantVocab)
	}
}

func TestBuildIndex_Deterministic(t *testing.T) {
	docs := sampleCorpus()
	first := BuildIndex(docs)
	second := BuildIndex(docs)

	if !slices.Equal(first.Vocabulary(), second.Vocabulary()) {
		t.Fatal("vocabulary differs between builds")
	}
	for _, d := range docs {
		v1, _ := first.Vector(d.ID)
		v2, _ := second.Vector(d.ID)
		if !slices.Equal(v1, v2) {
			t.Errorf("vector for %s differs between builds", d.ID)
		}
	}
}

func TestBuildIndex_Normalized(t *testing.T) {
	docs := append(sampleCorpus(), catalog.Product{ID: "empty"})
	ix := BuildIndex(docs)

	for _, d := range docs {
		v, ok := ix.Vector(d.ID)
		if !ok {
			t.Fatalf("no vector for %s", d.ID)
		}
		norm := math.Sqrt(dot(v, v))
		if d.ID == "empty" {
			if norm != 0 {
				t.Errorf("empty document norm = %v, want 0", norm)
			}
			continue
		}
		if math.Abs(norm-1) > 1e-9 {
			t.Errorf("norm(%s) = %v, want 1", d.ID, norm)
		}
	}
}

func TestSimilar_ExampleScenario(t *testing.T) {
	ix := BuildIndex(threeDocCorpus())
	got := ix.Similar("a", 2)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Product.ID != "b" || got[1].Product.ID != "c" {
		t.Errorf("order = [%s %s], want [b c]", got[0].Product.ID, got[1].Product.ID)
	}
	if got[0].Score <= got[1].Score {
		t.Errorf("score(b)=%v should exceed score(c)=%v", got[0].Score, got[1].Score)
	}
	if got[1].Score != 0 {
		t.Errorf("score(c) = %v, want 0", got[1].Score)
	}
}

func TestSimilar_SelfExclusionAndBounds(t *testing.T) {
	docs := sampleCorpus()
	ix := BuildIndex(docs)

	for _, d := range docs {
		for _, k := range []int{1, 3, 8, 100} {
			recs := ix.Similar(d.ID, k)
			if len(recs) > k {
				t.Errorf("Similar(%s, %d) returned %d results", d.ID, k, len(recs))
			}
			for i, r := range recs {
				if r.Product.ID == d.ID {
					t.Errorf("Similar(%s) includes the product itself", d.ID)
				}
				if i > 0 && r.Score > recs[i-1].Score {
					t.Errorf("Similar(%s) not sorted at %d: %v > %v", d.ID, i, r.Score, recs[i-1].Score)
				}
			}
		}
	}
}

func TestSimilar_ExcludesSelfWithEmptyID(t *testing.T) {
	docs := []catalog.Product{
		{ID: "", Name: "red silk saree"},
		{ID: "b", Name: "red silk saree"},
		{ID: "c", Name: "blue cotton frock"},
	}
	ix := BuildIndex(docs)

	got := ix.Similar("", 5)
	if len(got) != 2 {
		t.Fatalf("Similar(\"\") returned %d results, want 2", len(got))
	}
	for _, r := range got {
		if r.Product.ID == "" {
			t.Error("Similar(\"\") includes the product itself")
		}
	}

	if q := ix.Query("red silk saree", 5); len(q) != 3 || q[0].Product.ID != "" {
		t.Errorf("Query() = %v, want all three documents led by the first", q)
	}
}

func TestSimilar_UnknownID(t *testing.T) {
	ix := BuildIndex(sampleCorpus())
	got := ix.Similar("does-not-exist", 5)
	if got == nil || len(got) != 0 {
		t.Errorf("Similar(unknown) = %v, want empty non-nil slice", got)
	}
}

func TestSimilar_DefaultK(t *testing.T) {
	ix := BuildIndex(sampleCorpus())
	if got := ix.Similar("sample-na-1", 0); len(got) != DefaultTopK {
		t.Errorf("len = %d, want %d", len(got), DefaultTopK)
	}
}

func TestSimilar_TiesKeepCorpusOrder(t *testing.T) {
	docs := []catalog.Product{
		{ID: "q", Name: "kurti"},
		{ID: "x1", Name: "frock"},
		{ID: "x2", Name: "saree"},
		{ID: "x3", Name: "dupatta"},
	}
	ix := BuildIndex(docs)
	got := ix.Similar("q", 3)
	want := []string{"x1", "x2", "x3"}
	for i, r := range got {
		if r.Product.ID != want[i] {
			t.Errorf("position %d = %s, want %s", i, r.Product.ID, want[i])
		}
	}
}

func TestQuery(t *testing.T) {
	ix := BuildIndex(sampleCorpus())

	t.Run("known terms rank matching products first", func(t *testing.T) {
		got := ix.Query("backless party", 3)
		if len(got) != 3 {
			t.Fatalf("len = %d, want 3", len(got))
		}
		if got[0].Product.ID != "sample-bs-5" {
			t.Errorf("top match = %s, want sample-bs-5", got[0].Product.ID)
		}
		if got[0].Score <= 0 {
			t.Errorf("top score = %v, want > 0", got[0].Score)
		}
	})

	t.Run("unknown terms yield zero scores in corpus order", func(t *testing.T) {
		got := ix.Query("zzzz qqqq", 4)
		docs := ix.Documents()
		for i, r := range got {
			if r.Score != 0 {
				t.Errorf("score[%d] = %v, want 0", i, r.Score)
			}
			if r.Product.ID != docs[i].ID {
				t.Errorf("position %d = %s, want %s", i, r.Product.ID, docs[i].ID)
			}
		}
		for _, v := range ix.QueryVector("zzzz qqqq") {
			if v != 0 {
				t.Fatal("query vector should be all zero")
			}
		}
	})

	t.Run("does not expand vocabulary", func(t *testing.T) {
		before := len(ix.Vocabulary())
		ix.Query("brand new words", 2)
		if after := len(ix.Vocabulary()); after != before {
			t.Errorf("vocabulary grew from %d to %d", before, after)
		}
	})
}

func TestIndex_DocumentsIsCopy(t *testing.T) {
	ix := BuildIndex(threeDocCorpus())
	docs := ix.Documents()
	docs[0].Name = "changed"
	if ix.Documents()[0].Name != "Red Long Kurti" {
		t.Error("mutating Documents() result changed the index")
	}
}
