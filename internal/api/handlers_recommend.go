// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ishubhamdubey/KAPAS/internal/auth"
	"github.com/ishubhamdubey/KAPAS/internal/logging"
)

// IndexInfo describes the recommendation index snapshot.
type IndexInfo struct {
	Built      bool       `json:"built"`
	Documents  int        `json:"documents"`
	Vocabulary int        `json:"vocabulary"`
	BuiltAt    *time.Time `json:"built_at,omitempty"`
	Builds     int64      `json:"builds"`
}

func (h *Handler) indexInfo() IndexInfo {
	info := IndexInfo{Builds: h.recommender.Builds()}
	if ix := h.recommender.Current(); ix != nil {
		builtAt := ix.BuiltAt()
		info.Built = true
		info.Documents = ix.Len()
		info.Vocabulary = len(ix.Vocabulary())
		info.BuiltAt = &builtAt
	}
	return info
}

// Similar returns the products most similar to {id}. An id outside the
// corpus yields an empty list.
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	k, err := parseIntParam(r, "k", 0, 0)
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}
	recs, err := h.recommender.ForProduct(r.Context(), chi.URLParam(r, "id"), k)
	if err != nil {
		respondError(w, r, err, "Failed to compute recommendations")
		return
	}
	NewResponseWriter(w, r).List(recs, len(recs))
}

// Recommendations ranks the corpus against the free text query q.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		NewResponseWriter(w, r).Error(http.StatusBadRequest, ErrCodeValidation, "q is required")
		return
	}
	k, err := parseIntParam(r, "k", 0, 0)
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}
	recs, err := h.recommender.ForQuery(r.Context(), q, k)
	if err != nil {
		respondError(w, r, err, "Failed to compute recommendations")
		return
	}
	NewResponseWriter(w, r).List(recs, len(recs))
}

// RebuildIndex retrains the recommender from the current catalog. With
// authentication enabled it requires a signed-in user.
func (h *Handler) RebuildIndex(w http.ResponseWriter, r *http.Request) {
	if h.jwt != nil {
		if _, ok := auth.UserFromContext(r.Context()); !ok {
			NewResponseWriter(w, r).Unauthorized("authentication required")
			return
		}
	}
	if _, err := h.recommender.Rebuild(r.Context()); err != nil {
		respondError(w, r, err, "Failed to rebuild recommendation index")
		return
	}
	info := h.indexInfo()
	logging.Ctx(r.Context()).Info().Int("documents", info.Documents).Msg("Recommendation index rebuilt")
	NewResponseWriter(w, r).Success(info)
}
