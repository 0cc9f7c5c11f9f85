// Vitrine - Classifieds Discovery and Geographic Search
// Copyright 2026 The Vitrine Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrine-live/vitrine

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vitrine-live/vitrine/internal/metrics"
	"github.com/vitrine-live/vitrine/internal/recommend"
)

// Related handles GET /api/v1/listings/{id}/related: score the pool against
// the reference listing and return the top matches, best first.
func (h *Handler) Related(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id := chi.URLParam(r, "id")
	reference, ok := h.store.Get(id)
	if !ok {
		rw.NotFound("listing not found: " + id)
		return
	}

	limit := h.search.RelatedLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			rw.BadRequest("limit must be a positive integer")
			return
		}
		limit = parsed
	}

	start := time.Now()
	related := recommend.Rank(&reference, h.store.All(), limit)
	metrics.RecommendDuration.Observe(time.Since(start).Seconds())

	rw.SuccessWithMeta(related, &APIMeta{Count: len(related)})
}
