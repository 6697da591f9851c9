package handler

import (
	"net/http"

	"github.com/marait123/gnothi/internal/stats"
)

// StatsHandler serves the per-field aggregate overview.
type StatsHandler struct {
	agg *stats.Aggregator
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(agg *stats.Aggregator) *StatsHandler {
	return &StatsHandler{agg: agg}
}

// FieldStats returns aggregates for every field.
// GET /stats
func (h *StatsHandler) FieldStats(w http.ResponseWriter, r *http.Request) {
	summary, err := h.agg.Summarize(r.Context())
	if err != nil {
		storeErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]stats.FieldStats{"stats": summary})
}
