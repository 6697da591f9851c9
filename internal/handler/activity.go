package handler

import (
	"net/http"
	"strconv"

	"github.com/marait123/gnothi/internal/event"
	"github.com/marait123/gnothi/internal/history"
)

// ActivityHandler serves the recorded event history.
type ActivityHandler struct {
	store history.Store
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(store history.Store) *ActivityHandler {
	return &ActivityHandler{store: store}
}

// ListEvents returns recorded events, newest first. Supports ?entry=
// and ?limit= filters.
// GET /activity
func (h *ActivityHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := history.Query{EntryID: r.URL.Query().Get("entry")}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a non-negative integer")
			return
		}
		q.Limit = n
	}

	events, err := h.store.List(r.Context(), q)
	if err != nil {
		storeErrorToHTTP(w, err)
		return
	}
	if events == nil {
		events = []event.DomainEvent{}
	}
	writeJSON(w, http.StatusOK, map[string][]event.DomainEvent{"events": events})
}
