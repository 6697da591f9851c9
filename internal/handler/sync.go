package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marait123/gnothi/internal/event"
	"github.com/marait123/gnothi/internal/journal"
	"github.com/marait123/gnothi/internal/provider"
)

// SyncHandler runs a provider sync against one entry. Clients discard the
// response body and reload the registry and entry afterwards — success or
// failure alike, since a failed sync may still have provisioned fields.
type SyncHandler struct {
	providers *provider.Registry
	entries   journal.Store
	recorder  event.Recorder
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(providers *provider.Registry, entries journal.Store, recorder event.Recorder) *SyncHandler {
	if recorder == nil {
		recorder = event.NopRecorder{}
	}
	return &SyncHandler{providers: providers, entries: entries, recorder: recorder}
}

// Sync handles GET /{service}/{id}.
func (h *SyncHandler) Sync(w http.ResponseWriter, r *http.Request) {
	service := chi.URLParam(r, "service")
	entryID := chi.URLParam(r, "id")

	p, err := h.providers.Get(service)
	if err != nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}

	// Sync only makes sense against a persisted entry.
	if _, err := h.entries.GetEntry(r.Context(), entryID); err != nil {
		storeErrorToHTTP(w, err)
		return
	}

	written, err := p.Sync(r.Context(), entryID)
	h.recorder.Record(context.WithoutCancel(r.Context()),
		event.NewServiceSynced(service, entryID, written, err != nil))
	if err != nil {
		if errors.Is(err, journal.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, "SYNC_FAILED", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"service": service,
		"entry":   entryID,
		"written": written,
	})
}
