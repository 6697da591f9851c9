package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marait123/gnothi/internal/event"
	"github.com/marait123/gnothi/internal/journal"
	"github.com/marait123/gnothi/internal/types"
)

// EntryHandler implements the entry endpoints.
type EntryHandler struct {
	store    journal.Store
	recorder event.Recorder
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(store journal.Store, recorder event.Recorder) *EntryHandler {
	if recorder == nil {
		recorder = event.NopRecorder{}
	}
	return &EntryHandler{store: store, recorder: recorder}
}

// entryBody is the payload shape shared by create and update.
type entryBody struct {
	Title  string                 `json:"title"`
	Text   string                 `json:"text"`
	Fields map[string]types.Value `json:"fields"`
}

// ListEntries returns entry references, newest first.
// GET /entries
func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	refs, err := h.store.ListEntries(r.Context())
	if err != nil {
		storeErrorToHTTP(w, err)
		return
	}
	if refs == nil {
		refs = []types.EntryRef{}
	}
	writeJSON(w, http.StatusOK, map[string][]types.EntryRef{"entries": refs})
}

// GetEntry returns one entry with its full field-value mapping.
// GET /entries/{id}
func (h *EntryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, err := h.store.GetEntry(r.Context(), id)
	if err != nil {
		storeErrorToHTTP(w, err)
		return
	}
	if e.Fields == nil {
		e.Fields = map[string]types.Value{}
	}
	writeJSON(w, http.StatusOK, e)
}

// CreateEntry stores a new entry.
// POST /entries
func (h *EntryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req entryBody
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	e, err := h.store.CreateEntry(r.Context(), types.Entry{
		Title:  req.Title,
		Text:   req.Text,
		Fields: req.Fields,
	})
	if err != nil {
		storeErrorToHTTP(w, err)
		return
	}
	h.recorder.Record(context.WithoutCancel(r.Context()), event.NewEntryCreated(e))
	writeJSON(w, http.StatusCreated, map[string]string{"id": e.ID})
}

// UpdateEntry replaces an existing entry's title, text, and values.
// PUT /entries/{id}
func (h *EntryHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req entryBody
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	e, err := h.store.UpdateEntry(r.Context(), types.Entry{
		ID:     id,
		Title:  req.Title,
		Text:   req.Text,
		Fields: req.Fields,
	})
	if err != nil {
		storeErrorToHTTP(w, err)
		return
	}
	h.recorder.Record(context.WithoutCancel(r.Context()), event.NewEntryUpdated(e))
	writeJSON(w, http.StatusOK, map[string]string{"id": e.ID})
}
