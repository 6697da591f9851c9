package handler

import (
	"context"
	"net/http"

	"github.com/marait123/gnothi/internal/event"
	"github.com/marait123/gnothi/internal/registry"
	"github.com/marait123/gnothi/internal/types"
)

// FieldHandler implements the field registry endpoints.
type FieldHandler struct {
	store    registry.Store
	recorder event.Recorder
}

// NewFieldHandler creates a new FieldHandler.
func NewFieldHandler(store registry.Store, recorder event.Recorder) *FieldHandler {
	if recorder == nil {
		recorder = event.NopRecorder{}
	}
	return &FieldHandler{store: store, recorder: recorder}
}

// ListFields returns all fields in stable creation order.
// GET /fields
func (h *FieldHandler) ListFields(w http.ResponseWriter, r *http.Request) {
	fields, err := h.store.ListFields(r.Context())
	if err != nil {
		storeErrorToHTTP(w, err)
		return
	}
	if fields == nil {
		fields = []types.Field{}
	}
	writeJSON(w, http.StatusOK, map[string][]types.Field{"fields": fields})
}

// CreateField creates a user-defined field. Callers refetch the full
// registry afterwards; no incremental update is guaranteed.
// POST /fields
func (h *FieldHandler) CreateField(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string          `json:"name"`
		Type types.FieldType `json:"type"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	if err := registry.ValidateNew(req.Name, req.Type); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	f, err := h.store.CreateField(r.Context(), types.Field{Name: req.Name, Type: req.Type})
	if err != nil {
		storeErrorToHTTP(w, err)
		return
	}
	h.recorder.Record(context.WithoutCancel(r.Context()), event.NewFieldCreated(f))
	writeJSON(w, http.StatusCreated, f)
}
