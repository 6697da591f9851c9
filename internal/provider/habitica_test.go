package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/marait123/gnothi/internal/journal"
	"github.com/marait123/gnothi/internal/registry"
	"github.com/marait123/gnothi/internal/types"
)

func habiticaServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tasks/user" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("x-api-user") == "" || r.Header.Get("x-api-key") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":[
			{"id":"t1","text":"Meditate","type":"daily","value":3.5},
			{"id":"t2","text":"Exercise","type":"habit","value":-1.25},
			{"id":"t3","text":"Buy milk","type":"todo","value":1},
			{"id":"t4","text":"Sword","type":"reward","value":20}
		]}`))
	}))
}

func TestHabitica_Sync(t *testing.T) {
	srv := habiticaServer(t)
	defer srv.Close()

	ctx := context.Background()
	fields := registry.NewMemoryStore()
	entries := journal.NewMemoryStore()
	e, _ := entries.CreateEntry(ctx, types.Entry{Title: "today"})

	h := NewHabitica(HabiticaConfig{
		BaseURL: srv.URL,
		UserID:  "u1",
		APIKey:  "k1",
	}, fields, entries)

	written, err := h.Sync(ctx, e.ID)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	// Todos and rewards are skipped.
	if written != 2 {
		t.Errorf("written = %d, want 2", written)
	}

	// Fields provisioned under the habitica service.
	f, err := fields.FindByService(ctx, "habitica", "Meditate")
	if err != nil {
		t.Fatalf("FindByService: %v", err)
	}
	if f.Type != types.FieldNumber {
		t.Errorf("type = %s, want number", f.Type)
	}

	got, _ := entries.GetEntry(ctx, e.ID)
	if got.Fields[f.ID].Number != "3.5" {
		t.Errorf("Meditate = %+v, want 3.5", got.Fields[f.ID])
	}
	if got.Title != "today" {
		t.Errorf("title changed to %q", got.Title)
	}
}

func TestHabitica_Sync_Idempotent(t *testing.T) {
	srv := habiticaServer(t)
	defer srv.Close()

	ctx := context.Background()
	fields := registry.NewMemoryStore()
	entries := journal.NewMemoryStore()
	e, _ := entries.CreateEntry(ctx, types.Entry{})

	h := NewHabitica(HabiticaConfig{BaseURL: srv.URL, UserID: "u", APIKey: "k"}, fields, entries)
	if _, err := h.Sync(ctx, e.ID); err != nil {
		t.Fatalf("first Sync: %v", err)
	}
	if _, err := h.Sync(ctx, e.ID); err != nil {
		t.Fatalf("second Sync: %v", err)
	}

	all, _ := fields.ListFields(ctx)
	if len(all) != 2 {
		t.Errorf("fields = %d, want 2 (no duplicate provisioning)", len(all))
	}
}

func TestRegistry_UnknownService(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Get("fitbit"); err == nil {
		t.Error("expected error for unregistered service")
	}
}
