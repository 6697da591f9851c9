package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/marait123/gnothi/internal/types"
)

func TestMemoryStore_CreateAndList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first, err := store.CreateField(ctx, types.Field{Name: "Mood", Type: types.FieldFivestar})
	if err != nil {
		t.Fatalf("CreateField: %v", err)
	}
	if first.ID == "" {
		t.Error("expected assigned field ID")
	}

	second, err := store.CreateField(ctx, types.Field{Name: "Sleep", Type: types.FieldNumber})
	if err != nil {
		t.Fatalf("CreateField: %v", err)
	}

	fields, err := store.ListFields(ctx)
	if err != nil {
		t.Fatalf("ListFields: %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("fields = %d, want 2", len(fields))
	}
	// Creation order is the list order.
	if fields[0].ID != first.ID || fields[1].ID != second.ID {
		t.Errorf("order = %s, %s; want %s, %s", fields[0].ID, fields[1].ID, first.ID, second.ID)
	}
}

func TestMemoryStore_CreateField_EmptyName(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.CreateField(context.Background(), types.Field{Name: "", Type: types.FieldNumber})
	if !IsValidation(err) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestMemoryStore_GetField_NotFound(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.GetField(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_FindByService(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	created, err := store.CreateField(ctx, types.Field{Name: "Dailies", Type: types.FieldNumber, Service: "habitica"})
	if err != nil {
		t.Fatalf("CreateField: %v", err)
	}

	found, err := store.FindByService(ctx, "habitica", "Dailies")
	if err != nil {
		t.Fatalf("FindByService: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("found = %s, want %s", found.ID, created.ID)
	}

	if _, err := store.FindByService(ctx, "habitica", "Habits"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestValidateNew(t *testing.T) {
	if err := ValidateNew("Mood", types.FieldFivestar); err != nil {
		t.Errorf("valid input rejected: %v", err)
	}
	if err := ValidateNew("", types.FieldNumber); !IsValidation(err) {
		t.Errorf("empty name: err = %v, want validation error", err)
	}
	if err := ValidateNew("Mood", "timeseries"); !IsValidation(err) {
		t.Errorf("unknown type: err = %v, want validation error", err)
	}
}
