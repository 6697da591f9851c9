package journal

import (
	"context"
	"errors"
	"testing"

	"github.com/marait123/gnothi/internal/types"
)

func TestMemoryStore_CreateGetUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	created, err := store.CreateEntry(ctx, types.Entry{
		Title:  "Tuesday",
		Text:   "slow day",
		Fields: map[string]types.Value{"a": types.NumberValue("3")},
	})
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected assigned entry ID")
	}

	got, err := store.GetEntry(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if got.Title != "Tuesday" || got.Fields["a"].Number != "3" {
		t.Errorf("got = %+v", got)
	}

	got.Title = "Wednesday"
	got.Fields["b"] = types.StarsValue(4)
	if _, err := store.UpdateEntry(ctx, got); err != nil {
		t.Fatalf("UpdateEntry: %v", err)
	}

	again, _ := store.GetEntry(ctx, created.ID)
	if again.Title != "Wednesday" || again.Fields["b"].Stars != 4 {
		t.Errorf("after update = %+v", again)
	}
}

func TestMemoryStore_UpdateUnknown(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.UpdateEntry(context.Background(), types.Entry{ID: "missing"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	created, _ := store.CreateEntry(ctx, types.Entry{
		Fields: map[string]types.Value{"a": types.NumberValue("1")},
	})

	got, _ := store.GetEntry(ctx, created.ID)
	got.Fields["a"] = types.NumberValue("99")

	fresh, _ := store.GetEntry(ctx, created.ID)
	if fresh.Fields["a"].Number != "1" {
		t.Errorf("stored value mutated through returned copy: %+v", fresh.Fields["a"])
	}
}

func TestMemoryStore_SetFieldValue(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	created, _ := store.CreateEntry(ctx, types.Entry{Title: "t"})

	if err := store.SetFieldValue(ctx, created.ID, "f1", types.NumberValue("12.5")); err != nil {
		t.Fatalf("SetFieldValue: %v", err)
	}
	got, _ := store.GetEntry(ctx, created.ID)
	if got.Fields["f1"].Number != "12.5" {
		t.Errorf("f1 = %+v, want 12.5", got.Fields["f1"])
	}
	if got.Title != "t" {
		t.Errorf("title changed to %q", got.Title)
	}

	if err := store.SetFieldValue(ctx, "missing", "f1", types.Unset()); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.CreateEntry(ctx, types.Entry{Title: "one"})
	store.CreateEntry(ctx, types.Entry{Title: "two"})

	refs, err := store.ListEntries(ctx)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("refs = %d, want 2", len(refs))
	}
}
