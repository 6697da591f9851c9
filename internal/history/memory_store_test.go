package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/marait123/gnothi/internal/event"
)

func seedEvents(t *testing.T, s Store, n int) {
	t.Helper()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		entryID := "e1"
		if i%2 == 1 {
			entryID = "e2"
		}
		err := s.Append(context.Background(), event.DomainEvent{
			ID:         fmt.Sprintf("evt-%d", i),
			EventType:  "entry_updated",
			OccurredAt: base.Add(time.Duration(i) * time.Minute),
			EntryID:    entryID,
			Summary:    fmt.Sprintf("update %d", i),
		})
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
}

func TestListNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	seedEvents(t, s, 4)

	got, err := s.List(context.Background(), Query{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	for i := 0; i < len(got)-1; i++ {
		if got[i].OccurredAt.Before(got[i+1].OccurredAt) {
			t.Errorf("events out of order at %d: %v before %v", i, got[i].OccurredAt, got[i+1].OccurredAt)
		}
	}
	if got[0].ID != "evt-3" {
		t.Errorf("newest = %s, want evt-3", got[0].ID)
	}
}

func TestListFilterByEntry(t *testing.T) {
	s := NewMemoryStore()
	seedEvents(t, s, 6)

	got, err := s.List(context.Background(), Query{EntryID: "e2"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for _, e := range got {
		if e.EntryID != "e2" {
			t.Errorf("event %s has entry %s", e.ID, e.EntryID)
		}
	}
}

func TestListLimit(t *testing.T) {
	s := NewMemoryStore()
	seedEvents(t, s, 10)

	got, err := s.List(context.Background(), Query{Limit: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "evt-9" || got[1].ID != "evt-8" {
		t.Errorf("limited page = %s, %s", got[0].ID, got[1].ID)
	}
}

func TestListDefaultLimit(t *testing.T) {
	s := NewMemoryStore()
	seedEvents(t, s, DefaultLimit+10)

	got, err := s.List(context.Background(), Query{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != DefaultLimit {
		t.Errorf("len = %d, want default limit %d", len(got), DefaultLimit)
	}
}

func TestConsumerAppends(t *testing.T) {
	s := NewMemoryStore()
	c := NewConsumer(s)

	evt := event.DomainEvent{ID: "evt-1", EventType: "field_created", OccurredAt: time.Now(), Summary: "x"}
	if err := c.HandleEvent(context.Background(), evt); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
	got, err := s.List(context.Background(), Query{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].ID != "evt-1" {
		t.Errorf("stored = %+v", got)
	}
}
