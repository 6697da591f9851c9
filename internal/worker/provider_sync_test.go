package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/marait123/gnothi/internal/event"
	"github.com/marait123/gnothi/internal/journal"
	"github.com/marait123/gnothi/internal/provider"
	"github.com/marait123/gnothi/internal/types"
)

type recordingProvider struct {
	mu    sync.Mutex
	name  string
	err   error
	calls []string
}

func (p *recordingProvider) Name() string { return p.name }

func (p *recordingProvider) Sync(_ context.Context, entryID string) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, entryID)
	return 1, p.err
}

func (p *recordingProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

func (p *recordingProvider) lastCall() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.calls) == 0 {
		return ""
	}
	return p.calls[len(p.calls)-1]
}

func TestSyncAllTargetsNewestEntry(t *testing.T) {
	ctx := context.Background()
	entries := journal.NewMemoryStore()
	if _, err := entries.CreateEntry(ctx, types.Entry{Title: "old"}); err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	newest, err := entries.CreateEntry(ctx, types.Entry{Title: "new"})
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}

	p := &recordingProvider{name: "habitica"}
	providers := provider.NewRegistry()
	providers.Register(p)

	w := NewProviderSync(providers, entries, event.NopRecorder{}, time.Hour)
	w.syncAll(ctx)

	if p.callCount() != 1 {
		t.Fatalf("calls = %d, want 1", p.callCount())
	}
	if p.lastCall() != newest.ID {
		t.Errorf("synced entry %s, want newest %s", p.lastCall(), newest.ID)
	}
}

func TestSyncAllEmptyJournal(t *testing.T) {
	p := &recordingProvider{name: "habitica"}
	providers := provider.NewRegistry()
	providers.Register(p)

	w := NewProviderSync(providers, journal.NewMemoryStore(), event.NopRecorder{}, time.Hour)
	w.syncAll(context.Background())

	if p.callCount() != 0 {
		t.Errorf("empty journal still synced %d times", p.callCount())
	}
}

func TestSyncAllContinuesPastFailure(t *testing.T) {
	ctx := context.Background()
	entries := journal.NewMemoryStore()
	if _, err := entries.CreateEntry(ctx, types.Entry{Title: "day"}); err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}

	failing := &recordingProvider{name: "broken", err: errors.New("down")}
	healthy := &recordingProvider{name: "habitica"}
	providers := provider.NewRegistry()
	providers.Register(failing)
	providers.Register(healthy)

	w := NewProviderSync(providers, entries, event.NopRecorder{}, time.Hour)
	w.syncAll(ctx)

	if failing.callCount() != 1 || healthy.callCount() != 1 {
		t.Errorf("calls = %d/%d, want both providers attempted", failing.callCount(), healthy.callCount())
	}
}

func TestRunDisabledWithoutInterval(t *testing.T) {
	w := NewProviderSync(provider.NewRegistry(), journal.NewMemoryStore(), nil, 0)

	done := make(chan struct{})
	go func() {
		w.Run(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return for a disabled worker")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := NewProviderSync(provider.NewRegistry(), journal.NewMemoryStore(), nil, time.Millisecond)

	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}
