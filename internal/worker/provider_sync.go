// Package worker contains background workers that run alongside the
// HTTP server.
package worker

import (
	"context"
	"log"
	"time"

	"github.com/marait123/gnothi/internal/event"
	"github.com/marait123/gnothi/internal/journal"
	"github.com/marait123/gnothi/internal/provider"
)

// ProviderSync periodically syncs every registered provider against the
// newest entry, so service-owned fields stay current without the user
// pressing the sync button. A failed sync logs and waits for the next
// tick.
type ProviderSync struct {
	providers *provider.Registry
	entries   journal.Store
	recorder  event.Recorder
	interval  time.Duration
}

// NewProviderSync creates the worker. A zero or negative interval
// disables it; Run returns immediately.
func NewProviderSync(providers *provider.Registry, entries journal.Store, recorder event.Recorder, interval time.Duration) *ProviderSync {
	if recorder == nil {
		recorder = event.NopRecorder{}
	}
	return &ProviderSync{providers: providers, entries: entries, recorder: recorder, interval: interval}
}

// Run blocks, syncing on every tick until ctx is cancelled.
func (w *ProviderSync) Run(ctx context.Context) {
	if w.interval <= 0 {
		return
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.syncAll(ctx)
		}
	}
}

// syncAll runs one round: every provider against the newest entry.
func (w *ProviderSync) syncAll(ctx context.Context) {
	refs, err := w.entries.ListEntries(ctx)
	if err != nil {
		log.Printf("worker: listing entries: %v", err)
		return
	}
	if len(refs) == 0 {
		return
	}
	// ListEntries is newest first.
	entryID := refs[0].ID

	for _, name := range w.providers.Names() {
		p, err := w.providers.Get(name)
		if err != nil {
			continue
		}
		written, err := p.Sync(ctx, entryID)
		w.recorder.Record(ctx, event.NewServiceSynced(name, entryID, written, err != nil))
		if err != nil {
			log.Printf("worker: syncing %s onto entry %s: %v", name, entryID, err)
			continue
		}
		log.Printf("worker: synced %s onto entry %s (%d fields)", name, entryID, written)
	}
}
