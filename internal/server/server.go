// Package server assembles all HTTP handlers and starts the server.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/marait123/gnothi/internal/event"
	"github.com/marait123/gnothi/internal/handler"
	"github.com/marait123/gnothi/internal/history"
	"github.com/marait123/gnothi/internal/journal"
	"github.com/marait123/gnothi/internal/provider"
	"github.com/marait123/gnothi/internal/registry"
	"github.com/marait123/gnothi/internal/stats"
	"github.com/marait123/gnothi/internal/stream"
)

// Config holds server configuration and wired dependencies.
type Config struct {
	Port      int
	AuthToken string

	Fields    registry.Store
	Entries   journal.Store
	Providers *provider.Registry
	Recorder  event.Recorder

	// History is optional; when set, /activity serves the event record.
	History history.Store

	// Stream is optional; when set, /events serves the live event feed.
	Stream *stream.Hub
}

// Router builds the full route tree. Exposed separately from Run so tests
// can mount it on an httptest server.
func Router(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	fh := handler.NewFieldHandler(cfg.Fields, cfg.Recorder)
	eh := handler.NewEntryHandler(cfg.Entries, cfg.Recorder)
	sh := handler.NewSyncHandler(cfg.Providers, cfg.Entries, cfg.Recorder)
	th := handler.NewStatsHandler(stats.NewAggregator(cfg.Fields, cfg.Entries))

	r.Group(func(r chi.Router) {
		r.Use(handler.RequireToken(cfg.AuthToken))

		r.Get("/fields", fh.ListFields)
		r.Post("/fields", fh.CreateField)

		r.Get("/entries", eh.ListEntries)
		r.Post("/entries", eh.CreateEntry)
		r.Get("/entries/{id}", eh.GetEntry)
		r.Put("/entries/{id}", eh.UpdateEntry)

		r.Get("/stats", th.FieldStats)

		if cfg.History != nil {
			r.Get("/activity", handler.NewActivityHandler(cfg.History).ListEvents)
		}

		// One sync route per configured provider. Explicit mounting keeps
		// the service segment from swallowing /fields and /entries.
		if cfg.Providers != nil {
			for _, name := range cfg.Providers.Names() {
				r.Get("/"+name+"/{id}", withService(name, sh.Sync))
			}
		}

		if cfg.Stream != nil {
			r.Get("/events", cfg.Stream.ServeHTTP)
		}
	})

	return r
}

// withService pins the {service} URL param for a provider-specific route.
func withService(name string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx := chi.RouteContext(r.Context())
		rctx.URLParams.Add("service", name)
		next(w, r)
	}
}

// Run starts the HTTP server with all routes registered and shuts it down
// when the context is cancelled.
func Run(ctx context.Context, cfg Config) error {
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("starting server on %s", addr)

	server := &http.Server{
		Addr:    addr,
		Handler: Router(cfg),
	}

	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	return server.ListenAndServe()
}
