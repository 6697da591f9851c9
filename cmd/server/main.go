package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/marait123/gnothi/internal/config"
	"github.com/marait123/gnothi/internal/event"
	"github.com/marait123/gnothi/internal/eventbus"
	"github.com/marait123/gnothi/internal/history"
	"github.com/marait123/gnothi/internal/journal"
	"github.com/marait123/gnothi/internal/provider"
	"github.com/marait123/gnothi/internal/registry"
	"github.com/marait123/gnothi/internal/server"
	"github.com/marait123/gnothi/internal/stream"
	"github.com/marait123/gnothi/internal/worker"

	_ "modernc.org/sqlite"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	fields, entries, events, err := openStores(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("opening stores: %v", err)
	}

	bus := eventbus.New(64)
	bus.Subscribe("log", eventbus.NewLogConsumer())
	bus.Subscribe("history", history.NewConsumer(events))
	hub := stream.NewHub()
	bus.Subscribe("stream", hub)
	bus.Start(ctx)
	defer bus.Stop()

	recorder := event.NewBusRecorder(bus)

	providers := provider.NewRegistry()
	if cfg.Habitica.UserID != "" && cfg.Habitica.APIKey != "" {
		providers.Register(provider.NewHabitica(provider.HabiticaConfig{
			BaseURL: cfg.Habitica.BaseURL,
			UserID:  cfg.Habitica.UserID,
			APIKey:  cfg.Habitica.APIKey,
		}, fields, entries))
	}

	interval, err := cfg.SyncInterval()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	go worker.NewProviderSync(providers, entries, recorder, interval).Run(ctx)

	err = server.Run(ctx, server.Config{
		Port:      cfg.Server.Port,
		AuthToken: cfg.Server.AuthToken,
		Fields:    fields,
		Entries:   entries,
		Providers: providers,
		Recorder:  recorder,
		History:   events,
		Stream:    hub,
	})
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}

// openStores picks SQLite-backed stores when a database path is set, and
// in-memory stores otherwise.
func openStores(ctx context.Context, cfg config.DatabaseConfig) (registry.Store, journal.Store, history.Store, error) {
	if cfg.Path == "" {
		log.Println("no database path configured, using in-memory stores")
		return registry.NewMemoryStore(), journal.NewMemoryStore(), history.NewMemoryStore(), nil
	}

	db, err := sql.Open("sqlite", "file:"+cfg.Path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, nil, nil, err
	}
	db.SetMaxOpenConns(1)

	fields := registry.NewSQLiteStore(db)
	if err := fields.CreateTable(ctx); err != nil {
		return nil, nil, nil, err
	}
	entries := journal.NewSQLiteStore(db)
	if err := entries.CreateTable(ctx); err != nil {
		return nil, nil, nil, err
	}
	events := history.NewSQLiteStore(db)
	if err := events.CreateTable(ctx); err != nil {
		return nil, nil, nil, err
	}
	log.Printf("database ready at %s", cfg.Path)
	return fields, entries, events, nil
}
