package main

import (
	"context"
	"log"
	"tasklist/internal/auth"
	"tasklist/internal/config"
	"tasklist/internal/handlers"
	"tasklist/internal/presenter"
	"tasklist/internal/remote"
	"tasklist/internal/storage"
	"tasklist/internal/tasks"
)

func main() {
	cfg := config.Load()
	logger := log.Default()
	ctx := context.Background()

	kv, closeKV, err := storage.Open(cfg, logger)
	if err != nil {
		log.Fatal("open storage: ", err)
	}
	defer closeKV()

	creds, err := auth.NewStaticCredentials(cfg.AuthUsername, cfg.AuthPassword)
	if err != nil {
		log.Fatal("hash credentials: ", err)
	}
	gate := auth.NewGate(kv, creds, cfg.JWTKey, cfg.SessionTTL, auth.WithLogger(logger))

	store := tasks.NewStore(kv, tasks.WithLogger(logger))
	if err := store.Load(ctx); err != nil {
		log.Fatal("load tasks: ", err)
	}

	provider := remote.NewProvider(cfg.RemoteTasksURL, remote.NewClient(cfg.RemoteTimeout), logger)
	provider.Start(ctx)

	p := presenter.New(store, provider, presenter.Formatter{Layout: cfg.DateLayout, Location: cfg.Location()})

	h := handlers.New(gate, store, p, provider, logger, cfg.FlashDismiss)
	router, err := h.Router(cfg.AllowedOrigins)
	if err != nil {
		log.Fatal("build router: ", err)
	}

	log.Printf("listening on %s", cfg.Addr())
	log.Fatal(router.Run(cfg.Addr()))
}
