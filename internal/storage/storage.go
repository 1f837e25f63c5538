// Package storage is the key-value store that stands in for browser-local
// storage. The core only ever reads and writes whole string values under a
// handful of fixed keys.
package storage

import (
	"context"
	"log"
	"tasklist/internal/config"
)

const (
	KeyCurrentUser = "currentUser"
	KeyUserTodos   = "userTodos"
)

type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Open picks Postgres when DATABASE_URL is set, a JSON file when DATA_DIR is
// set, and memory otherwise. The returned close func is never nil.
func Open(cfg *config.Config, logger *log.Logger) (KV, func() error, error) {
	if logger == nil {
		logger = log.Default()
	}

	switch {
	case cfg.DatabaseURL != "":
		db, err := Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		kv, err := NewPostgresKV(context.Background(), db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.Println("storage: postgres")
		return kv, db.Close, nil
	case cfg.DataDir != "":
		kv, err := NewFileKV(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		logger.Printf("storage: file %s", kv.Path())
		return kv, noClose, nil
	default:
		logger.Println("storage: memory")
		return NewMemoryKV(), noClose, nil
	}
}

func noClose() error { return nil }
