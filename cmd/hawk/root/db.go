package root

import (
	"context"
	"log"

	"hawkins/internal/config"
	"hawkins/internal/engine"
	"hawkins/internal/storage"
)

func openStore(ctx context.Context) (*engine.Store, config.Config, func(), error) {
	cfg, err := config.Load(".env")
	if err != nil {
		return nil, config.Config{}, nil, err
	}
	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, config.Config{}, nil, err
	}
	st := engine.OpenStore(ctx, db, engine.StoreOptions{
		Username: cfg.Username,
		Logger:   log.Default(),
	})
	cleanup := func() {
		_ = db.Close()
	}
	return st, cfg, cleanup, nil
}
