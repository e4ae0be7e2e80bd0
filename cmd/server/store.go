package main

import (
	"context"
	"fmt"

	"newsdesk/internal/config"
	"newsdesk/internal/repository"
	"newsdesk/internal/repository/mongo"
	"newsdesk/internal/repository/sqlite"
)

type stores struct {
	users    repository.UserRepository
	articles repository.ArticleRepository
	close    func(context.Context) error
}

// openStores connects to the configured backend and prepares its schema.
func openStores(ctx context.Context, cfg config.Config) (*stores, error) {
	var s stores
	switch cfg.Database.Driver {
	case config.DriverMongo:
		db, disconnect, err := mongo.Connect(ctx, cfg.Database.URI, cfg.Database.Name)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		s = stores{
			users:    mongo.NewUserRepository(db),
			articles: mongo.NewArticleRepository(db),
			close:    disconnect,
		}
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		s = stores{
			users:    sqlite.NewUserRepository(db),
			articles: sqlite.NewArticleRepository(db),
			close:    func(context.Context) error { return db.Close() },
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	if err := s.users.Init(ctx); err != nil {
		_ = s.close(ctx)
		return nil, fmt.Errorf("init user repository: %w", err)
	}
	if err := s.articles.Init(ctx); err != nil {
		_ = s.close(ctx)
		return nil, fmt.Errorf("init article repository: %w", err)
	}
	return &s, nil
}
