package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"tweetql/cmd/back/internal/api"
	"tweetql/cmd/back/internal/app"
	"tweetql/cmd/back/internal/cache"
	"tweetql/cmd/back/internal/repo"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

// openStore выбирает хранилище по cfg.Store. функцию закрытия нужно вызвать при остановке
func openStore(ctx context.Context, cfg Config, log *slog.Logger) (api.Repository, func(), error) {
	switch cfg.Store {
	case StoreMemory:
		log.Warn("store - memory, data is lost on restart")
		return repo.NewMemoryRepository(app.SeedUsers(), app.SeedTweets()), func() {}, nil

	case StorePostgres:
		migrator, err := migrate.New(cfg.MigrateDir, cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("migrate.New: %w", err)
		}
		if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return nil, nil, fmt.Errorf("migrate up: %w", err)
		}
		migrator.Close()

		rowSQLConn, err := sql.Open(cfg.Driver, cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("sql.Open: %w", err)
		}
		if err := rowSQLConn.PingContext(ctx); err != nil {
			rowSQLConn.Close()
			return nil, nil, fmt.Errorf("postgres ping: %w", err)
		}
		log.Warn("store - postgres connected")
		return repo.NewRepository(rowSQLConn), func() { rowSQLConn.Close() }, nil

	case StoreRedis:
		redisClient := cache.NewRedisClient(cfg.AddrCache, cfg.PasswordCache, cfg.DBCacheTweet)
		if err := redisClient.Connect(ctx); err != nil {
			redisClient.Close()
			return nil, nil, fmt.Errorf("redis connect: %w", err)
		}
		redisRepo := repo.NewRedisRepository(redisClient)
		if err := redisRepo.Seed(ctx, app.SeedUsers(), app.SeedTweets()); err != nil {
			redisClient.Close()
			return nil, nil, err
		}
		log.Warn("store - redis connected")
		return redisRepo, func() { redisClient.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
}
