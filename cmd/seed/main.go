package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	"orm-lessons/internal/cache"
	"orm-lessons/internal/config"
	"orm-lessons/internal/database"
	"orm-lessons/internal/logger"
	"orm-lessons/internal/repository"
	"orm-lessons/internal/seed"
)

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("seeding failed")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		return err
	}
	lg := logger.New(cfg.LogLevel, cfg.Env)
	log.Logger = lg
	ctx := context.Background()

	db, err := database.ConnectPostgres(cfg, lg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	var opts []repository.Option
	if cfg.CacheEnabled() {
		rdb, err := database.ConnectRedis(ctx, cfg, lg)
		if err != nil {
			return err
		}
		defer rdb.Close()
		opts = append(opts, repository.WithLanguageCache(cache.NewLanguageCache(rdb, cfg.LanguageCacheTTL)))
	}

	pool := database.NewSessionPool(db, lg)

	err = pool.With(ctx, func(s *database.Session) error {
		return repository.New(s, lg, opts...).Clear(ctx)
	})
	if err != nil {
		return err
	}

	return pool.With(ctx, func(s *database.Session) error {
		_, err := seed.New(repository.New(s, lg, opts...), cfg.Seed, lg).Run(ctx)
		return err
	})
}
