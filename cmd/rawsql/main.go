package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	"orm-lessons/internal/config"
	"orm-lessons/internal/database"
	"orm-lessons/internal/logger"
)

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("raw sql demo failed")
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

	lg.Info().Stringer("url", database.URLFromConfig(cfg)).Msg("connecting")
	db, err := database.ConnectPostgres(cfg, lg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	rows, err := database.RunRawSQLDemo(context.Background(), database.NewSessionPool(db, lg))
	if err != nil {
		return err
	}
	for _, row := range rows {
		lg.Info().Fields(row).Msg("user")
	}
	return nil
}
