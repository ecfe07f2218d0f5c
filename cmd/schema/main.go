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
		log.Error().Err(err).Msg("schema rebuild failed")
		os.Exit(1)
	}
}

// run drops every table and creates the schema from scratch.
func run() error {
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		return err
	}
	lg := logger.New(cfg.LogLevel, cfg.Env)
	log.Logger = lg

	db, err := database.ConnectPostgres(cfg, lg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	ctx := context.Background()
	if err := database.DropAll(ctx, db, lg); err != nil {
		return err
	}
	if err := database.CreateAll(ctx, db, lg); err != nil {
		return err
	}
	lg.Info().Msg("schema rebuilt")
	return nil
}
