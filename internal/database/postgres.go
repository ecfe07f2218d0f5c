package database

import (
	"fmt"
	"time"

	zerologadapter "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"orm-lessons/internal/config"
	"orm-lessons/internal/sqlerr"
)

// ConnectPostgres opens a gorm handle over a pgx connection pool and pings it.
// With cfg.DBEcho set every statement is logged through log.
func ConnectPostgres(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	u := URLFromConfig(cfg)
	if !u.IsPostgres() {
		return nil, fmt.Errorf("unsupported database driver %q", u.Driver)
	}

	connConfig, err := pgx.ParseConfig(u.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w", err)
	}

	if cfg.DBEcho {
		connConfig.Tracer = &tracelog.TraceLog{
			Logger:   zerologadapter.NewLogger(log.With().Str("component", "sql").Logger()),
			LogLevel: tracelog.LogLevelInfo,
		}
	}

	sqlDB := stdlib.OpenDB(*connConfig)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                                   gormlogger.Discard,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", sqlerr.Translate(err))
	}

	log.Info().Str("url", u.String()).Msg("Connected to PostgreSQL")
	return db, nil
}

// Close releases every pooled connection behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
