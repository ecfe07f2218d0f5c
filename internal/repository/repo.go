package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"orm-lessons/internal/database"
	"orm-lessons/internal/models"
	"orm-lessons/internal/sqlerr"
)

// LanguageCache is the read-through store GetUserLanguage consults first.
type LanguageCache interface {
	Get(ctx context.Context, telegramID int64) (string, bool, error)
	Set(ctx context.Context, telegramID int64, lang string) error
	Invalidate(ctx context.Context, telegramIDs ...int64) error
	Reset(ctx context.Context) error
}

type Option func(*Repo)

func WithLanguageCache(c LanguageCache) Option {
	return func(r *Repo) { r.languages = c }
}

// Repo is the only place statements are built. Every method runs on the
// Session it was created with and commits before returning.
type Repo struct {
	session   *database.Session
	languages LanguageCache
	log       zerolog.Logger
}

func New(session *database.Session, log zerolog.Logger, opts ...Option) *Repo {
	r := &Repo{
		session: session,
		log:     log.With().Str("session_id", session.ID).Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// tx returns the session's transaction scoped to ctx.
func (r *Repo) tx(ctx context.Context) (*gorm.DB, error) {
	tx, err := r.session.DB()
	if err != nil {
		return nil, err
	}
	return tx.WithContext(ctx), nil
}

// Clear deletes every row of every table, dependents first, and empties the
// language cache.
func (r *Repo) Clear(ctx context.Context) error {
	tx, err := r.tx(ctx)
	if err != nil {
		return err
	}

	entities := models.Entities()
	for i := len(entities) - 1; i >= 0; i-- {
		e := entities[i]
		res := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(e.Model)
		if res.Error != nil {
			return r.abort(fmt.Errorf("clear %s: %w", e.Table(), sqlerr.Translate(res.Error)))
		}
		r.log.Debug().Str("table", e.Table()).Int64("rows", res.RowsAffected).Msg("table cleared")
	}

	if err := r.session.Commit(); err != nil {
		return err
	}

	if r.languages != nil {
		if err := r.languages.Reset(ctx); err != nil {
			r.log.Warn().Err(err).Msg("failed to reset language cache")
		}
	}
	return nil
}

// abort rolls back the session after a failed statement, leaving it usable
// for the next call, and returns err unchanged.
func (r *Repo) abort(err error) error {
	if rbErr := r.session.Rollback(); rbErr != nil {
		r.log.Warn().Err(rbErr).Msg("rollback after failed statement")
	}
	return err
}
