package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"orm-lessons/internal/sqlerr"
)

var ErrSessionClosed = errors.New("session is closed")

// SessionPool hands out Sessions bound to one database handle.
type SessionPool struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewSessionPool(db *gorm.DB, log zerolog.Logger) *SessionPool {
	return &SessionPool{db: db, log: log}
}

// Open creates a Session. No connection is taken until the first statement.
func (p *SessionPool) Open(ctx context.Context) *Session {
	id := uuid.NewString()
	return &Session{
		ID:  id,
		db:  p.db.WithContext(ctx),
		log: p.log.With().Str("session_id", id).Logger(),
	}
}

// With runs fn inside a fresh Session and closes it afterwards, whatever fn
// returns. Writes fn did not commit are rolled back.
func (p *SessionPool) With(ctx context.Context, fn func(s *Session) error) (err error) {
	s := p.Open(ctx)
	defer func() {
		if closeErr := s.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return fn(s)
}

// Session brackets statements in a transaction that must be committed
// explicitly. A transaction begins on first use and again after each Commit.
// A Session is not safe for concurrent use.
type Session struct {
	ID string

	db     *gorm.DB
	tx     *gorm.DB
	closed bool
	log    zerolog.Logger
}

// DB returns the handle of the pending transaction, beginning one if needed.
func (s *Session) DB() (*gorm.DB, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	if s.tx == nil {
		tx := s.db.Begin()
		if tx.Error != nil {
			return nil, fmt.Errorf("begin transaction: %w", sqlerr.Translate(tx.Error))
		}
		s.tx = tx
		s.log.Debug().Msg("transaction started")
	}
	return s.tx, nil
}

// InTransaction reports whether statements are pending commit.
func (s *Session) InTransaction() bool {
	return s.tx != nil
}

// Commit persists the pending transaction. Without one it does nothing.
func (s *Session) Commit() error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.tx == nil {
		return nil
	}
	tx := s.tx
	s.tx = nil
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("commit: %w", sqlerr.Translate(err))
	}
	s.log.Debug().Msg("transaction committed")
	return nil
}

// Rollback discards the pending transaction.
func (s *Session) Rollback() error {
	if s.tx == nil {
		return nil
	}
	tx := s.tx
	s.tx = nil
	if err := tx.Rollback().Error; err != nil {
		return fmt.Errorf("rollback: %w", sqlerr.Translate(err))
	}
	s.log.Debug().Msg("transaction rolled back")
	return nil
}

// Close rolls back uncommitted work and releases the connection. Closing
// twice is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	defer func() { s.closed = true }()
	if s.tx != nil {
		s.log.Warn().Msg("closing session with uncommitted transaction, rolling back")
		return s.Rollback()
	}
	return nil
}
