package database

import (
	"context"
	"fmt"

	"orm-lessons/internal/sqlerr"
)

const createUsersSQL = `
CREATE TABLE IF NOT EXISTS users
(
    telegram_id   BIGINT PRIMARY KEY,
    full_name     VARCHAR(255) NOT NULL,
    username      VARCHAR(255),
    language_code VARCHAR(255) NOT NULL,
    created_at    TIMESTAMP DEFAULT NOW(),
    referrer_id   BIGINT,
    FOREIGN KEY (referrer_id)
        REFERENCES users (telegram_id)
        ON DELETE SET NULL
)`

const insertUsersSQL = `
INSERT INTO users (telegram_id, full_name, username, language_code, referrer_id)
VALUES (1, 'John Doe', 'johndoe', 'en', NULL),
       (2, 'Jane Doe', 'janedoe', 'en', 1)
ON CONFLICT (telegram_id) DO NOTHING`

const selectUsersSQL = `SELECT * FROM users ORDER BY telegram_id`

// RunRawSQLDemo creates the users table with hand-written DDL, inserts two
// rows and reads the table back, one Session per step.
func RunRawSQLDemo(ctx context.Context, pool *SessionPool) ([]map[string]any, error) {
	err := pool.With(ctx, func(s *Session) error {
		tx, err := s.DB()
		if err != nil {
			return err
		}
		if err := tx.Exec(createUsersSQL).Error; err != nil {
			return fmt.Errorf("create users: %w", sqlerr.Translate(err))
		}
		return s.Commit()
	})
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	err = pool.With(ctx, func(s *Session) error {
		tx, err := s.DB()
		if err != nil {
			return err
		}
		if err := tx.Exec(insertUsersSQL).Error; err != nil {
			return fmt.Errorf("insert users: %w", sqlerr.Translate(err))
		}
		if err := s.Commit(); err != nil {
			return err
		}

		tx, err = s.DB()
		if err != nil {
			return err
		}
		if err := tx.Raw(selectUsersSQL).Scan(&rows).Error; err != nil {
			return fmt.Errorf("select users: %w", sqlerr.Translate(err))
		}
		return s.Commit()
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
