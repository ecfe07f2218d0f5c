package sqlerr

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTranslate_PgErrors(t *testing.T) {
	tests := []struct {
		name     string
		sqlState string
		kind     error
		code     Code
	}{
		{name: "foreign key", sqlState: "23503", kind: ErrConstraintViolation, code: ForeignKeyViolation},
		{name: "unique", sqlState: "23505", kind: ErrConstraintViolation, code: UniqueViolation},
		{name: "not null", sqlState: "23502", kind: ErrConstraintViolation, code: NotNullViolation},
		{name: "check", sqlState: "23514", kind: ErrConstraintViolation, code: CheckViolation},
		{name: "restrict", sqlState: "23001", kind: ErrConstraintViolation, code: RestrictViolation},
		{name: "connection failure", sqlState: "08006", kind: ErrConnection, code: Other},
		{name: "bad password", sqlState: "28P01", kind: ErrConnection, code: Other},
		{name: "too many connections", sqlState: "53300", kind: ErrConnection, code: Other},
		{name: "admin shutdown", sqlState: "57P01", kind: ErrConnection, code: Other},
		{name: "syntax error", sqlState: "42601", kind: ErrStatement, code: Other},
		{name: "undefined table", sqlState: "42P01", kind: ErrStatement, code: Other},
		{name: "value too long", sqlState: "22001", kind: ErrStatement, code: Other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &pgconn.PgError{Code: tt.sqlState, Message: "boom", TableName: "orders", ConstraintName: "orders_user_id_fkey"}
			err := Translate(fmt.Errorf("insert order: %w", src))

			require.ErrorIs(t, err, tt.kind)
			assert.Equal(t, tt.code, ErrCode(err))

			var sqlErr *Error
			require.ErrorAs(t, err, &sqlErr)
			assert.Equal(t, tt.sqlState, sqlErr.DatabaseCode)
			assert.Equal(t, "orders", sqlErr.TableName)

			var pgErr *pgconn.PgError
			require.ErrorAs(t, err, &pgErr)
			assert.Same(t, src, pgErr)
		})
	}
}

func TestTranslate_KindsAreExclusive(t *testing.T) {
	err := Translate(&pgconn.PgError{Code: "23503"})
	assert.ErrorIs(t, err, ErrConstraintViolation)
	assert.NotErrorIs(t, err, ErrConnection)
	assert.NotErrorIs(t, err, ErrStatement)
}

func TestTranslate_ConnectionFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "dial", err: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}},
		{name: "bad conn", err: fmt.Errorf("exec: %w", driver.ErrBadConn)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Translate(tt.err)
			assert.ErrorIs(t, err, ErrConnection)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestTranslate_PassThrough(t *testing.T) {
	assert.NoError(t, Translate(nil))
	assert.Same(t, gorm.ErrRecordNotFound, Translate(gorm.ErrRecordNotFound))
	assert.Equal(t, context.Canceled, Translate(context.Canceled))

	already := Translate(&pgconn.PgError{Code: "23505"})
	assert.Same(t, already, Translate(already))
}

func TestIsUniqueViolation(t *testing.T) {
	pk := &pgconn.PgError{Code: "23505", ConstraintName: "users_pkey"}

	assert.True(t, IsUniqueViolation(pk, "users_pkey"))
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrapped: %w", pk), ""))
	assert.False(t, IsUniqueViolation(pk, "users_username_key"))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503", ConstraintName: "users_pkey"}, "users_pkey"))
	assert.False(t, IsUniqueViolation(errors.New("plain"), ""))
}

func TestError_Message(t *testing.T) {
	err := Translate(&pgconn.PgError{Code: "23503", Message: "insert violates fk", ConstraintName: "orders_user_id_fkey"})
	assert.Equal(t, "constraint violation: insert violates fk (constraint orders_user_id_fkey)", err.Error())
}
