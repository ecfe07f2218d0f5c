package sqlerr

import (
	"database/sql/driver"
	"errors"
	"io"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	return Other
}

func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		kind:           mapKind(src.Code),
		Code:           MapCode(src.Code),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		TableName:      src.TableName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// MapCode maps an SQLSTATE to a constraint Code.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	case "23001":
		return RestrictViolation
	default:
		return Other
	}
}

func mapKind(sqlState string) error {
	switch {
	case strings.HasPrefix(sqlState, "23"):
		return ErrConstraintViolation
	case strings.HasPrefix(sqlState, "08"),
		strings.HasPrefix(sqlState, "28"),
		strings.HasPrefix(sqlState, "53"),
		strings.HasPrefix(sqlState, "57P"):
		return ErrConnection
	default:
		return ErrStatement
	}
}

// Translate wraps driver failures into *Error. Errors that are not driver
// failures (gorm.ErrRecordNotFound, context cancellation) come back unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ConvertPgError(pgErr)
	}

	if isConnectionFailure(err) {
		return &Error{kind: ErrConnection, Code: Other, Message: err.Error(), driverErr: err}
	}

	return err
}

func isConnectionFailure(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, driver.ErrBadConn) || errors.Is(err, io.ErrUnexpectedEOF)
}

// IsUniqueViolation reports whether err is a unique violation on the named
// constraint. An empty constraint matches any unique violation.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || MapCode(pgErr.Code) != UniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
