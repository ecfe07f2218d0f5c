// Package sqlerr turns driver errors into the three failure kinds callers
// branch on: constraint violations, connection failures and statement errors.
package sqlerr

import (
	"errors"
	"fmt"
)

var (
	ErrConstraintViolation = errors.New("constraint violation")
	ErrConnection          = errors.New("database connection error")
	ErrStatement           = errors.New("statement error")
)

// Code narrows a constraint violation down to the constraint type.
type Code string

const (
	Other               Code = "other"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	NotNullViolation    Code = "not_null_violation"
	CheckViolation      Code = "check_violation"
	RestrictViolation   Code = "restrict_violation"
)

type Error struct {
	kind error

	Code           Code
	DatabaseCode   string
	Message        string
	TableName      string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.driverErr != nil {
		msg = e.driverErr.Error()
	}
	if e.ConstraintName != "" {
		return fmt.Sprintf("%s: %s (constraint %s)", e.kind, msg, e.ConstraintName)
	}
	return fmt.Sprintf("%s: %s", e.kind, msg)
}

func (e *Error) Unwrap() error { return e.driverErr }

// Is matches the kind sentinel, so errors.Is(err, ErrConstraintViolation) works
// through any amount of wrapping.
func (e *Error) Is(target error) bool { return target == e.kind }

// Kind returns one of ErrConstraintViolation, ErrConnection or ErrStatement.
func (e *Error) Kind() error { return e.kind }
