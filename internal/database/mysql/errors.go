package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/koustreak/ischematsv/internal/database"
)

// MySQL error numbers
// Full list: https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
const (
	errAccessDeniedDB   = 1044
	errAccessDenied     = 1045
	errNoDatabase       = 1046
	errUnknownDatabase  = 1049
	errTooManyConns     = 1040
	errTooManyUserConns = 1203
	errBadFieldError    = 1054
	errParseError       = 1064
	errNoSuchTable      = 1146
)

// mapError translates go-sql-driver errors into *database.DBError.
func mapError(err error, msg string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &database.DBError{Kind: database.ErrKindTimeout, Message: msg, Cause: err}
	}

	if errors.Is(err, sql.ErrNoRows) {
		return &database.DBError{Kind: database.ErrKindNotFound, Message: msg, Cause: err}
	}

	var mysqlErr *gomysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return &database.DBError{
			Kind:    classifyCode(mysqlErr.Number),
			Message: fmt.Sprintf("%s: %s", msg, mysqlErr.Message),
			Cause:   err,
		}
	}

	// Anything that is not a server-reported error is a transport or
	// handshake failure.
	return &database.DBError{Kind: database.ErrKindConnectionFailed, Message: msg, Cause: err}
}

// classifyCode maps MySQL server error numbers to ErrKind.
func classifyCode(code uint16) database.ErrKind {
	switch code {
	case errAccessDeniedDB, errAccessDenied, errNoDatabase, errUnknownDatabase:
		return database.ErrKindConnectionFailed
	case errTooManyConns, errTooManyUserConns:
		return database.ErrKindConnectionFailed
	case errBadFieldError, errParseError, errNoSuchTable:
		return database.ErrKindQueryFailed
	default:
		return database.ErrKindQueryFailed
	}
}
