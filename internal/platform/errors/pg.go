package errors

import (
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// sqlstates the tag table loader can meet
const (
	pgErrUniqueViolation        = "23505"
	pgErrInvalidText            = "22P02"
	pgErrUndefinedTable         = "42P01"
	pgErrUndefinedColumn        = "42703"
	pgErrInsufficientPrivilege  = "42501"
	pgErrSerializationFailure   = "40001"
	pgErrDeadlockDetected       = "40P01"
	pgErrLockNotAvailable       = "55P03"
	pgErrQueryCanceled          = "57014"
	pgErrAdminShutdown          = "57P01"
	pgErrCannotConnectNow       = "57P03"
	pgErrConnectionExceptionCls = "08"
)

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// DBErrorCode maps a postgres error onto an ErrorCode; ok is false for non postgres errors
func DBErrorCode(err error) (ErrorCode, bool) {
	pgErr, ok := pgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	switch {
	case pgErr.Code == pgErrUndefinedTable:
		return ErrorCodeNotFound, true
	case pgErr.Code == pgErrUndefinedColumn, pgErr.Code == pgErrInvalidText:
		return ErrorCodeInvalidArgument, true
	case pgErr.Code == pgErrInsufficientPrivilege:
		return ErrorCodeForbidden, true
	case pgErr.Code == pgErrUniqueViolation:
		return ErrorCodeDuplicateKey, true
	case pgErr.Code == pgErrQueryCanceled, pgErr.Code == pgErrAdminShutdown,
		pgErr.Code == pgErrCannotConnectNow, strings.HasPrefix(pgErr.Code, pgErrConnectionExceptionCls):
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}

// FromPostgresf wraps err with its mapped code and a formatted message; nil stays nil
func FromPostgresf(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	code, ok := DBErrorCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	return Wrap(err, code, fmt.Sprintf(format, a...))
}

// IsRetryable reports whether a database error is transient: contention,
// a server still starting or a dropped connection
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if pgErr, ok := pgError(err); ok {
		switch pgErr.Code {
		case pgErrSerializationFailure, pgErrDeadlockDetected, pgErrLockNotAvailable,
			pgErrAdminShutdown, pgErrCannotConnectNow:
			return true
		}
		return strings.HasPrefix(pgErr.Code, pgErrConnectionExceptionCls)
	}

	s := strings.ToLower(Root(err).Error())
	switch {
	case strings.Contains(s, "deadlock detected"),
		strings.Contains(s, "could not serialize access"),
		strings.Contains(s, "terminating connection due to administrator command"),
		strings.Contains(s, "the database system is starting up"):
		return true
	}
	return false
}
