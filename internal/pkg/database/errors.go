package database

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// ErrorClass tells WithRetry whether a failed transaction may be attempted again
type ErrorClass int

const (
	ErrorClassPermanent ErrorClass = iota
	ErrorClassTransient
	ErrorClassDeadlock
	ErrorClassSerialization
)

// PostgreSQL error codes
const (
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
	CodeLockNotAvailable     = "55P03"
	CodeUniqueViolation      = "23505"
	CodeForeignKeyViolation  = "23503"
	CodeNotNullViolation     = "23502"
	CodeCheckViolation       = "23514"
)

// ClassifyError maps a database error to an ErrorClass. Unique violations are
// permanent unless they hit one of retryableConstraints.
func ClassifyError(err error, retryableConstraints ...string) ErrorClass {
	if err == nil {
		return ErrorClassPermanent
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case CodeSerializationFailure:
			return ErrorClassSerialization
		case CodeDeadlockDetected:
			return ErrorClassDeadlock
		case CodeLockNotAvailable:
			return ErrorClassTransient
		case CodeUniqueViolation:
			for _, c := range retryableConstraints {
				if pqErr.Constraint == c {
					return ErrorClassTransient
				}
			}
			return ErrorClassPermanent
		}
	}

	return ErrorClassPermanent
}

// IsRetryable reports whether err is worth another transaction attempt
func IsRetryable(err error, retryableConstraints ...string) bool {
	return ClassifyError(err, retryableConstraints...) != ErrorClassPermanent
}

// IsUniqueViolation reports whether err is a unique violation, optionally on a specific constraint
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != CodeUniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

// IsNoRows reports whether err means the query matched nothing
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
