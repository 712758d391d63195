package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	pgCodeUniqueViolation     = "23505"
	pgCodeForeignKeyViolation = "23503"
	pgCodeSerializationFail   = "40001"
	pgCodeDeadlockDetected    = "40P01"
)

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func IsUniqueViolation(err error) bool {
	return hasPGCode(err, pgCodeUniqueViolation)
}

func IsForeignKeyViolation(err error) bool {
	return hasPGCode(err, pgCodeForeignKeyViolation)
}

// IsRetryableTxError reports whether the transaction failed in a way
// that a fresh attempt may succeed.
func IsRetryableTxError(err error) bool {
	return hasPGCode(err, pgCodeSerializationFail) || hasPGCode(err, pgCodeDeadlockDetected)
}

func hasPGCode(err error, code string) bool {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}
	return false
}
