package pgrepo

import (
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolationCode      = "23505"
	foreignKeyViolationCode  = "23503"
	numericOutOfRangeCode    = "22003"
	serializationFailureCode = "40001"
	deadlockDetectedCode     = "40P01"
	lockNotAvailableCode     = "55P03"
)

// convertErr normalises a repository error: it adds a formatted context message, the business error type
// and the original message.
//   - pgx.ErrNoRows becomes domain.ErrRecordNotFound.
//   - unique violations (uniqueViolationCode) become domain.ErrDuplicateKey.
//   - foreign key violations become domain.ErrConflict: the row is still referenced.
//   - numeric overflows become a domain.ValidationError on "amount".
//   - serialization failures, deadlocks, lock timeouts and connection errors that are safe to retry become
//     domain.ErrStorageFailure.
//   - everything else is domain.ErrUnknown with the original message.
func convertErr(err error, format string, formatArgs ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, formatArgs...)

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("[repository/%s] %w", msg, domain.ErrRecordNotFound)
	}

	var pgErr *pgconn.PgError
	errType := domain.ErrUnknown

	switch {
	case errors.As(err, &pgErr):
		switch {
		case isUniqueViolationErr(pgErr):
			errType = domain.ErrDuplicateKey
		case pgErr.Code == foreignKeyViolationCode:
			errType = domain.ErrConflict
		case pgErr.Code == numericOutOfRangeCode:
			errType = domain.NewValidationError("amount", "out of range")
		case isTransientErr(pgErr):
			errType = domain.ErrStorageFailure
		}
	case pgconn.SafeToRetry(err):
		errType = domain.ErrStorageFailure
	}

	return fmt.Errorf("[repository/%s] %w: %s", msg, errType, err.Error())
}

// IsRetryable reports whether the whole unit of work may be run again after err.
func IsRetryable(err error) bool {
	if errors.Is(err, domain.ErrStorageFailure) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return isTransientErr(pgErr)
	}
	return pgconn.SafeToRetry(err)
}

func isUniqueViolationErr(err *pgconn.PgError) bool {
	return err.Code == uniqueViolationCode
}

func isTransientErr(err *pgconn.PgError) bool {
	switch err.Code {
	case serializationFailureCode, deadlockDetectedCode, lockNotAvailableCode:
		return true
	default:
		return false
	}
}
