package pgrepo

import (
	"errors"
	"testing"

	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestConvertErr(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{name: "no rows", err: pgx.ErrNoRows, want: domain.ErrRecordNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: uniqueViolationCode}, want: domain.ErrDuplicateKey},
		{name: "serialization", err: &pgconn.PgError{Code: serializationFailureCode}, want: domain.ErrStorageFailure},
		{name: "deadlock", err: &pgconn.PgError{Code: deadlockDetectedCode}, want: domain.ErrStorageFailure},
		{name: "lock timeout", err: &pgconn.PgError{Code: lockNotAvailableCode}, want: domain.ErrStorageFailure},
		{name: "foreign key violation", err: &pgconn.PgError{Code: foreignKeyViolationCode}, want: domain.ErrConflict},
		{name: "numeric out of range", err: &pgconn.PgError{Code: numericOutOfRangeCode}, want: domain.ErrValidation},
		{name: "check violation", err: &pgconn.PgError{Code: "23514"}, want: domain.ErrUnknown},
		{name: "plain", err: errors.New("boom"), want: domain.ErrUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := convertErr(tc.err, "testing %s", tc.name)
			assert.ErrorIs(t, err, tc.want)
			assert.Contains(t, err.Error(), "[repository/testing "+tc.name+"]")
		})
	}

	assert.NoError(t, convertErr(nil, "nothing"))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&pgconn.PgError{Code: serializationFailureCode}))
	assert.True(t, IsRetryable(convertErr(&pgconn.PgError{Code: deadlockDetectedCode}, "x")))
	assert.False(t, IsRetryable(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.False(t, IsRetryable(domain.ErrInsufficientFunds))
}
