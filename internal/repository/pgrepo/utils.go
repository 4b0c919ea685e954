package pgrepo

import (
	"fmt"
	"math"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/fsdevblog/creatorbook/internal/domain"
)

// safeConvertUintToInt32 converts val to int32 or fails when it is out of range.
func safeConvertUintToInt32(val uint) (int32, error) {
	if val > uint(math.MaxInt32) {
		return 0, fmt.Errorf("value is out of range: %d", val)
	}
	return int32(val), nil
}

// convertInsertErr like convertErr, but an empty RETURNING of `ON CONFLICT DO NOTHING` means the row already exists.
func convertInsertErr(err error, format string, formatArgs ...any) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("[repository/%s] %w", fmt.Sprintf(format, formatArgs...), domain.ErrDuplicateKey)
	}
	return convertErr(err, format, formatArgs...)
}

// collect scans every row with scan and closes rows.
func collect[T any](rows pgx.Rows, scan func(pgx.Row) (*T, error)) ([]T, error) {
	defer rows.Close()

	var items = make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan row")
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate rows")
	}
	return items, nil
}

// prefixed qualifies every column of a comma separated list with prefix.
func prefixed(prefix, columns string) string {
	parts := strings.Split(columns, ",")
	for i, part := range parts {
		parts[i] = prefix + strings.TrimSpace(part)
	}
	return strings.Join(parts, ", ")
}
