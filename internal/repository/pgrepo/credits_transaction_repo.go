package pgrepo

import (
	"context"

	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/fsdevblog/creatorbook/internal/repository/repoargs"
	"github.com/fsdevblog/creatorbook/pkg/uow"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const creditsTransactionColumns = `id, created_at, user_id, kind, amount, booking_id, external_ref, note`

type CreditsTransactionRepository struct {
	conn uow.DBTX
}

func NewCreditsTransactionRepository(conn uow.DBTX) *CreditsTransactionRepository {
	return &CreditsTransactionRepository{conn: conn}
}

// Create appends a ledger entry. A second entry with the same external reference is rejected with
// domain.ErrDuplicateKey without aborting the surrounding transaction.
func (c *CreditsTransactionRepository) Create(
	ctx context.Context,
	args repoargs.CreditsTransactionCreate,
) (*domain.CreditsTransaction, error) {
	row := c.conn.QueryRow(ctx, `
		INSERT INTO credits_transactions (user_id, kind, amount, booking_id, external_ref, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (external_ref) DO NOTHING
		RETURNING `+creditsTransactionColumns,
		args.UserID, string(args.Kind), args.Amount, args.BookingID, args.ExternalRef, args.Note,
	)
	transaction, err := scanCreditsTransaction(row)
	if err != nil {
		return nil, convertInsertErr(err, "creating %s transaction for %s", args.Kind, args.UserID)
	}
	return transaction, nil
}

// ListByUser newest first.
func (c *CreditsTransactionRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit uint,
) ([]domain.CreditsTransaction, error) {
	safeLimit, safeLimitErr := safeConvertUintToInt32(limit)
	if safeLimitErr != nil {
		return nil, convertErr(safeLimitErr, "converting limit to int32")
	}
	rows, err := c.conn.Query(ctx, `
		SELECT `+creditsTransactionColumns+` FROM credits_transactions
		WHERE user_id = $1
		ORDER BY id DESC
		LIMIT $2`,
		userID, safeLimit,
	)
	if err != nil {
		return nil, convertErr(err, "listing transactions of %s", userID)
	}
	transactions, err := collect(rows, scanCreditsTransaction)
	if err != nil {
		return nil, convertErr(err, "listing transactions of %s", userID)
	}
	return transactions, nil
}

func scanCreditsTransaction(row pgx.Row) (*domain.CreditsTransaction, error) {
	var t domain.CreditsTransaction
	var kind string
	if err := row.Scan(
		&t.ID, &t.CreatedAt, &t.UserID, &kind, &t.Amount, &t.BookingID, &t.ExternalRef, &t.Note,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	t.Kind = domain.TransactionKind(kind)
	return &t, nil
}
