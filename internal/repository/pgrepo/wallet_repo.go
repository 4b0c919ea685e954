package pgrepo

import (
	"context"
	"fmt"
	"math"

	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/fsdevblog/creatorbook/internal/repository/repoargs"
	"github.com/fsdevblog/creatorbook/pkg/uow"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const walletColumns = `user_id, updated_at, balance, version`

type WalletRepository struct {
	conn uow.DBTX
}

func NewWalletRepository(conn uow.DBTX) *WalletRepository {
	return &WalletRepository{conn: conn}
}

func (w *WalletRepository) Create(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	row := w.conn.QueryRow(ctx, `
		INSERT INTO wallets (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING `+walletColumns,
		userID,
	)
	wallet, err := scanWallet(row)
	if err != nil {
		return nil, convertInsertErr(err, "creating wallet %s", userID)
	}
	return wallet, nil
}

func (w *WalletRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	row := w.conn.QueryRow(ctx, `SELECT `+walletColumns+` FROM wallets WHERE user_id = $1`, userID)
	wallet, err := scanWallet(row)
	if err != nil {
		return nil, convertErr(err, "finding wallet %s", userID)
	}
	return wallet, nil
}

// Adjust applies the delta with a single conditional update, so the row lock serialises concurrent adjustments
// of the same wallet. The bounds are checked on the current balance, the update itself cannot overflow bigint.
// Errors: domain.ErrInsufficientFunds, domain.ErrValidation (balance out of range), domain.ErrRecordNotFound.
func (w *WalletRepository) Adjust(ctx context.Context, args repoargs.AdjustWallet) (*domain.Wallet, error) {
	var minBalance, maxBalance int64 = 0, math.MaxInt64
	if args.Delta < 0 {
		minBalance = -args.Delta
	} else {
		maxBalance -= args.Delta
	}

	row := w.conn.QueryRow(ctx, `
		UPDATE wallets
		SET balance    = balance + $2,
		    version    = version + 1,
		    updated_at = now()
		WHERE user_id = $1 AND balance BETWEEN $3 AND $4
		RETURNING `+walletColumns,
		args.UserID, args.Delta, minBalance, maxBalance,
	)
	wallet, err := scanWallet(row)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, convertErr(err, "adjusting wallet %s by %d", args.UserID, args.Delta)
	}

	var balance int64
	if balanceErr := w.conn.QueryRow(ctx,
		`SELECT balance FROM wallets WHERE user_id = $1`, args.UserID,
	).Scan(&balance); balanceErr != nil {
		return nil, convertErr(balanceErr, "checking wallet %s", args.UserID)
	}
	if _, deltaErr := domain.ApplyDelta(balance, args.Delta); deltaErr != nil {
		return nil, fmt.Errorf("[repository/adjusting wallet %s by %d] %w", args.UserID, args.Delta, deltaErr)
	}
	// the balance moved between the two statements; report the debit case.
	return nil, fmt.Errorf("[repository/adjusting wallet %s by %d] %w", args.UserID, args.Delta, domain.ErrInsufficientFunds)
}

// ListUserIDs returns wallet owners ordered by id, starting right after `after`.
func (w *WalletRepository) ListUserIDs(ctx context.Context, after uuid.UUID, limit uint) ([]uuid.UUID, error) {
	safeLimit, safeLimitErr := safeConvertUintToInt32(limit)
	if safeLimitErr != nil {
		return nil, convertErr(safeLimitErr, "converting limit to int32")
	}
	rows, err := w.conn.Query(ctx,
		`SELECT user_id FROM wallets WHERE user_id > $1 ORDER BY user_id LIMIT $2`, after, safeLimit,
	)
	if err != nil {
		return nil, convertErr(err, "listing wallets after %s", after)
	}
	ids, err := collect(rows, func(row pgx.Row) (*uuid.UUID, error) {
		var id uuid.UUID
		return &id, row.Scan(&id)
	})
	if err != nil {
		return nil, convertErr(err, "listing wallets after %s", after)
	}
	return ids, nil
}

// LedgerBalance reads the balance and the ledger sum in one statement, so both come from the same snapshot.
func (w *WalletRepository) LedgerBalance(ctx context.Context, userID uuid.UUID) (*repoargs.LedgerBalance, error) {
	var res = repoargs.LedgerBalance{UserID: userID}
	err := w.conn.QueryRow(ctx, `
		SELECT w.balance, COALESCE((SELECT SUM(t.amount) FROM credits_transactions t WHERE t.user_id = w.user_id), 0)
		FROM wallets w
		WHERE w.user_id = $1`,
		userID,
	).Scan(&res.Balance, &res.LedgerSum)
	if err != nil {
		return nil, convertErr(err, "reading ledger balance %s", userID)
	}
	return &res, nil
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var w domain.Wallet
	if err := row.Scan(&w.UserID, &w.UpdatedAt, &w.Balance, &w.Version); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &w, nil
}
