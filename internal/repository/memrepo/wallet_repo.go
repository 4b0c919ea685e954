package memrepo

import (
	"bytes"
	"context"
	"slices"

	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/fsdevblog/creatorbook/internal/repository/repoargs"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type WalletRepository struct {
	v view
}

func (w *WalletRepository) Create(_ context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	st, done := w.v.open()
	defer done()

	if _, ok := st.wallets[userID]; ok {
		return nil, duplicate("creating wallet %s", userID)
	}
	wallet := domain.Wallet{UserID: userID, UpdatedAt: w.v.store.now()}
	st.wallets[userID] = wallet
	return &wallet, nil
}

func (w *WalletRepository) FindByUserID(_ context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	st, done := w.v.open()
	defer done()

	wallet, ok := st.wallets[userID]
	if !ok {
		return nil, notFound("finding wallet %s", userID)
	}
	return &wallet, nil
}

func (w *WalletRepository) Adjust(_ context.Context, args repoargs.AdjustWallet) (*domain.Wallet, error) {
	st, done := w.v.open()
	defer done()

	if err := w.v.store.fail(OpWalletAdjust, args.UserID); err != nil {
		return nil, err
	}
	wallet, ok := st.wallets[args.UserID]
	if !ok {
		return nil, notFound("adjusting wallet %s", args.UserID)
	}
	balance, err := domain.ApplyDelta(wallet.Balance, args.Delta)
	if err != nil {
		return nil, errors.Wrapf(err, "[memrepo/adjusting wallet %s by %d]", args.UserID, args.Delta)
	}
	wallet.Balance = balance
	wallet.Version++
	wallet.UpdatedAt = w.v.store.now()
	st.wallets[args.UserID] = wallet
	return &wallet, nil
}

func (w *WalletRepository) ListUserIDs(_ context.Context, after uuid.UUID, limit uint) ([]uuid.UUID, error) {
	st, done := w.v.open()
	defer done()

	var ids = make([]uuid.UUID, 0, len(st.wallets))
	for id := range st.wallets {
		if bytes.Compare(id[:], after[:]) > 0 {
			ids = append(ids, id)
		}
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	return limited(ids, limit), nil
}

func (w *WalletRepository) LedgerBalance(_ context.Context, userID uuid.UUID) (*repoargs.LedgerBalance, error) {
	st, done := w.v.open()
	defer done()

	wallet, ok := st.wallets[userID]
	if !ok {
		return nil, notFound("reading ledger balance %s", userID)
	}
	result := repoargs.LedgerBalance{UserID: userID, Balance: wallet.Balance}
	for _, t := range st.transactions {
		if t.UserID == userID {
			result.LedgerSum += t.Amount
		}
	}
	return &result, nil
}

type CreditsTransactionRepository struct {
	v view
}

func (c *CreditsTransactionRepository) Create(
	_ context.Context,
	args repoargs.CreditsTransactionCreate,
) (*domain.CreditsTransaction, error) {
	st, done := c.v.open()
	defer done()

	if err := c.v.store.fail(OpTransactionCreate, args.UserID); err != nil {
		return nil, err
	}
	if args.ExternalRef != nil {
		for _, t := range st.transactions {
			if t.ExternalRef != nil && *t.ExternalRef == *args.ExternalRef {
				return nil, duplicate("creating %s transaction for %s", args.Kind, args.UserID)
			}
		}
	}
	st.nextTransactionID++
	transaction := domain.CreditsTransaction{
		ID:          st.nextTransactionID,
		CreatedAt:   c.v.store.now(),
		UserID:      args.UserID,
		Kind:        args.Kind,
		Amount:      args.Amount,
		BookingID:   args.BookingID,
		ExternalRef: args.ExternalRef,
		Note:        args.Note,
	}
	st.transactions = append(st.transactions, transaction)
	return &transaction, nil
}

// ListByUser newest first.
func (c *CreditsTransactionRepository) ListByUser(
	_ context.Context,
	userID uuid.UUID,
	limit uint,
) ([]domain.CreditsTransaction, error) {
	st, done := c.v.open()
	defer done()

	var result = make([]domain.CreditsTransaction, 0)
	for i := len(st.transactions) - 1; i >= 0; i-- {
		if st.transactions[i].UserID == userID {
			result = append(result, st.transactions[i])
		}
	}
	return limited(result, limit), nil
}
