package memrepo

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/fsdevblog/creatorbook/internal/domain"
	"github.com/fsdevblog/creatorbook/internal/repository/repoargs"
	"github.com/fsdevblog/creatorbook/pkg/uow"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walletRepo(t *testing.T, tx uow.TX) *WalletRepository {
	t.Helper()
	repo, err := uow.GetAs[*WalletRepository](tx, uow.RepositoryName(repoargs.WalletRepoName))
	require.NoError(t, err)
	return repo
}

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	store := NewStore()
	u := NewUnitOfWork(store, uow.DefaultRetryPolicy())
	userID := uuid.New()
	errBoom := errors.New("boom")

	require.NoError(t, u.Do(t.Context(), func(ctx context.Context, tx uow.TX) error {
		repo := walletRepo(t, tx)
		if _, err := repo.Create(ctx, userID); err != nil {
			return err
		}
		_, err := repo.Adjust(ctx, repoargs.AdjustWallet{UserID: userID, Delta: 10})
		return err
	}))

	err := u.Do(t.Context(), func(ctx context.Context, tx uow.TX) error {
		if _, err := walletRepo(t, tx).Adjust(ctx, repoargs.AdjustWallet{UserID: userID, Delta: 5}); err != nil {
			return err
		}
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	repo, err := uow.GetRepositoryAs[*WalletRepository](u, uow.RepositoryName(repoargs.WalletRepoName))
	require.NoError(t, err)
	wallet, err := repo.FindByUserID(t.Context(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), wallet.Balance)
	assert.Equal(t, int64(1), wallet.Version)
}

func TestUnitOfWork_CancelledContext(t *testing.T) {
	u := NewUnitOfWork(NewStore(), uow.DefaultRetryPolicy())
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	called := false
	err := u.Do(ctx, func(context.Context, uow.TX) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestUnitOfWork_RetriesTransientFailure(t *testing.T) {
	policy := uow.DefaultRetryPolicy()
	policy.Retryable = func(err error) bool { return errors.Is(err, domain.ErrStorageFailure) }
	u := NewUnitOfWork(NewStore(), policy)

	var attempts int
	err := u.Do(t.Context(), func(context.Context, uow.TX) error {
		attempts++
		if attempts < 2 {
			return domain.ErrStorageFailure
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestUnitOfWork_Register(t *testing.T) {
	u := NewUnitOfWork(NewStore(), uow.DefaultRetryPolicy())
	require.ErrorIs(t, u.Register("any", nil), ErrFactoriesUnsupported)

	_, err := u.GetRepository("unknown")
	require.ErrorIs(t, err, uow.ErrRepositoryNotRegistered)
}

func TestWalletRepository_Adjust(t *testing.T) {
	store := NewStore()
	repo := &WalletRepository{v: view{store: store}}
	userID := uuid.New()

	_, err := repo.Adjust(t.Context(), repoargs.AdjustWallet{UserID: userID, Delta: 1})
	require.ErrorIs(t, err, domain.ErrRecordNotFound)

	_, err = repo.Create(t.Context(), userID)
	require.NoError(t, err)
	_, err = repo.Create(t.Context(), userID)
	require.ErrorIs(t, err, domain.ErrDuplicateKey)

	_, err = repo.Adjust(t.Context(), repoargs.AdjustWallet{UserID: userID, Delta: -1})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	wallet, err := repo.Adjust(t.Context(), repoargs.AdjustWallet{UserID: userID, Delta: math.MaxInt64})
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), wallet.Balance)
	_, err = repo.Adjust(t.Context(), repoargs.AdjustWallet{UserID: userID, Delta: 1})
	require.ErrorIs(t, err, domain.ErrValidation)

	ids, err := repo.ListUserIDs(t.Context(), uuid.Nil, 10)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{userID}, ids)
}
