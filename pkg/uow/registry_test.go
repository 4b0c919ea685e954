package uow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type namedRepo struct {
	db DBTX
}

func namedRepoFactory(db DBTX) Repository {
	return &namedRepo{db: db}
}

func TestRegister(t *testing.T) {
	u := NewUnitOfWork(nil)

	require.NoError(t, u.Register("wallet", namedRepoFactory))
	require.ErrorIs(t, u.Register("wallet", namedRepoFactory), ErrRepositoryAlreadyRegistered)
	require.ErrorIs(t, u.Register("booking", nil), ErrNilFactory)

	var repoErr *RepositoryError
	err := u.Register("wallet", namedRepoFactory)
	require.ErrorAs(t, err, &repoErr)
	require.Equal(t, RepositoryName("wallet"), repoErr.Name)
}

func TestGetRepositoryAs(t *testing.T) {
	u := NewUnitOfWork(nil)
	require.NoError(t, u.Register("wallet", namedRepoFactory))

	repo, err := GetRepositoryAs[*namedRepo](u, "wallet")
	require.NoError(t, err)
	require.NotNil(t, repo)

	_, err = GetRepositoryAs[*namedRepo](u, "message")
	require.ErrorIs(t, err, ErrRepositoryNotRegistered)

	_, err = GetRepositoryAs[string](u, "wallet")
	require.ErrorIs(t, err, ErrInvalidRepositoryType)
}

func TestGetAs(t *testing.T) {
	tx := newPgTX(nil, map[RepositoryName]RepositoryFactory{"wallet": namedRepoFactory})

	repo, err := GetAs[*namedRepo](tx, "wallet")
	require.NoError(t, err)
	require.NotNil(t, repo)

	_, err = GetAs[*namedRepo](tx, "payout")
	require.ErrorIs(t, err, ErrRepositoryNotRegistered)
	require.Contains(t, err.Error(), `"payout"`)

	_, err = GetAs[int](tx, "wallet")
	require.ErrorIs(t, err, ErrInvalidRepositoryType)
}
