package uow

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RepositoryName string
type Repository any
type RepositoryFactory func(DBTX) Repository

type Option func(*UnitOfWork)

// WithRetry sets the policy applied to every Do call.
func WithRetry(policy RetryPolicy) Option {
	return func(u *UnitOfWork) {
		u.retry = policy
	}
}

type UnitOfWork struct {
	conn         *pgxpool.Pool
	repositories map[RepositoryName]RepositoryFactory
	retry        RetryPolicy
}

func NewUnitOfWork(conn *pgxpool.Pool, opts ...Option) *UnitOfWork {
	u := &UnitOfWork{
		conn:         conn,
		repositories: make(map[RepositoryName]RepositoryFactory),
		retry:        DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Register stores the repository factory. A second registration under the same name returns
// ErrRepositoryAlreadyRegistered, a nil factory ErrNilFactory.
func (u *UnitOfWork) Register(name RepositoryName, factory RepositoryFactory) error {
	if factory == nil {
		return repositoryErr(name, ErrNilFactory)
	}
	if _, ok := u.repositories[name]; ok {
		return repositoryErr(name, ErrRepositoryAlreadyRegistered)
	}
	u.repositories[name] = factory
	return nil
}

// Do runs fn inside a transaction, retrying the whole transaction according to the retry policy.
func (u *UnitOfWork) Do(ctx context.Context, fn func(context.Context, TX) error) error {
	return u.retry.Run(ctx, func() error {
		return u.do(ctx, fn)
	})
}

func (u *UnitOfWork) do(ctx context.Context, fn func(context.Context, TX) error) (err error) {
	tx, txErr := u.conn.BeginTx(ctx, pgx.TxOptions{})
	if txErr != nil {
		return txErr //nolint:wrapcheck
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			if err == nil {
				err = rollbackErr
			} else {
				err = errors.Join(err, rollbackErr)
			}
		}
	}()

	transErr := fn(ctx, newPgTX(tx, u.repositories))
	if transErr != nil {
		return transErr
	}
	err = tx.Commit(ctx)
	return
}

// GetRepository returns a repository bound to the pool, outside of any transaction.
func (u *UnitOfWork) GetRepository(name RepositoryName) (Repository, error) {
	if repoFactory, ok := u.repositories[name]; ok {
		return repoFactory(u.conn), nil
	}
	return nil, repositoryErr(name, ErrRepositoryNotRegistered)
}

// GetRepositoryAs returns the repository registered under name converted to T.
// Errors: ErrRepositoryNotRegistered, ErrInvalidRepositoryType.
func GetRepositoryAs[T any](u UOW, name RepositoryName) (T, error) {
	repo, err := u.GetRepository(name)
	if err != nil {
		var res T
		return res, err //nolint:wrapcheck
	}
	return as[T](name, repo)
}
