package uow

import (
	"github.com/jackc/pgx/v5"
)

// pgTX hands out repositories bound to one open pgx transaction.
type pgTX struct {
	factories map[RepositoryName]RepositoryFactory
	tx        pgx.Tx
}

func newPgTX(tx pgx.Tx, factories map[RepositoryName]RepositoryFactory) *pgTX {
	return &pgTX{factories: factories, tx: tx}
}

func (t *pgTX) Get(name RepositoryName) (Repository, error) {
	factory, ok := t.factories[name]
	if !ok {
		return nil, repositoryErr(name, ErrRepositoryNotRegistered)
	}
	return factory(t.tx), nil
}

// GetAs returns the repository registered under name converted to T.
// Errors wrap ErrRepositoryNotRegistered or ErrInvalidRepositoryType.
func GetAs[T any](t TX, name RepositoryName) (T, error) {
	var res T
	repo, err := t.Get(name)
	if err != nil {
		return res, err //nolint:wrapcheck
	}
	return as[T](name, repo)
}

func as[T any](name RepositoryName, repo Repository) (T, error) {
	res, ok := repo.(T)
	if !ok {
		return res, repositoryErr(name, ErrInvalidRepositoryType)
	}
	return res, nil
}
