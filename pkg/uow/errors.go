package uow

import (
	"errors"
	"fmt"
)

var (
	ErrRepositoryNotRegistered     = errors.New("[uow] repository not registered")
	ErrRepositoryAlreadyRegistered = errors.New("[uow] repository already registered")
	ErrInvalidRepositoryType       = errors.New("[uow] invalid repository type")
	ErrNilFactory                  = errors.New("[uow] nil repository factory")
	ErrRetriesExhausted            = errors.New("[uow] retries exhausted")
)

// RepositoryError keeps the name of the repository the lookup failed for.
type RepositoryError struct {
	Name RepositoryName
	Err  error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("%s: %q", e.Err.Error(), e.Name)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

func repositoryErr(name RepositoryName, err error) error {
	return &RepositoryError{Name: name, Err: err}
}
