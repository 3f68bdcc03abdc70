package repository

import (
	"context"
	"fmt"
)

// UnitOfWork defines the contract for transactional work and repository access.
//
// Do runs fn inside a transaction boundary; returning an error rolls it back.
// GetRepository returns the repository registered for the interface that
// repoType points to, bound to the current session:
//
//	repoAny, err := uow.GetRepository((*budget.Repository)(nil))
//	repo := repoAny.(budget.Repository)
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error
	GetRepository(repoType any) (any, error)
}

// Get resolves the repository interface T from uow.
func Get[T any](uow UnitOfWork) (T, error) {
	var zero T
	repoAny, err := uow.GetRepository((*T)(nil))
	if err != nil {
		return zero, err
	}
	repo, ok := repoAny.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected repository type %T", repoAny)
	}
	return repo, nil
}
