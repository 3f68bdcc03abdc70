// Package mocks holds testify mocks for the repository, provider and
// rate limiter interfaces.
package mocks

import (
	"context"
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/amirasaad/spendwise/pkg/repository"
)

// MockUnitOfWork runs Do callbacks against itself and resolves repositories
// from the mocks it was built with.
type MockUnitOfWork struct {
	repos []any
	// Err, when set, is returned by Do without running the callback.
	Err   error
	calls atomic.Int64
}

func NewMockUnitOfWork(repos ...any) *MockUnitOfWork {
	return &MockUnitOfWork{repos: repos}
}

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	m.calls.Add(1)
	if m.Err != nil {
		return m.Err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(m)
}

// Calls reports how many times Do was invoked.
func (m *MockUnitOfWork) Calls() int { return int(m.calls.Load()) }

func (m *MockUnitOfWork) GetRepository(repoType any) (any, error) {
	t := reflect.TypeOf(repoType)
	if t == nil || t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Interface {
		return nil, fmt.Errorf("repository type must be a pointer to an interface, got %T", repoType)
	}
	for _, r := range m.repos {
		if reflect.TypeOf(r).Implements(t.Elem()) {
			return r, nil
		}
	}
	return nil, fmt.Errorf("no mock registered for %s", t.Elem())
}
