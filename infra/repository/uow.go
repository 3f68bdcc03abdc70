package repository

import (
	"context"
	"fmt"
	"reflect"

	accountrepo "github.com/amirasaad/spendwise/infra/repository/account"
	budgetrepo "github.com/amirasaad/spendwise/infra/repository/budget"
	insightrepo "github.com/amirasaad/spendwise/infra/repository/insight"
	transactionrepo "github.com/amirasaad/spendwise/infra/repository/transaction"
	userrepo "github.com/amirasaad/spendwise/infra/repository/user"
	"github.com/amirasaad/spendwise/pkg/repository"
	"github.com/amirasaad/spendwise/pkg/repository/account"
	"github.com/amirasaad/spendwise/pkg/repository/budget"
	"github.com/amirasaad/spendwise/pkg/repository/insight"
	"github.com/amirasaad/spendwise/pkg/repository/transaction"
	"github.com/amirasaad/spendwise/pkg/repository/user"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one abstraction.
// Repositories obtained inside Do share the transaction session.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			reflect.TypeOf((*transaction.Repository)(nil)): func(db *gorm.DB) any { return transactionrepo.New(db) },
			reflect.TypeOf((*budget.Repository)(nil)):      func(db *gorm.DB) any { return budgetrepo.New(db) },
			reflect.TypeOf((*insight.Repository)(nil)):     func(db *gorm.DB) any { return insightrepo.New(db) },
			reflect.TypeOf((*account.Repository)(nil)):     func(db *gorm.DB) any { return accountrepo.New(db) },
			reflect.TypeOf((*user.Repository)(nil)):        func(db *gorm.DB) any { return userrepo.New(db) },
		},
	}
}

// Do runs fn in a database transaction. GORM errors escaping fn are mapped
// to domain errors.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txnUow := &UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry}
		return fn(txnUow)
	})
	return MapGormErrorToDomain(err)
}

// GetRepository returns the repository registered for the interface repoType
// points to, e.g. (*budget.Repository)(nil). Outside Do it uses the plain
// connection.
func (u *UoW) GetRepository(repoType any) (any, error) {
	constructor, ok := u.repoRegistry[reflect.TypeOf(repoType)]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %T", repoType)
	}
	session := u.tx
	if session == nil {
		session = u.db
	}
	return constructor(session), nil
}
