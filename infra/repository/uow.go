package repository

import (
	"context"
	"fmt"
	"reflect"

	accountrepo "github.com/amirasaad/fintrack/infra/repository/account"
	categoryrepo "github.com/amirasaad/fintrack/infra/repository/category"
	refreshtokenrepo "github.com/amirasaad/fintrack/infra/repository/refreshtoken"
	transactionrepo "github.com/amirasaad/fintrack/infra/repository/transaction"
	userrepo "github.com/amirasaad/fintrack/infra/repository/user"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/amirasaad/fintrack/pkg/repository/account"
	"github.com/amirasaad/fintrack/pkg/repository/category"
	"github.com/amirasaad/fintrack/pkg/repository/refreshtoken"
	"github.com/amirasaad/fintrack/pkg/repository/transaction"
	"github.com/amirasaad/fintrack/pkg/repository/user"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. Repositories handed out inside Do share the transaction.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			typeOf[account.Repository]():      func(db *gorm.DB) any { return accountrepo.New(db) },
			typeOf[category.Repository]():     func(db *gorm.DB) any { return categoryrepo.New(db) },
			typeOf[transaction.Repository]():  func(db *gorm.DB) any { return transactionrepo.New(db) },
			typeOf[user.Repository]():         func(db *gorm.DB) any { return userrepo.New(db) },
			typeOf[refreshtoken.Repository](): func(db *gorm.DB) any { return refreshtokenrepo.New(db) },
		},
	}
}

// Do runs fn in a database transaction. Returning an error from fn rolls
// the transaction back.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.tx != nil {
		// Already inside a transaction; join it.
		return fn(u)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txnUow := &UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry}
		return fn(txnUow)
	})
}

// GetRepository returns the repository registered for repoType, bound to
// the transaction when called inside Do.
func (u *UoW) GetRepository(repoType reflect.Type) (any, error) {
	constructor, ok := u.repoRegistry[repoType]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %v", repoType)
	}
	return constructor(u.session()), nil
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UoW) AccountRepository() (account.Repository, error) {
	return get[account.Repository](u)
}

func (u *UoW) CategoryRepository() (category.Repository, error) {
	return get[category.Repository](u)
}

func (u *UoW) TransactionRepository() (transaction.Repository, error) {
	return get[transaction.Repository](u)
}

func (u *UoW) UserRepository() (user.Repository, error) {
	return get[user.Repository](u)
}

func (u *UoW) RefreshTokenRepository() (refreshtoken.Repository, error) {
	return get[refreshtoken.Repository](u)
}

func get[T any](u *UoW) (T, error) {
	var zero T
	repoAny, err := u.GetRepository(typeOf[T]())
	if err != nil {
		return zero, err
	}
	repo, ok := repoAny.(T)
	if !ok {
		return zero, fmt.Errorf("invalid repository type for %v", typeOf[T]())
	}
	return repo, nil
}

var _ repository.UnitOfWork = (*UoW)(nil)
