package repository

import (
	"context"
	"reflect"

	"github.com/amirasaad/fintrack/pkg/repository/account"
	"github.com/amirasaad/fintrack/pkg/repository/category"
	"github.com/amirasaad/fintrack/pkg/repository/refreshtoken"
	"github.com/amirasaad/fintrack/pkg/repository/transaction"
	"github.com/amirasaad/fintrack/pkg/repository/user"
)

// UnitOfWork defines the contract for transactional work and type-safe
// repository access.
//
// Repositories obtained from the UnitOfWork passed to Do share its
// transaction, so every write inside fn commits or rolls back together.
//
//	err := uow.Do(ctx, func(uow repository.UnitOfWork) error {
//	    repo, err := uow.AccountRepository()
//	    ...
//	})
type UnitOfWork interface {
	// Do executes fn within a transaction boundary.
	// If fn returns an error, the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// GetRepository returns a repository of the requested interface type,
	// bound to the current transaction or session.
	//   repoAny, err := uow.GetRepository(reflect.TypeOf((*account.Repository)(nil)).Elem())
	GetRepository(repoType reflect.Type) (any, error)

	// Type-safe repository access methods (convenience methods)
	AccountRepository() (account.Repository, error)
	CategoryRepository() (category.Repository, error)
	TransactionRepository() (transaction.Repository, error)
	UserRepository() (user.Repository, error)
	RefreshTokenRepository() (refreshtoken.Repository, error)
}
