// Package mocks provides testify mocks of the repository interfaces.
package mocks

import (
	"context"
	"reflect"

	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/amirasaad/fintrack/pkg/repository/account"
	"github.com/amirasaad/fintrack/pkg/repository/category"
	"github.com/amirasaad/fintrack/pkg/repository/refreshtoken"
	"github.com/amirasaad/fintrack/pkg/repository/transaction"
	"github.com/amirasaad/fintrack/pkg/repository/user"
	"github.com/stretchr/testify/mock"
)

// MockUnitOfWork is a mock of repository.UnitOfWork. Do runs fn against
// the mock itself.
type MockUnitOfWork struct {
	mock.Mock
}

// NewMockUnitOfWork creates a mock and asserts its expectations at cleanup.
func NewMockUnitOfWork(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUnitOfWork {
	m := &MockUnitOfWork{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return fn(m)
}

func (m *MockUnitOfWork) GetRepository(repoType reflect.Type) (any, error) {
	args := m.Called(repoType)
	return args.Get(0), args.Error(1)
}

func (m *MockUnitOfWork) AccountRepository() (account.Repository, error) {
	args := m.Called()
	repo, _ := args.Get(0).(account.Repository)
	return repo, args.Error(1)
}

func (m *MockUnitOfWork) CategoryRepository() (category.Repository, error) {
	args := m.Called()
	repo, _ := args.Get(0).(category.Repository)
	return repo, args.Error(1)
}

func (m *MockUnitOfWork) TransactionRepository() (transaction.Repository, error) {
	args := m.Called()
	repo, _ := args.Get(0).(transaction.Repository)
	return repo, args.Error(1)
}

func (m *MockUnitOfWork) UserRepository() (user.Repository, error) {
	args := m.Called()
	repo, _ := args.Get(0).(user.Repository)
	return repo, args.Error(1)
}

func (m *MockUnitOfWork) RefreshTokenRepository() (refreshtoken.Repository, error) {
	args := m.Called()
	repo, _ := args.Get(0).(refreshtoken.Repository)
	return repo, args.Error(1)
}

var _ repository.UnitOfWork = (*MockUnitOfWork)(nil)
