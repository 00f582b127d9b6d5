package mocks

import (
	"context"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository/account"
	"github.com/amirasaad/fintrack/pkg/repository/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock of user.Repository.
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository creates a mock and asserts its expectations at cleanup.
func NewMockUserRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUserRepository) Create(ctx context.Context, create dto.UserCreate) error {
	return m.Called(ctx, create).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, id uuid.UUID, update dto.UserUpdate) error {
	return m.Called(ctx, id, update).Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*dto.UserRead)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*dto.UserRead, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*dto.UserRead)
	return u, args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockAccountRepository is a mock of account.Repository.
type MockAccountRepository struct {
	mock.Mock
}

// NewMockAccountRepository creates a mock and asserts its expectations at cleanup.
func NewMockAccountRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAccountRepository) Create(ctx context.Context, create dto.AccountCreate) error {
	return m.Called(ctx, create).Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, id, userID uuid.UUID, update dto.AccountUpdate) error {
	return m.Called(ctx, id, userID, update).Error(0)
}

func (m *MockAccountRepository) Get(ctx context.Context, id, userID uuid.UUID) (*dto.AccountRead, error) {
	args := m.Called(ctx, id, userID)
	a, _ := args.Get(0).(*dto.AccountRead)
	return a, args.Error(1)
}

func (m *MockAccountRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.AccountRead, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]*dto.AccountRead)
	return list, args.Error(1)
}

func (m *MockAccountRepository) AdjustBalance(ctx context.Context, id uuid.UUID, delta int64) error {
	return m.Called(ctx, id, delta).Error(0)
}

var (
	_ user.Repository    = (*MockUserRepository)(nil)
	_ account.Repository = (*MockAccountRepository)(nil)
)
