package user_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/amirasaad/fintrack/internal/fixtures/mocks"
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	usersvc "github.com/amirasaad/fintrack/pkg/service/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserServiceWithMocks(t *testing.T) (*usersvc.Service, *mocks.MockUserRepository) {
	userRepo := mocks.NewMockUserRepository(t)
	uow := mocks.NewMockUnitOfWork(t)
	uow.On("UserRepository").Return(userRepo, nil).Maybe()
	return usersvc.New(uow, slog.Default()), userRepo
}

func TestGetUser(t *testing.T) {
	t.Parallel()
	svc, repo := newUserServiceWithMocks(t)
	id := uuid.New()
	repo.On("Get", mock.Anything, id).Return(&dto.UserRead{ID: id, Name: "Alice"}, nil)

	u, err := svc.GetUser(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)
}

func TestGetUser_NotFound(t *testing.T) {
	t.Parallel()
	svc, repo := newUserServiceWithMocks(t)
	id := uuid.New()
	repo.On("Get", mock.Anything, id).Return(nil, domain.ErrUserNotFound)

	u, err := svc.GetUser(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Nil(t, u)
}

func TestUpdateName(t *testing.T) {
	t.Parallel()
	svc, repo := newUserServiceWithMocks(t)
	id := uuid.New()
	name := "Bob"
	repo.On("Update", mock.Anything, id, dto.UserUpdate{Name: &name}).Return(nil)
	repo.On("Get", mock.Anything, id).Return(&dto.UserRead{ID: id, Name: name}, nil)

	u, err := svc.UpdateName(context.Background(), id, "  Bob ")
	require.NoError(t, err)
	assert.Equal(t, "Bob", u.Name)
}

func TestUpdateName_Invalid(t *testing.T) {
	t.Parallel()
	svc, _ := newUserServiceWithMocks(t)

	_, err := svc.UpdateName(context.Background(), uuid.New(), "   ")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestUpdateName_RepoError(t *testing.T) {
	t.Parallel()
	svc, repo := newUserServiceWithMocks(t)
	id := uuid.New()
	repo.On("Update", mock.Anything, id, mock.Anything).Return(errors.New("db down"))

	u, err := svc.UpdateName(context.Background(), id, "Carol")
	require.Error(t, err)
	assert.Nil(t, u)
}
