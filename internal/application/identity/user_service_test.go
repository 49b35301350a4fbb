package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/bistro/backend/internal/domain/identity"
	"github.com/bistro/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUser(t *testing.T, email string) *identity.User {
	t.Helper()
	u, err := identity.NewUser(email, "Guest")
	require.NoError(t, err)
	return u
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("new email is stored", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", ctx, "ann@example.com").Return(nil, shared.ErrNotFound)
		repo.On("Create", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		svc := NewUserService(repo, zap.NewNop())
		result, err := svc.Create(ctx, CreateUserInput{Email: " Ann@Example.com ", Name: "Ann"})

		require.NoError(t, err)
		assert.True(t, result.Created)
		assert.Equal(t, "ann@example.com", result.User.Email)
		assert.Equal(t, "user", result.User.Role)
		repo.AssertExpectations(t)
	})

	t.Run("existing email is not an error", func(t *testing.T) {
		existing := newUser(t, "ann@example.com")
		repo := new(MockUserRepository)
		repo.On("FindByEmail", ctx, "ann@example.com").Return(existing, nil)

		svc := NewUserService(repo, zap.NewNop())
		result, err := svc.Create(ctx, CreateUserInput{Email: "ann@example.com"})

		require.NoError(t, err)
		assert.False(t, result.Created)
		assert.Equal(t, UserAlreadyExistsMessage, result.Message)
		assert.Equal(t, existing.ID, result.User.ID)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("concurrent insert resolves to existing", func(t *testing.T) {
		existing := newUser(t, "ann@example.com")
		repo := new(MockUserRepository)
		repo.On("FindByEmail", ctx, "ann@example.com").Return(nil, shared.ErrNotFound).Once()
		repo.On("Create", ctx, mock.Anything).Return(shared.ErrAlreadyExists)
		repo.On("FindByEmail", ctx, "ann@example.com").Return(existing, nil).Once()

		svc := NewUserService(repo, zap.NewNop())
		result, err := svc.Create(ctx, CreateUserInput{Email: "ann@example.com"})

		require.NoError(t, err)
		assert.False(t, result.Created)
	})

	t.Run("invalid email", func(t *testing.T) {
		svc := NewUserService(new(MockUserRepository), zap.NewNop())
		_, err := svc.Create(ctx, CreateUserInput{Email: "not-an-email"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_EMAIL", domainErr.Code)
	})

	t.Run("lookup failure", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", ctx, "ann@example.com").Return(nil, errors.New("connection refused"))

		svc := NewUserService(repo, zap.NewNop())
		_, err := svc.Create(ctx, CreateUserInput{Email: "ann@example.com"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	})
}

func TestUserService_IsAdmin(t *testing.T) {
	ctx := context.Background()
	admin := newUser(t, "chef@example.com")
	require.NoError(t, admin.Promote())

	repo := new(MockUserRepository)
	repo.On("FindByEmail", ctx, "chef@example.com").Return(admin, nil)
	repo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, shared.ErrNotFound)
	svc := NewUserService(repo, zap.NewNop())

	result, err := svc.IsAdmin(ctx, "Chef@example.com")
	require.NoError(t, err)
	assert.True(t, result.Admin)

	result, err = svc.IsAdmin(ctx, "ghost@example.com")
	require.NoError(t, err)
	assert.False(t, result.Admin)
}

func TestUserService_Promote(t *testing.T) {
	ctx := context.Background()

	t.Run("user becomes admin", func(t *testing.T) {
		u := newUser(t, "ann@example.com")
		repo := new(MockUserRepository)
		repo.On("FindByID", ctx, u.ID).Return(u, nil)
		repo.On("UpdateRole", ctx, u.ID, identity.RoleAdmin).Return(nil)

		svc := NewUserService(repo, zap.NewNop())
		dto, err := svc.Promote(ctx, u.ID)

		require.NoError(t, err)
		assert.Equal(t, "admin", dto.Role)
		repo.AssertExpectations(t)
	})

	t.Run("already admin", func(t *testing.T) {
		u := newUser(t, "ann@example.com")
		require.NoError(t, u.Promote())
		repo := new(MockUserRepository)
		repo.On("FindByID", ctx, u.ID).Return(u, nil)

		svc := NewUserService(repo, zap.NewNop())
		_, err := svc.Promote(ctx, u.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_ADMIN", domainErr.Code)
		repo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing user", func(t *testing.T) {
		u := newUser(t, "ann@example.com")
		repo := new(MockUserRepository)
		repo.On("FindByID", ctx, u.ID).Return(nil, shared.ErrNotFound)

		svc := NewUserService(repo, zap.NewNop())
		_, err := svc.Promote(ctx, u.ID)
		assert.True(t, shared.IsNotFound(err))
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	u := newUser(t, "ann@example.com")

	repo := new(MockUserRepository)
	repo.On("Delete", ctx, u.ID).Return(shared.ErrNotFound)
	svc := NewUserService(repo, zap.NewNop())

	err := svc.Delete(ctx, u.ID)
	assert.True(t, shared.IsNotFound(err))
}
