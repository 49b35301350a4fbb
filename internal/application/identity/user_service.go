package identity

import (
	"context"
	"errors"

	"github.com/bistro/backend/internal/domain/identity"
	"github.com/bistro/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserAlreadyExistsMessage is returned when registration finds an existing record
const UserAlreadyExistsMessage = "User already exists"

// UserService handles user management operations
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Create registers a user on first sign-in. Calling it again for the same
// email is not an error: the stored user is returned with Created=false.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*CreateUserResult, error) {
	user, err := identity.NewUser(input.Email, input.Name)
	if err != nil {
		return nil, err
	}
	if input.PhotoURL != "" {
		if err := user.SetPhotoURL(input.PhotoURL); err != nil {
			return nil, err
		}
	}

	existing, err := s.userRepo.FindByEmail(ctx, user.Email)
	switch {
	case err == nil:
		return &CreateUserResult{User: toUserDTO(existing), Message: UserAlreadyExistsMessage}, nil
	case !errors.Is(err, shared.ErrNotFound):
		s.logger.Error("Failed to look up user", zap.String("email", user.Email), zap.Error(err))
		return nil, shared.NewPersistenceError("Failed to look up user")
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration of the same email.
		if errors.Is(err, shared.ErrAlreadyExists) {
			if existing, findErr := s.userRepo.FindByEmail(ctx, user.Email); findErr == nil {
				return &CreateUserResult{User: toUserDTO(existing), Message: UserAlreadyExistsMessage}, nil
			}
		}
		s.logger.Error("Failed to create user", zap.String("email", user.Email), zap.Error(err))
		return nil, shared.NewPersistenceError("Failed to create user")
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.String()), zap.String("email", user.Email))
	return &CreateUserResult{User: toUserDTO(user), Created: true}, nil
}

// List returns every user
func (s *UserService) List(ctx context.Context) ([]UserDTO, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, shared.NewPersistenceError("Failed to list users")
	}
	return toUserDTOs(users), nil
}

// IsAdmin reports whether email belongs to an admin. Unknown emails are not admins.
func (s *UserService) IsAdmin(ctx context.Context, email string) (*AdminCheckResult, error) {
	email = shared.NormalizeEmail(email)
	if err := shared.ValidateEmail(email); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &AdminCheckResult{Email: email}, nil
		}
		s.logger.Error("Failed to look up user", zap.String("email", email), zap.Error(err))
		return nil, shared.NewPersistenceError("Failed to look up user")
	}
	return &AdminCheckResult{Email: email, Admin: user.IsAdmin()}, nil
}

// Delete removes a user
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "User not found")
		}
		s.logger.Error("Failed to delete user", zap.String("user_id", id.String()), zap.Error(err))
		return shared.NewPersistenceError("Failed to delete user")
	}
	s.logger.Info("User deleted", zap.String("user_id", id.String()))
	return nil
}

// Promote grants the admin role
func (s *UserService) Promote(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "User not found")
		}
		s.logger.Error("Failed to find user", zap.String("user_id", id.String()), zap.Error(err))
		return nil, shared.NewPersistenceError("Failed to find user")
	}

	if err := user.Promote(); err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateRole(ctx, user.ID, user.Role); err != nil {
		s.logger.Error("Failed to promote user", zap.String("user_id", id.String()), zap.Error(err))
		return nil, shared.NewPersistenceError("Failed to promote user")
	}

	s.logger.Info("User promoted to admin", zap.String("user_id", id.String()), zap.String("email", user.Email))
	return toUserDTO(user), nil
}
