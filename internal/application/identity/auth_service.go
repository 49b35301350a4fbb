package identity

import (
	"context"
	"errors"

	"github.com/bistro/backend/internal/domain/identity"
	"github.com/bistro/backend/internal/domain/shared"
	"github.com/bistro/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// TokenIssuer signs identity tokens
type TokenIssuer interface {
	Issue(input auth.IssueInput) (*auth.IssuedToken, error)
}

// AuthService issues identity tokens and resolves roles for the authorization gate
type AuthService struct {
	tokens   TokenIssuer
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(tokens TokenIssuer, userRepo identity.UserRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		tokens:   tokens,
		userRepo: userRepo,
		logger:   logger,
	}
}

// IssueToken signs a token for the given email. No store access.
func (s *AuthService) IssueToken(_ context.Context, input IssueTokenInput) (*TokenResult, error) {
	email := shared.NormalizeEmail(input.Email)
	if err := shared.ValidateEmail(email); err != nil {
		return nil, err
	}

	issued, err := s.tokens.Issue(auth.IssueInput{Email: email, Name: input.Name})
	if err != nil {
		s.logger.Error("Failed to sign identity token", zap.String("email", email), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to issue token")
	}

	return &TokenResult{
		Token:     issued.Token,
		TokenType: issued.TokenType,
		ExpiresAt: issued.ExpiresAt,
	}, nil
}

// ResolveRole returns the role stored for email. An email with no user
// record holds the default role. Store failures surface as persistence errors.
func (s *AuthService) ResolveRole(ctx context.Context, email string) (identity.Role, error) {
	user, err := s.userRepo.FindByEmail(ctx, shared.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return identity.RoleUser, nil
		}
		s.logger.Error("Failed to resolve role", zap.String("email", email), zap.Error(err))
		return "", shared.NewPersistenceError("Failed to resolve role")
	}
	return user.Role, nil
}
