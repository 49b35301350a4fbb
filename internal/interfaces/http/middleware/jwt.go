package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/bistro/backend/internal/domain/identity"
	"github.com/bistro/backend/internal/domain/shared"
	"github.com/bistro/backend/internal/infrastructure/auth"
	"github.com/bistro/backend/internal/infrastructure/logger"
	"github.com/bistro/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Gin context keys set by the authorization gate
const (
	JWTClaimsKey  = "jwt_claims"
	JWTEmailKey   = "jwt_email"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// TokenVerifier verifies identity tokens
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RoleResolver looks up the role held by an email
type RoleResolver interface {
	ResolveRole(ctx context.Context, email string) (identity.Role, error)
}

// EmailSource extracts the email a request is about
type EmailSource func(c *gin.Context) string

// FromParam reads the email from a path parameter
func FromParam(name string) EmailSource {
	return func(c *gin.Context) string {
		return c.Param(name)
	}
}

// FromQuery reads the email from a query parameter
func FromQuery(name string) EmailSource {
	return func(c *gin.Context) string {
		return c.Query(name)
	}
}

// Authenticate rejects requests without a valid bearer token
func Authenticate(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticateRequest(c, tokens) {
			return
		}
		c.Next()
	}
}

// authenticateRequest verifies the bearer token and stores its claims on c.
// It aborts c and returns false when the token is missing or invalid.
func authenticateRequest(c *gin.Context, tokens TokenVerifier) bool {
	authHeader := c.GetHeader(AuthHeaderKey)
	if authHeader == "" {
		abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authorization header is required")
		return false
	}
	if !strings.HasPrefix(authHeader, BearerPrefix) {
		abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authorization header must use the Bearer scheme")
		return false
	}

	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerPrefix))
	if tokenString == "" {
		abortUnauthorized(c, dto.ErrCodeUnauthorized, "Token is required")
		return false
	}

	claims, err := tokens.Verify(tokenString)
	if err != nil {
		handleAuthError(c, err)
		return false
	}

	c.Set(JWTClaimsKey, claims)
	c.Set(JWTEmailKey, claims.Email)
	c.Request = c.Request.WithContext(logger.WithUserEmail(c.Request.Context(), claims.Email))
	return true
}

// RequireAdmin lets the request through only when the authenticated email holds the admin role.
// Must run after Authenticate.
func RequireAdmin(resolver RoleResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := GetJWTEmail(c)
		if email == "" {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}

		role, err := resolver.ResolveRole(c.Request.Context(), email)
		if err != nil {
			logger.GetGinLogger(c).Error("Failed to resolve role", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeInternal, "Failed to resolve role", requestIDFrom(c)))
			return
		}

		switch role {
		case identity.RoleAdmin:
			c.Next()
		case identity.RoleUser:
			abortForbidden(c, "Admin role required")
		default:
			abortForbidden(c, "Admin role required")
		}
	}
}

// RequireSelf rejects requests whose target email differs from the token email.
// Both sides are compared in normalized form. Must run after Authenticate.
func RequireSelf(source EmailSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !checkSelf(c, source) {
			return
		}
		c.Next()
	}
}

func checkSelf(c *gin.Context, source EmailSource) bool {
	target := shared.NormalizeEmail(source(c))
	if target == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			dto.NewErrorResponseWithRequestID(dto.ErrCodeValidationRequired, "email is required", requestIDFrom(c)))
		return false
	}
	if target != shared.NormalizeEmail(GetJWTEmail(c)) {
		abortForbidden(c, "Access to another user's data is not allowed")
		return false
	}
	return true
}

// SelfWhenQueried applies Authenticate and RequireSelf only when the query
// carries the named parameter; other requests pass through untouched.
func SelfWhenQueried(tokens TokenVerifier, param string) gin.HandlerFunc {
	source := FromQuery(param)
	return func(c *gin.Context) {
		if strings.TrimSpace(c.Query(param)) == "" {
			c.Next()
			return
		}
		if !authenticateRequest(c, tokens) || !checkSelf(c, source) {
			return
		}
		c.Next()
	}
}

func handleAuthError(c *gin.Context, err error) {
	code := dto.ErrCodeTokenInvalid
	message := "Invalid token"

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code = dto.ErrCodeTokenExpired
		message = "Token has expired"
	case errors.Is(err, auth.ErrTokenNotYetValid):
		message = "Token is not yet valid"
	case errors.Is(err, auth.ErrMissingEmail), errors.Is(err, auth.ErrInvalidClaims):
		message = "Token claims are invalid"
	}

	abortUnauthorized(c, code, message)
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, requestIDFrom(c)))
}

func abortForbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, message, requestIDFrom(c)))
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTEmail retrieves the authenticated email, or "" on public routes
func GetJWTEmail(c *gin.Context) string {
	return c.GetString(JWTEmailKey)
}
