package handler

import (
	"net/http"

	identityapp "github.com/bistro/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// IdentityHandler issues identity tokens and manages the user directory
type IdentityHandler struct {
	BaseHandler
	authService *identityapp.AuthService
	userService *identityapp.UserService
}

// NewIdentityHandler creates a new IdentityHandler
func NewIdentityHandler(authService *identityapp.AuthService, userService *identityapp.UserService) *IdentityHandler {
	return &IdentityHandler{
		authService: authService,
		userService: userService,
	}
}

// IssueTokenRequest is the body of POST /identity-token
type IssueTokenRequest struct {
	Email string `json:"email" binding:"required,email,max=200"`
	Name  string `json:"name" binding:"max=200"`
}

// CreateUserRequest is the body of POST /users
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email,max=200"`
	Name     string `json:"name" binding:"max=200"`
	PhotoURL string `json:"photo_url" binding:"omitempty,url,max=1000"`
}

// IssueToken handles POST /identity-token
func (h *IdentityHandler) IssueToken(c *gin.Context) {
	var req IssueTokenRequest
	if !h.bindJSON(c, &req) {
		return
	}

	token, err := h.authService.IssueToken(c.Request.Context(), identityapp.IssueTokenInput{
		Email: req.Email,
		Name:  req.Name,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, token)
}

// CreateUser handles POST /users. Registering an existing email is not an error.
func (h *IdentityHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.userService.Create(c.Request.Context(), identityapp.CreateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if !result.Created {
		h.Success(c, result)
		return
	}
	c.Header("Location", "/api/v1/users/"+result.User.ID.String())
	h.Created(c, result)
}

// ListUsers handles GET /users
func (h *IdentityHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, users)
}

// AdminCheck handles GET /users/admin-check?email=
func (h *IdentityHandler) AdminCheck(c *gin.Context) {
	result, err := h.userService.IsAdmin(c.Request.Context(), c.Query("email"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// DeleteUser handles DELETE /users/:id
func (h *IdentityHandler) DeleteUser(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PromoteUser handles PATCH /users/:id/promote
func (h *IdentityHandler) PromoteUser(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.Promote(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}
