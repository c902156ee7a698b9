package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/todosimple/taskboard/internal/constants"
	"github.com/todosimple/taskboard/internal/dto"
	apierrors "github.com/todosimple/taskboard/internal/errors"
	"github.com/todosimple/taskboard/internal/middleware"
	"github.com/todosimple/taskboard/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates the credentials and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Email and password are required")
		return
	}

	principal, err := h.authService.Authenticate(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			apierrors.InvalidCredentials(c)
		case errors.Is(err, services.ErrAccountDisabled):
			apierrors.AccountDisabled(c)
		case errors.Is(err, services.ErrAccountLocked):
			apierrors.AccountLocked(c)
		default:
			log.Printf("login failed: %v", err)
			apierrors.InternalError(c, "")
		}
		return
	}

	session := sessions.Default(c)
	session.Set(constants.SessionKeyUserID, principal.UserID)
	session.Set(constants.SessionKeyName, principal.Name)
	session.Set(constants.SessionKeyEmail, principal.Email)
	session.Set(constants.SessionKeyRole, principal.Role)
	if err := session.Save(); err != nil {
		log.Printf("failed to save session: %v", err)
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.PrincipalDTO{
		ID:    principal.UserID,
		Name:  principal.Name,
		Email: principal.Email,
		Role:  principal.Role,
	})
}

// Logout invalidates the server-side session immediately.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me returns the authenticated principal.
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.PrincipalDTO{
		ID:    principal.UserID,
		Name:  principal.Name,
		Email: principal.Email,
		Role:  principal.Role,
	})
}
