package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/todosimple/taskboard/internal/dto"
	apierrors "github.com/todosimple/taskboard/internal/errors"
	"github.com/todosimple/taskboard/internal/services"
)

// AdminHandler serves account administration. Routes using it must sit
// behind the admin-only middleware.
type AdminHandler struct {
	userService *services.UserService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(userService *services.UserService) *AdminHandler {
	return &AdminHandler{userService: userService}
}

// ListUsers returns all accounts with their global roles.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		log.Printf("list users failed: %v", err)
		apierrors.InternalError(c, "")
		return
	}

	dtos := make([]dto.UserWithRolesDTO, len(users))
	for i, u := range users {
		dtos[i] = dto.ToUserWithRolesDTO(u)
	}
	c.JSON(http.StatusOK, gin.H{"users": dtos})
}

// CreateUser creates a new account with a global role.
func (h *AdminHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Name, email and password are required")
		return
	}

	user, err := h.userService.CreateUser(services.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		RoleName: req.Role,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// SetUserActive enables or disables an account.
func (h *AdminHandler) SetUserActive(c *gin.Context) {
	userID, ok := paramID(c)
	if !ok {
		return
	}

	type SetActiveRequest struct {
		Active *bool `json:"active" binding:"required"`
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Active flag is required")
		return
	}

	if err := h.userService.SetUserActive(userID, *req.Active); err != nil {
		log.Printf("set user active failed: %v", err)
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated"})
}

// ResetPassword sets a new password for an account and clears any
// login lockout.
func (h *AdminHandler) ResetPassword(c *gin.Context) {
	userID, ok := paramID(c)
	if !ok {
		return
	}

	type ResetPasswordRequest struct {
		Password string `json:"password" binding:"required"`
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Password is required")
		return
	}

	if err := h.userService.ResetPassword(userID, req.Password); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset"})
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrEmailInvalid),
		errors.Is(err, services.ErrNameInvalid),
		errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrWrongPassword):
		apierrors.BadRequest(c, err.Error())
	default:
		log.Printf("user operation failed: %v", err)
		apierrors.InternalError(c, "")
	}
}
