package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/todosimple/taskboard/internal/constants"
	"github.com/todosimple/taskboard/internal/models"
	"github.com/todosimple/taskboard/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken       = errors.New("email already exists")
	ErrEmailInvalid     = errors.New("email is invalid")
	ErrNameInvalid      = errors.New("name must have at least 2 characters")
	ErrPasswordTooShort = errors.New("password too short")
	ErrUserNotFound     = errors.New("user not found")
	ErrWrongPassword    = errors.New("current password is incorrect")
)

// UserService handles account administration and password management.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents the data for a new account.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	RoleName string
}

// CreateUser creates an account with a global role. The user row and
// the role assignment persist together or not at all.
func (s *UserService) CreateUser(input CreateUserInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)

	if len(name) < constants.MinUserNameLength {
		return nil, ErrNameInvalid
	}
	if !strings.Contains(email, "@") {
		return nil, ErrEmailInvalid
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	// Exact-string comparison; email is never case-folded.
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	roleName := models.RoleUser
	if input.RoleName == models.RoleAdmin {
		roleName = models.RoleAdmin
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Active:       true,
	}
	if err := s.userRepo.CreateWithRole(user, roleName); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// ListUsers returns all accounts with their global roles.
func (s *UserService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.ListUsersWithRoles()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// SetUserActive toggles an account on or off.
func (s *UserService) SetUserActive(userID uint64, active bool) error {
	if err := s.userRepo.SetActive(userID, active); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// ResetPassword sets a new password administratively, clearing any
// lockout so the account is usable immediately.
func (s *UserService) ResetPassword(userID uint64, newPassword string) error {
	if len(newPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(userID, string(hash)); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	return nil
}

// ChangePassword lets a user replace their own password after proving
// the current one.
func (s *UserService) ChangePassword(email, currentPassword, newPassword string) error {
	if len(newPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}

	return s.ResetPassword(user.ID, newPassword)
}

// EnsureAdmin guarantees the designated administrative account exists
// and carries the Admin role. Safe to run repeatedly.
func (s *UserService) EnsureAdmin(name, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.userRepo.FindByEmail(email)
	if err == nil {
		if err := s.userRepo.AssignRole(existing.ID, models.RoleAdmin); err != nil {
			return nil, fmt.Errorf("failed to assign admin role: %w", err)
		}
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	return s.CreateUser(CreateUserInput{
		Name:     name,
		Email:    email,
		Password: password,
		RoleName: models.RoleAdmin,
	})
}
