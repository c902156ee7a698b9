package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/todosimple/taskboard/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrRoleNotFound is returned when a role name has no catalog row.
	ErrRoleNotFound = errors.New("user repository: role not found")
	// ErrCreateUser is returned when the user insert fails inside the creation transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// FindByEmail finds a user by exact email. No normalization happens
// here; uniqueness and comparison are both verbatim-string.
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateWithRole creates the user and assigns the global role atomically.
func (r *GormUserRepository) CreateWithRole(user *models.User, roleName string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.Where("name = ?", roleName).First(&role).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrRoleNotFound, roleName)
			}
			return err
		}

		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		return tx.Create(&models.UserRole{UserID: user.ID, RoleID: role.ID}).Error
	})
}

// AssignRole grants a role to the user; assigning a held role is a no-op.
func (r *GormUserRepository) AssignRole(userID uint64, roleName string) error {
	var role models.Role
	if err := r.db.Where("name = ?", roleName).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrRoleNotFound, roleName)
		}
		return err
	}

	userRole := models.UserRole{UserID: userID, RoleID: role.ID}
	return r.db.Where("user_id = ? AND role_id = ?", userID, role.ID).
		FirstOrCreate(&userRole).Error
}

// ListRoleNames lists the names of the user's global roles.
func (r *GormUserRepository) ListRoleNames(userID uint64) ([]string, error) {
	var names []string
	err := r.db.Model(&models.Role{}).
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Pluck("roles.name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// ListUsersWithRoles lists all users, roles preloaded, ordered by name.
func (r *GormUserRepository) ListUsersWithRoles() ([]models.User, error) {
	var users []models.User
	if err := r.db.Preload("Roles").Order("name ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// RecordLoginFailure persists the failure counter and optional lock.
// Concurrent failures race on the counter; last write wins.
func (r *GormUserRepository) RecordLoginFailure(userID uint64, attempts int, lockedUntil *time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"failed_attempts": attempts,
			"locked_until":    lockedUntil,
		}).Error
}

// ClearLoginFailures resets the counter and removes any lock.
func (r *GormUserRepository) ClearLoginFailures(userID uint64) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"failed_attempts": 0,
			"locked_until":    nil,
		}).Error
}

// UpdatePassword replaces the hash and clears lockout state so a reset
// account can log in immediately.
func (r *GormUserRepository) UpdatePassword(userID uint64, passwordHash string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hash":   passwordHash,
			"failed_attempts": 0,
			"locked_until":    nil,
		}).Error
}

// SetActive toggles the account's active flag.
func (r *GormUserRepository) SetActive(userID uint64, active bool) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("active", active).Error
}
