package dto

import "github.com/todosimple/taskboard/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Active bool   `json:"active"`
}

// UserWithRolesDTO represents a user with global roles (admin listing)
type UserWithRolesDTO struct {
	UserDTO
	Roles []string `json:"roles"`
}

// PrincipalDTO represents the authenticated identity
type PrincipalDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Active: user.Active,
	}
}

// ToUserWithRolesDTO converts a User with preloaded roles
func ToUserWithRolesDTO(user models.User) UserWithRolesDTO {
	roles := make([]string, len(user.Roles))
	for i, role := range user.Roles {
		roles[i] = role.Name
	}
	return UserWithRolesDTO{
		UserDTO: ToUserDTO(user),
		Roles:   roles,
	}
}
