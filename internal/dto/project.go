package dto

import (
	"time"

	"github.com/todosimple/taskboard/internal/models"
	"github.com/todosimple/taskboard/internal/services"
)

// ProjectDTO represents a project in API responses, including the
// requesting user's member role.
type ProjectDTO struct {
	ID          uint64            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	OwnerUserID uint64            `json:"owner_user_id"`
	MemberRole  models.MemberRole `json:"member_role,omitempty"`
}

// ProjectMemberDTO represents a member in a project
type ProjectMemberDTO struct {
	UserID   uint64            `json:"user_id"`
	Name     string            `json:"name"`
	Email    string            `json:"email"`
	Role     models.MemberRole `json:"role"`
	JoinedAt time.Time         `json:"joined_at"`
}

// ToProjectDTO converts a project with the caller's role to DTO
func ToProjectDTO(p services.ProjectWithRole) ProjectDTO {
	return ProjectDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		OwnerUserID: p.OwnerUserID,
		MemberRole:  p.MemberRole,
	}
}

// ToProjectMemberDTO converts a membership with preloaded user to DTO
func ToProjectMemberDTO(member models.ProjectMember) ProjectMemberDTO {
	return ProjectMemberDTO{
		UserID:   member.UserID,
		Name:     member.User.Name,
		Email:    member.User.Email,
		Role:     member.Role,
		JoinedAt: member.JoinedAt,
	}
}
