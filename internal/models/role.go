package models

// Global role names. These are application-wide, not per-project;
// project-level rights come from ProjectMember.Role.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

type Role struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
}

// UserRole joins users to their global roles.
type UserRole struct {
	UserID uint64 `gorm:"primarykey" json:"user_id"`
	RoleID uint64 `gorm:"primarykey" json:"role_id"`
}
