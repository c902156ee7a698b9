package models

import "time"

type MemberRole string

const (
	MemberRoleOwner  MemberRole = "Owner"
	MemberRoleMember MemberRole = "Member"
)

type ProjectMember struct {
	ProjectID uint64     `gorm:"primarykey" json:"project_id"`
	UserID    uint64     `gorm:"primarykey" json:"user_id"`
	Role      MemberRole `gorm:"type:varchar(30);not null" json:"role"`
	JoinedAt  time.Time  `json:"joined_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
