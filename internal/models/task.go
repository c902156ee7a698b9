package models

import "time"

type Task struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	ProjectID   uint64 `gorm:"not null;index" json:"project_id"`
	Title       string `gorm:"type:varchar(200);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	StatusID   uint64 `gorm:"not null" json:"status_id"`
	PriorityID uint64 `gorm:"not null" json:"priority_id"`

	// DueAt is the UTC end-of-day instant of the task's local due date.
	DueAt *time.Time `gorm:"index" json:"due_at"`

	// AssignedUserID is not validated against project membership.
	AssignedUserID  *uint64 `json:"assigned_user_id"`
	CreatedByUserID uint64  `gorm:"not null" json:"created_by_user_id"`

	// IsDeleted hides the task from every read; rows are never purged.
	IsDeleted bool `gorm:"not null;index" json:"-"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at"`

	// Relations
	Project      Project    `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Status       TaskStatus `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	Priority     Priority   `gorm:"foreignKey:PriorityID" json:"priority,omitempty"`
	AssignedUser *User      `gorm:"foreignKey:AssignedUserID" json:"assigned_user,omitempty"`
	CreatedBy    User       `gorm:"foreignKey:CreatedByUserID" json:"created_by,omitempty"`
}
