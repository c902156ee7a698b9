package models

import "time"

type Project struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	Name        string `gorm:"type:varchar(150);not null" json:"name"`
	Description string `gorm:"type:varchar(400)" json:"description"`

	// OwnerUserID is set at creation and never changes.
	OwnerUserID uint64 `gorm:"not null" json:"owner_user_id"`

	// Active is a soft switch; archiving a project deactivates it.
	Active bool `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Owner   User            `gorm:"foreignKey:OwnerUserID" json:"owner,omitempty"`
	Members []ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
	Tasks   []Task          `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}
