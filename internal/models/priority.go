package models

// Priority is an ordered lookup row; a higher sort order means a more
// urgent task.
type Priority struct {
	ID        uint64 `gorm:"primarykey" json:"id"`
	Name      string `gorm:"type:varchar(50);not null" json:"name"`
	SortOrder int    `gorm:"not null" json:"sort_order"`
	IsDefault bool   `gorm:"not null" json:"is_default"`
}
