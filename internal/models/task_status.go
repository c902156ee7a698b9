package models

// TaskStatus is an ordered lookup row. Exactly one row is flagged as
// the default for new tasks; the terminal status is the final-flagged
// row with the highest sort order.
type TaskStatus struct {
	ID        uint64 `gorm:"primarykey" json:"id"`
	Name      string `gorm:"type:varchar(50);not null" json:"name"`
	SortOrder int    `gorm:"not null" json:"sort_order"`
	IsFinal   bool   `gorm:"not null" json:"is_final"`
	IsDefault bool   `gorm:"not null" json:"is_default"`
}
