package repository

import (
	"github.com/todosimple/taskboard/internal/models"
	"gorm.io/gorm"
)

// GormLookupRepository is a GORM implementation of LookupRepository
type GormLookupRepository struct {
	db *gorm.DB
}

// NewLookupRepository creates a new LookupRepository
func NewLookupRepository(db *gorm.DB) LookupRepository {
	return &GormLookupRepository{db: db}
}

// ListStatuses lists statuses in catalog order.
func (r *GormLookupRepository) ListStatuses() ([]models.TaskStatus, error) {
	var statuses []models.TaskStatus
	if err := r.db.Order("sort_order ASC").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

// ListPriorities lists priorities in catalog order.
func (r *GormLookupRepository) ListPriorities() ([]models.Priority, error) {
	var priorities []models.Priority
	if err := r.db.Order("sort_order ASC").Find(&priorities).Error; err != nil {
		return nil, err
	}
	return priorities, nil
}

// DefaultStatusID returns the default status for new tasks.
func (r *GormLookupRepository) DefaultStatusID() (uint64, error) {
	var status models.TaskStatus
	err := r.db.Where("is_default = ?", true).
		Order("sort_order ASC").
		First(&status).Error
	if err != nil {
		return 0, err
	}
	return status.ID, nil
}

// DefaultPriorityID returns the default priority for new tasks.
func (r *GormLookupRepository) DefaultPriorityID() (uint64, error) {
	var priority models.Priority
	err := r.db.Where("is_default = ?", true).
		Order("sort_order ASC").
		First(&priority).Error
	if err != nil {
		return 0, err
	}
	return priority.ID, nil
}

// FinalStatusID returns the terminal status: the final-flagged row
// with the highest sort order.
func (r *GormLookupRepository) FinalStatusID() (uint64, error) {
	var status models.TaskStatus
	err := r.db.Where("is_final = ?", true).
		Order("sort_order DESC").
		First(&status).Error
	if err != nil {
		return 0, err
	}
	return status.ID, nil
}
