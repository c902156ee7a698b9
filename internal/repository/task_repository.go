package repository

import (
	"strings"

	"github.com/todosimple/taskboard/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// taskOrder is the one ordering every listing gets: dated tasks before
// undated, earliest due first, then more urgent priority, then newest.
// The four keys make the ordering total, so no reliance on sort
// stability is needed.
const taskOrder = "CASE WHEN tasks.due_at IS NULL THEN 1 ELSE 0 END, " +
	"tasks.due_at ASC, priorities.sort_order DESC, tasks.created_at DESC"

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindForUser finds a task visible to the user: not soft-deleted and
// inside a project the user is a member of.
func (r *GormTaskRepository) FindForUser(taskID, userID uint64) (*models.Task, error) {
	var task models.Task
	err := r.scopedToMember(userID).
		Preload("Project").
		Preload("Status").
		Preload("Priority").
		Preload("AssignedUser").
		Preload("CreatedBy").
		Where("tasks.id = ?", taskID).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ListForUser retrieves the filtered listing visible to the user, in
// the deterministic task order.
func (r *GormTaskRepository) ListForUser(userID uint64, filter TaskFilter) ([]models.Task, error) {
	query := r.scopedToMember(userID).
		Joins("JOIN priorities ON priorities.id = tasks.priority_id")

	if filter.ProjectID != nil {
		query = query.Where("tasks.project_id = ?", *filter.ProjectID)
	}
	if filter.StatusID != nil {
		query = query.Where("tasks.status_id = ?", *filter.StatusID)
	}
	if filter.PriorityID != nil {
		query = query.Where("tasks.priority_id = ?", *filter.PriorityID)
	}

	if filter.Unassigned {
		query = query.Where("tasks.assigned_user_id IS NULL")
	} else if filter.AssignedUserID != nil {
		query = query.Where("tasks.assigned_user_id = ?", *filter.AssignedUserID)
	}

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			r.db.Where("LOWER(tasks.title) LIKE ?", pattern).
				Or("LOWER(tasks.description) LIKE ?", pattern),
		)
	}

	if filter.DueFrom != nil && filter.DueTo != nil {
		query = query.Where("tasks.due_at IS NOT NULL AND tasks.due_at >= ? AND tasks.due_at <= ?",
			*filter.DueFrom, *filter.DueTo)
	}
	if filter.DueBefore != nil {
		query = query.Where("tasks.due_at IS NOT NULL AND tasks.due_at < ?", *filter.DueBefore)
	}

	var tasks []models.Task
	err := query.Order(taskOrder).
		Preload("Project").
		Preload("Status").
		Preload("Priority").
		Preload("AssignedUser").
		Preload("CreatedBy").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task. Callers must have loaded the task through a
// scoped read first. Preloaded relations are not written back.
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Omit(clause.Associations).Save(task).Error
}

// SoftDelete flags the task as deleted, scoped to membership. A second
// call matches zero rows and reports false.
func (r *GormTaskRepository) SoftDelete(taskID, userID uint64) (bool, error) {
	result := r.db.Model(&models.Task{}).
		Where("id = ? AND is_deleted = ?", taskID, false).
		Where("project_id IN (?)",
			r.db.Model(&models.ProjectMember{}).
				Select("project_id").
				Where("user_id = ?", userID)).
		Update("is_deleted", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *GormTaskRepository) scopedToMember(userID uint64) *gorm.DB {
	return r.db.Model(&models.Task{}).
		Joins("JOIN project_members ON project_members.project_id = tasks.project_id AND project_members.user_id = ?", userID).
		Where("tasks.is_deleted = ?", false)
}
