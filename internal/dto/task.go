package dto

import (
	"time"

	"github.com/todosimple/taskboard/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           uint64     `json:"id"`
	ProjectID    uint64     `json:"project_id"`
	ProjectName  string     `json:"project_name,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	StatusID     uint64     `json:"status_id"`
	StatusName   string     `json:"status_name,omitempty"`
	IsFinal      bool       `json:"is_final"`
	PriorityID   uint64     `json:"priority_id"`
	PriorityName string     `json:"priority_name,omitempty"`
	DueAt        *time.Time `json:"due_at"`

	AssignedUserID *uint64 `json:"assigned_user_id"`
	AssignedName   string  `json:"assigned_name,omitempty"`

	CreatedByUserID uint64     `json:"created_by_user_id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	CompletedAt     *time.Time `json:"completed_at"`
}

// ToTaskDTO converts a Task model with preloaded relations to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:              task.ID,
		ProjectID:       task.ProjectID,
		Title:           task.Title,
		Description:     task.Description,
		StatusID:        task.StatusID,
		PriorityID:      task.PriorityID,
		DueAt:           task.DueAt,
		AssignedUserID:  task.AssignedUserID,
		CreatedByUserID: task.CreatedByUserID,
		CreatedAt:       task.CreatedAt,
		UpdatedAt:       task.UpdatedAt,
		CompletedAt:     task.CompletedAt,
	}

	if task.Project.ID != 0 {
		dto.ProjectName = task.Project.Name
	}
	if task.Status.ID != 0 {
		dto.StatusName = task.Status.Name
		dto.IsFinal = task.Status.IsFinal
	}
	if task.Priority.ID != 0 {
		dto.PriorityName = task.Priority.Name
	}
	if task.AssignedUser != nil {
		dto.AssignedName = task.AssignedUser.Name
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks, preserving order.
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
