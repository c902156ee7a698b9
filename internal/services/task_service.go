package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/todosimple/taskboard/internal/clock"
	"github.com/todosimple/taskboard/internal/constants"
	"github.com/todosimple/taskboard/internal/models"
	"github.com/todosimple/taskboard/internal/repository"
	"gorm.io/gorm"
)

// Assignment filter modes; mutually exclusive with a specific user id.
const (
	AssignedToMe         = "me"
	AssignedToUnassigned = "unassigned"
)

// Due bucket modes; mutually exclusive.
const (
	DueToday   = "today"
	DueOverdue = "overdue"
)

var (
	// ErrTaskNotFound also covers tasks in projects the caller does
	// not belong to; they are indistinguishable from missing tasks.
	ErrTaskNotFound     = errors.New("task not found")
	ErrNotProjectMember = errors.New("not a member of this project")
	ErrTitleInvalid     = errors.New("title must have at least 2 characters")
	ErrLookupRequired   = errors.New("status and priority are required")
)

// TaskService builds scoped, filtered, deterministically ordered task
// listings and enforces membership on every read and write.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	lookupRepo  repository.LookupRepository
	loc         *time.Location
}

// NewTaskService creates a new TaskService. loc is the application
// timezone used for calendar-date boundaries.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, lookupRepo repository.LookupRepository, loc *time.Location) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		lookupRepo:  lookupRepo,
		loc:         loc,
	}
}

// ListTasksInput holds the optional, conjunctive listing filters.
type ListTasksInput struct {
	ProjectID  *uint64
	StatusID   *uint64
	PriorityID *uint64

	// AssignedTo is "me", "unassigned", or empty; AssignedUserID
	// filters on a specific user when AssignedTo is empty.
	AssignedTo     string
	AssignedUserID *uint64

	Search string

	// Due is "today", "overdue", or empty.
	Due string
}

// ListTasks returns the tasks visible to the user under the filters,
// in due-date order (see repository.TaskRepository).
func (s *TaskService) ListTasks(userID uint64, input ListTasksInput) ([]models.Task, error) {
	filter := repository.TaskFilter{
		ProjectID:  input.ProjectID,
		StatusID:   input.StatusID,
		PriorityID: input.PriorityID,
		Search:     strings.TrimSpace(input.Search),
	}

	switch input.AssignedTo {
	case AssignedToMe:
		filter.AssignedUserID = &userID
	case AssignedToUnassigned:
		filter.Unassigned = true
	default:
		filter.AssignedUserID = input.AssignedUserID
	}

	switch input.Due {
	case DueToday:
		// Both bounds computed once per request.
		start, end := clock.TodayWindowUTC(s.loc)
		filter.DueFrom = &start
		filter.DueTo = &end
	case DueOverdue:
		now := clock.NowUTC()
		filter.DueBefore = &now
	}

	tasks, err := s.taskRepo.ListForUser(userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a task visible to the user.
func (s *TaskService) GetTask(taskID, userID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindForUser(taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTaskInput represents input for creating a task. DueDate is a
// YYYY-MM-DD calendar date in the application timezone.
type CreateTaskInput struct {
	ProjectID   uint64
	Title       string
	Description string
	StatusID    *uint64
	PriorityID  *uint64
	DueDate     string
	// Assignee membership is not checked here.
	AssignedUserID *uint64
}

// CreateTask creates a task in a project the user belongs to.
func (s *TaskService) CreateTask(userID uint64, input CreateTaskInput) (*models.Task, error) {
	if _, err := s.projectRepo.FindMember(input.ProjectID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotProjectMember
		}
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	title := strings.TrimSpace(input.Title)
	if len(title) < constants.MinTitleLength {
		return nil, ErrTitleInvalid
	}

	statusID, priorityID, err := s.resolveLookups(input.StatusID, input.PriorityID)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		ProjectID:       input.ProjectID,
		Title:           title,
		Description:     strings.TrimSpace(input.Description),
		StatusID:        statusID,
		PriorityID:      priorityID,
		DueAt:           clock.EndOfDayUTC(input.DueDate, s.loc),
		AssignedUserID:  input.AssignedUserID,
		CreatedByUserID: userID,
	}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindForUser(task.ID, userID)
}

// UpdateTaskInput carries the full replacement state for a task.
type UpdateTaskInput struct {
	Title          string
	Description    string
	StatusID       uint64
	PriorityID     uint64
	DueDate        string
	AssignedUserID *uint64
}

// UpdateTask replaces a task's fields, membership-scoped. Moving into
// the terminal status stamps the completion instant; moving anywhere
// else clears it, so reopening un-completes the task.
func (s *TaskService) UpdateTask(taskID, userID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(taskID, userID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if len(title) < constants.MinTitleLength {
		return nil, ErrTitleInvalid
	}
	if input.StatusID == 0 || input.PriorityID == 0 {
		return nil, ErrLookupRequired
	}

	finalID, err := s.lookupRepo.FinalStatusID()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve terminal status: %w", err)
	}

	task.Title = title
	task.Description = strings.TrimSpace(input.Description)
	task.StatusID = input.StatusID
	task.PriorityID = input.PriorityID
	task.DueAt = clock.EndOfDayUTC(input.DueDate, s.loc)
	task.AssignedUserID = input.AssignedUserID

	if input.StatusID == finalID {
		now := clock.NowUTC()
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindForUser(task.ID, userID)
}

// SoftDeleteTask flags a task deleted. Deleting an already-deleted
// task reports false without erroring.
func (s *TaskService) SoftDeleteTask(taskID, userID uint64) (bool, error) {
	deleted, err := s.taskRepo.SoftDelete(taskID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}
	return deleted, nil
}

func (s *TaskService) resolveLookups(statusID, priorityID *uint64) (uint64, uint64, error) {
	var status, priority uint64
	var err error

	if statusID != nil {
		status = *statusID
	} else if status, err = s.lookupRepo.DefaultStatusID(); err != nil {
		return 0, 0, fmt.Errorf("failed to resolve default status: %w", err)
	}

	if priorityID != nil {
		priority = *priorityID
	} else if priority, err = s.lookupRepo.DefaultPriorityID(); err != nil {
		return 0, 0, fmt.Errorf("failed to resolve default priority: %w", err)
	}

	return status, priority, nil
}
