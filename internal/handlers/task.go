package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/todosimple/taskboard/internal/dto"
	apierrors "github.com/todosimple/taskboard/internal/errors"
	"github.com/todosimple/taskboard/internal/middleware"
	"github.com/todosimple/taskboard/internal/services"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListTasks returns the caller's visible tasks under the query filters:
// project_id, status_id, priority_id, assigned_to (me|unassigned),
// assigned_user_id, search, due (today|overdue).
func (h *TaskHandler) ListTasks(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	input := services.ListTasksInput{
		ProjectID:      queryID(c, "project_id"),
		StatusID:       queryID(c, "status_id"),
		PriorityID:     queryID(c, "priority_id"),
		AssignedTo:     c.Query("assigned_to"),
		AssignedUserID: queryID(c, "assigned_user_id"),
		Search:         c.Query("search"),
		Due:            c.Query("due"),
	}

	tasks, err := h.taskService.ListTasks(principal.UserID, input)
	if err != nil {
		log.Printf("list tasks failed: %v", err)
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": dto.ToTaskDTOs(tasks)})
}

// GetTask returns one task visible to the caller.
func (h *TaskHandler) GetTask(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	taskID, ok := paramID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID, principal.UserID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a task in a project the caller belongs to.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	type CreateTaskRequest struct {
		ProjectID      uint64  `json:"project_id" binding:"required"`
		Title          string  `json:"title" binding:"required"`
		Description    string  `json:"description"`
		StatusID       *uint64 `json:"status_id"`
		PriorityID     *uint64 `json:"priority_id"`
		DueDate        string  `json:"due_date"`
		AssignedUserID *uint64 `json:"assigned_user_id"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(principal.UserID, services.CreateTaskInput{
		ProjectID:      req.ProjectID,
		Title:          req.Title,
		Description:    req.Description,
		StatusID:       req.StatusID,
		PriorityID:     req.PriorityID,
		DueDate:        req.DueDate,
		AssignedUserID: req.AssignedUserID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask replaces a task's fields.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	taskID, ok := paramID(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title          string  `json:"title" binding:"required"`
		Description    string  `json:"description"`
		StatusID       uint64  `json:"status_id" binding:"required"`
		PriorityID     uint64  `json:"priority_id" binding:"required"`
		DueDate        string  `json:"due_date"`
		AssignedUserID *uint64 `json:"assigned_user_id"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(taskID, principal.UserID, services.UpdateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		StatusID:       req.StatusID,
		PriorityID:     req.PriorityID,
		DueDate:        req.DueDate,
		AssignedUserID: req.AssignedUserID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask soft-deletes a task; repeats report deleted=false.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	taskID, ok := paramID(c)
	if !ok {
		return
	}

	deleted, err := h.taskService.SoftDeleteTask(taskID, principal.UserID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrNotProjectMember):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTitleInvalid),
		errors.Is(err, services.ErrLookupRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		log.Printf("task operation failed: %v", err)
		apierrors.InternalError(c, "")
	}
}

// queryID parses an optional numeric query parameter; absent or
// malformed values mean "no filter".
func queryID(c *gin.Context, name string) *uint64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}
