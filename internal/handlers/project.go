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

// ProjectHandler coordinates project and membership HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// ListProjects returns the caller's active projects.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	projects, err := h.projectService.ListProjectsForUser(principal.UserID)
	if err != nil {
		log.Printf("list projects failed: %v", err)
		apierrors.InternalError(c, "")
		return
	}

	dtos := make([]dto.ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = dto.ToProjectDTO(p)
	}
	c.JSON(http.StatusOK, gin.H{"projects": dtos})
}

// CreateProject creates a project owned by the caller.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	type CreateProjectRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(req.Name, req.Description, principal)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// GetProject returns one project if the caller is a member.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	projectID, ok := paramID(c)
	if !ok {
		return
	}

	project, err := h.projectService.GetProjectForUser(projectID, principal.UserID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// UpdateProject renames a project (owner or admin only).
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	projectID, ok := paramID(c)
	if !ok {
		return
	}

	type UpdateProjectRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.UpdateProject(projectID, req.Name, req.Description, principal)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// ArchiveProject deactivates a project (owner or admin only).
func (h *ProjectHandler) ArchiveProject(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	projectID, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.projectService.ArchiveProject(projectID, principal); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project archived"})
}

// ListMembers lists a project's members.
func (h *ProjectHandler) ListMembers(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	projectID, ok := paramID(c)
	if !ok {
		return
	}

	members, err := h.projectService.ListMembers(projectID, principal.UserID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	dtos := make([]dto.ProjectMemberDTO, len(members))
	for i, m := range members {
		dtos[i] = dto.ToProjectMemberDTO(m)
	}
	c.JSON(http.StatusOK, gin.H{"members": dtos})
}

// AddMember adds a user to the project by email (owner or admin only).
func (h *ProjectHandler) AddMember(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	projectID, ok := paramID(c)
	if !ok {
		return
	}

	type AddMemberRequest struct {
		Email string `json:"email" binding:"required"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Email is required")
		return
	}

	if err := h.projectService.AddMemberByEmail(projectID, req.Email, principal); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member added"})
}

// RemoveMember removes a membership (owner or admin only). Removing
// the owner reports removed=false rather than failing.
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	projectID, ok := paramID(c)
	if !ok {
		return
	}

	targetID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	removed, err := h.projectService.RemoveMember(projectID, targetID, principal)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrNotProjectManager):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrProjectNameInvalid):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrMemberNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrMemberDisabled):
		apierrors.BadRequest(c, err.Error())
	default:
		log.Printf("project operation failed: %v", err)
		apierrors.InternalError(c, "")
	}
}

// paramID parses the :id route parameter, responding 400 on garbage.
func paramID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid ID")
		return 0, false
	}
	return id, true
}
