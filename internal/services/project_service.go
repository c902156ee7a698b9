package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/todosimple/taskboard/internal/clock"
	"github.com/todosimple/taskboard/internal/constants"
	"github.com/todosimple/taskboard/internal/models"
	"github.com/todosimple/taskboard/internal/repository"
	"gorm.io/gorm"
)

var (
	// ErrProjectNotFound is returned both when a project does not
	// exist and when the caller lacks a membership, so unauthorized
	// callers cannot probe for existence.
	ErrProjectNotFound    = errors.New("project not found")
	ErrProjectNameInvalid = errors.New("project name must have at least 2 characters")
	ErrNotProjectManager  = errors.New("only the project owner or an admin can perform this action")
	ErrMemberNotFound     = errors.New("user not found")
	ErrMemberDisabled     = errors.New("user is disabled")
)

// ProjectWithRole pairs a project with the caller's member role.
type ProjectWithRole struct {
	models.Project
	MemberRole models.MemberRole `json:"member_role"`
}

// ProjectService answers membership questions and manages projects.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// ListProjectsForUser returns the caller's active projects with roles.
func (s *ProjectService) ListProjectsForUser(userID uint64) ([]ProjectWithRole, error) {
	memberships, err := s.projectRepo.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]ProjectWithRole, 0, len(memberships))
	for _, m := range memberships {
		projects = append(projects, ProjectWithRole{Project: m.Project, MemberRole: m.Role})
	}
	return projects, nil
}

// CreateProject creates a project owned by the principal. The project
// row and the Owner membership are written atomically.
func (s *ProjectService) CreateProject(name, description string, owner Principal) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if len(name) < constants.MinProjectNameLength {
		return nil, ErrProjectNameInvalid
	}

	project := &models.Project{
		Name:        name,
		Description: strings.TrimSpace(description),
		OwnerUserID: owner.UserID,
		Active:      true,
	}
	if err := s.projectRepo.CreateWithOwner(project, owner.UserID); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// GetProjectForUser returns the project with the caller's role, or
// ErrProjectNotFound when there is no membership or the project is
// inactive.
func (s *ProjectService) GetProjectForUser(projectID, userID uint64) (*ProjectWithRole, error) {
	project, member, err := s.projectRepo.FindForUser(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return &ProjectWithRole{Project: *project, MemberRole: member.Role}, nil
}

// CanManage reports whether the principal may edit or archive the
// project and manage its members.
func (s *ProjectService) CanManage(p Principal, project *models.Project) bool {
	return p.IsAdmin() || p.UserID == project.OwnerUserID
}

// UpdateProject renames a project; the owner reference never changes.
func (s *ProjectService) UpdateProject(projectID uint64, name, description string, actor Principal) (*models.Project, error) {
	found, err := s.GetProjectForUser(projectID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if !s.CanManage(actor, &found.Project) {
		return nil, ErrNotProjectManager
	}

	name = strings.TrimSpace(name)
	if len(name) < constants.MinProjectNameLength {
		return nil, ErrProjectNameInvalid
	}

	project := found.Project
	project.Name = name
	project.Description = strings.TrimSpace(description)
	if err := s.projectRepo.Update(&project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return &project, nil
}

// ArchiveProject deactivates a project; nothing is deleted.
func (s *ProjectService) ArchiveProject(projectID uint64, actor Principal) error {
	found, err := s.GetProjectForUser(projectID, actor.UserID)
	if err != nil {
		return err
	}
	if !s.CanManage(actor, &found.Project) {
		return ErrNotProjectManager
	}

	if err := s.projectRepo.Archive(projectID); err != nil {
		return fmt.Errorf("failed to archive project: %w", err)
	}
	return nil
}

// ListMembers lists a project's members, visible to any member.
func (s *ProjectService) ListMembers(projectID, userID uint64) ([]models.ProjectMember, error) {
	if _, err := s.GetProjectForUser(projectID, userID); err != nil {
		return nil, err
	}

	members, err := s.projectRepo.ListMembers(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// AddMemberByEmail adds an active user to the project with role
// Member. Adding an existing member is a no-op, not an error.
func (s *ProjectService) AddMemberByEmail(projectID uint64, email string, actor Principal) error {
	found, err := s.GetProjectForUser(projectID, actor.UserID)
	if err != nil {
		return err
	}
	if !s.CanManage(actor, &found.Project) {
		return ErrNotProjectManager
	}

	user, err := s.userRepo.FindByEmail(strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	if !user.Active {
		return ErrMemberDisabled
	}

	member := &models.ProjectMember{
		ProjectID: projectID,
		UserID:    user.ID,
		Role:      models.MemberRoleMember,
		JoinedAt:  clock.NowUTC(),
	}
	if err := s.projectRepo.AddMember(member); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// RemoveMember removes a membership. The Owner membership is never
// removed; the data layer refuses it and removed comes back false.
func (s *ProjectService) RemoveMember(projectID, targetUserID uint64, actor Principal) (bool, error) {
	found, err := s.GetProjectForUser(projectID, actor.UserID)
	if err != nil {
		return false, err
	}
	if !s.CanManage(actor, &found.Project) {
		return false, ErrNotProjectManager
	}

	removed, err := s.projectRepo.RemoveMember(projectID, targetUserID)
	if err != nil {
		return false, fmt.Errorf("failed to remove member: %w", err)
	}
	return removed, nil
}
