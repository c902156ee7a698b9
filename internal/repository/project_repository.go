package repository

import (
	"fmt"
	"time"

	"github.com/todosimple/taskboard/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// CreateWithOwner inserts the project and the creator's Owner
// membership as a single transaction.
func (r *GormProjectRepository) CreateWithOwner(project *models.Project, ownerID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		member := models.ProjectMember{
			ProjectID: project.ID,
			UserID:    ownerID,
			Role:      models.MemberRoleOwner,
			JoinedAt:  time.Now().UTC(),
		}
		if err := tx.Create(&member).Error; err != nil {
			return fmt.Errorf("failed to create owner membership: %w", err)
		}

		return nil
	})
}

// FindForUser resolves the membership row first, then the project.
// A missing membership and a missing project are indistinguishable to
// the caller.
func (r *GormProjectRepository) FindForUser(projectID, userID uint64) (*models.Project, *models.ProjectMember, error) {
	var member models.ProjectMember
	if err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error; err != nil {
		return nil, nil, err
	}

	var project models.Project
	if err := r.db.Where("id = ? AND active = ?", projectID, true).
		First(&project).Error; err != nil {
		return nil, nil, err
	}

	return &project, &member, nil
}

// ListForUser lists the user's memberships in active projects.
func (r *GormProjectRepository) ListForUser(userID uint64) ([]models.ProjectMember, error) {
	var memberships []models.ProjectMember
	err := r.db.Preload("Project").
		Joins("JOIN projects ON projects.id = project_members.project_id AND projects.active = ?", true).
		Where("project_members.user_id = ?", userID).
		Order("projects.name ASC").
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}
	return memberships, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Archive deactivates a project; tasks and memberships stay in place.
func (r *GormProjectRepository) Archive(projectID uint64) error {
	return r.db.Model(&models.Project{}).Where("id = ?", projectID).
		Update("active", false).Error
}

// AddMember adds a member to a project; adding an existing member is a no-op.
func (r *GormProjectRepository) AddMember(member *models.ProjectMember) error {
	existing := models.ProjectMember{
		ProjectID: member.ProjectID,
		UserID:    member.UserID,
		Role:      member.Role,
		JoinedAt:  member.JoinedAt,
	}
	return r.db.Where("project_id = ? AND user_id = ?", member.ProjectID, member.UserID).
		FirstOrCreate(&existing).Error
}

// RemoveMember deletes a membership row. The Owner row never matches,
// independent of caller authorization, as the last-line guard for the
// one-Owner-per-project invariant.
func (r *GormProjectRepository) RemoveMember(projectID, userID uint64) (bool, error) {
	result := r.db.Where("project_id = ? AND user_id = ? AND role <> ?",
		projectID, userID, models.MemberRoleOwner).
		Delete(&models.ProjectMember{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindMember finds a specific project membership
func (r *GormProjectRepository) FindMember(projectID, userID uint64) (*models.ProjectMember, error) {
	var member models.ProjectMember
	if err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers lists a project's members, owners first then by name.
func (r *GormProjectRepository) ListMembers(projectID uint64) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	err := r.db.Preload("User").
		Joins("JOIN users ON users.id = project_members.user_id").
		Where("project_members.project_id = ?", projectID).
		Order("project_members.role DESC, users.name ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}
