package repository

import (
	"time"

	"github.com/todosimple/taskboard/internal/models"
)

// UserRepository owns User, Role, and UserRole records.
type UserRepository interface {
	// FindByEmail looks a user up by exact email string.
	FindByEmail(email string) (*models.User, error)

	// FindByID finds a user by ID.
	FindByID(id uint64) (*models.User, error)

	// CreateWithRole creates the user and the role join in a single
	// transaction; neither persists if either fails.
	CreateWithRole(user *models.User, roleName string) error

	// AssignRole grants a global role, idempotently.
	AssignRole(userID uint64, roleName string) error

	// ListRoleNames returns the user's global role names.
	ListRoleNames(userID uint64) ([]string, error)

	// ListUsersWithRoles returns all users with roles preloaded.
	ListUsersWithRoles() ([]models.User, error)

	// RecordLoginFailure stores a new failure count and, when the
	// lockout threshold was reached, the lock expiry.
	RecordLoginFailure(userID uint64, attempts int, lockedUntil *time.Time) error

	// ClearLoginFailures resets the counter and removes any lock.
	ClearLoginFailures(userID uint64) error

	// UpdatePassword replaces the hash and clears lockout state.
	UpdatePassword(userID uint64, passwordHash string) error

	// SetActive toggles the account switch.
	SetActive(userID uint64, active bool) error
}

// ProjectRepository owns Project and ProjectMember records.
type ProjectRepository interface {
	// CreateWithOwner inserts the project and the creator's Owner
	// membership atomically.
	CreateWithOwner(project *models.Project, ownerID uint64) error

	// FindForUser resolves the caller's membership first, then the
	// active project; either missing yields gorm.ErrRecordNotFound.
	FindForUser(projectID, userID uint64) (*models.Project, *models.ProjectMember, error)

	// ListForUser lists memberships in active projects, by project name.
	ListForUser(userID uint64) ([]models.ProjectMember, error)

	Update(project *models.Project) error

	// Archive soft-deactivates the project.
	Archive(projectID uint64) error

	// AddMember inserts a membership; repeats are no-ops.
	AddMember(member *models.ProjectMember) error

	// RemoveMember deletes the membership unless it is the Owner row.
	// Returns whether a row was removed.
	RemoveMember(projectID, userID uint64) (bool, error)

	FindMember(projectID, userID uint64) (*models.ProjectMember, error)

	ListMembers(projectID uint64) ([]models.ProjectMember, error)
}

// TaskFilter holds the conjunctive filters for task listings. Due and
// assignment modes are resolved by the service; the repository only
// sees concrete bounds.
type TaskFilter struct {
	ProjectID  *uint64
	StatusID   *uint64
	PriorityID *uint64

	AssignedUserID *uint64
	Unassigned     bool

	Search string

	DueFrom   *time.Time // inclusive
	DueTo     *time.Time // inclusive
	DueBefore *time.Time // exclusive, for overdue
}

// TaskRepository owns Task records. Every read and write is scoped to
// the acting user's project memberships.
type TaskRepository interface {
	Create(task *models.Task) error

	// FindForUser returns the task only when the user holds a
	// membership in its project and the task is not soft-deleted.
	FindForUser(taskID, userID uint64) (*models.Task, error)

	// ListForUser returns the filtered, deterministically ordered
	// listing visible to the user.
	ListForUser(userID uint64, filter TaskFilter) ([]models.Task, error)

	Update(task *models.Task) error

	// SoftDelete flags the task, scoped to membership. Returns whether
	// a row changed; deleting twice reports false.
	SoftDelete(taskID, userID uint64) (bool, error)
}

// LookupRepository reads the status and priority catalogs.
type LookupRepository interface {
	ListStatuses() ([]models.TaskStatus, error)
	ListPriorities() ([]models.Priority, error)

	// DefaultStatusID returns the status flagged as default.
	DefaultStatusID() (uint64, error)

	// DefaultPriorityID returns the priority flagged as default.
	DefaultPriorityID() (uint64, error)

	// FinalStatusID returns the terminal status: final-flagged, with
	// the highest sort order.
	FinalStatusID() (uint64, error)
}
