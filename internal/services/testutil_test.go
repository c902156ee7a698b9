package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/todosimple/taskboard/internal/database"
	"github.com/todosimple/taskboard/internal/models"
	"github.com/todosimple/taskboard/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type serviceTestEnv struct {
	db *gorm.DB

	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	lookupRepo  repository.LookupRepository

	authService    *AuthService
	projectService *ProjectService
	taskService    *TaskService
	userService    *UserService
}

const (
	testMaxAttempts = 3
	testLockWindow  = 10 * time.Minute
)

func setupServiceTestEnv(t *testing.T) serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.UserRole{},
		&models.Project{},
		&models.ProjectMember{},
		&models.TaskStatus{},
		&models.Priority{},
		&models.Task{},
	)
	require.NoError(t, err)
	require.NoError(t, database.SeedLookups(db))

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	lookupRepo := repository.NewLookupRepository(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return serviceTestEnv{
		db:             db,
		userRepo:       userRepo,
		projectRepo:    projectRepo,
		taskRepo:       taskRepo,
		lookupRepo:     lookupRepo,
		authService:    NewAuthService(userRepo, testMaxAttempts, testLockWindow),
		projectService: NewProjectService(projectRepo, userRepo),
		taskService:    NewTaskService(taskRepo, projectRepo, lookupRepo, time.UTC),
		userService:    NewUserService(userRepo),
	}
}

func (env serviceTestEnv) createUser(t *testing.T, name, email, password string) *models.User {
	t.Helper()
	user, err := env.userService.CreateUser(CreateUserInput{
		Name:     name,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return user
}

func (env serviceTestEnv) createAdmin(t *testing.T, name, email, password string) *models.User {
	t.Helper()
	user, err := env.userService.CreateUser(CreateUserInput{
		Name:     name,
		Email:    email,
		Password: password,
		RoleName: models.RoleAdmin,
	})
	require.NoError(t, err)
	return user
}

func (env serviceTestEnv) principal(user *models.User, role string) Principal {
	return Principal{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   role,
	}
}

func (env serviceTestEnv) reloadUser(t *testing.T, id uint64) models.User {
	t.Helper()
	var user models.User
	require.NoError(t, env.db.First(&user, id).Error)
	return user
}
