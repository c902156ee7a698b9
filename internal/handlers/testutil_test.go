package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/todosimple/taskboard/internal/constants"
	"github.com/todosimple/taskboard/internal/database"
	"github.com/todosimple/taskboard/internal/middleware"
	"github.com/todosimple/taskboard/internal/models"
	"github.com/todosimple/taskboard/internal/repository"
	"github.com/todosimple/taskboard/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type handlerTestEnv struct {
	db     *gorm.DB
	router *gin.Engine

	userService    *services.UserService
	projectService *services.ProjectService
	taskService    *services.TaskService
}

func setupHandlerTestEnv(t *testing.T) handlerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

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
	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	lookupRepo := repository.NewLookupRepository(db)

	authService := services.NewAuthService(userRepo, 3, 10*time.Minute)
	projectService := services.NewProjectService(projectRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, lookupRepo, time.UTC)
	userService := services.NewUserService(userRepo)

	authHandler := NewAuthHandler(authService)
	projectHandler := NewProjectHandler(projectService)
	taskHandler := NewTaskHandler(taskService)
	adminHandler := NewAdminHandler(userService)
	userHandler := NewUserHandler(userService)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	api := r.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)
		api.GET("/auth/me", middleware.RequireAuth(), authHandler.Me)

		projects := api.Group("/projects", middleware.RequireAuth())
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", projectHandler.GetProject)
			projects.DELETE("/:id/members/:userId", projectHandler.RemoveMember)
		}

		tasks := api.Group("/tasks", middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		api.PATCH("/users/me/password", middleware.RequireAuth(), userHandler.ChangePassword)

		admin := api.Group("/admin", middleware.RequireAuth(), middleware.RequireAdmin())
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.POST("/users", adminHandler.CreateUser)
		}
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return handlerTestEnv{
		db:             db,
		router:         r,
		userService:    userService,
		projectService: projectService,
		taskService:    taskService,
	}
}

func (env handlerTestEnv) createUser(t *testing.T, name, email, password, role string) *models.User {
	t.Helper()
	user, err := env.userService.CreateUser(services.CreateUserInput{
		Name:     name,
		Email:    email,
		Password: password,
		RoleName: role,
	})
	require.NoError(t, err)
	return user
}

func (env handlerTestEnv) request(t *testing.T, method, path string, payload interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// login authenticates through the HTTP surface and returns the session
// cookies for subsequent requests.
func (env handlerTestEnv) login(t *testing.T, email, password string) []*http.Cookie {
	t.Helper()
	w := env.request(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
	return cookies
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
