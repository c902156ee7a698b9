package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/todosimple/taskboard/internal/clock"
	"github.com/todosimple/taskboard/internal/models"
)

func TestUserService_CreateUserValidation(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, err := env.userService.CreateUser(CreateUserInput{Name: "A", Email: "a@example.com", Password: "supersecret"})
	require.ErrorIs(t, err, ErrNameInvalid)

	_, err = env.userService.CreateUser(CreateUserInput{Name: "Alice", Email: "not-an-email", Password: "supersecret"})
	require.ErrorIs(t, err, ErrEmailInvalid)

	_, err = env.userService.CreateUser(CreateUserInput{Name: "Alice", Email: "a@example.com", Password: "short"})
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestUserService_DuplicateEmailRejected(t *testing.T) {
	env := setupServiceTestEnv(t)
	env.createUser(t, "Alice", "alice@example.com", "supersecret")

	_, err := env.userService.CreateUser(CreateUserInput{
		Name:     "Other Alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.ErrorIs(t, err, ErrEmailTaken)

	// Emails are compared verbatim; a case variant is a distinct account.
	_, err = env.userService.CreateUser(CreateUserInput{
		Name:     "Shouting Alice",
		Email:    "ALICE@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
}

func TestUserService_UnknownRoleFallsBackToUser(t *testing.T) {
	env := setupServiceTestEnv(t)

	user, err := env.userService.CreateUser(CreateUserInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "supersecret",
		RoleName: "Superuser",
	})
	require.NoError(t, err)

	roles, err := env.userRepo.ListRoleNames(user.ID)
	require.NoError(t, err)
	require.Equal(t, []string{models.RoleUser}, roles)
}

func TestUserService_ResetPasswordClearsLockout(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := env.createUser(t, "Alice", "alice@example.com", "supersecret")

	until := clock.NowUTC().Add(time.Hour)
	require.NoError(t, env.userRepo.RecordLoginFailure(user.ID, 0, &until))

	_, err := env.authService.Authenticate("alice@example.com", "supersecret")
	require.ErrorIs(t, err, ErrAccountLocked)

	require.NoError(t, env.userService.ResetPassword(user.ID, "brand-new-pass"))

	// The reset account logs in immediately with the new password.
	principal, err := env.authService.Authenticate("alice@example.com", "brand-new-pass")
	require.NoError(t, err)
	require.Equal(t, user.ID, principal.UserID)
}

func TestUserService_ChangePasswordRequiresCurrent(t *testing.T) {
	env := setupServiceTestEnv(t)
	env.createUser(t, "Alice", "alice@example.com", "supersecret")

	err := env.userService.ChangePassword("alice@example.com", "wrong-current", "brand-new-pass")
	require.ErrorIs(t, err, ErrWrongPassword)

	err = env.userService.ChangePassword("alice@example.com", "supersecret", "short")
	require.ErrorIs(t, err, ErrPasswordTooShort)

	require.NoError(t, env.userService.ChangePassword("alice@example.com", "supersecret", "brand-new-pass"))

	_, err = env.authService.Authenticate("alice@example.com", "brand-new-pass")
	require.NoError(t, err)
}

func TestUserService_EnsureAdminIsIdempotent(t *testing.T) {
	env := setupServiceTestEnv(t)

	first, err := env.userService.EnsureAdmin("Administrator", "Admin@Example.com ", "Admin123!")
	require.NoError(t, err)
	require.Equal(t, "admin@example.com", first.Email)

	second, err := env.userService.EnsureAdmin("Administrator", "admin@example.com", "Admin123!")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	roles, err := env.userRepo.ListRoleNames(first.ID)
	require.NoError(t, err)
	require.Contains(t, roles, models.RoleAdmin)
}

func TestUserService_EnsureAdminPromotesExistingAccount(t *testing.T) {
	env := setupServiceTestEnv(t)
	existing := env.createUser(t, "Alice", "alice@example.com", "supersecret")

	promoted, err := env.userService.EnsureAdmin("Ignored Name", "alice@example.com", "ignored-pass")
	require.NoError(t, err)
	require.Equal(t, existing.ID, promoted.ID)

	roles, err := env.userRepo.ListRoleNames(existing.ID)
	require.NoError(t, err)
	require.Contains(t, roles, models.RoleAdmin)
	require.Contains(t, roles, models.RoleUser)

	// The existing password still works.
	_, err = env.authService.Authenticate("alice@example.com", "supersecret")
	require.NoError(t, err)
}
