package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/todosimple/taskboard/internal/models"
)

func TestProjectService_CreateProjectWritesOwnerMembership(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "Alice", "alice@example.com", "supersecret")

	project, err := env.projectService.CreateProject("Backlog", "team backlog", env.principal(owner, models.RoleUser))
	require.NoError(t, err)
	require.Equal(t, owner.ID, project.OwnerUserID)
	require.True(t, project.Active)

	member, err := env.projectRepo.FindMember(project.ID, owner.ID)
	require.NoError(t, err)
	require.Equal(t, models.MemberRoleOwner, member.Role)
}

func TestProjectService_CreateProjectRejectsShortName(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "Alice", "alice@example.com", "supersecret")

	_, err := env.projectService.CreateProject("  x  ", "", env.principal(owner, models.RoleUser))
	require.ErrorIs(t, err, ErrProjectNameInvalid)
}

func TestProjectService_NonMemberCannotSeeProject(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "Alice", "alice@example.com", "supersecret")
	outsider := env.createUser(t, "Bob", "bob@example.com", "supersecret")

	project, err := env.projectService.CreateProject("Backlog", "", env.principal(owner, models.RoleUser))
	require.NoError(t, err)

	// Existing-but-forbidden and nonexistent look the same.
	_, err = env.projectService.GetProjectForUser(project.ID, outsider.ID)
	require.ErrorIs(t, err, ErrProjectNotFound)

	_, err = env.projectService.GetProjectForUser(99999, outsider.ID)
	require.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectService_ArchivedProjectDisappears(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "Alice", "alice@example.com", "supersecret")
	actor := env.principal(owner, models.RoleUser)

	project, err := env.projectService.CreateProject("Backlog", "", actor)
	require.NoError(t, err)
	require.NoError(t, env.projectService.ArchiveProject(project.ID, actor))

	_, err = env.projectService.GetProjectForUser(project.ID, owner.ID)
	require.ErrorIs(t, err, ErrProjectNotFound)

	projects, err := env.projectService.ListProjectsForUser(owner.ID)
	require.NoError(t, err)
	require.Empty(t, projects)
}

func TestProjectService_PlainMemberCannotManage(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "Alice", "alice@example.com", "supersecret")
	member := env.createUser(t, "Bob", "bob@example.com", "supersecret")
	ownerActor := env.principal(owner, models.RoleUser)

	project, err := env.projectService.CreateProject("Backlog", "", ownerActor)
	require.NoError(t, err)
	require.NoError(t, env.projectService.AddMemberByEmail(project.ID, "bob@example.com", ownerActor))

	memberActor := env.principal(member, models.RoleUser)
	_, err = env.projectService.UpdateProject(project.ID, "Renamed", "", memberActor)
	require.ErrorIs(t, err, ErrNotProjectManager)

	err = env.projectService.ArchiveProject(project.ID, memberActor)
	require.ErrorIs(t, err, ErrNotProjectManager)

	err = env.projectService.AddMemberByEmail(project.ID, "alice@example.com", memberActor)
	require.ErrorIs(t, err, ErrNotProjectManager)
}

func TestProjectService_AdminManagesAnyProjectTheyBelongTo(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "Alice", "alice@example.com", "supersecret")
	admin := env.createAdmin(t, "Root", "root@example.com", "supersecret")
	ownerActor := env.principal(owner, models.RoleUser)

	project, err := env.projectService.CreateProject("Backlog", "", ownerActor)
	require.NoError(t, err)
	require.NoError(t, env.projectService.AddMemberByEmail(project.ID, "root@example.com", ownerActor))

	adminActor := env.principal(admin, models.RoleAdmin)
	updated, err := env.projectService.UpdateProject(project.ID, "Renamed", "new desc", adminActor)
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)
	// The owner reference never moves.
	require.Equal(t, owner.ID, updated.OwnerUserID)
}

func TestProjectService_AddMemberIsIdempotent(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "Alice", "alice@example.com", "supersecret")
	env.createUser(t, "Bob", "bob@example.com", "supersecret")
	actor := env.principal(owner, models.RoleUser)

	project, err := env.projectService.CreateProject("Backlog", "", actor)
	require.NoError(t, err)

	require.NoError(t, env.projectService.AddMemberByEmail(project.ID, "bob@example.com", actor))
	require.NoError(t, env.projectService.AddMemberByEmail(project.ID, "bob@example.com", actor))

	members, err := env.projectService.ListMembers(project.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
}

func TestProjectService_AddMemberRejectsDisabledAndUnknown(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "Alice", "alice@example.com", "supersecret")
	disabled := env.createUser(t, "Bob", "bob@example.com", "supersecret")
	require.NoError(t, env.userService.SetUserActive(disabled.ID, false))
	actor := env.principal(owner, models.RoleUser)

	project, err := env.projectService.CreateProject("Backlog", "", actor)
	require.NoError(t, err)

	err = env.projectService.AddMemberByEmail(project.ID, "bob@example.com", actor)
	require.ErrorIs(t, err, ErrMemberDisabled)

	err = env.projectService.AddMemberByEmail(project.ID, "nobody@example.com", actor)
	require.ErrorIs(t, err, ErrMemberNotFound)
}

func TestProjectService_OwnerMembershipIsNeverRemoved(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "Alice", "alice@example.com", "supersecret")
	admin := env.createAdmin(t, "Root", "root@example.com", "supersecret")
	ownerActor := env.principal(owner, models.RoleUser)

	project, err := env.projectService.CreateProject("Backlog", "", ownerActor)
	require.NoError(t, err)
	require.NoError(t, env.projectService.AddMemberByEmail(project.ID, "root@example.com", ownerActor))

	// Not even an admin, not even the owner themselves.
	removed, err := env.projectService.RemoveMember(project.ID, owner.ID, env.principal(admin, models.RoleAdmin))
	require.NoError(t, err)
	require.False(t, removed)

	removed, err = env.projectService.RemoveMember(project.ID, owner.ID, ownerActor)
	require.NoError(t, err)
	require.False(t, removed)

	member, err := env.projectRepo.FindMember(project.ID, owner.ID)
	require.NoError(t, err)
	require.Equal(t, models.MemberRoleOwner, member.Role)
}

func TestProjectService_RemoveMemberDropsAccess(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "Alice", "alice@example.com", "supersecret")
	member := env.createUser(t, "Bob", "bob@example.com", "supersecret")
	actor := env.principal(owner, models.RoleUser)

	project, err := env.projectService.CreateProject("Backlog", "", actor)
	require.NoError(t, err)
	require.NoError(t, env.projectService.AddMemberByEmail(project.ID, "bob@example.com", actor))

	removed, err := env.projectService.RemoveMember(project.ID, member.ID, actor)
	require.NoError(t, err)
	require.True(t, removed)

	_, err = env.projectService.GetProjectForUser(project.ID, member.ID)
	require.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectService_ListMembersOrdersOwnersFirst(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.createUser(t, "Zoe", "zoe@example.com", "supersecret")
	env.createUser(t, "Bob", "bob@example.com", "supersecret")
	actor := env.principal(owner, models.RoleUser)

	project, err := env.projectService.CreateProject("Backlog", "", actor)
	require.NoError(t, err)
	require.NoError(t, env.projectService.AddMemberByEmail(project.ID, "bob@example.com", actor))

	members, err := env.projectService.ListMembers(project.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	require.Equal(t, models.MemberRoleOwner, members[0].Role)
	require.Equal(t, "Zoe", members[0].User.Name)
	require.Equal(t, "Bob", members[1].User.Name)
}
