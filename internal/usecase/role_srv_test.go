package usecase

import (
	"context"
	"testing"
	"time"

	"feedback-portal/internal/data/entity"
	"feedback-portal/internal/data/repository/repotest"
	"feedback-portal/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDefaultRoles_Idempotent(t *testing.T) {
	repo := repotest.New()
	svc := NewRoleService(repo, testLogger)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaultRoles(ctx))
	first, err := svc.ListRoles(ctx)
	require.NoError(t, err)
	require.Len(t, first, 3)

	require.NoError(t, svc.EnsureDefaultRoles(ctx))
	second, err := svc.ListRoles(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	for _, role := range second {
		if role.Name == string(entity.RoleAuditor) {
			assert.Contains(t, role.Permissions, string(entity.PermVerifyFeedback))
		} else {
			assert.NotContains(t, role.Permissions, string(entity.PermVerifyFeedback))
		}
	}
}

func seedUser(t *testing.T, users *repotest.Users, username string, roles ...entity.Role) *entity.User {
	t.Helper()
	now := time.Now()
	user := &entity.User{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Username: username,
		Email:    username + "@example.com",
		IsActive: true,
		Roles:    entity.Roles(roles),
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestGrantRole(t *testing.T) {
	repo := repotest.New()
	users := repo.User.(*repotest.Users)
	svc := NewRoleService(repo, testLogger)
	ctx := context.Background()

	user := seedUser(t, users, "alice", entity.RoleEndUser)

	require.NoError(t, svc.GrantRole(ctx, "alice", "Auditor"))
	got, _ := users.FindByID(ctx, user.ID)
	assert.ElementsMatch(t, entity.Roles{entity.RoleEndUser, entity.RoleAuditor}, got.Roles)

	// granting again keeps the set unchanged
	require.NoError(t, svc.GrantRole(ctx, "alice", "auditor"))
	got, _ = users.FindByID(ctx, user.ID)
	assert.Len(t, got.Roles, 2)

	assert.ErrorIs(t, svc.GrantRole(ctx, "alice", "superuser"), ErrValidation)
	assert.ErrorIs(t, svc.GrantRole(ctx, "nobody", "admin"), ErrNotFound)
}

func TestUserService(t *testing.T) {
	repo := repotest.New()
	users := repo.User.(*repotest.Users)
	svc := NewUserService(users, testLogger)
	ctx := context.Background()

	alice := seedUser(t, users, "alice", entity.RoleEndUser)
	seedUser(t, users, "bob", entity.RoleAuditor)

	t.Run("profile", func(t *testing.T) {
		actor := actorWith(entity.RoleEndUser)
		actor.UserID = alice.ID

		profile, err := svc.GetProfile(ctx, actor)
		require.NoError(t, err)
		assert.Equal(t, "alice", profile.Username)
		assert.Equal(t, []string{"end-user"}, profile.Roles)

		_, err = svc.GetProfile(ctx, actorWith())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list", func(t *testing.T) {
		page, err := svc.GetAllUsers(ctx, &request.PaginatedRequest{Page: 1, PerPage: 1})
		require.NoError(t, err)
		assert.Len(t, page.Data, 1)
		assert.Equal(t, int64(2), page.Pagination.Total)
		assert.Equal(t, 2, page.Pagination.TotalPages)
	})

	t.Run("set roles", func(t *testing.T) {
		resp, err := svc.SetRoles(ctx, alice.ID.String(), &request.SetRolesRequest{Roles: []string{"auditor", "admin"}})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"auditor", "admin"}, resp.Roles)

		_, err = svc.SetRoles(ctx, alice.ID.String(), &request.SetRolesRequest{Roles: []string{"root"}})
		assert.ErrorIs(t, err, ErrValidation)

		_, err = svc.SetRoles(ctx, uuid.NewString(), &request.SetRolesRequest{Roles: []string{"admin"}})
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = svc.SetRoles(ctx, "bad-id", &request.SetRolesRequest{})
		assert.ErrorIs(t, err, ErrValidation)
	})
}
