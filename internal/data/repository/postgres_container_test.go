//go:build container

package repository

import (
	"context"
	"testing"
	"time"

	"feedback-portal/internal/data/entity"
	"feedback-portal/pkg/database"
	"feedback-portal/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func startPostgres(t *testing.T) utils.DatabaseConfig {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "feedback",
			"POSTGRES_PASSWORD": "feedback",
			"POSTGRES_DB":       "feedback",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(time.Minute),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return utils.DatabaseConfig{
		Host:     host,
		Port:     port.Port(),
		Name:     "feedback",
		User:     "feedback",
		Password: "feedback",
		MaxConns: 4,
	}
}

func TestPostgres_FeedbackLifecycle(t *testing.T) {
	cfg := startPostgres(t)
	ctx := context.Background()
	log := zap.NewNop()

	require.NoError(t, database.RunMigrations(ctx, cfg, log))
	// second run is a no-op
	require.NoError(t, database.RunMigrations(ctx, cfg, log))

	db, err := database.InitDB(cfg)
	require.NoError(t, err)
	defer db.Close()

	repos := NewRepository(db, log)

	for _, role := range entity.KnownRoles {
		_, err := repos.Role.EnsureRole(ctx, role, []entity.Permission{entity.PermViewFeedback})
		require.NoError(t, err)
	}
	created, err := repos.Role.EnsureRole(ctx, entity.RoleAuditor, nil)
	require.NoError(t, err)
	assert.False(t, created)

	now := time.Now().UTC().Truncate(time.Microsecond)
	alice := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		IsActive:     true,
		Roles:        entity.Roles{entity.RoleEndUser},
	}
	require.NoError(t, repos.User.Create(ctx, alice))

	dup := *alice
	dup.ID = uuid.New()
	assert.ErrorIs(t, repos.User.Create(ctx, &dup), ErrDuplicate)

	fb := &entity.Feedback{
		Base:    entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID:  alice.ID,
		Comment: "Great service",
	}
	require.NoError(t, repos.Feedback.Create(ctx, fb))

	got, err := repos.Feedback.FindByID(ctx, fb.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Great service", got.Comment)
	assert.Equal(t, "alice", got.AuthorUsername)
	assert.False(t, got.IsVerified)

	stranger := uuid.New()
	visible, err := repos.Feedback.FindAll(ctx, entity.FeedbackFilter{VisibleTo: &stranger}, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, visible)

	require.NoError(t, repos.Feedback.MarkVerified(ctx, fb.ID, time.Now()))

	visible, err = repos.Feedback.FindAll(ctx, entity.FeedbackFilter{VisibleTo: &stranger}, 10, 0)
	require.NoError(t, err)
	assert.Len(t, visible, 1)

	require.NoError(t, repos.Feedback.Delete(ctx, fb.ID))
	assert.ErrorIs(t, repos.Feedback.Delete(ctx, fb.ID), ErrNotFound)
}
