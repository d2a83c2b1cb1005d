package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"feedback-portal/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

var feedbackCols = []string{"id", "user_id", "username", "comment", "is_verified", "created_at", "updated_at"}

func TestFeedbackRepository_Create(t *testing.T) {
	mock := newMockPool(t)
	repo := NewFeedbackRepository(mock, zap.NewNop())

	now := time.Now()
	fb := &entity.Feedback{
		Base:    entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID:  uuid.New(),
		Comment: "Great service",
	}

	mock.ExpectExec(`INSERT INTO feedback`).
		WithArgs(fb.ID, fb.UserID, "Great service", false, now, now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), fb))
}

func TestFeedbackRepository_FindByID(t *testing.T) {
	mock := newMockPool(t)
	repo := NewFeedbackRepository(mock, zap.NewNop())

	id, author := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(`FROM feedback f\s+JOIN users u ON u.id = f.user_id\s+WHERE f.id = \$1`).
		WithArgs(id).
		WillReturnRows(mock.NewRows(feedbackCols).AddRow(id, author, "alice", "hi", true, now, now))

	got, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, author, got.UserID)
	assert.Equal(t, "alice", got.AuthorUsername)
	assert.True(t, got.IsVerified)
}

func TestFeedbackRepository_FindByID_Missing(t *testing.T) {
	mock := newMockPool(t)
	repo := NewFeedbackRepository(mock, zap.NewNop())

	id := uuid.New()
	mock.ExpectQuery(`WHERE f.id = \$1`).WithArgs(id).WillReturnError(pgx.ErrNoRows)

	got, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFeedbackRepository_FindAll_VisibleTo(t *testing.T) {
	mock := newMockPool(t)
	repo := NewFeedbackRepository(mock, zap.NewNop())

	viewer := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`WHERE \(f.is_verified OR f.user_id = \$1\)\s+ORDER BY f.created_at DESC, f.id\s+LIMIT \$2 OFFSET \$3`).
		WithArgs(viewer, 10, 20).
		WillReturnRows(mock.NewRows(feedbackCols).
			AddRow(uuid.New(), viewer, "me", "mine", false, now, now).
			AddRow(uuid.New(), uuid.New(), "other", "theirs", true, now, now))

	got, err := repo.FindAll(context.Background(), entity.FeedbackFilter{VisibleTo: &viewer}, 10, 20)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestFeedbackRepository_FindAll_Unfiltered(t *testing.T) {
	mock := newMockPool(t)
	repo := NewFeedbackRepository(mock, zap.NewNop())

	mock.ExpectQuery(`JOIN users u ON u.id = f.user_id\s+ORDER BY f.created_at DESC, f.id\s+LIMIT \$1 OFFSET \$2`).
		WithArgs(5, 0).
		WillReturnRows(mock.NewRows(feedbackCols))

	got, err := repo.FindAll(context.Background(), entity.FeedbackFilter{}, 5, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFeedbackRepository_Count_ByAuthor(t *testing.T) {
	mock := newMockPool(t)
	repo := NewFeedbackRepository(mock, zap.NewNop())

	author := uuid.New()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM feedback f WHERE f.user_id = \$1`).
		WithArgs(author).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(int64(3)))

	n, err := repo.Count(context.Background(), entity.FeedbackFilter{AuthorID: &author})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestFeedbackRepository_Update_NotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewFeedbackRepository(mock, zap.NewNop())

	fb := &entity.Feedback{Base: entity.Base{ID: uuid.New(), UpdatedAt: time.Now()}, Comment: "x"}
	mock.ExpectExec(`UPDATE feedback\s+SET comment = \$2, is_verified = \$3, updated_at = \$4`).
		WithArgs(fb.ID, "x", false, fb.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), fb)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFeedbackRepository_MarkVerified(t *testing.T) {
	mock := newMockPool(t)
	repo := NewFeedbackRepository(mock, zap.NewNop())

	id := uuid.New()
	at := time.Now()
	mock.ExpectExec(`UPDATE feedback SET is_verified = TRUE`).
		WithArgs(id, at).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.MarkVerified(context.Background(), id, at))
}

func TestFeedbackRepository_Delete(t *testing.T) {
	mock := newMockPool(t)
	repo := NewFeedbackRepository(mock, zap.NewNop())

	id := uuid.New()
	mock.ExpectExec(`DELETE FROM feedback WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, repo.Delete(context.Background(), id))

	mock.ExpectExec(`DELETE FROM feedback`).
		WithArgs(id).
		WillReturnError(errors.New("db down"))
	err := repo.Delete(context.Background(), id)
	assert.ErrorContains(t, err, "db down")
}
