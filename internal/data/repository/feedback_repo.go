package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"feedback-portal/internal/data/entity"
	"feedback-portal/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *entity.Feedback) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Feedback, error)
	FindAll(ctx context.Context, filter entity.FeedbackFilter, limit, offset int) ([]*entity.Feedback, error)
	Count(ctx context.Context, filter entity.FeedbackFilter) (int64, error)
	Update(ctx context.Context, feedback *entity.Feedback) error
	MarkVerified(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type feedbackRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFeedbackRepository(db database.PgxIface, log *zap.Logger) FeedbackRepository {
	return &feedbackRepository{
		db:  db,
		log: log.With(zap.String("repository", "feedback")),
	}
}

const feedbackColumns = `
	f.id, f.user_id, u.username, f.comment, f.is_verified, f.created_at, f.updated_at
`

func scanFeedback(row pgx.Row) (*entity.Feedback, error) {
	var fb entity.Feedback
	err := row.Scan(
		&fb.ID,
		&fb.UserID,
		&fb.AuthorUsername,
		&fb.Comment,
		&fb.IsVerified,
		&fb.CreatedAt,
		&fb.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

// whereClause renders the filter starting at placeholder $1.
func whereClause(filter entity.FeedbackFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		conds = append(conds, fmt.Sprintf("f.user_id = $%d", len(args)))
	}
	if filter.VisibleTo != nil {
		args = append(args, *filter.VisibleTo)
		conds = append(conds, fmt.Sprintf("(f.is_verified OR f.user_id = $%d)", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *feedbackRepository) Create(ctx context.Context, fb *entity.Feedback) error {
	query := `
		INSERT INTO feedback (id, user_id, comment, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		fb.ID,
		fb.UserID,
		fb.Comment,
		fb.IsVerified,
		fb.CreatedAt,
		fb.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create feedback",
			zap.Error(err),
			zap.String("user_id", fb.UserID.String()),
		)
		return fmt.Errorf("create feedback by user %s: %w", fb.UserID.String(), err)
	}

	return nil
}

func (r *feedbackRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Feedback, error) {
	query := `SELECT ` + feedbackColumns + `
		FROM feedback f
		JOIN users u ON u.id = f.user_id
		WHERE f.id = $1
	`

	fb, err := scanFeedback(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find feedback by ID",
			zap.Error(err),
			zap.String("feedback_id", id.String()),
		)
		return nil, fmt.Errorf("find feedback by ID %s: %w", id.String(), err)
	}

	return fb, nil
}

// FindAll lists matching feedback, newest first.
func (r *feedbackRepository) FindAll(ctx context.Context, filter entity.FeedbackFilter, limit, offset int) ([]*entity.Feedback, error) {
	where, args := whereClause(filter)
	args = append(args, limit, offset)

	query := `SELECT ` + feedbackColumns + `
		FROM feedback f
		JOIN users u ON u.id = f.user_id` + where + fmt.Sprintf(`
		ORDER BY f.created_at DESC, f.id
		LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list feedback",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list feedback limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var feedback []*entity.Feedback
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			r.log.Error("Failed to scan feedback row", zap.Error(err))
			return nil, fmt.Errorf("scan feedback row: %w", err)
		}
		feedback = append(feedback, fb)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate feedback rows: %w", err)
	}

	return feedback, nil
}

func (r *feedbackRepository) Count(ctx context.Context, filter entity.FeedbackFilter) (int64, error) {
	where, args := whereClause(filter)
	query := `SELECT COUNT(*) FROM feedback f` + where

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count feedback", zap.Error(err))
		return 0, fmt.Errorf("count feedback: %w", err)
	}

	return count, nil
}

// Update writes the mutable columns. Author and created_at never change.
func (r *feedbackRepository) Update(ctx context.Context, fb *entity.Feedback) error {
	query := `
		UPDATE feedback
		SET comment = $2, is_verified = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		fb.ID,
		fb.Comment,
		fb.IsVerified,
		fb.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update feedback",
			zap.Error(err),
			zap.String("feedback_id", fb.ID.String()),
		)
		return fmt.Errorf("update feedback %s: %w", fb.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("feedback %s: %w", fb.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *feedbackRepository) MarkVerified(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE feedback SET is_verified = TRUE, updated_at = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, at)
	if err != nil {
		r.log.Error("Failed to verify feedback",
			zap.Error(err),
			zap.String("feedback_id", id.String()),
		)
		return fmt.Errorf("verify feedback %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("feedback %s: %w", id.String(), ErrNotFound)
	}

	return nil
}

func (r *feedbackRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM feedback WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete feedback",
			zap.Error(err),
			zap.String("feedback_id", id.String()),
		)
		return fmt.Errorf("delete feedback %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("feedback %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Feedback deleted", zap.String("feedback_id", id.String()))
	return nil
}
