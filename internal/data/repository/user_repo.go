package repository

import (
	"context"
	"errors"
	"fmt"

	"feedback-portal/internal/data/entity"
	"feedback-portal/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error)
	CountAll(ctx context.Context) (int64, error)
	SetRoles(ctx context.Context, userID uuid.UUID, roles entity.Roles) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

// roles are folded into every user read so the actor is complete after
// a single round trip
const userColumns = `
	u.id, u.username, u.email, u.password, u.is_active, u.created_at, u.updated_at,
	ARRAY(SELECT ur.role FROM user_roles ur WHERE ur.user_id = u.id ORDER BY ur.role) AS roles
`

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	var roles []string
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
		&roles,
	)
	if err != nil {
		return nil, err
	}
	user.Roles = entity.RolesFromStrings(roles)
	return &user, nil
}

// Create inserts the user and its initial roles in one transaction.
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	tx, err := ur.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create user: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO users (id, username, email, password, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = tx.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create user %s: %w", user.Username, ErrDuplicate)
		}
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
			zap.String("username", user.Username),
		)
		return fmt.Errorf("create user %s: %w", user.Username, err)
	}

	if err := insertRoles(ctx, tx, user.ID, user.Roles); err != nil {
		ur.log.Error("Failed to assign roles", zap.Error(err), zap.String("user_id", user.ID.String()))
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create user %s: %w", user.Username, err)
	}
	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1`

	user, err := scanUser(ur.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}

	return user, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE lower(u.email) = lower($1)`

	user, err := scanUser(ur.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return user, nil
}

func (ur *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.username = $1`

	user, err := scanUser(ur.db.QueryRow(ctx, query, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by username",
			zap.Error(err),
			zap.String("username", username),
		)
		return nil, fmt.Errorf("find user by username %s: %w", username, err)
	}

	return user, nil
}

// FindAll retrieves paginated list of users
func (ur *userRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u ORDER BY u.created_at DESC LIMIT $1 OFFSET $2`

	rows, err := ur.db.Query(ctx, query, limit, offset)
	if err != nil {
		ur.log.Error("Failed to get all users",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all users limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			ur.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		ur.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate users rows: %w", err)
	}

	return users, nil
}

func (ur *userRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM users`

	var count int64
	if err := ur.db.QueryRow(ctx, query).Scan(&count); err != nil {
		ur.log.Error("Database error counting users", zap.Error(err))
		return 0, fmt.Errorf("count all users: %w", err)
	}

	return count, nil
}

// SetRoles replaces the user's role set.
func (ur *userRepository) SetRoles(ctx context.Context, userID uuid.UUID, roles entity.Roles) error {
	tx, err := ur.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin set roles: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `UPDATE users SET updated_at = NOW() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("touch user %s: %w", userID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", userID.String(), ErrNotFound)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		ur.log.Error("Failed to clear roles", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("clear roles for %s: %w", userID.String(), err)
	}

	if err := insertRoles(ctx, tx, userID, roles); err != nil {
		ur.log.Error("Failed to assign roles", zap.Error(err), zap.String("user_id", userID.String()))
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit set roles for %s: %w", userID.String(), err)
	}

	ur.log.Info("User roles replaced",
		zap.String("user_id", userID.String()),
		zap.Strings("roles", roles.Strings()),
	)
	return nil
}

func insertRoles(ctx context.Context, tx pgx.Tx, userID uuid.UUID, roles entity.Roles) error {
	for _, role := range roles {
		_, err := tx.Exec(ctx,
			`INSERT INTO user_roles (user_id, role) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			userID, string(role),
		)
		if err != nil {
			return fmt.Errorf("assign role %s to %s: %w", role, userID.String(), err)
		}
	}
	return nil
}
