package repository

import (
	"context"
	"fmt"

	"feedback-portal/internal/data/entity"
	"feedback-portal/pkg/database"

	"go.uber.org/zap"
)

type RoleRepository interface {
	// EnsureRole creates the role if missing and grants the permissions.
	// created reports whether the role row was new.
	EnsureRole(ctx context.Context, role entity.Role, perms []entity.Permission) (created bool, err error)
	FindAll(ctx context.Context) ([]entity.RoleDefinition, error)
}

type roleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRoleRepository(db database.PgxIface, log *zap.Logger) RoleRepository {
	return &roleRepository{
		db:  db,
		log: log.With(zap.String("repository", "role")),
	}
}

func (r *roleRepository) EnsureRole(ctx context.Context, role entity.Role, perms []entity.Permission) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin ensure role %s: %w", role, err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
		string(role),
	)
	if err != nil {
		r.log.Error("Failed to create role", zap.Error(err), zap.String("role", string(role)))
		return false, fmt.Errorf("create role %s: %w", role, err)
	}
	created := result.RowsAffected() > 0

	for _, perm := range perms {
		_, err := tx.Exec(ctx,
			`INSERT INTO role_permissions (role, permission) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			string(role), string(perm),
		)
		if err != nil {
			r.log.Error("Failed to grant permission",
				zap.Error(err),
				zap.String("role", string(role)),
				zap.String("permission", string(perm)),
			)
			return false, fmt.Errorf("grant %s to %s: %w", perm, role, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit ensure role %s: %w", role, err)
	}
	return created, nil
}

func (r *roleRepository) FindAll(ctx context.Context) ([]entity.RoleDefinition, error) {
	query := `
		SELECT r.name,
		       ARRAY(SELECT rp.permission FROM role_permissions rp
		             WHERE rp.role = r.name ORDER BY rp.permission) AS permissions
		FROM roles r
		ORDER BY r.name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list roles", zap.Error(err))
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var roles []entity.RoleDefinition
	for rows.Next() {
		var name string
		var perms []string
		if err := rows.Scan(&name, &perms); err != nil {
			return nil, fmt.Errorf("scan role row: %w", err)
		}
		def := entity.RoleDefinition{Name: entity.Role(name)}
		for _, p := range perms {
			def.Permissions = append(def.Permissions, entity.Permission(p))
		}
		roles = append(roles, def)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate role rows: %w", err)
	}
	return roles, nil
}
