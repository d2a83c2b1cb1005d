package usecase

import (
	"context"
	"fmt"

	"feedback-portal/internal/data/entity"
	"feedback-portal/internal/data/repository"
	"feedback-portal/internal/dto/response"
	"feedback-portal/internal/policy"

	"go.uber.org/zap"
)

type RoleService interface {
	EnsureDefaultRoles(ctx context.Context) error
	GrantRole(ctx context.Context, username, role string) error
	ListRoles(ctx context.Context) ([]response.RoleResponse, error)
}

type roleService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewRoleService(repo *repository.Repository, log *zap.Logger) RoleService {
	return &roleService{
		repo: repo,
		log:  log.With(zap.String("service", "role")),
	}
}

// EnsureDefaultRoles writes the built-in role catalogue. Running it again
// changes nothing.
func (s *roleService) EnsureDefaultRoles(ctx context.Context) error {
	for _, role := range entity.KnownRoles {
		created, err := s.repo.Role.EnsureRole(ctx, role, policy.DefaultRolePermissions[role])
		if err != nil {
			s.log.Error("Failed to ensure role", zap.Error(err), zap.String("role", string(role)))
			return fmt.Errorf("ensure role %s: %w", role, err)
		}

		if created {
			s.log.Info("Role created", zap.String("role", string(role)))
		} else {
			s.log.Info("Role already exists", zap.String("role", string(role)))
		}
	}
	return nil
}

// GrantRole adds role to the user's set, keeping the roles they have.
func (s *roleService) GrantRole(ctx context.Context, username, role string) error {
	r, ok := entity.ParseRole(role)
	if !ok {
		return validationError("unknown role %q", role)
	}

	user, err := s.repo.User.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("find user %s: %w", username, err)
	}
	if user == nil {
		return notFoundError("user %s not found", username)
	}

	if user.Roles.Has(r) {
		s.log.Info("Role already granted", zap.String("username", username), zap.String("role", string(r)))
		return nil
	}

	roles := append(entity.Roles{}, user.Roles...)
	roles = append(roles, r)
	if err := s.repo.User.SetRoles(ctx, user.ID, roles); err != nil {
		if isRepoNotFound(err) {
			return notFoundError("user %s not found", username)
		}
		return fmt.Errorf("grant role %s to %s: %w", r, username, err)
	}

	s.log.Info("Role granted", zap.String("username", username), zap.String("role", string(r)))
	return nil
}

func (s *roleService) ListRoles(ctx context.Context) ([]response.RoleResponse, error) {
	defs, err := s.repo.Role.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list roles", zap.Error(err))
		return nil, fmt.Errorf("list roles: %w", err)
	}

	roles := make([]response.RoleResponse, len(defs))
	for i, def := range defs {
		roles[i] = response.RoleToResponse(def)
	}
	return roles, nil
}
