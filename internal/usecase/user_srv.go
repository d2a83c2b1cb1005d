package usecase

import (
	"context"
	"fmt"

	"feedback-portal/internal/data/entity"
	"feedback-portal/internal/data/repository"
	"feedback-portal/internal/dto/request"
	"feedback-portal/internal/dto/response"
	"feedback-portal/internal/policy"
	"feedback-portal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, actor policy.Actor) (*response.UserResponse, error)
	GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	SetRoles(ctx context.Context, userID string, req *request.SetRolesRequest) (*response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, actor policy.Actor) (*response.UserResponse, error) {
	if !actor.Authenticated() {
		return nil, unauthenticatedError("authentication required")
	}

	// Find user
	user, err := us.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", actor.UserID.String()))
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if user == nil {
		return nil, notFoundError("user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	// Get users with pagination
	users, err := us.userRepo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		us.log.Error("Failed to get all users",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.Limit()),
		)
		return nil, fmt.Errorf("list users: %w", err)
	}

	// Get total count
	total, err := us.userRepo.CountAll(ctx)
	if err != nil {
		us.log.Error("Failed to count users", zap.Error(err))
		return nil, fmt.Errorf("count users: %w", err)
	}

	// Convert to response
	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}

	us.log.Debug("Users retrieved",
		zap.Int("count", len(users)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
		zap.Int("total_pages", utils.CalculateTotalPages(total, req.Limit())),
	)

	return response.NewPaginatedResponse(userResponses, req.Page, req.Limit(), total), nil
}

// SetRoles replaces the whole role set. An empty set leaves the user
// logged in but seeing nothing.
func (us *userService) SetRoles(ctx context.Context, userID string, req *request.SetRolesRequest) (*response.UserResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, validationError("invalid user ID")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError("%s", utils.FormatValidationErrors(errs))
	}

	roles := entity.RolesFromStrings(req.Roles)
	if err := us.userRepo.SetRoles(ctx, id, roles); err != nil {
		if isRepoNotFound(err) {
			return nil, notFoundError("user not found")
		}
		us.log.Error("Failed to set roles", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("set roles: %w", err)
	}

	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}
	if user == nil {
		return nil, notFoundError("user not found")
	}

	us.log.Info("User roles replaced",
		zap.String("user_id", userID),
		zap.Strings("roles", roles.Strings()))

	resp := response.UserToResponse(user)
	return &resp, nil
}
