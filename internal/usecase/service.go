package usecase

import (
	"feedback-portal/internal/data/repository"
	"feedback-portal/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	User     UserService
	Role     RoleService
	Feedback FeedbackService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:     NewAuthService(repo, config, log),
		User:     NewUserService(repo.User, log),
		Role:     NewRoleService(repo, log),
		Feedback: NewFeedbackService(repo.Feedback, log),
	}
}
