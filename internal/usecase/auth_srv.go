package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"feedback-portal/internal/data/entity"
	"feedback-portal/internal/data/repository"
	"feedback-portal/internal/dto/request"
	"feedback-portal/internal/dto/response"
	"feedback-portal/internal/policy"
	"feedback-portal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest, meta request.SessionMeta) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, meta request.SessionMeta) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	CleanupSessions(ctx context.Context) (int64, error)
}

type authService struct {
	repo   *repository.Repository // grouping userRepo & sessionRepo
	config *utils.Config
	log    *zap.Logger
	now    func() time.Time
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
		now:    time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest, meta request.SessionMeta) (*response.AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	// 1. Validasi input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, validationError("%s", utils.FormatValidationErrors(errs))
	}

	// 2. Password harus sama
	if req.Password != req.ConfirmPassword {
		return nil, validationError("Passwords do not match")
	}

	// 3. Cek username sudah dipakai
	existingUser, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to check username", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existingUser != nil {
		return nil, validationError("Username already exists")
	}

	// 4. Cek email sudah terdaftar
	existingUser, err = s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existingUser != nil {
		return nil, validationError("Email already registered")
	}

	// 5. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 6. Create user entity
	now := s.now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		IsActive:     true,
		Roles:        entity.Roles{entity.RoleEndUser},
	}

	// 7. Save user, a concurrent signup can still hit the unique index
	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, validationError("Username or email already registered")
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("create account: %w", err)
	}

	// 8. Auto login setelah register
	session, err := s.createSession(ctx, user.ID, meta)
	if err != nil {
		s.log.Error("Failed to create session after register",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return s.convertAuthResponse(user, session)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, meta request.SessionMeta) (*response.AuthResponse, error) {
	// 1. Validasi
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, validationError("%s", utils.FormatValidationErrors(errs))
	}

	// 2. Find user by username
	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to find user by username", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("find user: %w", err)
	}

	// 3. User not found
	if user == nil {
		s.log.Warn("User not found for login", zap.String("username", req.Username))
		return nil, unauthenticatedError("Invalid credentials")
	}

	// 4. Check password
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, unauthenticatedError("Invalid credentials")
	}

	// 5. Check if user is active
	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, forbiddenError("account is deactivated")
	}

	// 6. Create session
	session, err := s.createSession(ctx, user.ID, meta)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.Strings("roles", user.Roles.Strings()))

	return s.convertAuthResponse(user, session)
}

// Logout revokes the session. An already revoked or expired session
// counts as logged out.
func (s *authService) Logout(ctx context.Context, token string) error {
	// 1. Parse token
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		s.log.Warn("Invalid token format", zap.Error(err))
		return validationError("invalid token format")
	}

	// 2. Revoke session
	if err := s.repo.Session.Revoke(ctx, tokenUUID); err != nil {
		if isRepoNotFound(err) {
			return nil
		}
		s.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("revoke session: %w", err)
	}

	s.log.Info("User logged out")
	return nil
}

func (s *authService) CleanupSessions(ctx context.Context) (int64, error) {
	removed, err := s.repo.Session.CleanExpiredSessions(ctx)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.log.Info("Expired sessions removed", zap.Int64("count", removed))
	}
	return removed, nil
}

// ==================== HELPER METHODS ====================

func (s *authService) createSession(ctx context.Context, userID uuid.UUID, meta request.SessionMeta) (*entity.Session, error) {
	now := s.now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    userID,
		Token:     utils.GenerateSessionToken(),
		UserAgent: optional(meta.UserAgent),
		IPAddress: optional(meta.IPAddress),
		ExpiresAt: now.Add(s.config.Session.TTL),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *authService) convertAuthResponse(user *entity.User, session *entity.Session) (*response.AuthResponse, error) {
	signed, err := utils.SignSessionToken(session.Token, user.ID, session.ExpiresAt, []byte(s.config.Session.Secret))
	if err != nil {
		s.log.Error("Failed to sign session token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, err
	}

	return &response.AuthResponse{
		UserID:     user.ID.String(),
		Token:      signed,
		ExpiresAt:  session.ExpiresAt,
		Email:      user.Email,
		Username:   user.Username,
		Roles:      user.Roles.Strings(),
		RedirectTo: policy.LandingPath(user.Roles),
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
