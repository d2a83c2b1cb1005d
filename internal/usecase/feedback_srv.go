package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"feedback-portal/internal/data/entity"
	"feedback-portal/internal/data/repository"
	"feedback-portal/internal/dto/request"
	"feedback-portal/internal/dto/response"
	"feedback-portal/internal/policy"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const emptyDashboardNotice = "You have not received any verified feedback yet."

type FeedbackService interface {
	Create(ctx context.Context, actor policy.Actor, req *request.CreateFeedbackRequest) (*response.FeedbackResponse, error)
	Get(ctx context.Context, actor policy.Actor, feedbackID string) (*response.FeedbackResponse, error)
	Update(ctx context.Context, actor policy.Actor, feedbackID string, req *request.UpdateFeedbackRequest) (*response.FeedbackResponse, error)
	Verify(ctx context.Context, actor policy.Actor, feedbackID string) (*response.FeedbackResponse, error)
	Delete(ctx context.Context, actor policy.Actor, feedbackID string) error
	DeleteAsAuditor(ctx context.Context, actor policy.Actor, feedbackID string) error

	// Lists
	List(ctx context.Context, actor policy.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.FeedbackResponse], error)
	ListOwn(ctx context.Context, actor policy.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.FeedbackResponse], error)
	ListAll(ctx context.Context, actor policy.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.FeedbackResponse], error)
	Dashboard(ctx context.Context, actor policy.Actor, req *request.PaginatedRequest) (*response.DashboardResponse, error)
}

type feedbackService struct {
	repo repository.FeedbackRepository
	log  *zap.Logger
	now  func() time.Time
}

func NewFeedbackService(repo repository.FeedbackRepository, log *zap.Logger) FeedbackService {
	return &feedbackService{
		repo: repo,
		log:  log.With(zap.String("service", "feedback")),
		now:  time.Now,
	}
}

func (s *feedbackService) Create(ctx context.Context, actor policy.Actor, req *request.CreateFeedbackRequest) (resp *response.FeedbackResponse, err error) {
	defer func() { observe("create", err) }()

	if d := policy.Authorize(actor, policy.ActionCreate, policy.Target{}); !d.Allowed {
		return nil, forbiddenError("%s", d.Reason)
	}

	if strings.TrimSpace(req.Comment) == "" {
		return nil, validationError("Feedback comment cannot be empty")
	}

	now := s.now()
	fb := &entity.Feedback{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:         actor.UserID,
		Comment:        req.Comment,
		IsVerified:     false,
		AuthorUsername: actor.Username,
	}

	if err := s.repo.Create(ctx, fb); err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}

	s.log.Info("Feedback created",
		zap.String("feedback_id", fb.ID.String()),
		zap.String("user_id", actor.UserID.String()),
	)

	out := response.FeedbackToResponse(fb)
	return &out, nil
}

func (s *feedbackService) Get(ctx context.Context, actor policy.Actor, feedbackID string) (resp *response.FeedbackResponse, err error) {
	defer func() { observe("get", err) }()

	fb, err := s.find(ctx, feedbackID)
	if err != nil {
		return nil, err
	}

	// records outside the actor's scope look missing rather than forbidden
	if d := policy.Authorize(actor, policy.ActionView, policy.TargetOf(fb)); !d.Allowed {
		return nil, notFoundError("feedback %s not found", feedbackID)
	}

	out := response.FeedbackToResponse(fb)
	return &out, nil
}

func (s *feedbackService) Update(ctx context.Context, actor policy.Actor, feedbackID string, req *request.UpdateFeedbackRequest) (resp *response.FeedbackResponse, err error) {
	defer func() { observe("update", err) }()

	if !actor.Authenticated() {
		return nil, unauthenticatedError("authentication required")
	}

	fb, err := s.find(ctx, feedbackID)
	if err != nil {
		return nil, err
	}

	target := policy.TargetOf(fb)
	if d := policy.Authorize(actor, policy.ActionUpdate, target); !d.Allowed {
		s.log.Warn("Feedback update denied",
			zap.String("feedback_id", feedbackID),
			zap.String("user_id", actor.UserID.String()),
		)
		return nil, forbiddenError("%s", d.Reason)
	}

	changed := false

	if req.Comment != nil {
		if !policy.CanEditComment(actor, target) {
			return nil, forbiddenError("you are not authorized to update this feedback")
		}
		if strings.TrimSpace(*req.Comment) == "" {
			return nil, validationError("Updated comment cannot be empty")
		}
		if *req.Comment != fb.Comment {
			fb.Comment = *req.Comment
			changed = true
		}
	}

	if req.IsVerified != nil {
		if policy.CanSetVerification(actor) {
			if *req.IsVerified != fb.IsVerified {
				fb.IsVerified = *req.IsVerified
				changed = true
			}
		} else {
			s.log.Debug("Ignoring is_verified from non-auditor",
				zap.String("feedback_id", feedbackID),
				zap.String("user_id", actor.UserID.String()),
			)
		}
	}

	if !changed {
		out := response.FeedbackToResponse(fb)
		return &out, nil
	}

	fb.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, fb); err != nil {
		return nil, s.mapRepoError(err, feedbackID, "update feedback")
	}

	s.log.Info("Feedback updated",
		zap.String("feedback_id", feedbackID),
		zap.String("user_id", actor.UserID.String()),
		zap.Bool("is_verified", fb.IsVerified),
	)

	out := response.FeedbackToResponse(fb)
	return &out, nil
}

// Verify moves a record to verified. It never moves one back.
func (s *feedbackService) Verify(ctx context.Context, actor policy.Actor, feedbackID string) (resp *response.FeedbackResponse, err error) {
	defer func() { observe("verify", err) }()

	if !actor.Authenticated() {
		return nil, unauthenticatedError("authentication required")
	}
	if d := policy.Authorize(actor, policy.ActionVerify, policy.Target{}); !d.Allowed {
		return nil, forbiddenError("%s", d.Reason)
	}

	fb, err := s.find(ctx, feedbackID)
	if err != nil {
		return nil, err
	}

	if !fb.IsVerified {
		now := s.now()
		if err := s.repo.MarkVerified(ctx, fb.ID, now); err != nil {
			return nil, s.mapRepoError(err, feedbackID, "verify feedback")
		}
		fb.IsVerified = true
		fb.UpdatedAt = now

		s.log.Info("Feedback verified",
			zap.String("feedback_id", feedbackID),
			zap.String("auditor_id", actor.UserID.String()),
		)
	}

	out := response.FeedbackToResponse(fb)
	return &out, nil
}

func (s *feedbackService) Delete(ctx context.Context, actor policy.Actor, feedbackID string) (err error) {
	defer func() { observe("delete", err) }()

	if !actor.Authenticated() {
		return unauthenticatedError("authentication required")
	}

	fb, err := s.find(ctx, feedbackID)
	if err != nil {
		return err
	}

	if d := policy.Authorize(actor, policy.ActionDelete, policy.TargetOf(fb)); !d.Allowed {
		return forbiddenError("%s", d.Reason)
	}

	return s.remove(ctx, actor, fb)
}

// DeleteAsAuditor backs the auditor console, which is closed to authors
// without the auditor role even for their own records.
func (s *feedbackService) DeleteAsAuditor(ctx context.Context, actor policy.Actor, feedbackID string) (err error) {
	defer func() { observe("audit_delete", err) }()

	if !actor.Authenticated() {
		return unauthenticatedError("authentication required")
	}
	if !actor.Has(entity.RoleAuditor) {
		return forbiddenError("Unauthorized or invalid request")
	}

	fb, err := s.find(ctx, feedbackID)
	if err != nil {
		return err
	}

	return s.remove(ctx, actor, fb)
}

func (s *feedbackService) List(ctx context.Context, actor policy.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.FeedbackResponse], error) {
	filter, ok := policy.Filter(actor)
	if !ok {
		return response.NewPaginatedResponse([]response.FeedbackResponse{}, req.Page, req.Limit(), 0), nil
	}
	return s.page(ctx, filter, req)
}

func (s *feedbackService) ListOwn(ctx context.Context, actor policy.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.FeedbackResponse], error) {
	if !actor.Authenticated() {
		return nil, unauthenticatedError("authentication required")
	}
	author := actor.UserID
	return s.page(ctx, entity.FeedbackFilter{AuthorID: &author}, req)
}

func (s *feedbackService) ListAll(ctx context.Context, actor policy.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.FeedbackResponse], error) {
	if !actor.Authenticated() {
		return nil, unauthenticatedError("authentication required")
	}
	if !actor.Has(entity.RoleAuditor) {
		return nil, forbiddenError("Unauthorized access")
	}
	return s.page(ctx, entity.FeedbackFilter{}, req)
}

func (s *feedbackService) Dashboard(ctx context.Context, actor policy.Actor, req *request.PaginatedRequest) (*response.DashboardResponse, error) {
	if !actor.Authenticated() {
		return nil, unauthenticatedError("authentication required")
	}

	list, err := s.List(ctx, actor, req)
	if err != nil {
		return nil, err
	}

	dashboard := &response.DashboardResponse{PaginatedResponse: list}
	if list.Pagination.Total == 0 {
		dashboard.Notice = emptyDashboardNotice
	}
	return dashboard, nil
}

// ==================== HELPER METHODS ====================

func (s *feedbackService) find(ctx context.Context, feedbackID string) (*entity.Feedback, error) {
	id, err := uuid.Parse(feedbackID)
	if err != nil {
		return nil, notFoundError("feedback %s not found", feedbackID)
	}

	fb, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find feedback %s: %w", feedbackID, err)
	}
	if fb == nil {
		return nil, notFoundError("feedback %s not found", feedbackID)
	}
	return fb, nil
}

func (s *feedbackService) remove(ctx context.Context, actor policy.Actor, fb *entity.Feedback) error {
	if err := s.repo.Delete(ctx, fb.ID); err != nil {
		return s.mapRepoError(err, fb.ID.String(), "delete feedback")
	}

	s.log.Info("Feedback deleted",
		zap.String("feedback_id", fb.ID.String()),
		zap.String("author_id", fb.UserID.String()),
		zap.String("deleted_by", actor.UserID.String()),
	)
	return nil
}

func (s *feedbackService) page(ctx context.Context, filter entity.FeedbackFilter, req *request.PaginatedRequest) (*response.PaginatedResponse[response.FeedbackResponse], error) {
	items, err := s.repo.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count feedback: %w", err)
	}

	return response.NewPaginatedResponse(response.FeedbackListToResponse(items), req.Page, req.Limit(), total), nil
}

// mapRepoError turns a row vanishing between read and write into a 404.
func (s *feedbackService) mapRepoError(err error, feedbackID, operation string) error {
	if isRepoNotFound(err) {
		return notFoundError("feedback %s not found", feedbackID)
	}
	return fmt.Errorf("%s %s: %w", operation, feedbackID, err)
}
