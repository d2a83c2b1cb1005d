package adaptor

import (
	"errors"
	"net/http"

	"feedback-portal/internal/usecase"
	"feedback-portal/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Feedback *FeedbackHandler
	API      *FeedbackAPIHandler
	Auditor  *AuditorHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, config, log),
		User:     NewUserHandler(service.User, service.Role, log),
		Feedback: NewFeedbackHandler(service.Feedback, log),
		API:      NewFeedbackAPIHandler(service.Feedback, log),
		Auditor:  NewAuditorHandler(service.Feedback, log),
	}
}

// handleServiceError maps usecase error kinds to status codes. Anything
// without a kind is an internal failure and its detail stays in the log.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var uerr *usecase.Error
	msg := err.Error()
	if errors.As(err, &uerr) {
		msg = uerr.Message
	}

	switch {
	case errors.Is(err, usecase.ErrValidation):
		log.Debug(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, msg, nil)

	case errors.Is(err, usecase.ErrUnauthenticated):
		log.Debug(operation+" failed - unauthenticated", zap.Error(err))
		utils.ResponseUnauthorized(w, msg)

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, msg)

	case errors.Is(err, usecase.ErrNotFound):
		log.Debug(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, msg)

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// decodeBody fills dst from JSON or a form post and answers 400 when the
// body is unreadable.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := utils.DecodeRequest(r, dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}
