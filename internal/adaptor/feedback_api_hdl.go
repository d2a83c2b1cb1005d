package adaptor

import (
	"net/http"

	"feedback-portal/internal/dto/request"
	"feedback-portal/internal/usecase"
	"feedback-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// FeedbackAPIHandler is the /api/feedback resource. It is reachable
// without a session; the service decides what anonymous callers get.
type FeedbackAPIHandler struct {
	service usecase.FeedbackService
	log     *zap.Logger
}

func NewFeedbackAPIHandler(service usecase.FeedbackService, log *zap.Logger) *FeedbackAPIHandler {
	return &FeedbackAPIHandler{
		service: service,
		log:     log.With(zap.String("handler", "feedback_api")),
	}
}

// List handles GET /api/feedback
func (h *FeedbackAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := utils.GetActorFromContext(r.Context())

	list, err := h.service.List(r.Context(), actor, request.PaginationFromQuery(r.URL.Query()))
	if err != nil {
		handleServiceError(w, h.log, err, "list feedback")
		return
	}

	utils.ResponseSuccess(w, "Feedback retrieved successfully", list)
}

// Create handles POST /api/feedback
func (h *FeedbackAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateFeedbackRequest
	if !decodeBody(w, r, &req) {
		return
	}

	actor := utils.GetActorFromContext(r.Context())
	if actor.Authenticated() {
		if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
			utils.ResponseBadRequest(w, "Validation failed", validationErrors)
			return
		}
	}

	feedback, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create feedback")
		return
	}

	utils.ResponseCreated(w, "Feedback created successfully", feedback)
}

// Get handles GET /api/feedback/{id}
func (h *FeedbackAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor := utils.GetActorFromContext(r.Context())

	feedback, err := h.service.Get(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get feedback")
		return
	}

	utils.ResponseSuccess(w, "Feedback retrieved successfully", feedback)
}

// Replace handles PUT /api/feedback/{id}; the comment is mandatory.
func (h *FeedbackAPIHandler) Replace(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

// Patch handles PATCH /api/feedback/{id}
func (h *FeedbackAPIHandler) Patch(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

func (h *FeedbackAPIHandler) update(w http.ResponseWriter, r *http.Request, full bool) {
	var req request.UpdateFeedbackRequest
	if !decodeBody(w, r, &req) {
		return
	}

	actor := utils.GetActorFromContext(r.Context())
	if actor.Authenticated() {
		if full && req.Comment == nil && req.IsVerified == nil {
			utils.ResponseBadRequest(w, "Validation failed", map[string]string{"comment": "comment is required"})
			return
		}
		if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
			utils.ResponseBadRequest(w, "Validation failed", validationErrors)
			return
		}
	}

	feedback, err := h.service.Update(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update feedback")
		return
	}

	utils.ResponseSuccess(w, "Feedback updated successfully", feedback)
}

// Delete handles DELETE /api/feedback/{id}
func (h *FeedbackAPIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := utils.GetActorFromContext(r.Context())

	if err := h.service.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete feedback")
		return
	}

	utils.ResponseSuccess(w, "Feedback deleted successfully", nil)
}
