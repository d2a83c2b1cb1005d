package adaptor

import (
	"net/http"

	"feedback-portal/internal/dto/request"
	"feedback-portal/internal/usecase"
	"feedback-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// FeedbackHandler serves the logged-in web pages. Every route sits behind
// RequireLogin.
type FeedbackHandler struct {
	service usecase.FeedbackService
	log     *zap.Logger
}

func NewFeedbackHandler(service usecase.FeedbackService, log *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
		log:     log.With(zap.String("handler", "feedback")),
	}
}

// Dashboard handles GET /dashboard
func (h *FeedbackHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	actor := utils.GetActorFromContext(r.Context())

	dashboard, err := h.service.Dashboard(r.Context(), actor, request.PaginationFromQuery(r.URL.Query()))
	if err != nil {
		handleServiceError(w, h.log, err, "load dashboard")
		return
	}

	utils.ResponseSuccess(w, "Dashboard retrieved successfully", dashboard)
}

// MyFeedback handles GET /feedback-list
func (h *FeedbackHandler) MyFeedback(w http.ResponseWriter, r *http.Request) {
	actor := utils.GetActorFromContext(r.Context())

	list, err := h.service.ListOwn(r.Context(), actor, request.PaginationFromQuery(r.URL.Query()))
	if err != nil {
		handleServiceError(w, h.log, err, "list own feedback")
		return
	}

	utils.ResponseSuccess(w, "Feedback retrieved successfully", list)
}

// Add handles POST /feedback/add
func (h *FeedbackHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req request.CreateFeedbackRequest
	if !decodeBody(w, r, &req) {
		return
	}

	actor := utils.GetActorFromContext(r.Context())
	feedback, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add feedback")
		return
	}

	utils.ResponseCreated(w, "Feedback added successfully!", feedback)
}

// Update handles POST /feedback/update/{id}. is_verified in the form is
// honoured for auditors only; a form with neither field is an empty comment.
func (h *FeedbackHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateFeedbackRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Comment == nil && req.IsVerified == nil {
		empty := ""
		req.Comment = &empty
	}

	actor := utils.GetActorFromContext(r.Context())
	feedback, err := h.service.Update(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update feedback")
		return
	}

	utils.ResponseSuccess(w, "Feedback updated successfully", feedback)
}

// Delete handles POST /feedback/delete/{id}
func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := utils.GetActorFromContext(r.Context())

	if err := h.service.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete feedback")
		return
	}

	utils.ResponseSuccess(w, "Feedback deleted successfully!", nil)
}
