package adaptor

import (
	"net/http"

	"feedback-portal/internal/dto/request"
	"feedback-portal/internal/usecase"
	"feedback-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AuditorHandler struct {
	service usecase.FeedbackService
	log     *zap.Logger
}

func NewAuditorHandler(service usecase.FeedbackService, log *zap.Logger) *AuditorHandler {
	return &AuditorHandler{
		service: service,
		log:     log.With(zap.String("handler", "auditor")),
	}
}

// Dashboard handles GET /auditor-dashboard
func (h *AuditorHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	actor := utils.GetActorFromContext(r.Context())

	list, err := h.service.ListAll(r.Context(), actor, request.PaginationFromQuery(r.URL.Query()))
	if err != nil {
		handleServiceError(w, h.log, err, "load auditor dashboard")
		return
	}

	utils.ResponseSuccess(w, "Feedback retrieved successfully", list)
}

// Verify handles POST /verify-feedback/{id}
func (h *AuditorHandler) Verify(w http.ResponseWriter, r *http.Request) {
	actor := utils.GetActorFromContext(r.Context())

	feedback, err := h.service.Verify(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "verify feedback")
		return
	}

	utils.ResponseSuccess(w, "Feedback verified successfully", feedback)
}

// Delete handles POST /delete-feedback/{id}
func (h *AuditorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := utils.GetActorFromContext(r.Context())

	if err := h.service.DeleteAsAuditor(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete feedback")
		return
	}

	utils.ResponseSuccess(w, "Feedback deleted successfully", nil)
}
