package wire

import (
	"feedback-portal/internal/adaptor"
	"feedback-portal/internal/data/entity"
	"feedback-portal/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireAuditor configures the auditor console: login first, then the
// auditor role.
func wireAuditor(r chi.Router, auditorHandler *adaptor.AuditorHandler, log *zap.Logger) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireLogin(true))
		r.Use(middleware.RequireRole(entity.RoleAuditor, log))

		r.Get("/auditor-dashboard", auditorHandler.Dashboard)
		r.Post("/verify-feedback/{id}", auditorHandler.Verify)
		r.Post("/delete-feedback/{id}", auditorHandler.Delete)
	})
}
