package wire

import (
	"feedback-portal/internal/adaptor"
	"feedback-portal/internal/data/entity"
	"feedback-portal/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures user management routes with role-based access control
func wireUser(r chi.Router, userHandler *adaptor.UserHandler, log *zap.Logger) {
	// ==================== PROTECTED USER ROUTES ====================
	r.With(middleware.RequireLogin(false)).Get("/api/me", userHandler.GetProfile)

	// ==================== ADMIN ROUTES ====================
	r.With(
		middleware.RequireLogin(false),
		middleware.RequireRole(entity.RoleAdmin, log),
	).Route("/api/admin", func(r chi.Router) {
		r.Get("/users", userHandler.GetAllUsers) // GET /api/admin/users?page=1&per_page=10
		r.Put("/users/{id}/roles", userHandler.SetRoles)
		r.Get("/roles", userHandler.ListRoles)
	})
}
