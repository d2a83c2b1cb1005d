package adaptor

import (
	"net/http"

	"feedback-portal/internal/dto/request"
	"feedback-portal/internal/usecase"
	"feedback-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	roles   usecase.RoleService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, roles usecase.RoleService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		roles:   roles,
		log:     log.With(zap.String("handler", "user")),
	}
}

// GetProfile handles GET /api/me
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	actor := utils.GetActorFromContext(r.Context())

	profile, err := h.service.GetProfile(r.Context(), actor)
	if err != nil {
		handleServiceError(w, h.log, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved successfully", profile)
}

// GetAllUsers handles GET /api/admin/users (admin only)
func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.GetAllUsers(r.Context(), request.PaginationFromQuery(r.URL.Query()))
	if err != nil {
		handleServiceError(w, h.log, err, "get users")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved successfully", users)
}

// SetRoles handles PUT /api/admin/users/{id}/roles (admin only)
func (h *UserHandler) SetRoles(w http.ResponseWriter, r *http.Request) {
	var req request.SetRolesRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.service.SetRoles(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "set roles")
		return
	}

	utils.ResponseSuccess(w, "Roles updated successfully", user)
}

// ListRoles handles GET /api/admin/roles (admin only)
func (h *UserHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roles.ListRoles(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list roles")
		return
	}

	utils.ResponseSuccess(w, "Roles retrieved successfully", roles)
}
