package response

import (
	"time"

	"feedback-portal/internal/data/entity"
)

type AuthResponse struct {
	UserID     string    `json:"user_id"`
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expires_at"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	Roles      []string  `json:"roles"`
	RedirectTo string    `json:"redirect_to"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type RoleResponse struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		Roles:     user.Roles.Strings(),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}

func RoleToResponse(def entity.RoleDefinition) RoleResponse {
	perms := make([]string, len(def.Permissions))
	for i, p := range def.Permissions {
		perms[i] = string(p)
	}
	return RoleResponse{Name: string(def.Name), Permissions: perms}
}
