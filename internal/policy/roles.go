package policy

import "feedback-portal/internal/data/entity"

// DefaultRolePermissions is the catalogue written by the startup
// bootstrap. Authorize stays the source of truth for decisions.
var DefaultRolePermissions = map[entity.Role][]entity.Permission{
	entity.RoleEndUser: {
		entity.PermAddFeedback,
		entity.PermChangeFeedback,
		entity.PermViewFeedback,
		entity.PermDeleteFeedback,
	},
	entity.RoleAuditor: {
		entity.PermViewFeedback,
		entity.PermChangeFeedback,
		entity.PermDeleteFeedback,
		entity.PermVerifyFeedback,
	},
	entity.RoleAdmin: {
		entity.PermAddFeedback,
		entity.PermChangeFeedback,
		entity.PermViewFeedback,
		entity.PermDeleteFeedback,
	},
}

// LandingPath is where a freshly logged-in actor is sent.
func LandingPath(roles entity.Roles) string {
	if roles.Has(entity.RoleAuditor) {
		return "/auditor-dashboard"
	}
	return "/dashboard"
}
