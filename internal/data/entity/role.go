package entity

import "strings"

// Role is a group membership. The set is closed: anything outside
// KnownRoles is rejected at the edges.
type Role string

const (
	RoleEndUser Role = "end-user"
	RoleAuditor Role = "auditor"
	RoleAdmin   Role = "admin"
)

// KnownRoles in bootstrap order.
var KnownRoles = []Role{RoleEndUser, RoleAuditor, RoleAdmin}

func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range KnownRoles {
		if r == known {
			return r, true
		}
	}
	return "", false
}

// Roles is the set of roles a user holds. Order carries no meaning.
type Roles []Role

func (rs Roles) Has(role Role) bool {
	for _, r := range rs {
		if r == role {
			return true
		}
	}
	return false
}

func (rs Roles) Strings() []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}

// RolesFromStrings drops unknown and duplicate names.
func RolesFromStrings(names []string) Roles {
	roles := make(Roles, 0, len(names))
	for _, name := range names {
		role, ok := ParseRole(name)
		if !ok || roles.Has(role) {
			continue
		}
		roles = append(roles, role)
	}
	return roles
}

// Permission is a coarse action name stored in the role catalogue.
type Permission string

const (
	PermAddFeedback    Permission = "add_feedback"
	PermChangeFeedback Permission = "change_feedback"
	PermViewFeedback   Permission = "view_feedback"
	PermDeleteFeedback Permission = "delete_feedback"
	PermVerifyFeedback Permission = "verify_feedback"
)

type RoleDefinition struct {
	Name        Role         `db:"name"`
	Permissions []Permission `db:"permissions"`
}
