// Package policy decides who may see and change feedback. Everything here
// is a pure function of the actor and the target record; callers resolve
// the actor once per request and pass it in.
package policy

import (
	"feedback-portal/internal/data/entity"

	"github.com/google/uuid"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionView   Action = "view"
	ActionUpdate Action = "update"
	ActionVerify Action = "verify"
	ActionDelete Action = "delete"
)

// Actor is the caller of an operation. The zero value is anonymous.
type Actor struct {
	UserID   uuid.UUID
	Username string
	Roles    entity.Roles
}

func Anonymous() Actor {
	return Actor{}
}

func (a Actor) Authenticated() bool {
	return a.UserID != uuid.Nil
}

func (a Actor) Has(role entity.Role) bool {
	return a.Roles.Has(role)
}

// Target describes the record an action applies to. Create ignores it.
type Target struct {
	OwnerID  uuid.UUID
	Verified bool
}

func TargetOf(fb *entity.Feedback) Target {
	return Target{OwnerID: fb.UserID, Verified: fb.IsVerified}
}

type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Reason: reason}
}

// Authorize is the single permission check for feedback operations.
func Authorize(actor Actor, action Action, target Target) Decision {
	if !actor.Authenticated() {
		if action == ActionCreate {
			return deny("you must be logged in to submit feedback")
		}
		return deny("authentication required")
	}

	owner := target.OwnerID == actor.UserID
	auditor := actor.Has(entity.RoleAuditor)

	switch action {
	case ActionCreate:
		return allow()

	case ActionView:
		switch ListScope(actor) {
		case ScopeAll:
			return allow()
		case ScopeVerifiedOrOwn:
			if target.Verified || owner {
				return allow()
			}
		}
		return deny("feedback is not visible to you")

	case ActionUpdate:
		if owner || auditor {
			return allow()
		}
		return deny("you are not authorized to update this feedback")

	case ActionVerify:
		if auditor {
			return allow()
		}
		return deny("only auditors can verify feedback")

	case ActionDelete:
		if owner || auditor {
			return allow()
		}
		return deny("you are not authorized to delete this feedback")
	}

	return deny("unknown action")
}

// CanSetVerification reports whether is_verified in an update is honoured.
func CanSetVerification(actor Actor) bool {
	return actor.Authenticated() && actor.Has(entity.RoleAuditor)
}

// CanEditComment reports whether the actor may replace the comment text.
// Auditors may change comment and verification of any record in one call.
func CanEditComment(actor Actor, target Target) bool {
	if !actor.Authenticated() {
		return false
	}
	return target.OwnerID == actor.UserID || actor.Has(entity.RoleAuditor)
}
