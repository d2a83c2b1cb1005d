package policy

import (
	"feedback-portal/internal/data/entity"
)

// Scope is the slice of the feedback table an actor may list.
type Scope int

const (
	ScopeNone Scope = iota
	ScopeVerifiedOrOwn
	ScopeAll
)

func (s Scope) String() string {
	switch s {
	case ScopeVerifiedOrOwn:
		return "verified_or_own"
	case ScopeAll:
		return "all"
	default:
		return "none"
	}
}

func ListScope(actor Actor) Scope {
	if !actor.Authenticated() {
		return ScopeNone
	}
	if actor.Has(entity.RoleAuditor) || actor.Has(entity.RoleAdmin) {
		return ScopeAll
	}
	if actor.Has(entity.RoleEndUser) {
		return ScopeVerifiedOrOwn
	}
	return ScopeNone
}

// Filter turns a scope into a repository filter. ok is false for
// ScopeNone, where the caller should skip the query and return nothing.
func Filter(actor Actor) (filter entity.FeedbackFilter, ok bool) {
	switch ListScope(actor) {
	case ScopeAll:
		return entity.FeedbackFilter{}, true
	case ScopeVerifiedOrOwn:
		id := actor.UserID
		return entity.FeedbackFilter{VisibleTo: &id}, true
	default:
		return entity.FeedbackFilter{}, false
	}
}
