package entity

import (
	"github.com/google/uuid"
)

type Feedback struct {
	Base
	UserID     uuid.UUID `db:"user_id"`
	Comment    string    `db:"comment"`
	IsVerified bool      `db:"is_verified"`

	// joined from users, read-only
	AuthorUsername string `db:"username"`
}

// FeedbackFilter narrows list queries. A zero filter matches everything.
type FeedbackFilter struct {
	AuthorID  *uuid.UUID // only records written by this user
	VisibleTo *uuid.UUID // verified records plus the ones written by this user
}
