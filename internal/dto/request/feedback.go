package request

// CreateFeedbackRequest only carries the comment. Author and verification
// state are never taken from the client.
type CreateFeedbackRequest struct {
	Comment string `json:"comment" form:"comment" validate:"required,notblank,max=5000"`
}

// UpdateFeedbackRequest is a partial update; nil fields stay unchanged.
// IsVerified is honoured for auditors only.
type UpdateFeedbackRequest struct {
	Comment    *string `json:"comment,omitempty" form:"comment" validate:"omitempty,notblank,max=5000"`
	IsVerified *bool   `json:"is_verified,omitempty" form:"is_verified"`
}
