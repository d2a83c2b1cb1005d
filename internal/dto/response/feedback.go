package response

import (
	"time"

	"feedback-portal/internal/data/entity"
)

type FeedbackResponse struct {
	ID             string    `json:"id"`
	Author         string    `json:"author"`
	AuthorUsername string    `json:"author_username,omitempty"`
	Comment        string    `json:"comment"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	IsVerified     bool      `json:"is_verified"`
}

// DashboardResponse is a page of feedback plus the placeholder shown when
// nothing is visible.
type DashboardResponse struct {
	*PaginatedResponse[FeedbackResponse]
	Notice string `json:"notice,omitempty"`
}

func FeedbackToResponse(fb *entity.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:             fb.ID.String(),
		Author:         fb.UserID.String(),
		AuthorUsername: fb.AuthorUsername,
		Comment:        fb.Comment,
		CreatedAt:      fb.CreatedAt,
		UpdatedAt:      fb.UpdatedAt,
		IsVerified:     fb.IsVerified,
	}
}

func FeedbackListToResponse(items []*entity.Feedback) []FeedbackResponse {
	out := make([]FeedbackResponse, len(items))
	for i, fb := range items {
		out[i] = FeedbackToResponse(fb)
	}
	return out
}
