package request

import (
	"net/url"

	"feedback-portal/pkg/utils"
)

// MaxPage bounds the page number so the offset cannot overflow.
const MaxPage = 100000

type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

// PaginationFromQuery reads page/per_page, falling back to 1 and 10.
// Pages past MaxPage are clamped to it.
func PaginationFromQuery(query url.Values) *PaginatedRequest {
	return &PaginatedRequest{
		Page:    min(utils.ParseInt(query.Get("page"), 1), MaxPage),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}

func (p PaginatedRequest) Offset() int {
	return utils.CalculateOffset(min(p.Page, MaxPage), p.Limit())
}

func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 {
		return 10
	}
	if p.PerPage > 100 {
		return 100
	}
	return p.PerPage
}
