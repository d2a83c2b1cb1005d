package wire

import (
	"feedback-portal/internal/adaptor"
	"feedback-portal/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

// wireFeedback configures the logged-in web pages. Anonymous callers are
// sent to the login page.
func wireFeedback(r chi.Router, feedbackHandler *adaptor.FeedbackHandler) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireLogin(true))

		r.Get("/dashboard", feedbackHandler.Dashboard)
		r.Get("/feedback-list", feedbackHandler.MyFeedback)
		r.Post("/feedback/add", feedbackHandler.Add)
		r.Post("/feedback/update/{id}", feedbackHandler.Update)
		r.Post("/feedback/delete/{id}", feedbackHandler.Delete)
	})
}
