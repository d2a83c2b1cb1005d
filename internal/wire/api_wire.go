package wire

import (
	"feedback-portal/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireAPI configures the REST resource. No login gate here: anonymous
// callers list nothing and are refused on writes by the service.
func wireAPI(r chi.Router, apiHandler *adaptor.FeedbackAPIHandler) {
	r.Route("/api/feedback", func(r chi.Router) {
		r.Get("/", apiHandler.List)
		r.Post("/", apiHandler.Create)
		r.Get("/{id}", apiHandler.Get)
		r.Put("/{id}", apiHandler.Replace)
		r.Patch("/{id}", apiHandler.Patch)
		r.Delete("/{id}", apiHandler.Delete)
	})
}
