// internal/wire/wire.go
package wire

import (
	"net/http"

	"feedback-portal/internal/adaptor"
	"feedback-portal/internal/data/repository"
	"feedback-portal/internal/usecase"
	"feedback-portal/pkg/middleware"
	"feedback-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring menginisialisasi semua dependencies
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	// Initialize services dan handlers
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, config, logger)

	// Setup router
	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))

	// Operational endpoints stay outside session resolution
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", nil)
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo, config, logger))

		// Apply routes
		wireAuth(r, handler.Auth)
		wireFeedback(r, handler.Feedback)
		wireAuditor(r, handler.Auditor, logger)
		wireAPI(r, handler.API)
		wireUser(r, handler.User, logger)
	})

	return r
}
