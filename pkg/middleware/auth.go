package middleware

import (
	"net/http"
	"strings"

	"feedback-portal/internal/data/entity"
	"feedback-portal/internal/data/repository"
	"feedback-portal/internal/policy"
	"feedback-portal/pkg/utils"

	"go.uber.org/zap"
)

const LoginPath = "/login"

// AuthSession resolves the caller once per request. A missing, forged,
// expired or revoked token leaves the request anonymous; rejecting is left
// to RequireLogin and RequireRole.
func AuthSession(repo *repository.Repository, config *utils.Config, logger *zap.Logger) func(http.Handler) http.Handler {
	secret := []byte(config.Session.Secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := extractToken(r, config.Session.CookieName)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, err := utils.ParseSessionToken(raw, secret)
			if err != nil {
				logger.Debug("Rejected session token", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			// Find valid session
			session, err := repo.Session.FindValidSession(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if session == nil {
				logger.Debug("Invalid or expired session")
				next.ServeHTTP(w, r)
				return
			}

			user, err := repo.User.FindByID(r.Context(), session.UserID)
			if err != nil {
				logger.Error("Failed to load session user",
					zap.Error(err), zap.String("user_id", session.UserID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if user == nil || !user.IsActive {
				next.ServeHTTP(w, r)
				return
			}

			// Set context dengan actor DAN token
			ctx := utils.SetActorContext(r.Context(), policy.Actor{
				UserID:   user.ID,
				Username: user.Username,
				Roles:    user.Roles,
			})
			ctx = utils.SetTokenContext(ctx, token.String())

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireLogin stops anonymous callers. Web pages send them to the login
// page, API routes answer 401.
func RequireLogin(redirect bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !utils.GetActorFromContext(r.Context()).Authenticated() {
				if redirect {
					http.Redirect(w, r, LoginPath, http.StatusFound)
					return
				}
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole - middleware cek role. Place it after RequireLogin.
func RequireRole(role entity.Role, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := utils.GetActorFromContext(r.Context())
			if !actor.Authenticated() {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if !actor.Has(role) {
				logger.Warn("Role check failed",
					zap.String("user_id", actor.UserID.String()),
					zap.String("required_role", string(role)),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Unauthorized access")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractToken prefers the Authorization header over the cookie.
func extractToken(r *http.Request, cookieName string) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		scheme, token, ok := strings.Cut(authHeader, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}

	if cookie, err := r.Cookie(cookieName); err == nil {
		return cookie.Value
	}
	return ""
}
