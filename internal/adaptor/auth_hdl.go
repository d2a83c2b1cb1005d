package adaptor

import (
	"net"
	"net/http"
	"time"

	"feedback-portal/internal/dto/request"
	"feedback-portal/internal/usecase"
	"feedback-portal/pkg/middleware"
	"feedback-portal/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	config  *utils.Config
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, config *utils.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		config:  config,
		log:     log.With(zap.String("handler", "auth")),
	}
}

type formField struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// LoginPage handles GET /login
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "Log in to continue", map[string]any{
		"action": "/login",
		"fields": []formField{
			{Name: "username", Type: "text"},
			{Name: "password", Type: "password"},
		},
	})
}

// RegisterPage handles GET /register
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "Create an account", map[string]any{
		"action": "/register",
		"fields": []formField{
			{Name: "username", Type: "text"},
			{Name: "email", Type: "email"},
			{Name: "password", Type: "password"},
			{Name: "confirm_password", Type: "password"},
		},
	})
}

// Register handles POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Register(r.Context(), &req, sessionMeta(r))
	if err != nil {
		handleServiceError(w, h.log, err, "register")
		return
	}

	h.setSessionCookie(w, resp.Token, resp.ExpiresAt)

	if utils.IsFormRequest(r) {
		http.Redirect(w, r, resp.RedirectTo, http.StatusSeeOther)
		return
	}
	utils.ResponseCreated(w, "Registration successful", resp)
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), &req, sessionMeta(r))
	if err != nil {
		handleServiceError(w, h.log, err, "login")
		return
	}

	h.setSessionCookie(w, resp.Token, resp.ExpiresAt)

	if utils.IsFormRequest(r) {
		http.Redirect(w, r, resp.RedirectTo, http.StatusSeeOther)
		return
	}
	utils.ResponseSuccess(w, "Login successful", resp)
}

// Logout handles POST /logout. Calling it without a session still clears
// the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := utils.GetTokenFromContext(r.Context()); ok {
		if err := h.service.Logout(r.Context(), token); err != nil {
			handleServiceError(w, h.log, err, "logout")
			return
		}
	}

	h.clearSessionCookie(w)

	if utils.IsFormRequest(r) {
		http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
		return
	}
	utils.ResponseSuccess(w, "Logout successful", nil)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.config.Session.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.config.Session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.config.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.Session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func sessionMeta(r *http.Request) request.SessionMeta {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		ip = host
	}
	return request.SessionMeta{
		UserAgent: r.UserAgent(),
		IPAddress: ip,
	}
}
