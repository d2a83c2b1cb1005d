package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"feedback-portal/internal/data/entity"
	"feedback-portal/internal/data/repository"
	"feedback-portal/internal/data/repository/repotest"
	"feedback-portal/internal/policy"
	"feedback-portal/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testConfig = &utils.Config{
	Session: utils.SessionConfig{
		Secret:     "middleware-secret",
		TTL:        time.Hour,
		CookieName: "feedback_session",
	},
}

// seedSession stores a user with an open session and returns the signed
// client token.
func seedSession(t *testing.T, repo *repository.Repository, active bool, roles ...entity.Role) (string, *entity.User) {
	t.Helper()
	ctx := context.Background()

	user := &entity.User{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Username: "u" + uuid.NewString()[:8],
		Email:    uuid.NewString()[:8] + "@example.com",
		IsActive: active,
		Roles:    entity.Roles(roles),
	}
	require.NoError(t, repo.User.Create(ctx, user))

	session := &entity.Session{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:     user.ID,
		Token:      uuid.New(),
		ExpiresAt:  time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Session.Create(ctx, session))

	signed, err := utils.SignSessionToken(session.Token, user.ID, session.ExpiresAt, []byte(testConfig.Session.Secret))
	require.NoError(t, err)
	return signed, user
}

// captureActor runs AuthSession and reports the actor the handler saw.
func captureActor(t *testing.T, repo *repository.Repository, req *http.Request) (policy.Actor, *httptest.ResponseRecorder) {
	t.Helper()
	var seen policy.Actor
	h := AuthSession(repo, testConfig, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = utils.GetActorFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return seen, rec
}

func TestAuthSession(t *testing.T) {
	repo := repotest.New()
	token, user := seedSession(t, repo, true, entity.RoleAuditor)

	t.Run("bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		actor, rec := captureActor(t, repo, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, user.ID, actor.UserID)
		assert.True(t, actor.Has(entity.RoleAuditor))
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: testConfig.Session.CookieName, Value: token})

		actor, _ := captureActor(t, repo, req)
		assert.Equal(t, user.Username, actor.Username)
	})

	t.Run("no token", func(t *testing.T) {
		actor, rec := captureActor(t, repo, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.False(t, actor.Authenticated())
	})

	t.Run("forged token", func(t *testing.T) {
		forged, err := utils.SignSessionToken(uuid.New(), user.ID, time.Now().Add(time.Hour), []byte("other-secret"))
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+forged)

		actor, _ := captureActor(t, repo, req)
		assert.False(t, actor.Authenticated())
	})

	t.Run("unknown session", func(t *testing.T) {
		stray, err := utils.SignSessionToken(uuid.New(), user.ID, time.Now().Add(time.Hour), []byte(testConfig.Session.Secret))
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+stray)

		actor, _ := captureActor(t, repo, req)
		assert.False(t, actor.Authenticated())
	})

	t.Run("inactive user", func(t *testing.T) {
		inactiveToken, _ := seedSession(t, repo, false, entity.RoleEndUser)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+inactiveToken)

		actor, _ := captureActor(t, repo, req)
		assert.False(t, actor.Authenticated())
	})

	t.Run("revoked session", func(t *testing.T) {
		revokedToken, _ := seedSession(t, repo, true, entity.RoleEndUser)
		sid, err := utils.ParseSessionToken(revokedToken, []byte(testConfig.Session.Secret))
		require.NoError(t, err)
		require.NoError(t, repo.Session.Revoke(context.Background(), sid))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+revokedToken)
		actor, _ := captureActor(t, repo, req)
		assert.False(t, actor.Authenticated())
	})
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func withActor(req *http.Request, actor policy.Actor) *http.Request {
	return req.WithContext(utils.SetActorContext(req.Context(), actor))
}

func TestRequireLogin(t *testing.T) {
	t.Run("web redirect", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireLogin(true)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, LoginPath, rec.Header().Get("Location"))
	})

	t.Run("api unauthorized", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireLogin(false)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("logged in", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := withActor(httptest.NewRequest(http.MethodGet, "/dashboard", nil), policy.Actor{UserID: uuid.New()})
		RequireLogin(true)(okHandler()).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	mw := RequireRole(entity.RoleAuditor, zap.NewNop())

	tests := []struct {
		name   string
		actor  policy.Actor
		status int
	}{
		{"anonymous", policy.Anonymous(), http.StatusUnauthorized},
		{"end-user", policy.Actor{UserID: uuid.New(), Roles: entity.Roles{entity.RoleEndUser}}, http.StatusForbidden},
		{"admin", policy.Actor{UserID: uuid.New(), Roles: entity.Roles{entity.RoleAdmin}}, http.StatusForbidden},
		{"auditor", policy.Actor{UserID: uuid.New(), Roles: entity.Roles{entity.RoleAuditor}}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mw(okHandler()).ServeHTTP(rec, withActor(httptest.NewRequest(http.MethodGet, "/auditor-dashboard", nil), tt.actor))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestCORS(t *testing.T) {
	t.Run("listed origin", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		CORS([]string{"https://app.example.com"})(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unlisted origin", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		CORS([]string{"https://app.example.com"})(okHandler()).ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wildcard without credentials", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://anywhere.example.com")
		CORS([]string{"*"})(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("empty list disables", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		CORS(nil)(okHandler()).ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("preflight", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/api/feedback", nil)
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
		teapot := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})
		CORS([]string{"*"})(teapot).ServeHTTP(rec, req)

		// preflight is answered here and never reaches the route
		assert.Contains(t, []int{http.StatusOK, http.StatusNoContent}, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
	})
}

func TestRecover(t *testing.T) {
	panicky := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	Recover(zap.NewNop())(panicky).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Internal server error")
}

func TestLoggerCapturesStatus(t *testing.T) {
	h := Logger(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())
}
