package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"feedback-portal/internal/usecase"
	"feedback-portal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", &usecase.Error{Kind: usecase.ErrValidation, Message: "Feedback comment cannot be empty"}, http.StatusBadRequest, "Feedback comment cannot be empty"},
		{"unauthenticated", &usecase.Error{Kind: usecase.ErrUnauthenticated, Message: "Invalid credentials"}, http.StatusUnauthorized, "Invalid credentials"},
		{"forbidden", &usecase.Error{Kind: usecase.ErrForbidden, Message: "you must be logged in to submit feedback"}, http.StatusForbidden, "you must be logged in to submit feedback"},
		{"not found", &usecase.Error{Kind: usecase.ErrNotFound, Message: "feedback x not found"}, http.StatusNotFound, "feedback x not found"},
		{"wrapped kind", fmt.Errorf("outer: %w", &usecase.Error{Kind: usecase.ErrNotFound, Message: "gone"}), http.StatusNotFound, "gone"},
		{"internal", errors.New("connection reset by peer"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(rec, zap.NewNop(), tt.err, "test")

			assert.Equal(t, tt.status, rec.Code)

			var body utils.Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Status)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestDecodeBodyRejectsMalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/feedback", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	var dst struct {
		Comment string `json:"comment"`
	}
	assert.False(t, decodeBody(rec, req, &dst))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionMeta(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "203.0.113.7:51234"
	req.Header.Set("User-Agent", "curl/8.0")

	meta := sessionMeta(req)
	assert.Equal(t, "203.0.113.7", meta.IPAddress)
	assert.Equal(t, "curl/8.0", meta.UserAgent)
}
