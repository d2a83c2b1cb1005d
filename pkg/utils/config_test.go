package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	content := "APP_NAME=portal\nPORT=9000\nDB_NAME=feedback\nDB_USER=app\nJWT_SECRET=s3cret\nSESSION_TTL_HOURS=2\nCORS_ALLOWED_ORIGINS=http://a.test, http://b.test\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "portal", cfg.App.Name)
	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, "feedback", cfg.Database.Name)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "feedback_session", cfg.Session.CookieName)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfig_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("PORT", "7070")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Session.Secret)
	assert.Equal(t, "7070", cfg.App.Port)
}

func TestLoadConfig_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))
	assert.Error(t, err)
}
