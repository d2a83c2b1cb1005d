package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	CORS     CORSConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// SessionConfig covers the server-side session and the signed token
// handed to the client.
type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

// LoadConfig reads the given .env file (if present) and lets environment
// variables override it.
func LoadConfig(envFile string) (*Config, error) {
	v := viper.New()
	if envFile == "" {
		envFile = ".env"
	}
	v.SetConfigFile(envFile)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "feedback-portal")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("SESSION_TTL_HOURS", 24)
	v.SetDefault("SESSION_COOKIE_NAME", "feedback_session")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config %s: %w", envFile, err)
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			Secret:       v.GetString("JWT_SECRET"),
			TTL:          time.Duration(v.GetInt("SESSION_TTL_HOURS")) * time.Hour,
			CookieName:   v.GetString("SESSION_COOKIE_NAME"),
			CookieSecure: v.GetBool("COOKIE_SECURE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}

	if config.Session.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
