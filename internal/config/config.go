package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// Every external integration (remote database, auth tokens, email
// provider) is gated by its own variables: when the variables for an
// integration are absent, the consuming code takes its fallback path
// instead of failing.
type Config struct {
	AppMode  string
	Port     string
	RemoteDB RemoteDBConfig
	LocalDB  LocalDBConfig
	JWT      JWTConfig
	Cookie   CookieConfig
	Admin    AdminConfig
}

// RemoteDBConfig holds the hosted (primary) database configuration
type RemoteDBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// Configured reports whether a remote database was configured at all.
// An unset host means the app runs purely on the local fallback store.
func (r RemoteDBConfig) Configured() bool {
	return r.Host != ""
}

// LocalDBConfig holds the embedded fallback store configuration
type LocalDBConfig struct {
	Path string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	RefreshSecret    string
	AccessTokenMins  int
	RefreshTokenDays int
}

// Configured reports whether the auth provider is set up.
// Without a secret the auth layer runs in demo mode and synthesizes
// local-only identities.
func (j JWTConfig) Configured() bool {
	return j.Secret != ""
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// AdminConfig holds the static admin allow-list
type AdminConfig struct {
	Emails []string
}

// IsAdminEmail reports whether email is on the admin allow-list (exact match)
func (a AdminConfig) IsAdminEmail(email string) bool {
	for _, e := range a.Emails {
		if strings.EqualFold(e, email) {
			return true
		}
	}
	return false
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		RemoteDB: loadRemoteDBConfig(),
		LocalDB:  LocalDBConfig{Path: getEnv("LOCAL_DB_PATH", "data/ufa_local.db")},
		JWT:      loadJWTConfig(),
		Cookie:   loadCookieConfig(),
		Admin:    loadAdminConfig(),
	}

	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadRemoteDBConfig loads the remote database config.
// No defaults here on purpose: an unset DB_HOST selects local-only mode.
func loadRemoteDBConfig() RemoteDBConfig {
	return RemoteDBConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "3306"),
		User:     getEnv("DB_USER", "root"),
		Password: getEnv("DB_PASS", ""),
		DBName:   getEnv("DB_NAME", "ufa_alliance"),
	}
}

// loadJWTConfig loads JWT config.
// JWT_SECRET has no default: absence enables auth demo mode.
func loadJWTConfig() JWTConfig {
	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "15"))
	refreshDays, _ := strconv.Atoi(getEnv("REFRESH_TOKEN_DAYS", "7"))

	return JWTConfig{
		Secret:           getEnv("JWT_SECRET", ""),
		RefreshSecret:    getEnv("JWT_REFRESH_SECRET", ""),
		AccessTokenMins:  accessMins,
		RefreshTokenDays: refreshDays,
	}
}

// loadCookieConfig loads cookie config
func loadCookieConfig() CookieConfig {
	secure, _ := strconv.ParseBool(getEnv("COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// loadAdminConfig loads the admin allow-list from ADMIN_EMAILS (comma-separated)
func loadAdminConfig() AdminConfig {
	raw := getEnv("ADMIN_EMAILS", "")
	var emails []string
	for _, e := range strings.Split(raw, ",") {
		if e = strings.TrimSpace(e); e != "" {
			emails = append(emails, e)
		}
	}
	return AdminConfig{Emails: emails}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://unitedfuturealliance.org"
	}
	return origins
}
