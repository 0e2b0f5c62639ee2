package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the server
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Admin     AdminConfig
	Frontend  FrontendConfig
	CORS      CORSConfig
	Logging   LoggingConfig
	LinkCheck LinkCheckConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig selects and configures the relational store.
// Driver is "sqlite" (single file at Path) or "postgres" (DSN).
type DatabaseConfig struct {
	Driver   string
	Path     string
	DSN      string
	AutoSeed bool
}

// AuthConfig holds token configuration. JWTSecret wins over SecretFile when set.
type AuthConfig struct {
	JWTSecret  string
	SecretFile string
	TokenTTL   time.Duration
}

// AdminConfig is the account created by the seed step
type AdminConfig struct {
	Username string
	Password string
}

// FrontendConfig points at the built single-page application
type FrontendConfig struct {
	Dir string
}

// CORSConfig holds the allowed browser origins
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// LinkCheckConfig bounds bookmark reachability probes
type LinkCheckConfig struct {
	Timeout time.Duration
}

// LoadConfig loads configuration from defaults, an optional file and the environment.
// An empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("NAVHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindLegacyEnv(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Auth.SecretFile == "" {
		cfg.Auth.SecretFile = filepath.Join(filepath.Dir(cfg.Database.Path), "jwt.secret")
	}

	return &cfg, nil
}

// bindLegacyEnv keeps the plain variable names used by existing deployments working.
func bindLegacyEnv(v *viper.Viper) {
	_ = v.BindEnv("server.port", "NAVHUB_SERVER_PORT", "PORT")
	_ = v.BindEnv("auth.jwtSecret", "NAVHUB_AUTH_JWTSECRET", "JWT_SECRET")
	_ = v.BindEnv("database.dsn", "NAVHUB_DATABASE_DSN", "DATABASE_URL")
	_ = v.BindEnv("cors.allowedOrigins", "NAVHUB_CORS_ALLOWEDORIGINS", "ALLOWED_ORIGINS")
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.readTimeout", "10s")
	v.SetDefault("server.writeTimeout", "10s")
	v.SetDefault("server.idleTimeout", "120s")
	v.SetDefault("server.shutdownTimeout", "10s")

	// Database defaults
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "data/navhub.db")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.autoSeed", true)

	// Auth defaults
	v.SetDefault("auth.jwtSecret", "")
	v.SetDefault("auth.secretFile", "")
	v.SetDefault("auth.tokenTTL", "24h")

	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "admin123")

	v.SetDefault("frontend.dir", "frontend/dist")

	v.SetDefault("cors.allowedOrigins", []string{"http://localhost:3000", "http://localhost:5173"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("linkCheck.timeout", "5s")
}
