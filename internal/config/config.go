package config

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by LoadFromEnvironment
const EnvPrefix = "PT"

// Config holds all configuration options for the project tracker
type Config struct {
	Database    DatabaseConfig
	Auth        AuthConfig
	Server      ServerConfig
	Logging     LoggingConfig
	Validation  ValidationConfig
	Application ApplicationConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `env:"PT_DB_DIR"`
	Filename       string        `env:"PT_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"PT_DB_QUERY_TIMEOUT"`
	DirPermissions uint32        `env:"PT_DB_DIR_PERMISSIONS"`
}

// AuthConfig holds token and password hashing settings
type AuthConfig struct {
	JWTSecret  string        `env:"PT_AUTH_JWT_SECRET"`
	TokenTTL   time.Duration `env:"PT_AUTH_TOKEN_TTL"`
	BcryptCost int           `env:"PT_AUTH_BCRYPT_COST"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host    string `env:"PT_SERVER_HOST"`
	Port    int    `env:"PT_SERVER_PORT"`
	GinMode string `env:"PT_SERVER_GIN_MODE"`
}

type LoggingConfig struct {
	Level  string `env:"PT_LOG_LEVEL"`
	Format string `env:"PT_LOG_FORMAT"`
}

// ValidationConfig holds boundary validation limits
type ValidationConfig struct {
	UsernameMinLength    int `env:"PT_VALIDATION_USERNAME_MIN"`
	UsernameMaxLength    int `env:"PT_VALIDATION_USERNAME_MAX"`
	PasswordMinLength    int `env:"PT_VALIDATION_PASSWORD_MIN"`
	PasswordMaxBytes     int `env:"PT_VALIDATION_PASSWORD_MAX_BYTES"`
	ProjectNameMaxLength int `env:"PT_VALIDATION_PROJECT_NAME_MAX"`
	TaskTitleMaxLength   int `env:"PT_VALIDATION_TASK_TITLE_MAX"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"PT_APP_TIMEOUT"`
	Verbose bool          `env:"PT_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Database: DatabaseConfig{
			Dir:            filepath.Join(homeDir, ".pt"),
			Filename:       "pt.db",
			QueryTimeout:   10 * time.Second,
			DirPermissions: 0755,
		},
		Auth: AuthConfig{
			TokenTTL:   24 * time.Hour,
			BcryptCost: 10,
		},
		Server: ServerConfig{
			Host:    "127.0.0.1",
			Port:    8080,
			GinMode: "release",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Validation: ValidationConfig{
			UsernameMinLength:    3,
			UsernameMaxLength:    50,
			PasswordMinLength:    6,
			PasswordMaxBytes:     72,
			ProjectNameMaxLength: 255,
			TaskTitleMaxLength:   255,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// ListenAddr returns host:port for the HTTP server
func (c *Config) ListenAddr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// newEnvViper returns a viper instance reading PT_* variables.
// The key "db.dir" maps to PT_DB_DIR.
func newEnvViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadFromEnvironment overrides defaults with PT_* environment variables.
// Unparseable values fall back to the current setting.
func (c *Config) LoadFromEnvironment() error {
	return c.loadFrom(newEnvViper())
}

func (c *Config) loadFrom(v *viper.Viper) error {
	// Database configuration
	c.Database.Dir = getStringOrDefault(v, "db.dir", c.Database.Dir)
	c.Database.Filename = getStringOrDefault(v, "db.filename", c.Database.Filename)
	c.Database.QueryTimeout = getDurationOrDefault(v, "db.query_timeout", c.Database.QueryTimeout)
	c.Database.DirPermissions = getFileModeOrDefault(v, "db.dir_permissions", c.Database.DirPermissions)

	// Auth configuration
	c.Auth.JWTSecret = getStringOrDefault(v, "auth.jwt_secret", c.Auth.JWTSecret)
	c.Auth.TokenTTL = getDurationOrDefault(v, "auth.token_ttl", c.Auth.TokenTTL)
	c.Auth.BcryptCost = getIntOrDefault(v, "auth.bcrypt_cost", c.Auth.BcryptCost)

	// Server configuration
	c.Server.Host = getStringOrDefault(v, "server.host", c.Server.Host)
	c.Server.Port = getIntOrDefault(v, "server.port", c.Server.Port)
	c.Server.GinMode = getStringOrDefault(v, "server.gin_mode", c.Server.GinMode)

	// Logging configuration
	c.Logging.Level = getStringOrDefault(v, "log.level", c.Logging.Level)
	c.Logging.Format = getStringOrDefault(v, "log.format", c.Logging.Format)

	// Validation configuration
	c.Validation.UsernameMinLength = getIntOrDefault(v, "validation.username_min", c.Validation.UsernameMinLength)
	c.Validation.UsernameMaxLength = getIntOrDefault(v, "validation.username_max", c.Validation.UsernameMaxLength)
	c.Validation.PasswordMinLength = getIntOrDefault(v, "validation.password_min", c.Validation.PasswordMinLength)
	c.Validation.PasswordMaxBytes = getIntOrDefault(v, "validation.password_max_bytes", c.Validation.PasswordMaxBytes)
	c.Validation.ProjectNameMaxLength = getIntOrDefault(v, "validation.project_name_max", c.Validation.ProjectNameMaxLength)
	c.Validation.TaskTitleMaxLength = getIntOrDefault(v, "validation.task_title_max", c.Validation.TaskTitleMaxLength)

	// Application configuration
	c.Application.Timeout = getDurationOrDefault(v, "app.timeout", c.Application.Timeout)
	c.Application.Verbose = getBoolOrDefault(v, "app.verbose", c.Application.Verbose)

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}

	// Validate auth configuration
	if c.Auth.TokenTTL <= 0 {
		return &ConfigError{Field: "auth.token_ttl", Message: "token TTL must be positive"}
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return &ConfigError{Field: "auth.bcrypt_cost", Message: "bcrypt cost must be between 4 and 31"}
	}

	// Validate server configuration
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return &ConfigError{Field: "server.port", Message: "port must be between 1 and 65535"}
	}
	switch c.Server.GinMode {
	case "debug", "release", "test":
	default:
		return &ConfigError{Field: "server.gin_mode", Message: "gin mode must be debug, release or test"}
	}

	// Validate validation configuration
	if c.Validation.UsernameMinLength < 1 {
		return &ConfigError{Field: "validation.username_min_length", Message: "username minimum length must be at least 1"}
	}
	if c.Validation.UsernameMaxLength < c.Validation.UsernameMinLength {
		return &ConfigError{Field: "validation.username_max_length", Message: "username maximum length must be greater than minimum length"}
	}
	if c.Validation.PasswordMinLength < 1 {
		return &ConfigError{Field: "validation.password_min_length", Message: "password minimum length must be at least 1"}
	}
	// bcrypt only reads the first 72 bytes and refuses anything longer
	if c.Validation.PasswordMaxBytes < c.Validation.PasswordMinLength || c.Validation.PasswordMaxBytes > 72 {
		return &ConfigError{Field: "validation.password_max_bytes", Message: "password maximum must be between the minimum length and 72 bytes"}
	}
	if c.Validation.ProjectNameMaxLength < 1 {
		return &ConfigError{Field: "validation.project_name_max_length", Message: "project name maximum length must be at least 1"}
	}
	if c.Validation.TaskTitleMaxLength < 1 {
		return &ConfigError{Field: "validation.task_title_max_length", Message: "task title maximum length must be at least 1"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
