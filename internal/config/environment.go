package config

import (
	"os"
	"strings"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// EnvironmentVar selects the Environment
const EnvironmentVar = "PT_ENV"

// minProductionSecretLength is the HS256 key size
const minProductionSecretLength = 32

// GetEnvironment reads PT_ENV. Unknown or empty values select production.
func GetEnvironment() Environment {
	switch Environment(strings.ToLower(os.Getenv(EnvironmentVar))) {
	case Development:
		return Development
	case Testing:
		return Testing
	default:
		return Production
	}
}

// ValidateFor applies the environment-specific rules on top of Validate
func (c *Config) ValidateFor(env Environment) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if env == Production && len(c.Auth.JWTSecret) < minProductionSecretLength {
		return &ConfigError{Field: "auth.jwt_secret", Message: "JWT secret must be at least 32 bytes in production"}
	}
	return nil
}

// JWTSecretFor returns the configured secret, or a fixed development secret
// outside production when none is configured.
func (c *Config) JWTSecretFor(env Environment) string {
	if c.Auth.JWTSecret == "" && env != Production {
		return "pt-development-secret-do-not-use-in-production"
	}
	return c.Auth.JWTSecret
}
