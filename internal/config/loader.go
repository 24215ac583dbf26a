package config

import (
	stderrors "errors"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// DefaultEnvFile is read by the loader when present
const DefaultEnvFile = ".env"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config   *Config
	envFiles []string
}

// NewLoader creates a new configuration loader reading DefaultEnvFile
func NewLoader() *Loader {
	return NewLoaderWithEnvFiles(DefaultEnvFile)
}

// NewLoaderWithEnvFiles creates a loader reading the given dotenv files.
// Missing files are skipped.
func NewLoaderWithEnvFiles(files ...string) *Loader {
	return &Loader{
		config:   NewConfig(),
		envFiles: files,
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Fill the process environment from dotenv files without overriding it
// 3. Override with PT_* environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if err := l.loadEnvFiles(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

func (l *Loader) loadEnvFiles() error {
	for _, file := range l.envFiles {
		if file == "" {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				continue
			}
			return &ConfigError{Field: "env_file", Message: "cannot read " + file + ": " + err.Error()}
		}
	}
	return nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides. Nil fields are not applied.
type ConfigOverrides struct {
	DBDir          *string
	DBFilename     *string
	DBQueryTimeout *time.Duration

	JWTSecret *string
	TokenTTL  *time.Duration

	ServerHost *string
	ServerPort *int

	LogLevel  *string
	LogFormat *string

	Timeout *time.Duration
	Verbose *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}
	if overrides.DBQueryTimeout != nil {
		config.Database.QueryTimeout = *overrides.DBQueryTimeout
	}

	if overrides.JWTSecret != nil {
		config.Auth.JWTSecret = *overrides.JWTSecret
	}
	if overrides.TokenTTL != nil {
		config.Auth.TokenTTL = *overrides.TokenTTL
	}

	if overrides.ServerHost != nil {
		config.Server.Host = *overrides.ServerHost
	}
	if overrides.ServerPort != nil {
		config.Server.Port = *overrides.ServerPort
	}

	if overrides.LogLevel != nil {
		config.Logging.Level = *overrides.LogLevel
	}
	if overrides.LogFormat != nil {
		config.Logging.Format = *overrides.LogFormat
	}

	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}

// lookup converts the value under key when it is set. Values that fail to
// convert keep the default.
func lookup[T any](v *viper.Viper, key string, defaultValue T, convert func(interface{}) (T, error)) T {
	if !v.IsSet(key) {
		return defaultValue
	}
	if out, err := convert(v.Get(key)); err == nil {
		return out
	}
	return defaultValue
}

func getStringOrDefault(v *viper.Viper, key string, defaultValue string) string {
	return lookup(v, key, defaultValue, cast.ToStringE)
}

func getDurationOrDefault(v *viper.Viper, key string, defaultValue time.Duration) time.Duration {
	return lookup(v, key, defaultValue, cast.ToDurationE)
}

func getIntOrDefault(v *viper.Viper, key string, defaultValue int) int {
	return lookup(v, key, defaultValue, cast.ToIntE)
}

func getBoolOrDefault(v *viper.Viper, key string, defaultValue bool) bool {
	return lookup(v, key, defaultValue, cast.ToBoolE)
}

// getFileModeOrDefault reads an octal permission such as "0700"
func getFileModeOrDefault(v *viper.Viper, key string, defaultValue uint32) uint32 {
	return lookup(v, key, defaultValue, func(raw interface{}) (uint32, error) {
		mode, err := strconv.ParseUint(cast.ToString(raw), 8, 32)
		return uint32(mode), err
	})
}
